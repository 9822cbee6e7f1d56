package application

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/smartplace-reply-cli/internal/domain"
	"github.com/bnema/smartplace-reply-cli/internal/ports/mocks"
)

func TestReplyGeneratorGenerateOne(t *testing.T) {
	t.Parallel()

	gen := mocks.NewMockTextGenerator(t)
	clock := mocks.NewMockClock(t)
	generator := NewReplyGenerator(gen, clock, nil)

	gen.EXPECT().Complete(mockAnyContext(), mock.MatchedBy(func(req domain.CompletionRequest) bool {
		return req.Model == domain.DefaultReplyModel &&
			req.MaxTokens == domain.DefaultMaxTokens &&
			req.Temperature == domain.DefaultTemperature &&
			strings.Contains(req.Prompt, "good")
	})).Return(`  "감사합니다, Kim님!"  `, nil).Once()

	reply, err := generator.GenerateOne(context.Background(), "good", "Kim", domain.DefaultReplyConfig())
	require.NoError(t, err)
	assert.Equal(t, "감사합니다, Kim님!", reply)
}

func TestReplyGeneratorGenerateOneEmptyReviewSkipsService(t *testing.T) {
	t.Parallel()

	gen := mocks.NewMockTextGenerator(t)
	generator := NewReplyGenerator(gen, mocks.NewMockClock(t), nil)

	reply, err := generator.GenerateOne(context.Background(), "  \n ", "Kim", domain.DefaultReplyConfig())
	require.NoError(t, err)
	assert.Empty(t, reply)
	gen.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestReplyGeneratorGenerateOneRetriesTransientFailures(t *testing.T) {
	t.Parallel()

	gen := mocks.NewMockTextGenerator(t)
	clock := mocks.NewMockClock(t)
	generator := NewReplyGenerator(gen, clock, nil)

	transient := domain.TransientGenerationError(errors.New("429 too many requests"))
	gen.EXPECT().Complete(mockAnyContext(), mock.Anything).Return("", transient).Twice()
	gen.EXPECT().Complete(mockAnyContext(), mock.Anything).Return("감사합니다", nil).Once()
	clock.EXPECT().Sleep(mockAnyContext(), time.Second).Return(nil).Once()
	clock.EXPECT().Sleep(mockAnyContext(), 2*time.Second).Return(nil).Once()

	reply, err := generator.GenerateOne(context.Background(), "good", "", domain.DefaultReplyConfig())
	require.NoError(t, err)
	assert.Equal(t, "감사합니다", reply)
}

func TestReplyGeneratorGenerateOneGivesUpAfterThreeAttempts(t *testing.T) {
	t.Parallel()

	gen := mocks.NewMockTextGenerator(t)
	clock := mocks.NewMockClock(t)
	generator := NewReplyGenerator(gen, clock, nil)

	transient := domain.TransientGenerationError(errors.New("503 unavailable"))
	gen.EXPECT().Complete(mockAnyContext(), mock.Anything).Return("", transient).Times(3)
	clock.EXPECT().Sleep(mockAnyContext(), time.Second).Return(nil).Once()
	clock.EXPECT().Sleep(mockAnyContext(), 2*time.Second).Return(nil).Once()

	_, err := generator.GenerateOne(context.Background(), "good", "", domain.DefaultReplyConfig())
	require.ErrorIs(t, err, domain.ErrTransientUpstream)
	assert.Contains(t, err.Error(), "after 3 attempts")
}

func TestReplyGeneratorGenerateOneFatalFailureIsNotRetried(t *testing.T) {
	t.Parallel()

	gen := mocks.NewMockTextGenerator(t)
	clock := mocks.NewMockClock(t)
	generator := NewReplyGenerator(gen, clock, nil)

	fatal := domain.FatalGenerationError(errors.New("401 invalid api key"))
	gen.EXPECT().Complete(mockAnyContext(), mock.Anything).Return("", fatal).Once()

	_, err := generator.GenerateOne(context.Background(), "good", "", domain.DefaultReplyConfig())
	require.ErrorIs(t, err, domain.ErrFatalUpstream)
	clock.AssertNotCalled(t, "Sleep", mock.Anything, mock.Anything)
}

func TestReplyGeneratorGenerateOneStopsWhenBackoffIsInterrupted(t *testing.T) {
	t.Parallel()

	gen := mocks.NewMockTextGenerator(t)
	clock := mocks.NewMockClock(t)
	generator := NewReplyGenerator(gen, clock, nil)

	gen.EXPECT().Complete(mockAnyContext(), mock.Anything).Return("", domain.TransientGenerationError(errors.New("timeout"))).Once()
	clock.EXPECT().Sleep(mockAnyContext(), time.Second).Return(context.Canceled).Once()

	_, err := generator.GenerateOne(context.Background(), "good", "", domain.DefaultReplyConfig())
	require.ErrorIs(t, err, context.Canceled)
}

func TestReplyGeneratorGenerateBatch(t *testing.T) {
	t.Parallel()

	gen := mocks.NewMockTextGenerator(t)
	clock := newStepClock()
	observer := &recordingObserver{}
	generator := NewReplyGenerator(gen, clock, observer)

	gen.EXPECT().Complete(mockAnyContext(), mock.Anything).RunAndReturn(func(_ context.Context, req domain.CompletionRequest) (string, error) {
		switch {
		case strings.Contains(req.Prompt, "맛있어요"):
			return "방문해 주셔서 감사합니다.", nil
		case strings.Contains(req.Prompt, "별로예요"):
			return "", domain.FatalGenerationError(errors.New("400 bad request"))
		default:
			return "   ", nil
		}
	}).Times(3)

	reviews := []domain.ReviewRecord{
		{ID: "r1", BodyText: "맛있어요", AuthorDisplayName: "Kim"},
		{ID: "r2", BodyText: "  "},
		{ID: "r3", BodyText: "별로예요"},
		{ID: "r4", BodyText: "그냥 그래요"},
	}

	drafts := generator.GenerateBatch(context.Background(), reviews, domain.DefaultReplyConfig(), nil)
	require.Len(t, drafts, 4)

	assert.Equal(t, domain.ReplyDraft{ReviewID: "r1", SourceReviewText: "맛있어요", GeneratedText: "방문해 주셔서 감사합니다."}, drafts[0])
	assert.Equal(t, "리뷰 텍스트 없음", drafts[1].ErrorReason)
	assert.Equal(t, "r3", drafts[2].ReviewID)
	assert.Contains(t, drafts[2].ErrorReason, "400 bad request")
	assert.Equal(t, "답변 생성 실패", drafts[3].ErrorReason)

	assert.Equal(t, []time.Duration{100 * time.Millisecond}, clock.slept())
	assert.True(t, observer.hasLog("답변 생성 완료: 1/4개 성공"))
}

func TestReplyGeneratorGenerateBatchNoDelayAfterLastReview(t *testing.T) {
	t.Parallel()

	gen := mocks.NewMockTextGenerator(t)
	clock := newStepClock()
	generator := NewReplyGenerator(gen, clock, nil)

	gen.EXPECT().Complete(mockAnyContext(), mock.Anything).Return("감사합니다", nil).Twice()

	reviews := []domain.ReviewRecord{{ID: "r1", BodyText: "a"}, {ID: "r2", BodyText: "b"}}
	drafts := generator.GenerateBatch(context.Background(), reviews, domain.DefaultReplyConfig(), nil)

	assert.Len(t, domain.EligibleDrafts(drafts), 2)
	assert.Equal(t, []time.Duration{100 * time.Millisecond}, clock.slept())
}

func TestReplyGeneratorGenerateBatchCancelledBetweenReviews(t *testing.T) {
	t.Parallel()

	gen := mocks.NewMockTextGenerator(t)
	generator := NewReplyGenerator(gen, newStepClock(), nil)
	signal := NewCancellationSignal()

	gen.EXPECT().Complete(mockAnyContext(), mock.Anything).RunAndReturn(func(context.Context, domain.CompletionRequest) (string, error) {
		signal.Cancel()
		return "감사합니다", nil
	}).Once()

	reviews := []domain.ReviewRecord{
		{ID: "r1", BodyText: "a"},
		{ID: "r2", BodyText: "b"},
		{ID: "r3", BodyText: "c"},
	}
	drafts := generator.GenerateBatch(context.Background(), reviews, domain.DefaultReplyConfig(), signal)

	require.Len(t, drafts, 3)
	assert.True(t, drafts[0].Eligible())
	assert.Equal(t, "cancelled", drafts[1].ErrorReason)
	assert.Equal(t, "cancelled", drafts[2].ErrorReason)
	assert.Equal(t, "c", drafts[2].SourceReviewText)
}
