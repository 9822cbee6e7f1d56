package application

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/smartplace-reply-cli/internal/domain"
	"github.com/bnema/smartplace-reply-cli/internal/ports/mocks"
)

type orchestratorFixture struct {
	provider *mocks.MockPlaceAPIProvider
	api      *mocks.MockPlaceAPI
	gen      *mocks.MockTextGenerator
	runs     *mocks.MockRunRepository
	clock    *stepClock
	observer *recordingObserver
}

func newOrchestratorFixture(t *testing.T) *orchestratorFixture {
	t.Helper()

	return &orchestratorFixture{
		provider: mocks.NewMockPlaceAPIProvider(t),
		api:      mocks.NewMockPlaceAPI(t),
		gen:      mocks.NewMockTextGenerator(t),
		runs:     mocks.NewMockRunRepository(t),
		clock:    newStepClock(),
		observer: &recordingObserver{},
	}
}

func (f *orchestratorFixture) orchestrator(withGenerator bool) *Orchestrator {
	opts := []OrchestratorOption{
		WithRunRepository(f.runs),
		WithClock(f.clock),
		WithObserver(f.observer),
		WithRunIDGenerator(func() string { return "run-1" }),
	}
	if withGenerator {
		opts = append(opts, WithTextGenerator(f.gen))
	}

	return NewOrchestrator(f.provider, opts...)
}

func savedWithState(state domain.RunState) interface{} {
	return mock.MatchedBy(func(summary domain.RunSummary) bool {
		return summary.ID == "run-1" && summary.State == state
	})
}

func TestOrchestratorRunFullPipeline(t *testing.T) {
	t.Parallel()

	f := newOrchestratorFixture(t)
	store := testStore("1051707")
	review := domain.ReviewRecord{ID: "r1", BodyText: "good", AuthorDisplayName: "Kim"}
	notFound := &domain.ResolutionError{Kind: domain.ResolutionNotFound, BookingBusinessID: "999"}

	f.provider.EXPECT().OpenPlaceAPI(mockAnyContext()).Return(f.api, nil).Once()
	f.api.EXPECT().ResolveStore(mockAnyContext(), "1051707", "owner").Return(store, nil).Once()
	f.api.EXPECT().ResolveStore(mockAnyContext(), "999", "owner").Return(domain.StoreIdentifierMap{}, notFound).Once()
	f.api.EXPECT().FetchReviews(mockAnyContext(), store).Return([]domain.ReviewRecord{review}, nil).Once()
	f.api.EXPECT().ReviewURL(store).Return(reviewURLFor(store))
	f.gen.EXPECT().Complete(mockAnyContext(), mock.Anything).Return("방문 감사합니다.", nil).Once()
	f.api.EXPECT().HasCSRFToken().Return(true).Once()
	f.api.EXPECT().SubmitReply(mockAnyContext(), store, "r1", "방문 감사합니다.").Return(nil).Once()
	f.api.EXPECT().Close().Return().Once()
	f.runs.EXPECT().Save(mockAnyContext(), savedWithState(domain.RunStateCompleted)).Return(nil).Once()

	result, err := f.orchestrator(true).Run(context.Background(), RunOptions{
		BusinessIDs: []string{"1051707", " 999 ", "1051707"},
		UserID:      "owner",
		Generate:    true,
		Submit:      true,
		Reply:       domain.DefaultReplyConfig(),
	}, NewCancellationSignal())
	require.NoError(t, err)

	assert.Equal(t, "run-1", result.ID)
	assert.Equal(t, domain.RunStateCompleted, result.State)
	require.Len(t, result.Stores, 1)
	assert.Equal(t, []domain.ReviewRecord{review}, result.Stores[0].Reviews)
	require.Len(t, result.Stores[0].Drafts, 1)
	assert.Equal(t, []domain.SubmissionOutcome{{ReviewID: "r1", Succeeded: true, SubmittedText: "방문 감사합니다."}}, result.Stores[0].Outcomes)

	assert.Equal(t, [][2]int{{1, 2}, {2, 2}}, f.observer.progress)
	assert.Equal(t, [3]int{1, 1, 0}, f.observer.counts[len(f.observer.counts)-1])
	assert.Len(t, f.observer.stores, 1)
	assert.Len(t, f.observer.completed, 1)
	assert.Empty(t, f.observer.failed)
}

func TestOrchestratorRunWithoutSessionFails(t *testing.T) {
	t.Parallel()

	f := newOrchestratorFixture(t)
	noSession := &domain.AuthError{Kind: domain.AuthNoSession, Err: domain.ErrSessionNotFound}

	f.provider.EXPECT().OpenPlaceAPI(mockAnyContext()).Return(nil, noSession).Once()
	f.runs.EXPECT().Save(mockAnyContext(), savedWithState(domain.RunStateFailed)).Return(nil).Once()

	result, err := f.orchestrator(true).Run(context.Background(), RunOptions{BusinessIDs: []string{"1"}}, nil)
	require.ErrorIs(t, err, domain.ErrNoSession)
	assert.Equal(t, domain.RunStateFailed, result.State)
	assert.ErrorIs(t, result.Err, domain.ErrNoSession)
	require.Len(t, f.observer.failed, 1)
	assert.Empty(t, f.observer.completed)
}

func TestOrchestratorRunWithNoResolvableStoresFails(t *testing.T) {
	t.Parallel()

	f := newOrchestratorFixture(t)
	f.provider.EXPECT().OpenPlaceAPI(mockAnyContext()).Return(f.api, nil).Once()
	f.api.EXPECT().ResolveStore(mockAnyContext(), "1", "").Return(domain.StoreIdentifierMap{}, errors.New("boom")).Once()
	f.api.EXPECT().Close().Return().Once()
	f.runs.EXPECT().Save(mockAnyContext(), savedWithState(domain.RunStateFailed)).Return(nil).Once()

	result, err := f.orchestrator(false).Run(context.Background(), RunOptions{BusinessIDs: []string{"1"}}, nil)
	require.ErrorIs(t, err, domain.ErrNoValidStores)
	assert.Equal(t, domain.RunStateFailed, result.State)
	assert.Empty(t, result.Stores)
	assert.True(t, f.observer.hasLog("리뷰를 수집할 유효한 사업장이 없습니다."))
}

func TestOrchestratorRunExpiredSessionAbortsRun(t *testing.T) {
	t.Parallel()

	f := newOrchestratorFixture(t)
	first, second := testStore("1"), testStore("2")

	f.provider.EXPECT().OpenPlaceAPI(mockAnyContext()).Return(f.api, nil).Once()
	f.api.EXPECT().ResolveStore(mockAnyContext(), "1", "").Return(first, nil).Once()
	f.api.EXPECT().ResolveStore(mockAnyContext(), "2", "").Return(second, nil).Once()
	f.api.EXPECT().FetchReviews(mockAnyContext(), first).Return(nil, fmt.Errorf("get reviews: %w", domain.ErrAuthExpired)).Once()
	f.api.EXPECT().ReviewURL(first).Return(reviewURLFor(first))
	f.api.EXPECT().Close().Return().Once()
	f.runs.EXPECT().Save(mockAnyContext(), savedWithState(domain.RunStateFailed)).Return(nil).Once()

	result, err := f.orchestrator(true).Run(context.Background(), RunOptions{BusinessIDs: []string{"1", "2"}, Generate: true}, nil)
	require.ErrorIs(t, err, domain.ErrAuthExpired)
	assert.Equal(t, domain.RunStateFailed, result.State)
	require.Len(t, result.Stores, 1)
	assert.False(t, result.Stores[0].Succeeded())
	f.gen.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestOrchestratorRunSkipsGenerationWithoutGenerator(t *testing.T) {
	t.Parallel()

	f := newOrchestratorFixture(t)
	store := testStore("1")

	f.provider.EXPECT().OpenPlaceAPI(mockAnyContext()).Return(f.api, nil).Once()
	f.api.EXPECT().ResolveStore(mockAnyContext(), "1", "").Return(store, nil).Once()
	f.api.EXPECT().FetchReviews(mockAnyContext(), store).Return([]domain.ReviewRecord{{ID: "r1", BodyText: "good"}}, nil).Once()
	f.api.EXPECT().ReviewURL(store).Return(reviewURLFor(store))
	f.api.EXPECT().Close().Return().Once()
	f.runs.EXPECT().Save(mockAnyContext(), savedWithState(domain.RunStateCompleted)).Return(nil).Once()

	result, err := f.orchestrator(false).Run(context.Background(), RunOptions{
		BusinessIDs: []string{"1"},
		Generate:    true,
		Submit:      true,
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, domain.RunStateCompleted, result.State)
	assert.Empty(t, result.Stores[0].Drafts)
	assert.Empty(t, result.Stores[0].Outcomes)
	assert.True(t, f.observer.hasLog("답변 생성을 건너뜁니다"))
	f.api.AssertNotCalled(t, "HasCSRFToken")
}

func TestOrchestratorRunSaveFailureDoesNotFailRun(t *testing.T) {
	t.Parallel()

	f := newOrchestratorFixture(t)
	store := testStore("1")

	f.provider.EXPECT().OpenPlaceAPI(mockAnyContext()).Return(f.api, nil).Once()
	f.api.EXPECT().ResolveStore(mockAnyContext(), "1", "").Return(store, nil).Once()
	f.api.EXPECT().FetchReviews(mockAnyContext(), store).Return(nil, nil).Once()
	f.api.EXPECT().ReviewURL(store).Return(reviewURLFor(store))
	f.api.EXPECT().Close().Return().Once()
	f.runs.EXPECT().Save(mockAnyContext(), mock.Anything).Return(errors.New("disk full")).Once()

	result, err := f.orchestrator(false).Run(context.Background(), RunOptions{BusinessIDs: []string{"1"}}, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.RunStateCompleted, result.State)
	assert.True(t, f.observer.hasLog("실행 기록 저장 실패: disk full"))
}

func TestOrchestratorRunCancelledBeforeFetch(t *testing.T) {
	t.Parallel()

	f := newOrchestratorFixture(t)
	store := testStore("1")
	signal := NewCancellationSignal()

	f.provider.EXPECT().OpenPlaceAPI(mockAnyContext()).Return(f.api, nil).Once()
	f.api.EXPECT().ResolveStore(mockAnyContext(), "1", "").RunAndReturn(func(context.Context, string, string) (domain.StoreIdentifierMap, error) {
		signal.Cancel()
		return store, nil
	}).Once()
	f.api.EXPECT().Close().Return().Once()
	f.runs.EXPECT().Save(mockAnyContext(), savedWithState(domain.RunStateCompleted)).Return(nil).Once()

	result, err := f.orchestrator(true).Run(context.Background(), RunOptions{BusinessIDs: []string{"1"}, Generate: true}, signal)
	require.NoError(t, err)
	assert.Empty(t, result.Stores)
	assert.Equal(t, domain.RunStateCompleted, result.State)
}
