package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/smartplace-reply-cli/internal/domain"
	"github.com/bnema/smartplace-reply-cli/internal/ports"
)

const submissionDelay = 1500 * time.Millisecond

type ReplySubmitter struct {
	clock    ports.Clock
	observer ports.RunObserver
}

func NewReplySubmitter(clock ports.Clock, observer ports.RunObserver) *ReplySubmitter {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if observer == nil {
		observer = ports.NopObserver{}
	}

	return &ReplySubmitter{clock: clock, observer: observer}
}

// SubmitBatch returns one outcome per draft, in order. Without a CSRF token
// every draft fails up front and nothing is sent.
func (s *ReplySubmitter) SubmitBatch(ctx context.Context, api ports.PlaceAPI, store domain.StoreIdentifierMap, drafts []domain.ReplyDraft, cancel *CancellationSignal) []domain.SubmissionOutcome {
	total := len(drafts)
	s.observer.OnLog(domain.LogLevelInfo, fmt.Sprintf("%d개 답변에 대한 API 제출을 시작합니다.", total))

	outcomes := make([]domain.SubmissionOutcome, 0, total)
	if !api.HasCSRFToken() {
		s.observer.OnLog(domain.LogLevelError, "CSRF 토큰을 쿠키에서 찾을 수 없습니다. 로그인 과정이 올바른지 확인하세요.")
		for i, draft := range drafts {
			outcomes = append(outcomes, failedOutcome(draftID(draft, i), domain.ErrMissingCSRFToken))
		}
		return outcomes
	}

	stopped := false
	for i, draft := range drafts {
		if !stopped && (cancel.IsSet() || ctx.Err() != nil) {
			stopped = true
			s.observer.OnLog(domain.LogLevelInfo, "답변 제출이 중단되었습니다.")
		}
		if stopped {
			outcomes = append(outcomes, failedOutcome(draftID(draft, i), domain.ErrSubmissionCancelled))
			continue
		}

		text := draft.GeneratedText
		if strings.TrimSpace(draft.ReviewID) == "" || strings.TrimSpace(text) == "" {
			s.observer.OnLog(domain.LogLevelWarn, fmt.Sprintf("리뷰 '%s': 리뷰 ID 또는 답변 텍스트가 비어있어 건너뜁니다.", orDefault(draft.ReviewID, "N/A")))
			outcomes = append(outcomes, failedOutcome(draftID(draft, i), domain.ErrEmptyPayload))
			continue
		}

		s.observer.OnLog(domain.LogLevelInfo, fmt.Sprintf("[%d/%d] 리뷰 '%s' 답변 제출 중...", i+1, total, draft.ReviewID))
		if err := api.SubmitReply(ctx, store, draft.ReviewID, text); err != nil {
			s.observer.OnLog(domain.LogLevelError, fmt.Sprintf("리뷰 '%s' 답변 제출 실패. %v", draft.ReviewID, err))
			outcomes = append(outcomes, failedOutcome(draft.ReviewID, err))
		} else {
			s.observer.OnLog(domain.LogLevelInfo, fmt.Sprintf("리뷰 '%s' 답변이 성공적으로 제출되었습니다.", draft.ReviewID))
			outcomes = append(outcomes, domain.SubmissionOutcome{
				ReviewID:      draft.ReviewID,
				Succeeded:     true,
				SubmittedText: text,
			})
		}

		if i < total-1 {
			_ = s.clock.Sleep(ctx, submissionDelay)
		}
	}

	succeeded := 0
	for _, outcome := range outcomes {
		if outcome.Succeeded {
			succeeded++
		}
	}
	s.observer.OnLog(domain.LogLevelInfo, fmt.Sprintf("API 제출 완료: %d/%d개 성공", succeeded, total))

	return outcomes
}

func failedOutcome(reviewID string, err error) domain.SubmissionOutcome {
	reason := err.Error()
	var subErr *domain.SubmissionError
	if errors.As(err, &subErr) && subErr.Message != "" {
		reason = subErr.Message
	}

	return domain.SubmissionOutcome{ReviewID: reviewID, ErrorReason: reason}
}

func draftID(draft domain.ReplyDraft, index int) string {
	if strings.TrimSpace(draft.ReviewID) != "" {
		return draft.ReviewID
	}
	return fmt.Sprintf("unknown_%d", index+1)
}

func orDefault(value string, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
