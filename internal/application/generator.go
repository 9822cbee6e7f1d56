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

const (
	maxGenerationAttempts = 3
	generationBaseBackoff = time.Second
	generationBatchDelay  = 100 * time.Millisecond

	reasonEmptyReview      = "리뷰 텍스트 없음"
	reasonEmptyGeneration  = "답변 생성 실패"
	reasonCancelled        = "cancelled"
	generatedPreviewLength = 50
)

type ReplyGenerator struct {
	generator ports.TextGenerator
	clock     ports.Clock
	observer  ports.RunObserver
}

func NewReplyGenerator(generator ports.TextGenerator, clock ports.Clock, observer ports.RunObserver) *ReplyGenerator {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if observer == nil {
		observer = ports.NopObserver{}
	}

	return &ReplyGenerator{
		generator: generator,
		clock:     clock,
		observer:  observer,
	}
}

// GenerateOne returns the cleaned reply for one review. Blank review text
// short-circuits to an empty reply without calling the generator.
func (g *ReplyGenerator) GenerateOne(ctx context.Context, reviewText string, authorName string, cfg domain.ReplyConfig) (string, error) {
	if strings.TrimSpace(reviewText) == "" {
		return "", nil
	}

	cfg = cfg.WithDefaults()
	prompt := BuildReplyPrompt(reviewText, authorName, cfg)
	g.observer.OnLog(domain.LogLevelDebug, fmt.Sprintf("Final prompt for review by '%s':\n%s", authorName, prompt))

	req := domain.CompletionRequest{
		Prompt:      prompt,
		Model:       cfg.Model,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
	}

	var lastErr error
	for attempt := 0; attempt < maxGenerationAttempts; attempt++ {
		raw, err := g.generator.Complete(ctx, req)
		if err == nil {
			return CleanReplyText(raw), nil
		}
		lastErr = err
		if !errors.Is(err, domain.ErrTransientUpstream) {
			return "", err
		}
		if attempt == maxGenerationAttempts-1 {
			break
		}

		backoff := generationBaseBackoff * time.Duration(1<<attempt)
		g.observer.OnLog(domain.LogLevelWarn, fmt.Sprintf("답변 생성 재시도 %d/%d (%s 후): %v", attempt+2, maxGenerationAttempts, backoff, err))
		if err := g.clock.Sleep(ctx, backoff); err != nil {
			return "", fmt.Errorf("wait before retry: %w", err)
		}
	}

	return "", fmt.Errorf("generate reply after %d attempts: %w", maxGenerationAttempts, lastErr)
}

// GenerateBatch produces exactly one draft per review, in input order. A
// failure is recorded on its own draft and never stops the batch.
func (g *ReplyGenerator) GenerateBatch(ctx context.Context, reviews []domain.ReviewRecord, cfg domain.ReplyConfig, cancel *CancellationSignal) []domain.ReplyDraft {
	total := len(reviews)
	g.observer.OnLog(domain.LogLevelInfo, fmt.Sprintf("%d개 리뷰에 대한 답변 생성을 시작합니다.", total))

	drafts := make([]domain.ReplyDraft, 0, total)
	stopped := false
	for i, review := range reviews {
		if !stopped && (cancel.IsSet() || ctx.Err() != nil) {
			stopped = true
			g.observer.OnLog(domain.LogLevelInfo, "답변 생성이 중단되었습니다.")
		}
		if stopped {
			drafts = append(drafts, domain.NewFailedDraft(review.ID, review.BodyText, reasonCancelled))
			continue
		}

		g.observer.OnLog(domain.LogLevelInfo, fmt.Sprintf("[%d/%d] 리뷰 '%s' 답변 생성 중...", i+1, total, review.ID))

		if strings.TrimSpace(review.BodyText) == "" {
			g.observer.OnLog(domain.LogLevelWarn, fmt.Sprintf("리뷰 '%s': 텍스트 내용이 없음", review.ID))
			drafts = append(drafts, domain.NewFailedDraft(review.ID, "", reasonEmptyReview))
			continue
		}

		reply, err := g.GenerateOne(ctx, review.BodyText, review.AuthorDisplayName, cfg)
		if err != nil {
			g.observer.OnLog(domain.LogLevelError, fmt.Sprintf("리뷰 '%s' 답변 생성 실패: %v", review.ID, err))
			drafts = append(drafts, domain.NewFailedDraft(review.ID, review.BodyText, err.Error()))
			continue
		}
		if reply == "" {
			g.observer.OnLog(domain.LogLevelWarn, fmt.Sprintf("리뷰 '%s': 답변 생성 실패", review.ID))
			drafts = append(drafts, domain.NewFailedDraft(review.ID, review.BodyText, reasonEmptyGeneration))
			continue
		}

		drafts = append(drafts, domain.ReplyDraft{
			ReviewID:         review.ID,
			SourceReviewText: review.BodyText,
			GeneratedText:    reply,
		})
		g.observer.OnLog(domain.LogLevelInfo, fmt.Sprintf("리뷰 '%s' 답변 생성 완료: %s...", review.ID, preview(reply, generatedPreviewLength)))

		if i < total-1 {
			// A cancelled context is picked up at the top of the next iteration.
			_ = g.clock.Sleep(ctx, generationBatchDelay)
		}
	}

	succeeded := len(domain.EligibleDrafts(drafts))
	g.observer.OnLog(domain.LogLevelInfo, fmt.Sprintf("답변 생성 완료: %d/%d개 성공", succeeded, total))

	return drafts
}

func preview(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
