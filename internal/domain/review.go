package domain

import (
	"strings"
	"time"
)

type ReviewRecord struct {
	ID                string
	AuthorDisplayName string
	// Rating is nil when the review carries no star rating.
	Rating    *int
	BodyText  string
	CreatedAt time.Time
	HasReply  bool
}

type ReplyDraft struct {
	ReviewID         string
	SourceReviewText string
	GeneratedText    string
	ErrorReason      string
}

func NewFailedDraft(reviewID, sourceText, reason string) ReplyDraft {
	return ReplyDraft{
		ReviewID:         reviewID,
		SourceReviewText: sourceText,
		ErrorReason:      reason,
	}
}

// Eligible reports whether the draft may be submitted.
func (d ReplyDraft) Eligible() bool {
	return d.ErrorReason == "" && strings.TrimSpace(d.GeneratedText) != ""
}

type SubmissionOutcome struct {
	ReviewID      string
	Succeeded     bool
	ErrorReason   string
	SubmittedText string
}

func EligibleDrafts(drafts []ReplyDraft) []ReplyDraft {
	eligible := make([]ReplyDraft, 0, len(drafts))
	for _, draft := range drafts {
		if draft.Eligible() {
			eligible = append(eligible, draft)
		}
	}

	return eligible
}
