package report

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/smartplace-reply-cli/internal/domain"
)

const (
	statusSucceeded = "성공"
	statusFailed    = "실패"
	barWidth        = 20
	shortIDLength   = 8
)

type RenderOptions struct {
	Now time.Time
}

func renderRunView(summary domain.RunSummary, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render(fmt.Sprintf("Run %s", summary.ID)),
		s.header.Render(fmt.Sprintf("state: %s  started: %s  duration: %s", summary.State, formatStartedAt(summary.StartedAt, opts.Now), formatDuration(summary))),
	}
	if summary.Error != "" {
		lines = append(lines, s.failure.Render("error: "+summary.Error))
	}

	if len(summary.Stores) == 0 {
		lines = append(lines, s.empty.Render("No stores were processed."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	succeeded, failed := storeCounts(summary.Stores)
	lines = append(lines, s.header.Render(fmt.Sprintf("stores: %d  %s: %d  %s: %d", len(summary.Stores), statusSucceeded, succeeded, statusFailed, failed)))
	for _, store := range summary.Stores {
		lines = append(lines, s.section.Render(renderStore(store, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderStore(store domain.StoreSummary, s styles) string {
	parts := []string{
		lipgloss.JoinHorizontal(lipgloss.Top, s.store.Render(storeTitle(store)), " ", statusLabel(store.Status, s)),
	}

	if store.Status == domain.StoreStatusFailed {
		parts = append(parts, s.detail.Render("error: "+store.Error))
	} else {
		parts = append(parts,
			s.detail.Render(fmt.Sprintf("reviews: %d  drafts: %d (failed %d)", store.ReviewCount, store.DraftCount, store.DraftFailedCount)),
			submissionLine(store, s),
		)
	}
	if store.ReviewURL != "" {
		parts = append(parts, s.url.Render(store.ReviewURL))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func submissionLine(store domain.StoreSummary, s styles) string {
	attempted := store.SubmittedCount + store.SubmitFailedCount
	if attempted == 0 {
		return s.detail.Render("submitted: -")
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.detail.Render("submitted:"),
		" ",
		renderProgressBar(store.SubmittedCount, attempted, barWidth, s),
		" ",
		s.detail.Render(fmt.Sprintf("%d/%d", store.SubmittedCount, attempted)),
	)
}

func renderListView(summaries []domain.RunSummary, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("SmartPlace Reply Runs"),
		s.header.Render(fmt.Sprintf("runs: %d", len(summaries))),
	}

	if len(summaries) == 0 {
		lines = append(lines, s.empty.Render("No runs recorded yet."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, summary := range summaries {
		succeeded, failed := storeCounts(summary.Stores)
		submitted := 0
		for _, store := range summary.Stores {
			submitted += store.SubmittedCount
		}

		state := s.success.Render(summary.State.String())
		if summary.State == domain.RunStateFailed {
			state = s.failure.Render(summary.State.String())
		}

		lines = append(lines, lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.store.Render(shortID(summary.ID)),
			" ",
			state,
			" ",
			s.detail.Render(fmt.Sprintf("%s  stores %d (%s %d / %s %d)  submitted %d",
				formatStartedAt(summary.StartedAt, opts.Now), len(summary.Stores), statusSucceeded, succeeded, statusFailed, failed, submitted)),
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func storeTitle(store domain.StoreSummary) string {
	if store.PlaceID == "" {
		return store.BookingBusinessID
	}

	return fmt.Sprintf("%s (place %s)", store.BookingBusinessID, store.PlaceID)
}

func statusLabel(status domain.StoreStatus, s styles) string {
	if status == domain.StoreStatusFailed {
		return s.failure.Render(statusFailed)
	}

	return s.success.Render(statusSucceeded)
}

func storeCounts(stores []domain.StoreSummary) (succeeded int, failed int) {
	for _, store := range stores {
		if store.Status == domain.StoreStatusFailed {
			failed++
			continue
		}
		succeeded++
	}

	return succeeded, failed
}

func renderProgressBar(done int, total int, width int, s styles) string {
	if width <= 0 || total <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * float64(done) / float64(total)))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func shortID(id string) string {
	if len(id) <= shortIDLength {
		return id
	}

	return id[:shortIDLength]
}

func formatStartedAt(startedAt, now time.Time) string {
	if startedAt.IsZero() {
		return "unknown"
	}
	if now.IsZero() {
		return startedAt.Format(time.RFC3339)
	}

	yearA, monthA, dayA := now.Date()
	yearB, monthB, dayB := startedAt.Date()
	if yearA == yearB && monthA == monthB && dayA == dayB {
		return startedAt.Format("15:04")
	}

	return startedAt.Format("15:04 on 02 Jan")
}

func formatDuration(summary domain.RunSummary) string {
	if summary.StartedAt.IsZero() || summary.FinishedAt.IsZero() {
		return "-"
	}

	return summary.FinishedAt.Sub(summary.StartedAt).Round(time.Second).String()
}
