package domain

import (
	"fmt"
	"time"
)

type RunState int

const (
	RunStateIdle RunState = iota
	RunStateResolvingStores
	RunStateFetchingReviews
	RunStateGeneratingReplies
	RunStateSubmittingReplies
	RunStateCompleted
	RunStateFailed
)

var runStateNames = map[RunState]string{
	RunStateIdle:              "idle",
	RunStateResolvingStores:   "resolving_stores",
	RunStateFetchingReviews:   "fetching_reviews",
	RunStateGeneratingReplies: "generating_replies",
	RunStateSubmittingReplies: "submitting_replies",
	RunStateCompleted:         "completed",
	RunStateFailed:            "failed",
}

var runStateTransitions = map[RunState][]RunState{
	RunStateIdle:              {RunStateResolvingStores},
	RunStateResolvingStores:   {RunStateFetchingReviews},
	RunStateFetchingReviews:   {RunStateGeneratingReplies, RunStateSubmittingReplies, RunStateCompleted},
	RunStateGeneratingReplies: {RunStateSubmittingReplies, RunStateCompleted},
	RunStateSubmittingReplies: {RunStateCompleted},
}

func (s RunState) String() string {
	if name, ok := runStateNames[s]; ok {
		return name
	}

	return fmt.Sprintf("run_state(%d)", int(s))
}

func ParseRunState(raw string) (RunState, error) {
	for state, name := range runStateNames {
		if name == raw {
			return state, nil
		}
	}

	return RunStateIdle, fmt.Errorf("unknown run state %q", raw)
}

func (s RunState) IsTerminal() bool {
	return s == RunStateCompleted || s == RunStateFailed
}

// CanTransition reports whether next is reachable from s. Failed is
// reachable from every non-terminal state.
func (s RunState) CanTransition(next RunState) bool {
	if s.IsTerminal() {
		return false
	}
	if next == RunStateFailed {
		return true
	}

	for _, allowed := range runStateTransitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

type StoreRunResult struct {
	Store     StoreIdentifierMap
	ReviewURL string
	Reviews   []ReviewRecord
	Drafts    []ReplyDraft
	Outcomes  []SubmissionOutcome
	// FatalError set means Reviews, Drafts and Outcomes are empty.
	FatalError error
}

func NewFailedStoreResult(store StoreIdentifierMap, err error) StoreRunResult {
	return StoreRunResult{Store: store, FatalError: err}
}

func (r StoreRunResult) Succeeded() bool {
	return r.FatalError == nil
}

func (r StoreRunResult) SubmissionCounts() (submitted int, failed int) {
	for _, outcome := range r.Outcomes {
		if outcome.Succeeded {
			submitted++
			continue
		}
		failed++
	}

	return submitted, failed
}

type RunCounts struct {
	Processed int
	Success   int
	Failed    int
}

type RunResult struct {
	ID         string
	State      RunState
	StartedAt  time.Time
	FinishedAt time.Time
	Stores     []StoreRunResult
	Err        error
}

func (r RunResult) Counts() RunCounts {
	counts := RunCounts{Processed: len(r.Stores)}
	for _, store := range r.Stores {
		if store.Succeeded() {
			counts.Success++
			continue
		}
		counts.Failed++
	}

	return counts
}

func (r RunResult) ReviewCount() int {
	total := 0
	for _, store := range r.Stores {
		total += len(store.Reviews)
	}

	return total
}
