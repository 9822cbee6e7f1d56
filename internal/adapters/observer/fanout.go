package observer

import (
	"github.com/bnema/smartplace-reply-cli/internal/domain"
	"github.com/bnema/smartplace-reply-cli/internal/ports"
)

// Fanout delivers every event to each observer in order.
type Fanout []ports.RunObserver

var _ ports.RunObserver = Fanout(nil)

func NewFanout(observers ...ports.RunObserver) Fanout {
	kept := make(Fanout, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			kept = append(kept, o)
		}
	}

	return kept
}

func (f Fanout) OnLog(level domain.LogLevel, message string) {
	for _, o := range f {
		o.OnLog(level, message)
	}
}

func (f Fanout) OnProgress(current int, total int) {
	for _, o := range f {
		o.OnProgress(current, total)
	}
}

func (f Fanout) OnCounts(processed int, success int, failed int) {
	for _, o := range f {
		o.OnCounts(processed, success, failed)
	}
}

func (f Fanout) OnStoreCompleted(result domain.StoreRunResult) {
	for _, o := range f {
		o.OnStoreCompleted(result)
	}
}

func (f Fanout) OnRunCompleted(result domain.RunResult) {
	for _, o := range f {
		o.OnRunCompleted(result)
	}
}

func (f Fanout) OnRunFailed(err error) {
	for _, o := range f {
		o.OnRunFailed(err)
	}
}
