package application

import (
	"context"
	"sync/atomic"
)

// CancellationSignal is a cooperative stop flag. Setting it never interrupts
// in-flight calls; the pipeline polls it between stores and between reviews.
type CancellationSignal struct {
	set atomic.Bool
}

func NewCancellationSignal() *CancellationSignal {
	return &CancellationSignal{}
}

func (s *CancellationSignal) Cancel() {
	if s == nil {
		return
	}
	s.set.Store(true)
}

// IsSet is safe on a nil signal, which is never set.
func (s *CancellationSignal) IsSet() bool {
	return s != nil && s.set.Load()
}

// CancelOn sets the signal once ctx is done. The returned stop function
// detaches it and reports whether the signal had not fired yet.
func (s *CancellationSignal) CancelOn(ctx context.Context) (stop func() bool) {
	return context.AfterFunc(ctx, s.Cancel)
}
