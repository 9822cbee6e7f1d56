package ports

import "github.com/bnema/smartplace-reply-cli/internal/domain"

type RunObserver interface {
	OnLog(level domain.LogLevel, message string)
	OnProgress(current int, total int)
	OnCounts(processed int, success int, failed int)
	OnStoreCompleted(result domain.StoreRunResult)
	OnRunCompleted(result domain.RunResult)
	OnRunFailed(err error)
}

type NopObserver struct{}

var _ RunObserver = NopObserver{}

func (NopObserver) OnLog(domain.LogLevel, string)          {}
func (NopObserver) OnProgress(int, int)                    {}
func (NopObserver) OnCounts(int, int, int)                 {}
func (NopObserver) OnStoreCompleted(domain.StoreRunResult) {}
func (NopObserver) OnRunCompleted(domain.RunResult)        {}
func (NopObserver) OnRunFailed(error)                      {}
