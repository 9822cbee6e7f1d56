package observer

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/bnema/smartplace-reply-cli/internal/domain"
	"github.com/bnema/smartplace-reply-cli/internal/ports"
)

// Logger forwards run events to a zap logger.
type Logger struct {
	logger *zap.Logger
}

var _ ports.RunObserver = (*Logger)(nil)

func NewLogger(logger *zap.Logger) *Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Logger{logger: logger}
}

// With returns an observer whose entries carry the run id.
func (l *Logger) With(runID string) *Logger {
	return &Logger{logger: l.logger.With(zap.String("run_id", runID))}
}

func (l *Logger) OnLog(level domain.LogLevel, message string) {
	l.logger.Log(zapLevel(level), message)
}

func (l *Logger) OnProgress(current int, total int) {
	l.logger.Debug("store resolution progress", zap.Int("current", current), zap.Int("total", total))
}

func (l *Logger) OnCounts(processed int, success int, failed int) {
	l.logger.Info("store counts",
		zap.Int("processed", processed),
		zap.Int("success", success),
		zap.Int("failed", failed),
	)
}

func (l *Logger) OnStoreCompleted(result domain.StoreRunResult) {
	submitted, failed := result.SubmissionCounts()
	fields := []zap.Field{
		zap.String("booking_id", result.Store.BookingBusinessID),
		zap.String("store", result.Store.PlaceID),
		zap.Int("reviews", len(result.Reviews)),
		zap.Int("drafts", len(domain.EligibleDrafts(result.Drafts))),
		zap.Int("submitted", submitted),
		zap.Int("submit_failed", failed),
	}
	if result.FatalError != nil {
		l.logger.Warn("store failed", append(fields, zap.Error(result.FatalError))...)
		return
	}

	l.logger.Info("store completed", fields...)
}

func (l *Logger) OnRunCompleted(result domain.RunResult) {
	counts := result.Counts()
	l.logger.Info("run completed",
		zap.String("run_id", result.ID),
		zap.Stringer("state", result.State),
		zap.Duration("duration", result.FinishedAt.Sub(result.StartedAt)),
		zap.Int("stores", counts.Processed),
		zap.Int("reviews", result.ReviewCount()),
	)
}

func (l *Logger) OnRunFailed(err error) {
	l.logger.Error("run failed", zap.Error(err))
}

func zapLevel(level domain.LogLevel) zapcore.Level {
	switch level {
	case domain.LogLevelDebug:
		return zapcore.DebugLevel
	case domain.LogLevelWarn:
		return zapcore.WarnLevel
	case domain.LogLevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
