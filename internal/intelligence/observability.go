package intelligence

import (
	"time"

	"go.uber.org/zap"
)

// AskEvent records the outcome of one pipeline invocation.
type AskEvent struct {
	Outcome  Outcome
	Reason   FailureReason
	Duration time.Duration
	Err      error // raw cause of a failure, for logs only
}

// AskObserver receives pipeline events for logging and metrics.
type AskObserver interface {
	OnAsk(event AskEvent)
}

// NoopAskObserver discards all events.
type NoopAskObserver struct{}

func (NoopAskObserver) OnAsk(AskEvent) {}

// LogAskObserver writes pipeline events through zap. Question text is not
// logged.
type LogAskObserver struct {
	logger *zap.Logger
}

func NewLogAskObserver(logger *zap.Logger) *LogAskObserver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogAskObserver{logger: logger.Named("ask")}
}

func (o *LogAskObserver) OnAsk(event AskEvent) {
	fields := []zap.Field{
		zap.String("outcome", string(event.Outcome)),
		zap.Int64("duration_ms", event.Duration.Milliseconds()),
	}
	if event.Outcome != OutcomeFailed {
		o.logger.Debug("ask", fields...)
		return
	}
	fields = append(fields, zap.String("reason", string(event.Reason)))
	if event.Err != nil {
		fields = append(fields, zap.Error(event.Err))
	}
	o.logger.Warn("ask", fields...)
}

// MultiAskObserver fans an event out to several observers.
type MultiAskObserver []AskObserver

func (m MultiAskObserver) OnAsk(event AskEvent) {
	for _, o := range m {
		if o != nil {
			o.OnAsk(event)
		}
	}
}
