package llm

import (
	"go.uber.org/zap"
)

// LLMCallEvent records metadata about a single completion call.
type LLMCallEvent struct {
	Model      string
	LatencyMs  int64
	StatusCode int // 0 when no response was received
	Success    bool
	ErrorCode  string
	Err        error // raw cause, for logs only
}

// Observer receives events about completion calls for logging and metrics.
type Observer interface {
	OnCallComplete(event LLMCallEvent)
}

// LogObserver writes completion call events through zap.
type LogObserver struct {
	logger *zap.Logger
}

// NewLogObserver creates an Observer that logs events to logger.
func NewLogObserver(logger *zap.Logger) *LogObserver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogObserver{logger: logger.Named("llm")}
}

func (o *LogObserver) OnCallComplete(event LLMCallEvent) {
	fields := []zap.Field{
		zap.String("model", event.Model),
		zap.Int64("latency_ms", event.LatencyMs),
		zap.Int("status", event.StatusCode),
	}
	if event.Success {
		o.logger.Info("llm_call", fields...)
		return
	}
	fields = append(fields, zap.String("error_code", event.ErrorCode))
	if event.Err != nil {
		fields = append(fields, zap.Error(event.Err))
	}
	o.logger.Warn("llm_call", fields...)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(LLMCallEvent) {}

// MultiObserver fans an event out to several observers.
type MultiObserver []Observer

func (m MultiObserver) OnCallComplete(event LLMCallEvent) {
	for _, o := range m {
		if o != nil {
			o.OnCallComplete(event)
		}
	}
}
