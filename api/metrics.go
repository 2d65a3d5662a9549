package api

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	mutationEventName   = "board.mutation"
	mutationEventDomain = "kanban"
)

// mutationMetrics records per-request timings for a mutation route and
// emits them both as an otel span and as a structured observability log
// event.
type mutationMetrics struct {
	logger *log.Logger
	span   trace.Span
	start  time.Time
	route  string

	authDuration  time.Duration
	applyDuration time.Duration
	errorStage    string
}

func newMutationMetrics(ctx context.Context, logger *log.Logger, route string) (*mutationMetrics, context.Context) {
	m := &mutationMetrics{
		logger: logger,
		start:  time.Now(),
		route:  route,
	}
	spanCtx, span := otel.Tracer("kanban-api/api").Start(ctx, route)
	m.span = span
	return m, spanCtx
}

func (m *mutationMetrics) ObserveAuth(duration time.Duration) {
	if duration > 0 {
		m.authDuration = duration
	}
}

func (m *mutationMetrics) ObserveApply(duration time.Duration) {
	if duration > 0 {
		m.applyDuration = duration
	}
}

func (m *mutationMetrics) SetErrorStage(stage string) {
	if stage != "" {
		m.errorStage = stage
	}
}

// Log finishes the span and writes the observability event. Safe to call
// exactly once, from a defer.
func (m *mutationMetrics) Log(status int, err error) {
	if m == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("http.route", m.route),
		attribute.Int("http.status_code", status),
		attribute.Float64("kanban.mutation.total_ms", durationToMillis(time.Since(m.start))),
	}
	if m.authDuration > 0 {
		attrs = append(attrs, attribute.Float64("kanban.mutation.auth_ms", durationToMillis(m.authDuration)))
	}
	if m.applyDuration > 0 {
		attrs = append(attrs, attribute.Float64("kanban.mutation.apply_ms", durationToMillis(m.applyDuration)))
	}
	if m.errorStage != "" {
		attrs = append(attrs, attribute.String("kanban.mutation.error_stage", m.errorStage))
	}

	if m.span != nil {
		m.span.SetAttributes(attrs...)
		if err != nil {
			m.span.RecordError(err)
			m.span.SetStatus(codes.Error, err.Error())
		}
		m.span.End()
	}

	if m.logger == nil {
		return
	}
	attrMap := make(map[string]any, len(attrs))
	for _, kv := range attrs {
		attrMap[string(kv.Key)] = kv.Value.AsInterface()
	}
	fields := log.Fields{
		"event.name":   mutationEventName,
		"event.domain": mutationEventDomain,
		"attributes":   attrMap,
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	m.logger.WithFields(fields).Info("observability.event")
}

func durationToMillis(d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(d) / float64(time.Millisecond)
}
