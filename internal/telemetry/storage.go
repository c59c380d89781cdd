package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/webqa-tools/bugtrack/internal/storage"
	"github.com/webqa-tools/bugtrack/internal/types"
)

const storageScopeName = "github.com/webqa-tools/bugtrack/storage"

// InstrumentedStore wraps storage.Store with OTel tracing and metrics.
// Every method gets a span and is counted in bt.storage.* metrics.
// Use WrapStore to create one; it returns the original store unchanged when
// telemetry is disabled.
type InstrumentedStore struct {
	inner    storage.Store
	tracer   trace.Tracer
	ops      metric.Int64Counter
	dur      metric.Float64Histogram
	errs     metric.Int64Counter
	bugGauge metric.Int64Gauge
}

// WrapStore returns s decorated with OTel instrumentation.
// When telemetry is disabled, s is returned as-is with zero overhead.
func WrapStore(s storage.Store) storage.Store {
	if !Enabled() {
		return s
	}
	m := Meter(storageScopeName)
	ops, _ := m.Int64Counter("bt.storage.operations",
		metric.WithDescription("Total storage operations executed"),
	)
	dur, _ := m.Float64Histogram("bt.storage.operation.duration",
		metric.WithDescription("Storage operation duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	errs, _ := m.Int64Counter("bt.storage.errors",
		metric.WithDescription("Total storage operation errors"),
	)
	bugGauge, _ := m.Int64Gauge("bt.bug.count",
		metric.WithDescription("Number of bug records matching the last count (snapshot from CountBugs)"),
	)
	return &InstrumentedStore{
		inner:    s,
		tracer:   Tracer(storageScopeName),
		ops:      ops,
		dur:      dur,
		errs:     errs,
		bugGauge: bugGauge,
	}
}

// op starts a span and records a metric for the named storage operation.
func (s *InstrumentedStore) op(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span, time.Time) {
	all := append([]attribute.KeyValue{attribute.String("db.operation", name)}, attrs...)
	ctx, span := s.tracer.Start(ctx, "storage."+name,
		trace.WithAttributes(all...),
		trace.WithSpanKind(trace.SpanKindClient),
	)
	s.ops.Add(ctx, 1, metric.WithAttributes(all...))
	return ctx, span, time.Now()
}

// done ends the span, records duration and optional error.
func (s *InstrumentedStore) done(ctx context.Context, span trace.Span, start time.Time, err error, attrs ...attribute.KeyValue) {
	ms := float64(time.Since(start).Milliseconds())
	s.dur.Record(ctx, ms, metric.WithAttributes(attrs...))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.errs.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
	span.End()
}

// ── Bug records ─────────────────────────────────────────────────────────────

func (s *InstrumentedStore) CreateBug(ctx context.Context, bug *types.BugRecord) (string, error) {
	attrs := []attribute.KeyValue{
		attribute.String("bt.bug.module", bug.Module),
		attribute.String("bt.bug.severity", string(bug.Severity)),
	}
	ctx, span, t := s.op(ctx, "CreateBug", attrs...)
	id, err := s.inner.CreateBug(ctx, bug)
	s.done(ctx, span, t, err, attrs...)
	return id, err
}

func (s *InstrumentedStore) GetBug(ctx context.Context, id string) (*types.BugRecord, error) {
	attrs := []attribute.KeyValue{attribute.String("bt.bug.id", id)}
	ctx, span, t := s.op(ctx, "GetBug", attrs...)
	v, err := s.inner.GetBug(ctx, id)
	s.done(ctx, span, t, err, attrs...)
	return v, err
}

func (s *InstrumentedStore) AppendLog(ctx context.Context, id string, entry types.LogEntry) error {
	attrs := []attribute.KeyValue{
		attribute.String("bt.bug.id", id),
		attribute.String("bt.log.status", entry.Status),
	}
	ctx, span, t := s.op(ctx, "AppendLog", attrs...)
	err := s.inner.AppendLog(ctx, id, entry)
	s.done(ctx, span, t, err, attrs...)
	return err
}

func (s *InstrumentedStore) SetStatus(ctx context.Context, id string, status types.Status, updatedAt time.Time) error {
	attrs := []attribute.KeyValue{
		attribute.String("bt.bug.id", id),
		attribute.String("bt.bug.status", string(status)),
	}
	ctx, span, t := s.op(ctx, "SetStatus", attrs...)
	err := s.inner.SetStatus(ctx, id, status, updatedAt)
	s.done(ctx, span, t, err, attrs...)
	return err
}

func (s *InstrumentedStore) ListBugs(ctx context.Context, filter types.Filter) ([]*types.BugRecord, error) {
	ctx, span, t := s.op(ctx, "ListBugs")
	bugs, err := s.inner.ListBugs(ctx, filter)
	if err == nil {
		span.SetAttributes(attribute.Int("bt.result.count", len(bugs)))
	}
	s.done(ctx, span, t, err)
	return bugs, err
}

func (s *InstrumentedStore) CountBugs(ctx context.Context, filter types.Filter) (int64, error) {
	ctx, span, t := s.op(ctx, "CountBugs")
	n, err := s.inner.CountBugs(ctx, filter)
	s.done(ctx, span, t, err)
	if err == nil {
		// Record the count as a gauge snapshot, broken down by status when
		// the filter names one.
		status := "all"
		if filter.Status != nil {
			status = string(*filter.Status)
		}
		s.bugGauge.Record(ctx, n, metric.WithAttributes(attribute.String("status", status)))
	}
	return n, err
}

// ── Audit trail ─────────────────────────────────────────────────────────────

func (s *InstrumentedStore) AppendAuditEvent(ctx context.Context, event *types.AuditEvent) error {
	attrs := []attribute.KeyValue{
		attribute.String("bt.audit.action", string(event.Action)),
		attribute.String("bt.bug.id", event.BugID),
	}
	ctx, span, t := s.op(ctx, "AppendAuditEvent", attrs...)
	err := s.inner.AppendAuditEvent(ctx, event)
	s.done(ctx, span, t, err, attrs...)
	return err
}

func (s *InstrumentedStore) ListAuditEvents(ctx context.Context, bugID string, limit int) ([]*types.AuditEvent, error) {
	attrs := []attribute.KeyValue{attribute.String("bt.bug.id", bugID)}
	ctx, span, t := s.op(ctx, "ListAuditEvents", attrs...)
	events, err := s.inner.ListAuditEvents(ctx, bugID, limit)
	if err == nil {
		span.SetAttributes(attribute.Int("bt.result.count", len(events)))
	}
	s.done(ctx, span, t, err, attrs...)
	return events, err
}

// ── Lifecycle ────────────────────────────────────────────────────────────────

func (s *InstrumentedStore) Ping(ctx context.Context) error {
	ctx, span, t := s.op(ctx, "Ping")
	err := s.inner.Ping(ctx)
	s.done(ctx, span, t, err)
	return err
}

func (s *InstrumentedStore) Close(ctx context.Context) error {
	return s.inner.Close(ctx)
}
