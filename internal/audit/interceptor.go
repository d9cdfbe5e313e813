package audit

import (
	"context"
	"fmt"
	"log/slog"

	"notas/internal/models"
	"notas/internal/repository"
)

// Interceptor is the commit hook that writes the audit trail. It never fails
// a commit: a mutation whose record cannot be built is logged and skipped.
type Interceptor struct {
	builder  *Builder
	excluded ExclusionSet
	logger   *slog.Logger
	metrics  *Metrics
	shipper  *Shipper
}

type Option func(*Interceptor)

func WithBuilder(b *Builder) Option {
	return func(i *Interceptor) { i.builder = b }
}

func WithExclusions(set ExclusionSet) Option {
	return func(i *Interceptor) { i.excluded = set }
}

func WithMetrics(m *Metrics) Option {
	return func(i *Interceptor) { i.metrics = m }
}

// WithShipper forwards committed records to s.
func WithShipper(s *Shipper) Option {
	return func(i *Interceptor) { i.shipper = s }
}

func NewInterceptor(logger *slog.Logger, opts ...Option) *Interceptor {
	if logger == nil {
		logger = slog.Default()
	}
	i := &Interceptor{
		builder:  NewBuilder(),
		excluded: DefaultExclusions,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// BeforeCommit enqueues one AuditLog per pending mutation, inserts first,
// then updates, then deletes.
func (i *Interceptor) BeforeCommit(ctx context.Context, phase *repository.PendingPhase) error {
	actor := i.resolve(ctx)

	batches := []struct {
		op       Operation
		entities []any
	}{
		{OpCreate, phase.Inserts()},
		{OpUpdate, phase.Updates()},
		{OpDelete, phase.Deletes()},
	}
	for _, batch := range batches {
		for _, entity := range batch.entities {
			if i.excluded.Contains(entity) {
				continue
			}
			record, err := i.build(batch.op, entity, actor)
			if err == nil {
				err = phase.Enqueue(record)
			}
			if err != nil {
				entityType := typeName(entity)
				i.logger.WarnContext(ctx, "audit record skipped",
					"operation", batch.op,
					"entity_type", entityType,
					"error", err,
				)
				i.metrics.skipped(entityType)
				continue
			}
			i.metrics.enqueued(record.Action)
		}
	}
	return nil
}

// AfterCommit hands the committed records to the shipper, if any.
func (i *Interceptor) AfterCommit(ctx context.Context, enqueued []any) {
	if i.shipper == nil {
		return
	}
	records := make([]models.AuditLog, 0, len(enqueued))
	for _, e := range enqueued {
		if log, ok := e.(*models.AuditLog); ok {
			records = append(records, *log)
		}
	}
	if len(records) > 0 {
		i.shipper.Submit(records)
	}
}

func (i *Interceptor) resolve(ctx context.Context) (actor Actor) {
	defer func() {
		if r := recover(); r != nil {
			i.logger.WarnContext(ctx, "audit actor unresolved", "panic", r)
			actor = Actor{}
		}
	}()
	return ResolveActor(ctx)
}

func (i *Interceptor) build(op Operation, entity any, actor Actor) (record *models.AuditLog, err error) {
	defer func() {
		if r := recover(); r != nil {
			record = nil
			err = fmt.Errorf("building audit record: %v", r)
		}
	}()
	return i.builder.Build(op, entity, actor)
}
