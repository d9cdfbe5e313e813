package audit

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"notas/internal/models"

	"github.com/redis/go-redis/v9"
)

// Sink receives audit records after their transaction has committed.
type Sink interface {
	Publish(ctx context.Context, records []models.AuditLog) error
}

// StreamPublisher appends audit records to a capped Redis stream.
type StreamPublisher struct {
	rdb     redis.Cmdable
	key     string
	maxLen  int64
	timeout time.Duration
}

func NewStreamPublisher(rdb redis.Cmdable, key string, maxLen int64) *StreamPublisher {
	return &StreamPublisher{rdb: rdb, key: key, maxLen: maxLen, timeout: 2 * time.Second}
}

func (p *StreamPublisher) Publish(ctx context.Context, records []models.AuditLog) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	pipe := p.rdb.Pipeline()
	for _, r := range records {
		pipe.XAdd(ctx, &redis.XAddArgs{
			Stream: p.key,
			MaxLen: p.maxLen,
			Approx: true,
			Values: streamValues(r),
		})
	}
	_, err := pipe.Exec(ctx)
	return err
}

func streamValues(r models.AuditLog) map[string]interface{} {
	return map[string]interface{}{
		"id":            strconv.FormatUint(uint64(r.ID), 10),
		"action":        r.Action,
		"entity_type":   r.EntityType,
		"entity_id":     optionalID(r.EntityID),
		"meta":          optionalString(r.Meta),
		"actor_user_id": optionalID(r.ActorUserID),
		"tenant_id":     optionalID(r.TenantID),
		"created_at":    r.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func optionalID(v *uint) string {
	if v == nil {
		return ""
	}
	return strconv.FormatUint(uint64(*v), 10)
}

func optionalString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

// Shipper moves committed records to a Sink on a background worker so that
// request handlers never wait on the sink.
type Shipper struct {
	sink    Sink
	queue   chan []models.AuditLog
	logger  *slog.Logger
	metrics *Metrics
}

func NewShipper(sink Sink, buffer int, logger *slog.Logger, metrics *Metrics) *Shipper {
	if buffer <= 0 {
		buffer = 100
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Shipper{
		sink:    sink,
		queue:   make(chan []models.AuditLog, buffer),
		logger:  logger,
		metrics: metrics,
	}
}

// Submit queues a batch without blocking. It reports false when the queue is
// full and the batch was dropped.
func (s *Shipper) Submit(records []models.AuditLog) bool {
	select {
	case s.queue <- records:
		return true
	default:
		s.logger.Warn("audit shipper queue full, dropping batch", "records", len(records))
		s.metrics.shipped("dropped", len(records))
		return false
	}
}

// Start drains the queue until ctx is cancelled.
func (s *Shipper) Start(ctx context.Context) {
	s.logger.Info("Audit shipper starting")
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Audit shipper stopping")
			return
		case batch := <-s.queue:
			if err := s.sink.Publish(ctx, batch); err != nil {
				s.logger.Error("failed to ship audit records", "records", len(batch), "error", err)
				s.metrics.shipped("error", len(batch))
				continue
			}
			s.metrics.shipped("ok", len(batch))
		}
	}
}
