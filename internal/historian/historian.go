// Package historian moves table action records from the Redis queue into PostgreSQL in batches.
package historian

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/contracts/internal/logging"
	"github.com/jason-s-yu/contracts/internal/models"
	"github.com/sirupsen/logrus"
)

// Source yields queued action records. Pop returns nil, nil when nothing arrived within timeout.
type Source interface {
	Pop(ctx context.Context, timeout time.Duration) (*models.ActionRecord, error)
}

// Sink persists batches of action records.
type Sink interface {
	InsertActions(ctx context.Context, records []models.ActionRecord) error
	MarkAbandoned(ctx context.Context, tableID uuid.UUID) error
}

// Options tune batching. Zero values take the defaults.
type Options struct {
	BatchSize  int
	FlushDelay time.Duration
	PopTimeout time.Duration
	// Inactivity is how long a table may stay silent before it is marked abandoned.
	Inactivity time.Duration
	QueueName  string
}

// Service accumulates records from a Source and flushes them to a Sink when
// the batch is full or the flush delay passes, whichever comes first.
type Service struct {
	source Source
	sink   Sink
	opts   Options
	log    logrus.FieldLogger
	now    func() time.Time

	batchMu sync.Mutex
	batch   []models.ActionRecord

	// lastActivity is only touched by the Run goroutine.
	lastActivity map[uuid.UUID]time.Time
}

func NewService(source Source, sink Sink, opts Options, logger logrus.FieldLogger) *Service {
	if opts.BatchSize <= 0 {
		opts.BatchSize = 20
	}
	if opts.FlushDelay <= 0 {
		opts.FlushDelay = 500 * time.Millisecond
	}
	if opts.PopTimeout <= 0 {
		opts.PopTimeout = 3 * time.Second
	}
	if opts.Inactivity <= 0 {
		opts.Inactivity = 10 * time.Minute
	}
	return &Service{
		source:       source,
		sink:         sink,
		opts:         opts,
		log:          logger,
		now:          time.Now,
		batch:        make([]models.ActionRecord, 0, opts.BatchSize),
		lastActivity: make(map[uuid.UUID]time.Time),
	}
}

// Run pops and batches records until ctx is cancelled, then flushes what is left.
func (s *Service) Run(ctx context.Context) {
	ticker := time.NewTicker(s.opts.FlushDelay)
	defer ticker.Stop()

	s.log.WithField("queue", s.opts.QueueName).Info("Historian started")
	for {
		select {
		case <-ctx.Done():
			s.Flush(context.Background())
			s.log.Info("Historian stopped")
			return

		case <-ticker.C:
			s.Flush(ctx)
			s.sweepInactive(ctx)

		default:
			rec, err := s.source.Pop(ctx, s.opts.PopTimeout)
			if err != nil {
				if ctx.Err() != nil {
					continue
				}
				s.log.WithError(err).Error("Failed to pop action")
				select {
				case <-ctx.Done():
				case <-time.After(s.opts.FlushDelay):
				}
				continue
			}
			if rec == nil {
				continue
			}
			s.lastActivity[rec.TableID] = s.now()
			s.appendToBatch(ctx, *rec)
		}
	}
}

// appendToBatch adds a record and flushes once the batch is full.
func (s *Service) appendToBatch(ctx context.Context, rec models.ActionRecord) {
	s.batchMu.Lock()
	s.batch = append(s.batch, rec)
	full := len(s.batch) >= s.opts.BatchSize
	s.batchMu.Unlock()

	if full {
		s.Flush(ctx)
	}
}

// Flush writes the pending batch in one call to the sink. A failed batch is
// kept and retried on the next flush.
func (s *Service) Flush(ctx context.Context) {
	s.batchMu.Lock()
	defer s.batchMu.Unlock()

	if len(s.batch) == 0 {
		return
	}
	pending := make([]models.ActionRecord, len(s.batch))
	copy(pending, s.batch)

	err := s.sink.InsertActions(ctx, pending)
	logging.LogQueueBatch(s.log, s.opts.QueueName, len(pending), err)
	if err != nil {
		return
	}
	s.batch = s.batch[:0]
}

// Pending returns how many records are waiting to be flushed.
func (s *Service) Pending() int {
	s.batchMu.Lock()
	defer s.batchMu.Unlock()
	return len(s.batch)
}

// sweepInactive marks tables silent for longer than the inactivity window as abandoned.
func (s *Service) sweepInactive(ctx context.Context) {
	now := s.now()
	for tableID, last := range s.lastActivity {
		if now.Sub(last) <= s.opts.Inactivity {
			continue
		}
		if err := s.sink.MarkAbandoned(ctx, tableID); err != nil {
			s.log.WithError(err).WithField("table", tableID).Error("Failed to mark table abandoned")
			continue
		}
		s.log.WithField("table", tableID).Info("Marked table abandoned due to inactivity")
		delete(s.lastActivity, tableID)
	}
}
