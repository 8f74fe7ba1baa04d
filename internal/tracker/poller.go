package tracker

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/storm-data-cyclone-service/internal/domain"
	"github.com/couchcryptid/storm-data-cyclone-service/internal/observability"
	"github.com/couchcryptid/storm-data-shared/retry"
	"github.com/jonboulle/clockwork"
)

const initialBackoff = time.Second

// Lister produces the current cyclone listing.
type Lister interface {
	List(ctx context.Context) (domain.Listing, error)
}

// Publisher writes cyclone records to the destination.
type Publisher interface {
	Publish(ctx context.Context, records []domain.CycloneRecord) error
}

// Poller lists cyclones on a fixed interval and publishes every record.
type Poller struct {
	lister    Lister
	publisher Publisher
	clock     clockwork.Clock
	interval  time.Duration
	logger    *slog.Logger
	metrics   *observability.Metrics
	ready     atomic.Bool
}

// NewPoller creates a Poller.
func NewPoller(l Lister, p Publisher, clock clockwork.Clock, interval time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Poller {
	return &Poller{
		lister:    l,
		publisher: p,
		clock:     clock,
		interval:  interval,
		logger:    logger,
		metrics:   metrics,
	}
}

// CheckReadiness returns nil once a poll has completed successfully.
func (p *Poller) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no successful poll yet")
	}
	return nil
}

// Run polls until the context is cancelled. A failed poll is retried with
// exponential backoff, capped at the poll interval.
func (p *Poller) Run(ctx context.Context) error {
	p.logger.Info("poller started", "interval", p.interval)
	p.metrics.PollerRunning.Set(1)
	defer p.metrics.PollerRunning.Set(0)

	backoff := initialBackoff

	for {
		wait := p.interval
		if p.poll(ctx) {
			backoff = initialBackoff
		} else {
			if ctx.Err() != nil {
				break
			}
			wait = backoff
			backoff = retry.NextBackoff(backoff, p.interval)
		}

		if !sleepWithContext(ctx, p.clock, wait) {
			break
		}
	}

	p.logger.Info("poller stopping", "reason", ctx.Err())
	return nil
}

// poll runs one list-and-publish cycle and reports whether it succeeded.
func (p *Poller) poll(ctx context.Context) bool {
	listing, err := p.lister.List(ctx)
	if err != nil {
		if ctx.Err() == nil {
			p.logger.Error("list cyclones failed", "error", err)
			p.metrics.Polls.WithLabelValues("error").Inc()
		}
		return false
	}

	records := sortedRecords(listing)
	if len(records) > 0 {
		if err := p.publisher.Publish(ctx, records); err != nil {
			if ctx.Err() == nil {
				p.logger.Error("publish records failed", "error", err, "records", len(records))
				p.metrics.Polls.WithLabelValues("error").Inc()
			}
			return false
		}
		p.metrics.RecordsPublished.Add(float64(len(records)))
	}

	p.metrics.Polls.WithLabelValues("success").Inc()
	p.metrics.CyclonesTracked.Set(float64(len(records)))
	p.ready.Store(true)
	p.logger.Info("poll complete", "cyclones", len(records), "failed", len(listing.Failed))
	return true
}

// sortedRecords orders a listing by code so published batches are stable.
func sortedRecords(l domain.Listing) []domain.CycloneRecord {
	records := make([]domain.CycloneRecord, 0, len(l.Cyclones))
	for _, rec := range l.Cyclones {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Code < records[j].Code })
	return records
}

// sleepWithContext mirrors retry.SleepWithContext on an injectable clock.
func sleepWithContext(ctx context.Context, clock clockwork.Clock, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}

	timer := clock.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.Chan():
		return true
	}
}
