package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/couchcryptid/storm-data-cyclone-service/internal/domain"
	"github.com/couchcryptid/storm-data-cyclone-service/internal/observability"
	"github.com/jonboulle/clockwork"
)

// Service lists active cyclones by reading the feed, downloading each
// cyclone's bulletin, and assembling the parsed tracks.
type Service struct {
	feed        domain.FeedSource
	bulletins   domain.BulletinFetcher
	grammar     *domain.Grammar
	headers     *domain.HeaderExtractor
	clock       clockwork.Clock
	logger      *slog.Logger
	metrics     *observability.Metrics
	concurrency int
}

// NewService creates a Service. concurrency bounds parallel bulletin
// downloads; values below 1 are treated as 1.
func NewService(
	feed domain.FeedSource,
	bulletins domain.BulletinFetcher,
	links domain.LinkLister,
	clock clockwork.Clock,
	logger *slog.Logger,
	metrics *observability.Metrics,
	concurrency int,
) *Service {
	grammar := domain.NewGrammar()
	return &Service{
		feed:        feed,
		bulletins:   bulletins,
		grammar:     grammar,
		headers:     domain.NewHeaderExtractor(grammar, links),
		clock:       clock,
		logger:      logger,
		metrics:     metrics,
		concurrency: max(concurrency, 1),
	}
}

// List returns every active cyclone keyed by code. A feed or bulletin
// download failure fails the whole listing; a bulletin that cannot be
// parsed is reported in Listing.Failed and the remaining cyclones are kept.
func (s *Service) List(ctx context.Context) (domain.Listing, error) {
	items, err := s.feed.Items(ctx)
	if err != nil {
		return domain.Listing{}, err
	}

	headers := make(map[string]domain.CycloneHeader)
	for _, item := range items {
		for code, h := range s.headers.ExtractHeaders(item) {
			headers[code] = h
		}
	}

	return s.assembleAll(ctx, headers)
}

// Get returns the cyclone with the given code, or domain.ErrNotFound. Headers
// are merged across feed items as in List, so both agree on which warning
// a code resolves to.
func (s *Service) Get(ctx context.Context, code string) (domain.CycloneRecord, error) {
	items, err := s.feed.Items(ctx)
	if err != nil {
		return domain.CycloneRecord{}, err
	}

	var (
		header domain.CycloneHeader
		found  bool
	)
	for _, item := range items {
		if h, ok := s.headers.FindHeader(item, code); ok {
			header, found = h, true
		}
	}
	if !found {
		return domain.CycloneRecord{}, fmt.Errorf("%s: %w", code, domain.ErrNotFound)
	}

	text, err := s.bulletins.FetchBulletin(ctx, header)
	if err != nil {
		return domain.CycloneRecord{}, err
	}
	rec, err := domain.Assemble(s.grammar, header, text, s.clock.Now())
	if err != nil {
		s.metrics.ParseFailures.Inc()
		return domain.CycloneRecord{}, err
	}
	s.metrics.ObservationsExtracted.Add(float64(len(rec.Track)))
	return rec, nil
}

type assembled struct {
	header domain.CycloneHeader
	record domain.CycloneRecord
	err    error
}

// assembleAll downloads and parses the bulletins of all headers with bounded
// concurrency. The first download error cancels the remaining downloads.
func (s *Service) assembleAll(parent context.Context, headers map[string]domain.CycloneHeader) (domain.Listing, error) {
	listing := domain.NewListing()
	if len(headers) == 0 {
		return listing, nil
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	polledAt := s.clock.Now()
	results := make(chan assembled, len(headers))
	sem := make(chan struct{}, s.concurrency)

	var (
		wg       sync.WaitGroup
		once     sync.Once
		fetchErr error
	)

	for _, h := range headers {
		wg.Add(1)
		go func(h domain.CycloneHeader) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				return
			}

			text, err := s.bulletins.FetchBulletin(ctx, h)
			if err != nil {
				once.Do(func() {
					fetchErr = err
					cancel()
				})
				return
			}

			rec, err := domain.Assemble(s.grammar, h, text, polledAt)
			results <- assembled{header: h, record: rec, err: err}
		}(h)
	}

	wg.Wait()
	close(results)

	if fetchErr != nil {
		return domain.Listing{}, fetchErr
	}
	if err := parent.Err(); err != nil {
		return domain.Listing{}, err
	}

	for r := range results {
		if r.err != nil {
			s.logger.Warn("bulletin parse failed, skipping cyclone",
				"code", r.header.Code,
				"link", r.header.BulletinLink,
				"error", r.err,
			)
			s.metrics.ParseFailures.Inc()
			listing.Fail(r.header.Code, r.err)
			continue
		}
		s.metrics.ObservationsExtracted.Add(float64(len(r.record.Track)))
		listing.Add(r.record)
	}
	return listing, nil
}
