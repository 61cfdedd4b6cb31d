package jobs

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/jonathan/skillscout/internal/cache"
	"github.com/jonathan/skillscout/internal/logger"
	"github.com/jonathan/skillscout/internal/metrics"
	"github.com/jonathan/skillscout/internal/query"
	"github.com/jonathan/skillscout/internal/types"
)

// Source is the pair of search strategies the Aggregator merges.
type Source interface {
	FetchGeneral(ctx context.Context, q query.Query, limit int, jobType string) ([]types.JobListing, error)
	FetchNearLocation(ctx context.Context, q query.Query, limit int, location, jobType string) ([]types.JobListing, error)
}

// Aggregator runs the location-then-general search and caches the result.
type Aggregator struct {
	source  Source
	cache   *cache.Store
	log     logger.Logger
	metrics *metrics.Metrics
	group   *singleflight.Group
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithLogger sets the aggregator's logger.
func WithLogger(l logger.Logger) Option {
	return func(a *Aggregator) { a.log = logger.OrNop(l) }
}

// WithMetrics reports result counts to m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(a *Aggregator) { a.metrics = m }
}

// WithCoalescing makes concurrent misses on the same cache key share one
// upstream search.
func WithCoalescing() Option {
	return func(a *Aggregator) { a.group = &singleflight.Group{} }
}

// NewAggregator creates an Aggregator over source, caching into store.
func NewAggregator(source Source, store *cache.Store, opts ...Option) *Aggregator {
	a := &Aggregator{
		source: source,
		cache:  store,
		log:    logger.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Search returns at most req.Limit listings. It never fails: upstream errors
// are logged and the affected phase contributes nothing.
func (a *Aggregator) Search(ctx context.Context, req types.SearchRequest) []types.JobListing {
	if req.Limit <= 0 {
		return []types.JobListing{}
	}

	q := query.Parse(req.Query)
	key := RequestKey(req)
	log := a.log.With(
		logger.String("query", req.Query),
		logger.Int("limit", req.Limit),
		logger.String("location", req.Location),
		logger.Bool("remote_only", req.RemoteOnly),
		logger.String("job_type", req.JobType),
	)

	if jobs, ok := cache.Lookup[[]types.JobListing](a.cache, key); ok {
		log.Info("Using cached job data", logger.String("cache_key", key))
		return jobs
	}

	if a.group == nil {
		return a.search(ctx, log, req, q, key)
	}
	v, _, shared := a.group.Do(key, func() (any, error) {
		return a.search(ctx, log, req, q, key), nil
	})
	if shared {
		log.Debug("Joined in-flight job search", logger.String("cache_key", key))
	}
	return slices.Clone(v.([]types.JobListing))
}

func (a *Aggregator) search(
	ctx context.Context, log logger.Logger, req types.SearchRequest, q query.Query, key string,
) []types.JobListing {
	log.Info("Fetching fresh job data",
		logger.String("cache_key", key),
		logger.Strings("tokens", q.Tokens),
	)

	location := strings.TrimSpace(req.Location)
	var jobs []types.JobListing

	if location != "" {
		found, err := a.source.FetchNearLocation(ctx, q, req.Limit, location, req.JobType)
		if err != nil {
			log.Warn("Location search failed", logger.Error(err))
		} else {
			log.Info("Found jobs for location", logger.Int("count", len(found)))
			jobs = append(jobs, found...)
		}
	}
	locationHits := len(jobs)

	if req.RemoteOnly || len(jobs) < req.Limit || q.Trending {
		if remaining := req.Limit - len(jobs); remaining > 0 {
			general, err := a.source.FetchGeneral(ctx, q, remaining, req.JobType)
			if err != nil {
				log.Warn("Remote job search failed", logger.Error(err))
			} else {
				if location != "" && locationHits == 0 {
					for i := range general {
						general[i].Location = "Remote (Worldwide, including " + location + ")"
					}
				}
				if q.Trending {
					SortByRecency(general)
				}
				log.Info("Found additional remote jobs", logger.Int("count", len(general)))
				jobs = append(jobs, general...)
			}
		}
	}

	if len(jobs) > req.Limit {
		jobs = jobs[:req.Limit]
	}
	a.metrics.Results("jobs", len(jobs))

	if len(jobs) == 0 {
		log.Warn("No jobs found")
		return []types.JobListing{}
	}

	a.cache.Set(key, jobs)
	log.Info("Cached jobs", logger.Int("count", len(jobs)), logger.String("cache_key", key))
	return jobs
}

// SortByRecency orders listings newest first by RFC 3339 posting date.
// Listings without a parseable date go last; ties break on title.
func SortByRecency(jobs []types.JobListing) {
	slices.SortStableFunc(jobs, func(a, b types.JobListing) int {
		ta, okA := postedAt(a)
		tb, okB := postedAt(b)
		switch {
		case okA && okB:
			if c := tb.Compare(ta); c != 0 {
				return c
			}
		case okA:
			return -1
		case okB:
			return 1
		}
		return cmp.Compare(a.Title, b.Title)
	})
}

func postedAt(j types.JobListing) (time.Time, bool) {
	if j.DatePosted == nil {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, *j.DatePosted)
	return t, err == nil
}
