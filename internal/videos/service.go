// Package videos finds tutorial videos by scraping a search results page,
// with a static fallback whenever the page cannot be used.
package videos

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jonathan/skillscout/internal/cache"
	"github.com/jonathan/skillscout/internal/fetch"
	"github.com/jonathan/skillscout/internal/logger"
	"github.com/jonathan/skillscout/internal/metrics"
	"github.com/jonathan/skillscout/internal/types"
)

// DefaultBaseURL is the video site queried for results.
const DefaultBaseURL = "https://www.youtube.com"

// SourceName labels the video upstream in logs and metrics.
const SourceName = "youtube"

const querySuffix = " tutorial"

// Service runs video searches.
type Service struct {
	baseURL string
	page    fetch.PageFunc
	cache   *cache.Store
	log     logger.Logger
	metrics *metrics.Metrics
}

// NewService creates a Service. page retrieves result pages; nil uses a plain
// HTTP GET with fetch.DefaultOptions. A nil store disables caching.
func NewService(baseURL string, page fetch.PageFunc, store *cache.Store, log logger.Logger, m *metrics.Metrics) *Service {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if page == nil {
		page = fetch.HTTPPage(fetch.DefaultOptions())
	}
	return &Service{
		baseURL: strings.TrimRight(baseURL, "/"),
		page:    page,
		cache:   store,
		log:     logger.OrNop(log),
		metrics: m,
	}
}

// CacheKey derives the cache key for a video search.
func CacheKey(query string, limit int) string {
	return fmt.Sprintf("videos_%s_%d", cache.KeyPart(query), limit)
}

// SearchURL builds the results page URL for query.
func (s *Service) SearchURL(query string) string {
	return s.baseURL + "/results?search_query=" + url.QueryEscape(query+querySuffix)
}

// Search returns up to req.Limit videos. It never fails and never returns an
// empty list: any upstream problem yields the static fallback. A limit below
// one is treated as one.
func (s *Service) Search(ctx context.Context, req types.VideoRequest) []types.VideoResource {
	limit := max(req.Limit, 1)
	log := s.log.With(
		logger.String("query", req.Query),
		logger.Int("limit", limit),
		logger.String("sorting", req.Sorting),
	)

	key := CacheKey(req.Query, limit)
	if s.cache != nil {
		if videos, ok := cache.Lookup[[]types.VideoResource](s.cache, key); ok {
			log.Info("Using cached video data", logger.String("cache_key", key))
			return videos
		}
	}

	videos, err := s.fetch(ctx, req.Query, limit)
	if err != nil || len(videos) == 0 {
		if err == nil {
			log.Warn("No videos extracted, serving fallback")
		} else {
			log.Warn("Video search failed, serving fallback", logger.Error(err))
		}
		fallback := Fallback(req.Query)
		s.metrics.Results("videos", len(fallback))
		return fallback
	}

	s.metrics.Results("videos", len(videos))
	if s.cache != nil {
		s.cache.Set(key, videos)
	}
	log.Info("Found videos", logger.Int("count", len(videos)))
	return videos
}

func (s *Service) fetch(ctx context.Context, query string, limit int) ([]types.VideoResource, error) {
	pageURL := s.SearchURL(query)
	start := time.Now()

	html, err := s.page(context.WithoutCancel(ctx), pageURL)
	s.metrics.Upstream(SourceName, err, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch results page: %w", err)
	}

	videos, err := extract(pageURL, html, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to extract videos: %w", err)
	}
	return videos, nil
}
