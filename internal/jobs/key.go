package jobs

import (
	"fmt"

	"github.com/jonathan/skillscout/internal/cache"
	"github.com/jonathan/skillscout/internal/query"
	"github.com/jonathan/skillscout/internal/types"
)

// CacheKey derives the cache key for a job search. Equal normalized inputs
// always produce the same key. clean is the query with any trending prefix
// already removed.
func CacheKey(clean string, limit int, location string, remoteOnly bool, jobType string) string {
	return fmt.Sprintf("jobs_%s_%d_%s_%t_%s",
		cache.KeyPart(clean),
		limit,
		cache.KeyPart(location),
		remoteOnly,
		cache.KeyPart(jobType),
	)
}

// RequestKey is the cache key the Aggregator uses for req.
func RequestKey(req types.SearchRequest) string {
	return CacheKey(query.Parse(req.Query).Clean, req.Limit, req.Location, req.RemoteOnly, req.JobType)
}
