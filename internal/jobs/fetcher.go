// Package jobs searches the RemoteOK feed and merges location-targeted and
// general results into a cached, bounded listing.
package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/skillscout/internal/classify"
	"github.com/jonathan/skillscout/internal/fetch"
	"github.com/jonathan/skillscout/internal/logger"
	"github.com/jonathan/skillscout/internal/metrics"
	"github.com/jonathan/skillscout/internal/query"
	"github.com/jonathan/skillscout/internal/types"
)

// SourceName labels RemoteOK in logs and metrics.
const SourceName = "remoteok"

// Fetcher issues one feed request per call and filters the records locally.
type Fetcher struct {
	endpoint string
	opts     *fetch.Options
	log      logger.Logger
	metrics  *metrics.Metrics
}

// NewFetcher creates a Fetcher for endpoint. An empty endpoint uses
// DefaultEndpoint; nil opts use fetch.DefaultOptions.
func NewFetcher(endpoint string, opts *fetch.Options, log logger.Logger, m *metrics.Metrics) *Fetcher {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if opts == nil {
		opts = fetch.DefaultOptions()
	}
	return &Fetcher{
		endpoint: endpoint,
		opts:     opts,
		log:      logger.OrNop(log),
		metrics:  m,
	}
}

// FetchGeneral returns up to limit remote listings matching q.
//
// In trending mode a listing matches if any trending term appears in its
// position or description. Otherwise every query token must appear in one of
// them, and an empty query matches nothing.
func (f *Fetcher) FetchGeneral(ctx context.Context, q query.Query, limit int, jobType string) ([]types.JobListing, error) {
	if limit <= 0 {
		return nil, nil
	}
	records, err := f.load(ctx)
	if err != nil {
		return nil, err
	}

	terms := q.Tokens
	if q.Trending {
		terms = q.TrendingTerms()
	}

	var out []types.JobListing
	for i := range records {
		rec := &records[i]
		position := strings.ToLower(rec.Position)
		description := strings.ToLower(rec.Description)

		if q.Trending {
			if !query.ContainsAny(terms, position, description) {
				continue
			}
		} else if len(terms) == 0 || !query.ContainsAll(terms, position, description) {
			continue
		}

		determined, ok := f.jobType(rec, jobType)
		if !ok {
			continue
		}

		listing := f.listing(rec, fmt.Sprintf("remoteok_%d", len(out)), "Remote", determined)
		out = append(out, listing)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

// FetchNearLocation returns up to limit listings whose position contains
// every query token and whose text mentions location or its city.
func (f *Fetcher) FetchNearLocation(
	ctx context.Context, q query.Query, limit int, location, jobType string,
) ([]types.JobListing, error) {
	if limit <= 0 {
		return nil, nil
	}
	records, err := f.load(ctx)
	if err != nil {
		return nil, err
	}

	locationLower := strings.ToLower(strings.TrimSpace(location))
	city := strings.TrimSpace(strings.Split(locationLower, ",")[0])

	var out []types.JobListing
	for i := range records {
		rec := &records[i]
		position := strings.ToLower(rec.Position)
		if !query.ContainsAll(q.Tokens, position) {
			continue
		}

		description := strings.ToLower(rec.Description)
		if !mentionsLocation(locationLower, city, position, description) {
			continue
		}

		determined, ok := f.jobType(rec, jobType)
		if !ok {
			continue
		}

		listing := f.listing(rec, fmt.Sprintf("remoteok_loc_%d", len(out)), location+" (Remote)", determined)
		out = append(out, listing)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func mentionsLocation(location, city string, texts ...string) bool {
	for _, text := range texts {
		if city != "" && strings.Contains(text, city) {
			return true
		}
		if location != "" && strings.Contains(text, location) {
			return true
		}
	}
	return false
}

// load fetches and decodes the feed. The caller's cancellation is not
// propagated; the request is bounded by its own timeout.
func (f *Fetcher) load(ctx context.Context) ([]remoteOKJob, error) {
	start := time.Now()
	res, err := fetch.URL(context.WithoutCancel(ctx), f.endpoint, f.opts)
	if err != nil {
		f.metrics.Upstream(SourceName, err, time.Since(start))
		return nil, fmt.Errorf("failed to fetch job feed: %w", err)
	}

	records, skipped, err := decodeFeed(res.Body)
	if err != nil {
		err = &fetch.Error{Kind: fetch.KindParse, URL: f.endpoint, Message: "feed is not a JSON array", Cause: err}
		f.metrics.Upstream(SourceName, err, time.Since(start))
		return nil, fmt.Errorf("failed to decode job feed: %w", err)
	}
	f.metrics.Upstream(SourceName, nil, time.Since(start))

	if skipped > 0 {
		f.log.Debug("Skipped undecodable feed elements", logger.Int("skipped", skipped))
	}
	f.log.Debug("Loaded job feed",
		logger.Int("records", len(records)),
		logger.Duration("elapsed", time.Since(start)),
	)
	return records, nil
}

// jobType classifies rec and applies the requested filter.
func (f *Fetcher) jobType(rec *remoteOKJob, requested string) (string, bool) {
	determined, source := classify.JobType(rec.Tags, rec.Description)
	f.log.Debug("Classified job type",
		logger.String("position", rec.Position),
		logger.String("job_type", determined),
		logger.String("source", string(source)),
	)
	return determined, classify.MatchesJobType(determined, requested)
}

func (f *Fetcher) listing(rec *remoteOKJob, fallbackID, location, jobType string) types.JobListing {
	id := string(rec.ID)
	if id == "" {
		id = fallbackID
	}
	salaryMin, salaryMax := classify.ParseSalary(classify.SalaryText(string(rec.Salary), rec.Description))

	return types.JobListing{
		ID:           id,
		Title:        rec.Position,
		EmployerName: rec.Company,
		Location:     location,
		Description:  rec.Description,
		ApplyURL:     absoluteURL(rec.URL),
		SalaryMin:    salaryMin,
		SalaryMax:    salaryMax,
		DatePosted:   types.StringPtr(rec.Date),
		Remote:       true,
		JobType:      types.StringPtr(jobType),
		EmployerLogo: logoURL(rec.Logo),
	}
}
