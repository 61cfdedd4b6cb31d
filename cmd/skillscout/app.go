package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jonathan/skillscout/internal/cache"
	"github.com/jonathan/skillscout/internal/config"
	"github.com/jonathan/skillscout/internal/fetch"
	"github.com/jonathan/skillscout/internal/jobs"
	"github.com/jonathan/skillscout/internal/logger"
	"github.com/jonathan/skillscout/internal/metrics"
	"github.com/jonathan/skillscout/internal/observability"
	"github.com/jonathan/skillscout/internal/videos"
)

// app wires the services shared by every subcommand.
type app struct {
	cfg      *config.Config
	log      logger.Logger
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	cache    *cache.Store
	jobs     *jobs.Aggregator
	videos   *videos.Service
}

func newApp(path string) (*app, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)
	store := cache.New(cache.WithLogger(log), cache.WithMetrics(m))

	opts := fetch.DefaultOptions()
	opts.Timeout = cfg.UpstreamTimeout()
	if cfg.Upstream.UserAgent != "" {
		opts.UserAgent = cfg.Upstream.UserAgent
	}

	aggOpts := []jobs.Option{jobs.WithLogger(log), jobs.WithMetrics(m)}
	if cfg.Search.CoalesceRequests {
		aggOpts = append(aggOpts, jobs.WithCoalescing())
	}
	fetcher := jobs.NewFetcher(cfg.Upstream.JobsURL, opts, log.With(logger.String("component", "jobs")), m)

	page := fetch.HTTPPage(opts)
	if cfg.Upstream.UseBrowser {
		page = fetch.BrowserPage(opts, log)
	}

	return &app{
		cfg:      cfg,
		log:      log,
		registry: registry,
		metrics:  m,
		cache:    store,
		jobs:     jobs.NewAggregator(fetcher, store, aggOpts...),
		videos:   videos.NewService(cfg.Upstream.VideosURL, page, store, log.With(logger.String("component", "videos")), m),
	}, nil
}

func (a *app) close() {
	_ = a.log.Sync()
}

// Output formats accepted by --format.
const (
	formatJSON = "json"
	formatText = "text"
)

// render prints v as JSON, or through text when --format=text.
func render(w io.Writer, v any, text func(p *observability.Printer)) error {
	if outputFormat == formatText {
		text(observability.NewPrinter(w))
		return nil
	}
	return writeJSON(w, v)
}

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
