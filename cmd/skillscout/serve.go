package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/skillscout/internal/server"
	"github.com/jonathan/skillscout/internal/server/ratelimit"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the job and video search endpoints.`,
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	a, err := newApp(configPath)
	if err != nil {
		return err
	}
	defer a.close()

	port := a.cfg.Server.Port
	if servePort > 0 {
		port = servePort
	}

	srv, err := server.New(server.Config{
		Port:         port,
		ReadTimeout:  a.cfg.ReadTimeout(),
		WriteTimeout: a.cfg.WriteTimeout(),
		Limits: server.Limits{
			DefaultJobLimit:   a.cfg.Search.DefaultJobLimit,
			DefaultVideoLimit: a.cfg.Search.DefaultVideoLimit,
			MaxLimit:          a.cfg.Search.MaxLimit,
		},
		Jobs:      a.jobs,
		Videos:    a.videos,
		Cache:     a.cache,
		Logger:    a.log,
		Metrics:   a.metrics,
		Gatherer:  a.registry,
		RateLimit: ratelimit.LoadConfig(),
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
