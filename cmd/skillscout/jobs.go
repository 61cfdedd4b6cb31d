package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/skillscout/internal/observability"
	"github.com/jonathan/skillscout/internal/server"
	"github.com/jonathan/skillscout/internal/types"
)

var jobsFlags searchFlags

// searchFlags are the job search options shared by jobs, find and cache key.
type searchFlags struct {
	limit      int
	location   string
	remoteOnly bool
	jobType    string
}

func (f *searchFlags) register(cmd *cobra.Command, defaultLimit int) {
	cmd.Flags().IntVarP(&f.limit, "limit", "n", defaultLimit, "Maximum number of results")
	cmd.Flags().StringVar(&f.location, "location", "", "Prefer listings mentioning this location")
	cmd.Flags().BoolVar(&f.remoteOnly, "remote-only", false, "Only remote listings")
	cmd.Flags().StringVar(&f.jobType, "job-type", "", "Employment type filter (full-time, part-time, contract, ...)")
}

func (f *searchFlags) request(q string) types.SearchRequest {
	return types.SearchRequest{
		Query:      q,
		Limit:      f.limit,
		Location:   f.location,
		RemoteOnly: f.remoteOnly,
		JobType:    strings.ToLower(f.jobType),
	}
}

var jobsCmd = &cobra.Command{
	Use:   "jobs <query>",
	Short: "Search remote job listings",
	Long:  "Search the job feed and print matching listings as JSON.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runJobs,
}

func init() {
	jobsFlags.register(jobsCmd, types.DefaultJobLimit)
	rootCmd.AddCommand(jobsCmd)
}

func runJobs(cmd *cobra.Command, args []string) error {
	if jobsFlags.limit < 0 {
		return &server.ErrValidation{Field: "limit", Message: "must not be negative"}
	}

	a, err := newApp(configPath)
	if err != nil {
		return err
	}
	defer a.close()

	req := jobsFlags.request(strings.Join(args, " "))
	req.Limit = min(req.Limit, a.cfg.Search.MaxLimit)
	listings := a.jobs.Search(cmd.Context(), req)
	return render(cmd.OutOrStdout(), server.JobsResponse{Jobs: listings, Count: len(listings)}, func(p *observability.Printer) {
		p.PrintJobs(req.Query, listings)
	})
}
