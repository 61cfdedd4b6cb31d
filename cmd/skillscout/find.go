package main

import (
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/skillscout/internal/observability"
	"github.com/jonathan/skillscout/internal/types"
)

var (
	findFlags      searchFlags
	findVideoLimit int
)

// findResult is the combined output of the find command.
type findResult struct {
	Query  string                `json:"query"`
	Jobs   []types.JobListing    `json:"jobs"`
	Videos []types.VideoResource `json:"videos"`
}

var findCmd = &cobra.Command{
	Use:   "find <query>",
	Short: "Search jobs and tutorial videos together",
	Long:  "Run the job and video searches in parallel and print both result sets as one JSON document.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFind,
}

func init() {
	findFlags.register(findCmd, types.DefaultJobLimit)
	findCmd.Flags().IntVar(&findVideoLimit, "video-limit", types.DefaultVideoLimit, "Maximum number of videos")
	rootCmd.AddCommand(findCmd)
}

func runFind(cmd *cobra.Command, args []string) error {
	a, err := newApp(configPath)
	if err != nil {
		return err
	}
	defer a.close()

	q := strings.Join(args, " ")
	jobReq := findFlags.request(q)
	jobReq.Limit = min(max(jobReq.Limit, 0), a.cfg.Search.MaxLimit)
	videoReq := types.VideoRequest{Query: q, Limit: min(findVideoLimit, a.cfg.Search.MaxLimit)}

	out := findResult{Query: q}
	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		out.Jobs = a.jobs.Search(ctx, jobReq)
		return nil
	})
	g.Go(func() error {
		out.Videos = a.videos.Search(ctx, videoReq)
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	return render(cmd.OutOrStdout(), out, func(p *observability.Printer) {
		p.PrintJobs(q, out.Jobs)
		p.PrintVideos(q, out.Videos)
	})
}
