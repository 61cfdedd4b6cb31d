package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/skillscout/internal/observability"
	"github.com/jonathan/skillscout/internal/server"
	"github.com/jonathan/skillscout/internal/types"
)

var videoLimit int

var videosCmd = &cobra.Command{
	Use:   "videos <query>",
	Short: "Search tutorial videos",
	Long:  "Search for tutorial videos and print them as JSON. A static suggestion is printed when the search yields nothing.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runVideos,
}

func init() {
	videosCmd.Flags().IntVarP(&videoLimit, "limit", "n", types.DefaultVideoLimit, "Maximum number of results")
	rootCmd.AddCommand(videosCmd)
}

func runVideos(cmd *cobra.Command, args []string) error {
	a, err := newApp(configPath)
	if err != nil {
		return err
	}
	defer a.close()

	req := types.VideoRequest{
		Query: strings.Join(args, " "),
		Limit: min(videoLimit, a.cfg.Search.MaxLimit),
	}
	found := a.videos.Search(cmd.Context(), req)
	return render(cmd.OutOrStdout(), server.VideosResponse{Videos: found, Count: len(found)}, func(p *observability.Printer) {
		p.PrintVideos(req.Query, found)
	})
}
