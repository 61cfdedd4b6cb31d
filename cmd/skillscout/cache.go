package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/skillscout/internal/jobs"
	"github.com/jonathan/skillscout/internal/types"
	"github.com/jonathan/skillscout/internal/videos"
)

var (
	cacheKeyFlags  searchFlags
	cacheKeyVideos bool
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Cache utilities",
}

var cacheKeyCmd = &cobra.Command{
	Use:   "key <query>",
	Short: "Print the cache key for a search",
	Long: `Print the cache key a search would be stored under, for use with
POST /api/v1/cache/refresh/{key}.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCacheKey,
}

func init() {
	cacheKeyFlags.register(cacheKeyCmd, types.DefaultJobLimit)
	cacheKeyCmd.Flags().BoolVar(&cacheKeyVideos, "videos", false, "Print the video search key instead")
	cacheCmd.AddCommand(cacheKeyCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheKey(cmd *cobra.Command, args []string) error {
	q := strings.Join(args, " ")

	var key string
	if cacheKeyVideos {
		limit := cacheKeyFlags.limit
		if !cmd.Flags().Changed("limit") {
			limit = types.DefaultVideoLimit
		}
		key = videos.CacheKey(q, max(limit, 1))
	} else {
		key = jobs.RequestKey(cacheKeyFlags.request(q))
	}

	_, err := fmt.Fprintln(cmd.OutOrStdout(), key)
	return err
}
