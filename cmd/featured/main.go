// Package main provides the featured CLI entry point.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/bigtalents/featured/internal/config"
	"github.com/bigtalents/featured/internal/content"
	"github.com/bigtalents/featured/internal/display"
	"github.com/bigtalents/featured/internal/featured"
	"github.com/bigtalents/featured/internal/logging"
	"github.com/bigtalents/featured/internal/roster"
	"github.com/bigtalents/featured/internal/tiktok"
	"github.com/bigtalents/featured/internal/twitch"
	"github.com/bigtalents/featured/internal/youtube"
	"github.com/bigtalents/featured/pkg/oauth"
)

var version = "0.1.0"

func main() {
	config.LoadEnv()
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// getConfigDir returns the configuration directory path.
func getConfigDir() string {
	if dir := os.Getenv("FEATURED_CONFIG_DIR"); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "featured")
}

// getRosterPath returns the roster file path, flag value first.
func getRosterPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if path := os.Getenv("FEATURED_ROSTER"); path != "" {
		return path
	}
	return "roster.yaml"
}

// newRootCmd creates the root command for the featured CLI.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "featured",
		Short:   "Rank roster creators' content into a featured shortlist",
		Long:    "Featured fetches recent content from YouTube, Twitch and TikTok for every roster creator, scores it, and selects a diversity-adjusted featured list.",
		Version: version,
	}

	rootCmd.SetVersionTemplate("featured version {{.Version}}\n")

	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newRosterCmd())

	return rootCmd
}

// newShowCmd creates the show subcommand.
func newShowCmd() *cobra.Command {
	var (
		rosterPath string
		limit      int
		asJSON     bool
		breakdown  bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Fetch, rank and display the featured content list",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			defer cancel()

			creators, err := roster.Load(getRosterPath(rosterPath))
			if err != nil {
				return err
			}

			service := newService(creators)
			items, err := service.GetFeaturedContent(ctx, limit)
			if err != nil {
				return err
			}

			if asJSON {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(items)
			}

			formatter := display.NewTerminalFormatter()
			formatter.ShowBreakdown = breakdown
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatFeatured(items))
			return nil
		},
	}

	cmd.Flags().StringVarP(&rosterPath, "roster", "r", "", "Path to the roster YAML file")
	cmd.Flags().IntVarP(&limit, "limit", "l",
		config.GetEnvInt("FEATURED_MAX_RESULTS", featured.DefaultMaxResults),
		"Maximum number of featured items")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the list as JSON")
	cmd.Flags().BoolVar(&breakdown, "breakdown", false, "Show per-item score breakdown")

	return cmd
}

// newService wires the platform adapters from environment credentials.
// Platforms without credentials stay unwired and contribute no content.
func newService(creators []content.Creator) *featured.Service {
	creds := config.LoadCredentials()
	opts := []featured.Option{featured.WithLogger(logging.NewLogger())}

	if creds.YouTubeAPIKey != "" {
		opts = append(opts, featured.WithYouTube(youtube.NewClient(creds.YouTubeAPIKey)))
	}
	if creds.TwitchClientID != "" && creds.TwitchClientSecret != "" {
		flow := oauth.NewFlow(oauth.TwitchOAuthConfig(creds.TwitchClientID, creds.TwitchClientSecret))
		tokens := oauth.NewTokenCache(flow,
			oauth.WithStorage(oauth.NewTokenStorage(getConfigDir()), "twitch"))
		opts = append(opts, featured.WithTwitch(twitch.NewClient(creds.TwitchClientID, tokens)))
	}
	if creds.TikTokClientKey != "" {
		opts = append(opts, featured.WithTikTok(tiktok.NewClient(creds.TikTokClientKey)))
	}

	return featured.NewService(creators, opts...)
}

// newRosterCmd creates the roster subcommand.
func newRosterCmd() *cobra.Command {
	var rosterPath string

	cmd := &cobra.Command{
		Use:   "roster",
		Short: "List the configured roster creators",
		RunE: func(cmd *cobra.Command, args []string) error {
			creators, err := roster.Load(getRosterPath(rosterPath))
			if err != nil {
				return err
			}

			for _, c := range creators {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s, %s)\n", c.Name, c.ID, c.Tier)
				for _, platform := range content.Platforms {
					if profile, ok := c.Platforms[platform]; ok {
						fmt.Fprintf(cmd.OutOrStdout(), "  %s: %s (%d followers)\n",
							platform, profile.Handle, profile.Followers)
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&rosterPath, "roster", "r", "", "Path to the roster YAML file")

	return cmd
}
