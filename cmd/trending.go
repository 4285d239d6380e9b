package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/githunter/internal/config"
	"github.com/naka-gawa/githunter/internal/history"
	"github.com/naka-gawa/githunter/internal/trending"
)

var trendingCmd = &cobra.Command{
	Use:   "trending",
	Short: "Lists featured developers and sample searches",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"developers":      trending.Developers,
			"sample_searches": trending.SampleSearches,
		})
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Lists the most recent searches",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _ := config.Load()
		h, err := history.New(history.FileStore{Path: cfg.History.Path})
		if err != nil {
			return err
		}
		if clearAll, _ := cmd.Flags().GetBool("clear"); clearAll {
			if err := h.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Search history cleared")
			return nil
		}
		return printJSON(cmd.OutOrStdout(), h.Entries())
	},
}

func init() {
	rootCmd.AddCommand(trendingCmd)
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().Bool("clear", false, "Forget every recorded search")
}
