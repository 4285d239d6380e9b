package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/githunter/internal/battle"
)

var battleCmd = &cobra.Command{
	Use:   "battle",
	Short: "Compares 2 or 3 GitHub users and outputs the ranking as JSON",
	Long: fmt.Sprintf(`Fetches each user, ranks them by the selected metric and names the overall
champion. Duplicate users and users beyond the third are skipped with a notice.

Metrics: %q`, battle.MetricNames()),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		users, _ := cmd.Flags().GetStringSlice("user")
		metric, _ := cmd.Flags().GetString("metric")

		session := a.newSession()
		for _, login := range users {
			if err := session.CanJoinComparison(login); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Notice: %s: %s\n", login, err)
				continue
			}
			if _, err := session.Search(cmd.Context(), login); err != nil {
				return fmt.Errorf("%s: %s", login, userMessage(err))
			}
			// The fetched login may differ in case from what was typed.
			if err := session.AddCurrentToComparison(); err != nil {
				if errors.Is(err, battle.ErrDuplicateParticipant) {
					fmt.Fprintf(cmd.ErrOrStderr(), "Notice: %s: %s\n", login, err)
					continue
				}
				return err
			}
		}

		summary, err := session.Battle(metric, time.Now())
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), summary)
	},
}

func init() {
	rootCmd.AddCommand(battleCmd)
	battleCmd.Flags().StringSliceP("user", "u", nil, "GitHub user name, repeat for each contender (2-3 required)")
	battleCmd.MarkFlagRequired("user")
	battleCmd.Flags().StringP("metric", "m", battle.MetricOverall, "Metric to rank by")
}
