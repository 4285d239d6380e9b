package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/githunter/internal/domain"
	"github.com/naka-gawa/githunter/internal/metrics"
)

// profileOutput is what the profile command prints.
type profileOutput struct {
	Report metrics.Report      `json:"report"`
	Repos  []domain.Repository `json:"repos"`
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Analyzes a GitHub user and outputs the report as JSON",
	Long: `Fetches a GitHub user's profile and first 100 repositories, computes scores,
achievements and insights, and prints them together with a filtered repository
listing in JSON format.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		user, _ := cmd.Flags().GetString("user")
		sortBy, _ := cmd.Flags().GetString("sort")
		language, _ := cmd.Flags().GetString("language")
		query, _ := cmd.Flags().GetString("filter")
		top, _ := cmd.Flags().GetInt("top")

		profile, err := a.newSession().Search(cmd.Context(), user)
		if err != nil {
			return err
		}

		repos := metrics.FilterRepos(profile.Repos, metrics.RepoFilter{
			Query:    query,
			Language: language,
			SortBy:   metrics.ParseSortKey(sortBy),
		})
		if top >= 0 && len(repos) > top {
			repos = repos[:top]
		}

		return printJSON(cmd.OutOrStdout(), profileOutput{
			Report: metrics.Analyze(profile.User, profile.Repos, time.Now()),
			Repos:  repos,
		})
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.Flags().StringP("user", "u", "", "Target GitHub user name (required)")
	profileCmd.MarkFlagRequired("user")
	profileCmd.Flags().String("sort", string(metrics.SortUpdated), "Repository order: updated, stars, forks or name")
	profileCmd.Flags().String("language", "", "Only list repositories in this language")
	profileCmd.Flags().String("filter", "", "Only list repositories whose name or description contains this text")
	profileCmd.Flags().Int("top", 10, "Number of repositories to list (-1 for all)")
}
