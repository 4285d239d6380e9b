package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/githunter/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Saves a user's profile, repositories and stats to {login}-github-data.json",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		user, _ := cmd.Flags().GetString("user")
		dir, _ := cmd.Flags().GetString("dir")

		profile, err := a.newSession().Search(cmd.Context(), user)
		if err != nil {
			return err
		}
		path, err := export.WriteFile(dir, export.Build(*profile, time.Now()))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Data exported to %s\n", path)
		fmt.Fprintf(out, "Share link: %s\n", export.ShareLink(a.cfg.ShareBaseURL, profile.User.Login))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringP("user", "u", "", "Target GitHub user name (required)")
	exportCmd.MarkFlagRequired("user")
	exportCmd.Flags().StringP("dir", "d", ".", "Directory to write the export into")
}
