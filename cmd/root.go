// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/naka-gawa/githunter/internal/config"
	"github.com/naka-gawa/githunter/internal/gateway"
	"github.com/naka-gawa/githunter/internal/history"
	"github.com/naka-gawa/githunter/internal/usecase"
)

var rootCmd = &cobra.Command{
	Use:   "githunter",
	Short: "A CLI tool to analyze public GitHub profiles.",
	Long: `githunter looks up a GitHub user through the public REST API and derives
analytics from their profile and repositories: language distribution, activity,
impact and quality scores, achievements, insights and head-to-head battles.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", userMessage(err))
		os.Exit(1)
	}
}

func init() {
	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
}

// app wires the dependencies shared by every command.
type app struct {
	cfg      *config.Config
	logger   *logrus.Logger
	gateway  *gateway.GitHubGateway
	searcher *usecase.Searcher
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, envLoaded := config.Load()
	verbose, _ := cmd.Flags().GetBool("verbose")
	logger := newLogger(cmd.ErrOrStderr(), cfg.LogLevel, verbose)
	if !envLoaded {
		logger.Debug("No .env file found, using environment variables")
	}

	githubGateway, err := gateway.NewGitHubGateway(cfg.GitHub, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub gateway: %w", err)
	}
	return &app{
		cfg:      cfg,
		logger:   logger,
		gateway:  githubGateway,
		searcher: usecase.NewSearcher(githubGateway, logger),
	}, nil
}

func (a *app) newSession() *usecase.Session {
	h, err := history.New(history.FileStore{Path: a.cfg.History.Path})
	if err != nil {
		// A corrupt history file should not block searching.
		a.logger.WithError(err).Warn("starting with empty search history")
		h, _ = history.New(nil)
	}
	return usecase.NewSession(a.searcher, h, a.logger)
}

// newLogger logs to w. Verbose forces debug level, otherwise level is parsed
// from configuration.
func newLogger(w io.Writer, level string, verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.WarnLevel
	}
	if verbose {
		parsed = logrus.DebugLevel
	}
	logger.SetLevel(parsed)
	return logger
}

// userMessage turns an error into the text shown to the user.
func userMessage(err error) string {
	if errors.Is(err, gateway.ErrUserNotFound) {
		return "User not found"
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return "An unexpected error occurred"
}

// printJSON writes v as pretty-printed JSON.
func printJSON(w io.Writer, v any) error {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results to JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(jsonData))
	return err
}
