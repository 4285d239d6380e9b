package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/githunter/internal/battle"
	"github.com/naka-gawa/githunter/internal/domain"
	"github.com/naka-gawa/githunter/internal/export"
	"github.com/naka-gawa/githunter/internal/metrics"
	"github.com/naka-gawa/githunter/internal/trending"
	"github.com/naka-gawa/githunter/internal/usecase"
)

const interactiveHelp = `Commands:
  search <user>      look up a user (alias: s)
  add                add the current user to the battle
  remove <user>      remove a user from the battle
  compare            list the users in the battle
  battle [metric]    run the battle, ranked by metric (default: overall)
  clear              empty the battle and drop cached API responses
  repos [sort] [language] [text]
                     list the current user's repositories
  history [clear]    show or clear recent searches
  export [dir]       save the current user's data as JSON
  share              print a share link for the current user
  trending           list featured developers
  help               show this help
  quit               leave (alias: exit)`

var interactiveCmd = &cobra.Command{
	Use:     "interactive",
	Aliases: []string{"i"},
	Short:   "Starts an interactive session for searching and battling users",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		r := &repl{
			cmd:     cmd,
			app:     a,
			session: a.newSession(),
			out:     cmd.OutOrStdout(),
		}
		return r.run(cmd.InOrStdin())
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}

type repl struct {
	cmd     *cobra.Command
	app     *app
	session *usecase.Session
	out     io.Writer
}

func (r *repl) run(in io.Reader) error {
	fmt.Fprintln(r.out, "githunter interactive mode. Type 'help' for commands.")
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(r.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(r.out)
			return scanner.Err()
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if done := r.dispatch(fields[0], fields[1:]); done {
			return nil
		}
	}
}

// dispatch runs one command and reports whether the session should end.
func (r *repl) dispatch(name string, args []string) bool {
	var err error
	switch strings.ToLower(name) {
	case "search", "s":
		err = r.search(args)
	case "add":
		err = r.add()
	case "remove", "rm":
		err = r.remove(args)
	case "compare":
		r.compare()
	case "battle":
		err = r.battle(args)
	case "repos":
		err = r.repos(args)
	case "clear":
		r.clear()
	case "history":
		err = r.history(args)
	case "export":
		err = r.export(args)
	case "share":
		err = r.share()
	case "trending":
		r.trending()
	case "help", "?":
		fmt.Fprintln(r.out, interactiveHelp)
	case "quit", "exit", "q":
		return true
	default:
		fmt.Fprintf(r.out, "Unknown command %q. Type 'help' for commands.\n", name)
	}
	if err != nil {
		fmt.Fprintln(r.out, "Error:", userMessage(err))
	}
	return false
}

func (r *repl) current() (*domain.Profile, error) {
	profile, ok := r.session.Current()
	if !ok {
		return nil, errors.New("search for a user first")
	}
	return profile, nil
}

func (r *repl) search(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: search <user>")
	}
	profile, err := r.session.Search(r.cmd.Context(), args[0])
	if err != nil {
		return err
	}
	report := metrics.Analyze(profile.User, profile.Repos, time.Now())

	fmt.Fprintf(r.out, "%s (@%s)  tier: %s\n", profile.User.DisplayName(), profile.User.Login, report.Tier)
	fmt.Fprintf(r.out, "  repos %d  stars %d  forks %d  followers %d\n",
		report.RepoCount, report.TotalStars, report.TotalForks, profile.User.Followers)
	b := report.Breakdown
	fmt.Fprintf(r.out, "  original %d  forked %d  archived %d\n", b.Original, b.Forked, b.Archived)
	s := report.Scores
	fmt.Fprintf(r.out, "  activity %.0f  impact %.0f  quality %.0f  consistency %.0f  trending %.0f  innovation %.0f\n",
		s.Activity, s.Impact, s.Quality, s.Consistency, s.Trending, s.Innovation)
	if len(report.Languages) > 0 {
		top := report.Languages
		if len(top) > 5 {
			top = top[:5]
		}
		names := make([]string, len(top))
		for i, l := range top {
			names[i] = fmt.Sprintf("%s (%d)", l.Name, l.Count)
		}
		fmt.Fprintf(r.out, "  languages: %s\n", strings.Join(names, ", "))
	}
	fmt.Fprintf(r.out, "  achievements: %d/%d (%.0f%%)\n",
		report.AchievedCount, len(report.Achievements), report.CompletionRate)
	badges := []string{}
	for _, badge := range report.Badges {
		if badge.Unlocked {
			badges = append(badges, badge.Name)
		}
	}
	if len(badges) > 0 {
		fmt.Fprintf(r.out, "  badges: %s\n", strings.Join(badges, ", "))
	}
	for _, insight := range report.Insights {
		fmt.Fprintf(r.out, "  * %s: %s\n", insight.Title, insight.Description)
	}
	return nil
}

func (r *repl) add() error {
	profile, err := r.current()
	if err != nil {
		return err
	}
	if err := r.session.AddCurrentToComparison(); err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Added %s to the battle (%d/%d)\n",
		profile.User.Login, len(r.session.ComparisonLogins()), battle.MaxParticipants)
	return nil
}

func (r *repl) remove(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: remove <user>")
	}
	if !r.session.RemoveFromComparison(args[0]) {
		return fmt.Errorf("%s is not in the battle", args[0])
	}
	fmt.Fprintf(r.out, "Removed %s\n", args[0])
	return nil
}

func (r *repl) compare() {
	logins := r.session.ComparisonLogins()
	if len(logins) == 0 {
		fmt.Fprintln(r.out, "The battle is empty. Use 'add' after a search.")
		return
	}
	fmt.Fprintf(r.out, "In the battle: %s\n", strings.Join(logins, ", "))
}

func (r *repl) battle(args []string) error {
	metric := battle.MetricOverall
	if len(args) > 0 {
		metric = strings.Join(args, " ")
	}
	summary, err := r.session.Battle(metric, time.Now())
	if errors.Is(err, battle.ErrUnknownMetric) {
		return fmt.Errorf("unknown metric %q, choose one of: %s", metric, strings.Join(battle.MetricNames(), ", "))
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(r.out, "Ranked by %s:\n", summary.RankedBy)
	for i, s := range summary.Ranking {
		v, _ := s.Value(summary.RankedBy)
		fmt.Fprintf(r.out, "  %d. %-20s %10.1f\n", i+1, s.User.Login, v)
	}
	for _, leader := range summary.Leaders {
		fmt.Fprintf(r.out, "  %-16s leader: %s (%.1f)\n", leader.Metric, leader.Login, leader.Value)
	}
	fmt.Fprintf(r.out, "Champion: %s  (%d contenders, %d combined stars)\n",
		summary.Champion.User.Login, summary.Participants, summary.CombinedStars)
	return nil
}

func (r *repl) repos(args []string) error {
	profile, err := r.current()
	if err != nil {
		return err
	}
	filter := metrics.RepoFilter{SortBy: metrics.SortUpdated}
	if len(args) > 0 {
		filter.SortBy = metrics.ParseSortKey(args[0])
	}
	if len(args) > 1 {
		filter.Language = args[1]
	}
	if len(args) > 2 {
		filter.Query = strings.Join(args[2:], " ")
	}
	repos := metrics.FilterRepos(profile.Repos, filter)
	if len(repos) == 0 {
		fmt.Fprintln(r.out, "No repositories match.")
		return nil
	}
	for _, repo := range repos {
		language := repo.Language
		if language == "" {
			language = "-"
		}
		fmt.Fprintf(r.out, "  %-30s %-12s stars %-6d forks %-6d updated %s\n",
			repo.Name, language, repo.StargazersCount, repo.ForksCount, repo.UpdatedAt.Format(time.DateOnly))
	}
	return nil
}

func (r *repl) history(args []string) error {
	if len(args) > 0 {
		if !strings.EqualFold(args[0], "clear") {
			return errors.New("usage: history [clear]")
		}
		if err := r.session.ClearHistory(); err != nil {
			return err
		}
		fmt.Fprintln(r.out, "Search history cleared")
		return nil
	}
	entries := r.session.History()
	if len(entries) == 0 {
		fmt.Fprintln(r.out, "No recent searches.")
		return nil
	}
	fmt.Fprintf(r.out, "Recent: %s\n", strings.Join(entries, ", "))
	return nil
}

func (r *repl) clear() {
	r.session.ClearComparison()
	cache := r.app.gateway.Cache()
	dropped := cache.Len()
	cache.Purge()
	fmt.Fprintf(r.out, "Battle cleared, %d cached responses dropped\n", dropped)
}

func (r *repl) export(args []string) error {
	profile, err := r.current()
	if err != nil {
		return err
	}
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	path, err := export.WriteFile(dir, export.Build(*profile, time.Now()))
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Data exported to %s\n", path)
	return nil
}

func (r *repl) share() error {
	profile, err := r.current()
	if err != nil {
		return err
	}
	fmt.Fprintln(r.out, export.ShareLink(r.app.cfg.ShareBaseURL, profile.User.Login))
	return nil
}

func (r *repl) trending() {
	for _, d := range trending.Developers {
		fmt.Fprintf(r.out, "  %-16s %-22s %s\n", d.Login, d.Name, d.Category)
	}
	fmt.Fprintf(r.out, "Try: %s\n", strings.Join(trending.SampleSearches, ", "))
}
