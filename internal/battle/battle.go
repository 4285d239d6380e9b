package battle

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/naka-gawa/githunter/internal/domain"
	"github.com/naka-gawa/githunter/internal/metrics"
)

// MinParticipants is the smallest set that makes a battle.
const MinParticipants = 2

var (
	ErrNotEnoughParticipants = errors.New("add at least 2 developers to start a battle")
	ErrUnknownMetric         = errors.New("unknown battle metric")
)

// Metric names. MetricOverall ranks by the overall score.
const (
	MetricOverall         = "overall"
	MetricStarPower       = "Star Power"
	MetricForkForce       = "Fork Force"
	MetricSocialInfluence = "Social Influence"
	MetricRepositoryCount = "Repository Count"
	MetricActivityScore   = "Activity Score"
)

type metric struct {
	name      string
	calculate func(user domain.User, repos []domain.Repository, now time.Time) float64
}

var battleMetrics = []metric{
	{
		name: MetricStarPower,
		calculate: func(_ domain.User, repos []domain.Repository, _ time.Time) float64 {
			return float64(metrics.TotalStars(repos))
		},
	},
	{
		name: MetricForkForce,
		calculate: func(_ domain.User, repos []domain.Repository, _ time.Time) float64 {
			return float64(metrics.TotalForks(repos))
		},
	},
	{
		name: MetricSocialInfluence,
		calculate: func(user domain.User, _ []domain.Repository, _ time.Time) float64 {
			return float64(user.Followers)
		},
	},
	{
		name: MetricRepositoryCount,
		calculate: func(user domain.User, _ []domain.Repository, _ time.Time) float64 {
			return float64(user.PublicRepos)
		},
	},
	{
		name: MetricActivityScore,
		calculate: func(_ domain.User, repos []domain.Repository, now time.Time) float64 {
			return math.Round(metrics.ActivityRatio(repos, now, metrics.DefaultActivityWindowMonths) * 100)
		},
	},
}

// MetricNames lists the selectable metrics, overall first.
func MetricNames() []string {
	names := []string{MetricOverall}
	for _, m := range battleMetrics {
		names = append(names, m.name)
	}
	return names
}

// MetricValue is the value of one named metric for a participant.
type MetricValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Stats is the per-participant aggregate of a battle.
type Stats struct {
	User         domain.User         `json:"user"`
	Repos        []domain.Repository `json:"-"`
	OverallScore float64             `json:"overall_score"`
	Metrics      []MetricValue       `json:"metrics"`
}

// Value returns the named metric, or the overall score for MetricOverall.
func (s Stats) Value(name string) (float64, bool) {
	if name == MetricOverall {
		return s.OverallScore, true
	}
	for _, m := range s.Metrics {
		if m.Name == name {
			return m.Value, true
		}
	}
	return 0, false
}

// OverallScore weights stars, forks, followers and public repository count.
// It is a different formula from metrics.ImpactScore.
func OverallScore(user domain.User, repos []domain.Repository) float64 {
	return 0.3*float64(metrics.TotalStars(repos)) +
		0.2*float64(metrics.TotalForks(repos)) +
		0.3*float64(user.Followers) +
		0.2*float64(user.PublicRepos)
}

// Compute evaluates every metric for each participant, keeping input order.
func Compute(participants []Participant, now time.Time) []Stats {
	out := make([]Stats, 0, len(participants))
	for _, p := range participants {
		values := make([]MetricValue, 0, len(battleMetrics))
		for _, m := range battleMetrics {
			values = append(values, MetricValue{Name: m.name, Value: m.calculate(p.User, p.Repos, now)})
		}
		out = append(out, Stats{
			User:         p.User,
			Repos:        p.Repos,
			OverallScore: OverallScore(p.User, p.Repos),
			Metrics:      values,
		})
	}
	return out
}

func knownMetric(name string) bool {
	for _, n := range MetricNames() {
		if n == name {
			return true
		}
	}
	return false
}

// RankBy returns a copy of stats sorted descending by the named metric.
// Ties keep input order.
func RankBy(name string, stats []Stats) ([]Stats, error) {
	if !knownMetric(name) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMetric, name)
	}
	ranked := make([]Stats, len(stats))
	copy(ranked, stats)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, _ := ranked[i].Value(name)
		b, _ := ranked[j].Value(name)
		return a > b
	})
	return ranked, nil
}

// Winner returns the entry with the largest overall score.
func Winner(stats []Stats) (Stats, error) {
	return WinnerBy(MetricOverall, stats)
}

// WinnerBy returns the first entry holding the strict maximum of the named
// metric. A battle needs at least two participants.
func WinnerBy(name string, stats []Stats) (Stats, error) {
	if !knownMetric(name) {
		return Stats{}, fmt.Errorf("%w: %q", ErrUnknownMetric, name)
	}
	if len(stats) < MinParticipants {
		return Stats{}, ErrNotEnoughParticipants
	}
	best := stats[0]
	bestValue, _ := best.Value(name)
	for _, s := range stats[1:] {
		if v, _ := s.Value(name); v > bestValue {
			best, bestValue = s, v
		}
	}
	return best, nil
}

// Leader is the winner of one metric.
type Leader struct {
	Metric string  `json:"metric"`
	Login  string  `json:"login"`
	Value  float64 `json:"value"`
}

// Summary is the outcome of a battle.
type Summary struct {
	Champion      Stats    `json:"champion"`
	Participants  int      `json:"participants"`
	CombinedStars int      `json:"combined_stars"`
	Leaders       []Leader `json:"leaders"`
	Ranking       []Stats  `json:"ranking"`
	RankedBy      string   `json:"ranked_by"`
}

// Summarize ranks by the named metric and collects the per-metric leaders.
func Summarize(name string, stats []Stats) (Summary, error) {
	champion, err := Winner(stats)
	if err != nil {
		return Summary{}, err
	}
	ranking, err := RankBy(name, stats)
	if err != nil {
		return Summary{}, err
	}

	combined := 0
	for _, s := range stats {
		combined += metrics.TotalStars(s.Repos)
	}

	leaders := make([]Leader, 0, len(battleMetrics)+1)
	for _, n := range MetricNames() {
		w, err := WinnerBy(n, stats)
		if err != nil {
			return Summary{}, err
		}
		v, _ := w.Value(n)
		leaders = append(leaders, Leader{Metric: n, Login: w.User.Login, Value: v})
	}

	return Summary{
		Champion:      champion,
		Participants:  len(stats),
		CombinedStars: combined,
		Leaders:       leaders,
		Ranking:       ranking,
		RankedBy:      name,
	}, nil
}
