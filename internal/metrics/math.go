package metrics

import (
	"time"

	"github.com/montanaflynn/stats"

	"github.com/naka-gawa/githunter/internal/domain"
)

const (
	maxScore = 100.0

	// RecentMonths is the window used for "recently active".
	RecentMonths = 3
	// DefaultActivityWindowMonths is the window used by the activity ratio.
	DefaultActivityWindowMonths = 6
	// TrendingMonths is the creation window for trending stars.
	TrendingMonths = 12

	hoursPerYear = 24 * 365
)

// clamp bounds a score to [0, 100].
func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > maxScore {
		return maxScore
	}
	return v
}

// mean is stats.Mean with empty input defined as 0.
func mean(values []float64) float64 {
	m, err := stats.Mean(stats.Float64Data(values))
	if err != nil {
		return 0
	}
	return m
}

func median(values []float64) float64 {
	m, err := stats.Median(stats.Float64Data(values))
	if err != nil {
		return 0
	}
	return m
}

func ratio(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole)
}

func monthsAgo(now time.Time, months int) time.Time {
	return now.AddDate(0, -months, 0)
}

func countUpdatedSince(repos []domain.Repository, cutoff time.Time) int {
	n := 0
	for _, repo := range repos {
		if repo.UpdatedSince(cutoff) {
			n++
		}
	}
	return n
}

func isRecentlyActive(repo domain.Repository, now time.Time) bool {
	return repo.UpdatedSince(monthsAgo(now, RecentMonths))
}

// AccountAgeYears returns the number of whole 365-day years since the account
// was created.
func AccountAgeYears(user domain.User, now time.Time) int {
	if user.CreatedAt.IsZero() || now.Before(user.CreatedAt) {
		return 0
	}
	return int(now.Sub(user.CreatedAt).Hours() / hoursPerYear)
}

func starValues(repos []domain.Repository) []float64 {
	values := make([]float64, len(repos))
	for i, repo := range repos {
		values[i] = float64(repo.StargazersCount)
	}
	return values
}

func forkValues(repos []domain.Repository) []float64 {
	values := make([]float64, len(repos))
	for i, repo := range repos {
		values[i] = float64(repo.ForksCount)
	}
	return values
}

func sizeValues(repos []domain.Repository) []float64 {
	values := make([]float64, len(repos))
	for i, repo := range repos {
		values[i] = float64(repo.Size)
	}
	return values
}
