package metrics

import (
	"time"

	"github.com/naka-gawa/githunter/internal/domain"
)

// Scores holds the named profile scores, each in [0, 100].
type Scores struct {
	Activity    float64 `json:"activity"`
	Impact      float64 `json:"impact"`
	Quality     float64 `json:"quality"`
	Consistency float64 `json:"consistency"`
	Trending    float64 `json:"trending"`
	Innovation  float64 `json:"innovation"`
}

// ActivityRatio is the fraction of repositories updated within the last
// windowMonths months. It is 0 for an empty list.
func ActivityRatio(repos []domain.Repository, now time.Time, windowMonths int) float64 {
	return ratio(countUpdatedSince(repos, monthsAgo(now, windowMonths)), len(repos))
}

// ActivityScore is the six-month activity ratio as a percentage.
func ActivityScore(repos []domain.Repository, now time.Time) float64 {
	return clamp(ActivityRatio(repos, now, DefaultActivityWindowMonths) * 100)
}

// ImpactScore blends stars, forks, followers and repository count.
func ImpactScore(user domain.User, repos []domain.Repository) float64 {
	weighted := 0.4*float64(TotalStars(repos)) +
		0.3*float64(TotalForks(repos)) +
		0.2*float64(user.Followers) +
		0.1*float64(len(repos))
	return clamp(weighted / 10)
}

// QualityScore averages a per-repository score over stars, forks, whether a
// description exists and whether the repository was recently active.
func QualityScore(repos []domain.Repository, now time.Time) float64 {
	perRepo := make([]float64, len(repos))
	for i, repo := range repos {
		score := 0.4*float64(repo.StargazersCount) + 0.3*float64(repo.ForksCount)
		if repo.Description != "" {
			score += 0.2
		}
		if isRecentlyActive(repo, now) {
			score += 0.1
		}
		perRepo[i] = score
	}
	return clamp(mean(perRepo))
}

// ConsistencyScore is the percentage of repositories updated in the last
// three months.
func ConsistencyScore(repos []domain.Repository, now time.Time) float64 {
	return clamp(ratio(countUpdatedSince(repos, monthsAgo(now, RecentMonths)), len(repos)) * 100)
}

// TrendingScore is a tenth of the stars earned by repositories created in the
// last year.
func TrendingScore(repos []domain.Repository, now time.Time) float64 {
	cutoff := monthsAgo(now, TrendingMonths)
	stars := 0
	for _, repo := range repos {
		if repo.CreatedSince(cutoff) {
			stars += repo.StargazersCount
		}
	}
	return clamp(float64(stars) / 10)
}

// InnovationScore rewards language breadth and, slightly, repository size.
func InnovationScore(repos []domain.Repository) float64 {
	if len(repos) == 0 {
		return 0
	}
	return clamp(10*float64(DistinctLanguages(repos)) + mean(sizeValues(repos))/1000)
}

// ComputeScores evaluates every named score.
func ComputeScores(user domain.User, repos []domain.Repository, now time.Time) Scores {
	return Scores{
		Activity:    ActivityScore(repos, now),
		Impact:      ImpactScore(user, repos),
		Quality:     QualityScore(repos, now),
		Consistency: ConsistencyScore(repos, now),
		Trending:    TrendingScore(repos, now),
		Innovation:  InnovationScore(repos),
	}
}
