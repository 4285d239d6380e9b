package metrics

import (
	"sort"
	"time"

	"github.com/naka-gawa/githunter/internal/domain"
)

// GrowthWindow is how many of the newest repositories the growth timeline
// keeps.
const GrowthWindow = 12

// TopListSize is the length of each top-repository list in a report.
const TopListSize = 5

// Breakdown splits the repository list by origin and state.
type Breakdown struct {
	Total    int `json:"total"`
	Original int `json:"original"`
	Forked   int `json:"forked"`
	Archived int `json:"archived"`
}

// RepoBreakdown counts original, forked and archived repositories. Archived
// overlaps the other two.
func RepoBreakdown(repos []domain.Repository) Breakdown {
	b := Breakdown{Total: len(repos)}
	for _, repo := range repos {
		if repo.Fork {
			b.Forked++
		} else {
			b.Original++
		}
		if repo.Archived {
			b.Archived++
		}
	}
	return b
}

// GrowthPoint is one repository on the creation timeline together with the
// running repository count at that point.
type GrowthPoint struct {
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	Repos     int    `json:"repos"`
	Stars     int    `json:"stars"`
}

// RepoGrowth orders repositories by creation time and returns the last
// GrowthWindow points of the running count.
func RepoGrowth(repos []domain.Repository) []GrowthPoint {
	sorted := make([]domain.Repository, len(repos))
	copy(sorted, repos)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	points := make([]GrowthPoint, 0, len(sorted))
	for i, repo := range sorted {
		points = append(points, GrowthPoint{
			Name:      repo.Name,
			CreatedAt: repo.CreatedAt.Format("2006-01-02"),
			Repos:     i + 1,
			Stars:     repo.StargazersCount,
		})
	}
	if len(points) > GrowthWindow {
		points = points[len(points)-GrowthWindow:]
	}
	return points
}

// Badge is a threshold over the aggregate totals and the named scores.
type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Unlocked    bool   `json:"unlocked"`
}

// ScoreBadges evaluates the score badges in display order.
func ScoreBadges(repos []domain.Repository, scores Scores) []Badge {
	return []Badge{
		{ID: "star-collector", Name: "Star Collector", Description: "100+ total stars", Unlocked: TotalStars(repos) >= 100},
		{ID: "fork-master", Name: "Fork Master", Description: "50+ total forks", Unlocked: TotalForks(repos) >= 50},
		{ID: "consistency-king", Name: "Consistency King", Description: "80%+ consistency", Unlocked: scores.Consistency >= 80},
		{ID: "innovation-pioneer", Name: "Innovation Pioneer", Description: "70%+ innovation", Unlocked: scores.Innovation >= 70},
		{ID: "trending-developer", Name: "Trending Developer", Description: "60%+ trending", Unlocked: scores.Trending >= 60},
		{ID: "quality-focused", Name: "Quality Focused", Description: "75%+ avg quality", Unlocked: scores.Quality >= 75},
		{ID: "multi-language", Name: "Multi-Language", Description: "5+ languages", Unlocked: DistinctLanguages(repos) >= 5},
		{ID: "prolific-creator", Name: "Prolific Creator", Description: "20+ repositories", Unlocked: len(repos) >= 20},
	}
}

// TopLists returns the TopListSize best repositories for every TopMetric.
func TopLists(repos []domain.Repository, now time.Time) map[TopMetric][]domain.Repository {
	lists := make(map[TopMetric][]domain.Repository, 4)
	for _, by := range []TopMetric{TopByStars, TopByForks, TopByActivity, TopByImpact} {
		lists[by] = TopRepos(repos, by, TopListSize, now)
	}
	return lists
}

// dominantLanguage returns the most used language across all repositories.
// A tie goes to the language seen first.
func dominantLanguage(repos []domain.Repository) (string, int) {
	counts := languageCounts(repos)
	best, bestCount := "", 0
	for _, repo := range repos {
		if c := counts[repo.Language]; repo.Language != "" && c > bestCount {
			best, bestCount = repo.Language, c
		}
	}
	return best, bestCount
}
