package metrics

import (
	"time"

	"github.com/naka-gawa/githunter/internal/domain"
)

// Progress is a bounded progress pair; Current never exceeds Max.
type Progress struct {
	Current int `json:"current"`
	Max     int `json:"max"`
}

// Achievement is the evaluation of one badge predicate.
type Achievement struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Achieved    bool      `json:"achieved"`
	Progress    *Progress `json:"progress,omitempty"`
}

// Tier ranks a developer by how many achievements they unlocked.
type Tier string

const (
	TierLegendary Tier = "Legendary"
	TierExpert    Tier = "Expert"
	TierAdvanced  Tier = "Advanced"
	TierNovice    Tier = "Novice"
	TierBeginner  Tier = "Beginner"
)

const (
	starCollectorGoal = 100
	viralRepoGoal     = 50
	polyglotGoal      = 5
	prolificGoal      = 20
	influencerGoal    = 100
	forkMasterGoal    = 50
	veteranYears      = 3
)

func progress(current, goal int) *Progress {
	return &Progress{Current: min(current, goal), Max: goal}
}

// Achievements evaluates the fixed badge list in display order.
func Achievements(user domain.User, repos []domain.Repository, now time.Time) []Achievement {
	totalStars := TotalStars(repos)
	totalForks := TotalForks(repos)
	languages := DistinctLanguages(repos)
	topStars := 0
	if top, ok := MostStarred(repos); ok {
		topStars = top.StargazersCount
	}
	recent := countUpdatedSince(repos, monthsAgo(now, RecentMonths)) > 0

	return []Achievement{
		{
			ID:          "stargazer",
			Title:       "Star Collector",
			Description: "Earned 100+ stars across repositories",
			Achieved:    totalStars >= starCollectorGoal,
			Progress:    progress(totalStars, starCollectorGoal),
		},
		{
			ID:          "popular",
			Title:       "Viral Developer",
			Description: "Has a repository with 50+ stars",
			Achieved:    topStars >= viralRepoGoal,
		},
		{
			ID:          "polyglot",
			Title:       "Polyglot Programmer",
			Description: "Codes in 5+ programming languages",
			Achieved:    languages >= polyglotGoal,
			Progress:    progress(languages, polyglotGoal),
		},
		{
			ID:          "prolific",
			Title:       "Prolific Creator",
			Description: "Created 20+ public repositories",
			Achieved:    user.PublicRepos >= prolificGoal,
			Progress:    progress(user.PublicRepos, prolificGoal),
		},
		{
			ID:          "influencer",
			Title:       "Community Leader",
			Description: "Has 100+ followers",
			Achieved:    user.Followers >= influencerGoal,
			Progress:    progress(user.Followers, influencerGoal),
		},
		{
			ID:          "forked",
			Title:       "Fork Master",
			Description: "Projects forked 50+ times total",
			Achieved:    totalForks >= forkMasterGoal,
			Progress:    progress(totalForks, forkMasterGoal),
		},
		{
			ID:          "veteran",
			Title:       "GitHub Veteran",
			Description: "Account older than 3 years",
			Achieved:    AccountAgeYears(user, now) >= veteranYears,
		},
		{
			ID:          "trendy",
			Title:       "Trending Developer",
			Description: "Has recent active repositories",
			Achieved:    recent,
		},
	}
}

// Unlocked returns the achieved subset, preserving order.
func Unlocked(achievements []Achievement) []Achievement {
	unlocked := make([]Achievement, 0, len(achievements))
	for _, a := range achievements {
		if a.Achieved {
			unlocked = append(unlocked, a)
		}
	}
	return unlocked
}

// CompletionRate is the percentage of achievements unlocked.
func CompletionRate(achievements []Achievement) float64 {
	return ratio(len(Unlocked(achievements)), len(achievements)) * 100
}

func TierFor(achieved int) Tier {
	switch {
	case achieved >= 7:
		return TierLegendary
	case achieved >= 5:
		return TierExpert
	case achieved >= 3:
		return TierAdvanced
	case achieved >= 1:
		return TierNovice
	default:
		return TierBeginner
	}
}

// MostStarred returns the repository with the most stars; the first one wins
// a tie. ok is false for an empty list.
func MostStarred(repos []domain.Repository) (domain.Repository, bool) {
	if len(repos) == 0 {
		return domain.Repository{}, false
	}
	best := repos[0]
	for _, repo := range repos[1:] {
		if repo.StargazersCount > best.StargazersCount {
			best = repo
		}
	}
	return best, true
}
