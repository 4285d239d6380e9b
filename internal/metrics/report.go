package metrics

import (
	"math"
	"time"

	"github.com/naka-gawa/githunter/internal/domain"
)

// Highlights are the headline facts of a profile.
type Highlights struct {
	MostStarred      *domain.Repository `json:"most_starred,omitempty"`
	FavoriteLanguage string             `json:"favorite_language"`
	InfluencePercent int                `json:"influence_percent"`
	AverageStars     float64            `json:"average_stars"`
	MedianStars      float64            `json:"median_stars"`
	AccountAgeYears  int                `json:"account_age_years"`
}

// Report bundles every derived value for one profile.
type Report struct {
	User              domain.User                       `json:"user"`
	RepoCount         int                               `json:"repo_count"`
	TotalStars        int                               `json:"total_stars"`
	TotalForks        int                               `json:"total_forks"`
	Languages         []LanguageCount                   `json:"languages"`
	Scores            Scores                            `json:"scores"`
	Radar             []RadarAxis                       `json:"radar"`
	Achievements      []Achievement                     `json:"achievements"`
	AchievedCount     int                               `json:"achieved_count"`
	CompletionRate    float64                           `json:"completion_rate"`
	Tier              Tier                              `json:"tier"`
	Insights          []Insight                         `json:"insights"`
	InsightConfidence float64                           `json:"insight_confidence"`
	Highlights        Highlights                        `json:"highlights"`
	Breakdown         Breakdown                         `json:"breakdown"`
	Growth            []GrowthPoint                     `json:"growth"`
	Badges            []Badge                           `json:"badges"`
	TopRepos          map[TopMetric][]domain.Repository `json:"top_repos"`
	GeneratedAt       time.Time                         `json:"generated_at"`
}

// Analyze computes the full report for a user and their repositories.
func Analyze(user domain.User, repos []domain.Repository, now time.Time) Report {
	achievements := Achievements(user, repos, now)
	achieved := len(Unlocked(achievements))
	insights := Insights(user, repos, now)
	languages := SortedLanguages(LanguageHistogram(repos))
	scores := ComputeScores(user, repos, now)

	return Report{
		User:              user,
		RepoCount:         len(repos),
		TotalStars:        TotalStars(repos),
		TotalForks:        TotalForks(repos),
		Languages:         languages,
		Scores:            scores,
		Radar:             Radar(repos, now),
		Achievements:      achievements,
		AchievedCount:     achieved,
		CompletionRate:    CompletionRate(achievements),
		Tier:              TierFor(achieved),
		Insights:          insights,
		InsightConfidence: InsightConfidence(insights),
		Highlights:        highlights(user, repos, languages, now),
		Breakdown:         RepoBreakdown(repos),
		Growth:            RepoGrowth(repos),
		Badges:            ScoreBadges(repos, scores),
		TopRepos:          TopLists(repos, now),
		GeneratedAt:       now,
	}
}

func highlights(user domain.User, repos []domain.Repository, languages []LanguageCount, now time.Time) Highlights {
	h := Highlights{
		InfluencePercent: int(math.Round(float64(user.Followers) / float64(max(user.Following, 1)) * 100)),
		AverageStars:     mean(starValues(repos)),
		MedianStars:      median(starValues(repos)),
		AccountAgeYears:  AccountAgeYears(user, now),
	}
	if top, ok := MostStarred(repos); ok {
		h.MostStarred = &top
	}
	if len(languages) > 0 {
		h.FavoriteLanguage = languages[0].Name
	}
	return h
}
