package metrics

import (
	"fmt"
	"math"
	"time"

	"github.com/naka-gawa/githunter/internal/domain"
)

type InsightType string

const (
	InsightStrength       InsightType = "strength"
	InsightOpportunity    InsightType = "opportunity"
	InsightTrend          InsightType = "trend"
	InsightRecommendation InsightType = "recommendation"
)

// MaxInsights caps the number of insights returned.
const MaxInsights = 6

// Insight is a rule-based observation about a profile.
type Insight struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Type        InsightType `json:"type"`
	Confidence  float64     `json:"confidence"`
}

const largeRepoSizeKB = 10000

// Insights evaluates the insight rules in a fixed order.
func Insights(user domain.User, repos []domain.Repository, now time.Time) []Insight {
	insights := make([]Insight, 0, MaxInsights+1)
	n := len(repos)
	avgStars := mean(starValues(repos))
	recent := countUpdatedSince(repos, monthsAgo(now, DefaultActivityWindowMonths))
	counts := languageCounts(repos)
	topLanguage, topCount := dominantLanguage(repos)
	followersPerRepo := float64(user.Followers) / float64(max(user.PublicRepos, 1))

	if avgStars > 10 {
		insights = append(insights, Insight{
			ID:          "high-quality",
			Title:       "High-Quality Projects",
			Description: fmt.Sprintf("Your repositories average %.1f stars, indicating strong project quality and community appeal.", avgStars),
			Type:        InsightStrength,
			Confidence:  math.Min(95, 70+avgStars*2),
		})
	}

	if float64(recent) < float64(n)*0.3 {
		insights = append(insights, Insight{
			ID:          "increase-activity",
			Title:       "Activity Opportunity",
			Description: fmt.Sprintf("Only %.0f%% of your repos have recent activity. Consider updating or archiving inactive projects.", math.Round(ratio(recent, n)*100)),
			Type:        InsightOpportunity,
			Confidence:  85,
		})
	}

	if topLanguage != "" && float64(topCount) > float64(n)*0.4 {
		insights = append(insights, Insight{
			ID:          "language-expert",
			Title:       "Language Specialist",
			Description: fmt.Sprintf("You're specializing in %s (%.0f%% of repos). This creates strong domain expertise.", topLanguage, math.Round(ratio(topCount, n)*100)),
			Type:        InsightTrend,
			Confidence:  90,
		})
	}

	if followersPerRepo < 2 {
		insights = append(insights, Insight{
			ID:          "grow-community",
			Title:       "Community Growth",
			Description: fmt.Sprintf("Your follower-to-repo ratio is %.1f. Consider sharing your work more actively to grow your developer community.", followersPerRepo),
			Type:        InsightRecommendation,
			Confidence:  75,
		})
	}

	if len(counts) >= polyglotGoal {
		insights = append(insights, Insight{
			ID:          "polyglot-advantage",
			Title:       "Polyglot Advantage",
			Description: fmt.Sprintf("You work with %d programming languages, showcasing versatility and adaptability.", len(counts)),
			Type:        InsightTrend,
			Confidence:  88,
		})
	}

	large := 0
	for _, repo := range repos {
		if repo.Size > largeRepoSizeKB {
			large++
		}
	}
	if float64(large) > float64(n)*0.3 {
		insights = append(insights, Insight{
			ID:          "repo-optimization",
			Title:       "Repository Optimization",
			Description: fmt.Sprintf("%d repositories are quite large. Consider optimizing code structure and removing unnecessary files.", large),
			Type:        InsightOpportunity,
			Confidence:  70,
		})
	}

	reposPerYear := float64(user.PublicRepos) / float64(max(AccountAgeYears(user, now), 1))
	if reposPerYear > 5 {
		insights = append(insights, Insight{
			ID:          "prolific-creator",
			Title:       "Prolific Creator",
			Description: fmt.Sprintf("You create an average of %.1f repositories per year, showing consistent productivity and creativity.", reposPerYear),
			Type:        InsightStrength,
			Confidence:  82,
		})
	}

	if len(insights) > MaxInsights {
		insights = insights[:MaxInsights]
	}
	return insights
}

// InsightConfidence is the mean confidence of the insights, 0 when there are none.
func InsightConfidence(insights []Insight) float64 {
	values := make([]float64, len(insights))
	for i, in := range insights {
		values[i] = in.Confidence
	}
	return mean(values)
}
