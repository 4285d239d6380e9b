package metrics

import (
	"time"

	"github.com/naka-gawa/githunter/internal/domain"
)

// RadarAxis is one dimension of the performance radar, in [0, FullMark].
type RadarAxis struct {
	Subject  string  `json:"subject"`
	Value    float64 `json:"value"`
	FullMark float64 `json:"full_mark"`
}

const consistencyMonths = 12

// Radar computes the six performance axes.
func Radar(repos []domain.Repository, now time.Time) []RadarAxis {
	avgStars := mean(starValues(repos))
	avgForks := mean(forkValues(repos))
	recent := ratio(countUpdatedSince(repos, monthsAgo(now, RecentMonths)), len(repos))

	return []RadarAxis{
		{Subject: "Stars", Value: clamp(avgStars * 10), FullMark: maxScore},
		{Subject: "Forks", Value: clamp(avgForks * 20), FullMark: maxScore},
		{Subject: "Activity", Value: clamp(recent * 100), FullMark: maxScore},
		{Subject: "Diversity", Value: clamp(float64(DistinctLanguages(repos)) * 12.5), FullMark: maxScore},
		{Subject: "Consistency", Value: UpdateCadence(repos, now), FullMark: maxScore},
		{Subject: "Impact", Value: clamp((avgStars + avgForks) * 5), FullMark: maxScore},
	}
}

// UpdateCadence is the percentage of the last twelve calendar months,
// the current one included, in which at least one repository was updated.
func UpdateCadence(repos []domain.Repository, now time.Time) float64 {
	current := monthIndex(now)
	active := make(map[int]struct{})
	for _, repo := range repos {
		if repo.UpdatedAt.IsZero() || repo.UpdatedAt.After(now) {
			continue
		}
		offset := current - monthIndex(repo.UpdatedAt)
		if offset >= 0 && offset < consistencyMonths {
			active[offset] = struct{}{}
		}
	}
	return clamp(float64(len(active)) / consistencyMonths * 100)
}

func monthIndex(t time.Time) int {
	t = t.UTC()
	return t.Year()*12 + int(t.Month()) - 1
}
