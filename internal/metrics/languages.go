// Package metrics computes derived analytics from a GitHub user and their
// repositories. Every function is pure: the current time is passed in
// explicitly and inputs are never mutated.
package metrics

import (
	"sort"

	"github.com/naka-gawa/githunter/internal/domain"
)

// LanguageCount is one entry of a sorted language histogram.
type LanguageCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// LanguageHistogram counts non-fork repositories per language. Repositories
// without a language are skipped.
func LanguageHistogram(repos []domain.Repository) map[string]int {
	hist := make(map[string]int)
	for _, repo := range repos {
		if repo.Fork || repo.Language == "" {
			continue
		}
		hist[repo.Language]++
	}
	return hist
}

// SortedLanguages orders a histogram by count descending, then by name.
func SortedLanguages(hist map[string]int) []LanguageCount {
	sorted := make([]LanguageCount, 0, len(hist))
	for name, count := range hist {
		sorted = append(sorted, LanguageCount{Name: name, Count: count})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Count != sorted[j].Count {
			return sorted[i].Count > sorted[j].Count
		}
		return sorted[i].Name < sorted[j].Name
	})
	return sorted
}

// DistinctLanguages returns the number of languages across all repositories,
// forks included.
func DistinctLanguages(repos []domain.Repository) int {
	seen := make(map[string]struct{})
	for _, repo := range repos {
		if repo.Language != "" {
			seen[repo.Language] = struct{}{}
		}
	}
	return len(seen)
}

// languageCounts counts every repository with a language, forks included.
func languageCounts(repos []domain.Repository) map[string]int {
	counts := make(map[string]int)
	for _, repo := range repos {
		if repo.Language != "" {
			counts[repo.Language]++
		}
	}
	return counts
}

func TotalStars(repos []domain.Repository) int {
	total := 0
	for _, repo := range repos {
		total += repo.StargazersCount
	}
	return total
}

func TotalForks(repos []domain.Repository) int {
	total := 0
	for _, repo := range repos {
		total += repo.ForksCount
	}
	return total
}
