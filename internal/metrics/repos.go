package metrics

import (
	"sort"
	"strings"
	"time"

	"github.com/naka-gawa/githunter/internal/domain"
)

// SortKey selects the ordering of a repository listing.
type SortKey string

const (
	SortUpdated SortKey = "updated"
	SortStars   SortKey = "stars"
	SortForks   SortKey = "forks"
	SortName    SortKey = "name"
)

// ParseSortKey maps a flag value to a SortKey; unknown values fall back to
// SortUpdated.
func ParseSortKey(s string) SortKey {
	switch SortKey(strings.ToLower(s)) {
	case SortStars:
		return SortStars
	case SortForks:
		return SortForks
	case SortName:
		return SortName
	default:
		return SortUpdated
	}
}

// RepoFilter narrows and orders a repository listing.
type RepoFilter struct {
	// Query matches name or description, case-insensitively.
	Query string
	// Language must match exactly when set.
	Language string
	SortBy   SortKey
}

// FilterRepos returns a filtered, sorted copy of repos.
func FilterRepos(repos []domain.Repository, f RepoFilter) []domain.Repository {
	query := strings.ToLower(f.Query)
	filtered := make([]domain.Repository, 0, len(repos))
	for _, repo := range repos {
		if query != "" &&
			!strings.Contains(strings.ToLower(repo.Name), query) &&
			!strings.Contains(strings.ToLower(repo.Description), query) {
			continue
		}
		if f.Language != "" && repo.Language != f.Language {
			continue
		}
		filtered = append(filtered, repo)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		a, b := filtered[i], filtered[j]
		switch f.SortBy {
		case SortStars:
			return a.StargazersCount > b.StargazersCount
		case SortForks:
			return a.ForksCount > b.ForksCount
		case SortName:
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		default:
			return a.UpdatedAt.After(b.UpdatedAt)
		}
	})
	return filtered
}

// TopMetric selects how TopRepos ranks repositories.
type TopMetric string

const (
	TopByStars    TopMetric = "stars"
	TopByForks    TopMetric = "forks"
	TopByActivity TopMetric = "activity"
	TopByImpact   TopMetric = "impact"
)

// TopRepos returns up to n repositories ranked by the metric. Activity keeps
// input order and only filters to recently active repositories.
func TopRepos(repos []domain.Repository, by TopMetric, n int, now time.Time) []domain.Repository {
	top := make([]domain.Repository, 0, len(repos))
	switch by {
	case TopByActivity:
		for _, repo := range repos {
			if isRecentlyActive(repo, now) {
				top = append(top, repo)
			}
		}
	default:
		top = append(top, repos...)
		sort.SliceStable(top, func(i, j int) bool {
			switch by {
			case TopByForks:
				return top[i].ForksCount > top[j].ForksCount
			case TopByImpact:
				return top[i].StargazersCount+top[i].ForksCount > top[j].StargazersCount+top[j].ForksCount
			default:
				return top[i].StargazersCount > top[j].StargazersCount
			}
		})
	}
	if n >= 0 && len(top) > n {
		top = top[:n]
	}
	return top
}
