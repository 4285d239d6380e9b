package metrics

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/githunter/internal/domain"
)

func TestRepoBreakdown(t *testing.T) {
	archived := repo("old", 0, 0, "Go", false)
	archived.Archived = true
	archivedFork := repo("old-fork", 0, 0, "Go", true)
	archivedFork.Archived = true
	repos := []domain.Repository{
		repo("a", 0, 0, "Go", false),
		repo("b", 0, 0, "Go", true),
		archived,
		archivedFork,
	}

	assert.Equal(t, Breakdown{Total: 4, Original: 2, Forked: 2, Archived: 2}, RepoBreakdown(repos))
	assert.Equal(t, Breakdown{}, RepoBreakdown(nil))
}

func TestRepoGrowth(t *testing.T) {
	t.Run("orders by creation with a running count", func(t *testing.T) {
		newer := repo("newer", 3, 0, "", false)
		newer.CreatedAt = daysAgo(10)
		older := repo("older", 7, 0, "", false)
		older.CreatedAt = daysAgo(500)

		points := RepoGrowth([]domain.Repository{newer, older})

		assert.Equal(t, []GrowthPoint{
			{Name: "older", CreatedAt: daysAgo(500).Format("2006-01-02"), Repos: 1, Stars: 7},
			{Name: "newer", CreatedAt: daysAgo(10).Format("2006-01-02"), Repos: 2, Stars: 3},
		}, points)
	})

	t.Run("keeps the newest twelve", func(t *testing.T) {
		repos := make([]domain.Repository, 0, 20)
		for i := 0; i < 20; i++ {
			r := repo(fmt.Sprintf("r%02d", i), 0, 0, "", false)
			r.CreatedAt = daysAgo(100 - i)
			repos = append(repos, r)
		}

		points := RepoGrowth(repos)

		require.Len(t, points, GrowthWindow)
		assert.Equal(t, "r08", points[0].Name)
		assert.Equal(t, 9, points[0].Repos)
		assert.Equal(t, 20, points[GrowthWindow-1].Repos)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, RepoGrowth(nil))
	})
}

func TestScoreBadges(t *testing.T) {
	repos := make([]domain.Repository, 0, 20)
	langs := []string{"Go", "Rust", "C", "Zig", "Lua"}
	for i := 0; i < 20; i++ {
		repos = append(repos, repo(fmt.Sprintf("r%d", i), 5, 3, langs[i%len(langs)], false))
	}
	scores := Scores{Consistency: 80, Innovation: 69.9, Trending: 60, Quality: 75}

	unlocked := map[string]bool{}
	for _, b := range ScoreBadges(repos, scores) {
		unlocked[b.ID] = b.Unlocked
	}

	assert.Equal(t, map[string]bool{
		"star-collector":     true, // 100 stars
		"fork-master":        true, // 60 forks
		"consistency-king":   true,
		"innovation-pioneer": false,
		"trending-developer": true,
		"quality-focused":    true,
		"multi-language":     true,
		"prolific-creator":   true,
	}, unlocked)
}

func TestTopLists(t *testing.T) {
	a := repo("a", 5, 10, "", false)
	b := repo("b", 8, 0, "", false)
	b.UpdatedAt = daysAgo(3)
	repos := []domain.Repository{a, b}

	lists := TopLists(repos, now)

	require.Len(t, lists, 4)
	assert.Equal(t, "b", lists[TopByStars][0].Name)
	assert.Equal(t, "a", lists[TopByForks][0].Name)
	assert.Equal(t, "a", lists[TopByImpact][0].Name)
	require.Len(t, lists[TopByActivity], 1)
	assert.Equal(t, "b", lists[TopByActivity][0].Name)
}
