package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/githunter/internal/domain"
)

func TestBuildAndWriteFile(t *testing.T) {
	now := time.Date(2026, time.March, 1, 9, 30, 0, 0, time.UTC)
	profile := domain.Profile{
		User: domain.User{Login: "alice", Followers: 3},
		Repos: []domain.Repository{
			{Name: "tool", StargazersCount: 10, ForksCount: 2, Language: "Go"},
			{Name: "copy", Language: "Go", Fork: true},
		},
	}

	doc := Build(profile, now)
	assert.Equal(t, 10, doc.Stats.TotalStars)
	assert.Equal(t, 2, doc.Stats.TotalForks)
	assert.Equal(t, map[string]int{"Go": 1}, doc.Stats.Languages)

	dir := t.TempDir()
	path, err := WriteFile(dir, doc)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "alice-github-data.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "user")
	assert.Contains(t, decoded, "repos")
	stats := decoded["stats"].(map[string]any)
	assert.Equal(t, float64(10), stats["totalStars"])
	assert.Equal(t, "2026-03-01T09:30:00Z", stats["exportedAt"])
}

func TestBuild_EmptyReposEncodeAsArray(t *testing.T) {
	doc := Build(domain.Profile{User: domain.User{Login: "empty"}}, time.Now())
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"repos":[]`)
	assert.Contains(t, string(data), `"languages":{}`)
}

func TestShareLink(t *testing.T) {
	assert.Equal(t, "http://localhost:3000?user=alice", ShareLink("http://localhost:3000/", "alice"))
	assert.Equal(t, "http://localhost:3000?user=a+b", ShareLink("http://localhost:3000", "a b"))
}
