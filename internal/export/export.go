// Package export builds the downloadable JSON snapshot of a profile and its
// shareable link.
package export

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/naka-gawa/githunter/internal/domain"
	"github.com/naka-gawa/githunter/internal/metrics"
)

// Stats is the derived part of an export.
type Stats struct {
	TotalStars int            `json:"totalStars"`
	TotalForks int            `json:"totalForks"`
	Languages  map[string]int `json:"languages"`
	ExportedAt time.Time      `json:"exportedAt"`
}

// Document is the exported artifact: {user, repos, stats}.
type Document struct {
	User  domain.User         `json:"user"`
	Repos []domain.Repository `json:"repos"`
	Stats Stats               `json:"stats"`
}

func Build(profile domain.Profile, now time.Time) Document {
	repos := profile.Repos
	if repos == nil {
		repos = []domain.Repository{}
	}
	return Document{
		User:  profile.User,
		Repos: repos,
		Stats: Stats{
			TotalStars: metrics.TotalStars(repos),
			TotalForks: metrics.TotalForks(repos),
			Languages:  metrics.LanguageHistogram(repos),
			ExportedAt: now.UTC(),
		},
	}
}

// FileName is the name the export is saved under.
func FileName(login string) string {
	return login + "-github-data.json"
}

// WriteFile writes the document as indented JSON into dir and returns the
// file path.
func WriteFile(dir string, doc Document) (string, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal export: %w", err)
	}
	path := filepath.Join(dir, FileName(doc.User.Login))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	return path, nil
}

// ShareLink returns baseURL with a ?user= query for login.
func ShareLink(baseURL, login string) string {
	return strings.TrimRight(baseURL, "/") + "?user=" + url.QueryEscape(login)
}
