package domain

import "time"

// Repository is the subset of a GitHub repository the analytics work with.
// An empty Language means GitHub reported no language.
type Repository struct {
	Name            string    `json:"name"`
	HTMLURL         string    `json:"html_url"`
	Description     string    `json:"description"`
	StargazersCount int       `json:"stargazers_count"`
	ForksCount      int       `json:"forks_count"`
	OpenIssuesCount int       `json:"open_issues_count"`
	WatchersCount   int       `json:"watchers_count"`
	Language        string    `json:"language"`
	Topics          []string  `json:"topics,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	PushedAt        time.Time `json:"pushed_at"`
	Size            int       `json:"size"`
	Fork            bool      `json:"fork"`
	Archived        bool      `json:"archived"`
}

// UpdatedSince reports whether the repository was updated strictly after t.
func (r Repository) UpdatedSince(t time.Time) bool {
	return r.UpdatedAt.After(t)
}

// CreatedSince reports whether the repository was created strictly after t.
func (r Repository) CreatedSince(t time.Time) bool {
	return r.CreatedAt.After(t)
}
