// Package domain contains the core data structures of the application.
package domain

import "time"

// User is the subset of a GitHub user profile the analytics work with.
type User struct {
	Login       string    `json:"login"`
	Name        string    `json:"name"`
	AvatarURL   string    `json:"avatar_url"`
	HTMLURL     string    `json:"html_url"`
	Bio         string    `json:"bio"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Blog        string    `json:"blog"`
	Followers   int       `json:"followers"`
	Following   int       `json:"following"`
	PublicRepos int       `json:"public_repos"`
	PublicGists int       `json:"public_gists"`
	CreatedAt   time.Time `json:"created_at"`
}

// DisplayName returns the user's name, falling back to the login.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Login
}

// Profile is the result of a single search: a user and their repositories.
type Profile struct {
	User  User         `json:"user"`
	Repos []Repository `json:"repos"`
}
