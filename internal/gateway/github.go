// Package gateway provides a gateway to the GitHub REST API,
// abstracting away the underlying client and its transport chain.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	"github.com/google/go-github/v62/github"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/naka-gawa/githunter/internal/config"
	"github.com/naka-gawa/githunter/internal/domain"
)

// ReposPerPage is the page size of the repository listing. Only the first
// page is ever fetched.
const ReposPerPage = 100

// ErrUserNotFound is returned when the profile endpoint answers with a
// non-success status.
var ErrUserNotFound = errors.New("user not found")

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	FetchUser(ctx context.Context, login string) (*domain.User, error)
	FetchRepos(ctx context.Context, login string) ([]domain.Repository, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient *github.Client
	cache      *CachingTransport
	logger     *logrus.Logger
}

// NewGitHubGateway creates a gateway whose HTTP client caches successful GET
// responses and waits out secondary rate limits. A token is attached only when
// one is configured.
func NewGitHubGateway(cfg config.GitHubConfig, logger *logrus.Logger) (*GitHubGateway, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Minute, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}

	var transport http.RoundTripper = rateLimitWaiter
	if cfg.Token != "" {
		transport = &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token}),
		}
	}
	cache := NewCachingTransport(transport, cfg.CacheSize, cfg.CacheTTL, logger)

	restClient := github.NewClient(&http.Client{Transport: cache})
	if cfg.APIURL != "" && cfg.APIURL != config.DefaultAPIURL {
		baseURL, err := parseBaseURL(cfg.APIURL)
		if err != nil {
			return nil, err
		}
		restClient.BaseURL = baseURL
	}

	return &GitHubGateway{
		restClient: restClient,
		cache:      cache,
		logger:     logger,
	}, nil
}

// Cache exposes the response cache, mainly so callers can purge it.
func (g *GitHubGateway) Cache() *CachingTransport {
	return g.cache
}

// FetchUser fetches GET /users/{login}.
func (g *GitHubGateway) FetchUser(ctx context.Context, login string) (*domain.User, error) {
	g.logger.WithField("login", login).Debug("fetching user profile")
	user, resp, err := g.restClient.Users.Get(ctx, login)
	if err != nil {
		if resp != nil && !isSuccess(resp.StatusCode) {
			return nil, fmt.Errorf("%w: %s: %w", ErrUserNotFound, login, err)
		}
		return nil, fmt.Errorf("failed to fetch user %s: %w", login, err)
	}
	converted := toDomainUser(user)
	return &converted, nil
}

// FetchRepos fetches the first page of GET /users/{login}/repos sorted by
// last update.
func (g *GitHubGateway) FetchRepos(ctx context.Context, login string) ([]domain.Repository, error) {
	g.logger.WithField("login", login).Debug("fetching repositories")
	opts := &github.RepositoryListByUserOptions{
		Sort:        "updated",
		ListOptions: github.ListOptions{PerPage: ReposPerPage},
	}
	repos, _, err := g.restClient.Repositories.ListByUser(ctx, login, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list repositories for %s: %w", login, err)
	}
	result := make([]domain.Repository, 0, len(repos))
	for _, repo := range repos {
		result = append(result, toDomainRepository(repo))
	}
	g.logger.WithFields(logrus.Fields{"login": login, "count": len(result)}).Debug("fetched repositories")
	return result, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status <= 299
}

// parseBaseURL makes sure the URL ends in a slash, which go-github requires.
func parseBaseURL(raw string) (*url.URL, error) {
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	baseURL, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid GitHub API URL %q: %w", raw, err)
	}
	return baseURL, nil
}

func toDomainUser(u *github.User) domain.User {
	return domain.User{
		Login:       u.GetLogin(),
		Name:        u.GetName(),
		AvatarURL:   u.GetAvatarURL(),
		HTMLURL:     u.GetHTMLURL(),
		Bio:         u.GetBio(),
		Company:     u.GetCompany(),
		Location:    u.GetLocation(),
		Blog:        u.GetBlog(),
		Followers:   u.GetFollowers(),
		Following:   u.GetFollowing(),
		PublicRepos: u.GetPublicRepos(),
		PublicGists: u.GetPublicGists(),
		CreatedAt:   u.GetCreatedAt().Time,
	}
}

func toDomainRepository(r *github.Repository) domain.Repository {
	return domain.Repository{
		Name:            r.GetName(),
		HTMLURL:         r.GetHTMLURL(),
		Description:     r.GetDescription(),
		StargazersCount: r.GetStargazersCount(),
		ForksCount:      r.GetForksCount(),
		OpenIssuesCount: r.GetOpenIssuesCount(),
		WatchersCount:   r.GetWatchersCount(),
		Language:        r.GetLanguage(),
		Topics:          r.Topics,
		CreatedAt:       r.GetCreatedAt().Time,
		UpdatedAt:       r.GetUpdatedAt().Time,
		PushedAt:        r.GetPushedAt().Time,
		Size:            r.GetSize(),
		Fork:            r.GetFork(),
		Archived:        r.GetArchived(),
	}
}
