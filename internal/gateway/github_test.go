package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/githunter/internal/config"
	"github.com/naka-gawa/githunter/internal/domain"
)

func discardLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testGitHubConfig(apiURL string) config.GitHubConfig {
	return config.GitHubConfig{APIURL: apiURL, CacheTTL: time.Minute, CacheSize: 16}
}

// setupTestGateway creates a GitHubGateway that communicates with a mock HTTP server
// through the caching transport.
func setupTestGateway(t *testing.T, handler http.Handler) (*GitHubGateway, *httptest.Server) {
	server := httptest.NewServer(handler)

	logger := discardLogger()
	cache := NewCachingTransport(server.Client().Transport, 16, time.Minute, logger)
	restClient := github.NewClient(&http.Client{Transport: cache})
	baseURL, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	restClient.BaseURL = baseURL

	gateway := &GitHubGateway{
		restClient: restClient,
		cache:      cache,
		logger:     logger,
	}

	return gateway, server
}

func TestGitHubGateway_FetchUser(t *testing.T) {
	testCases := []struct {
		name           string
		handlerFunc    func(w http.ResponseWriter, r *http.Request)
		expectedUser   *domain.User
		expectNotFound bool
		expectError    bool
	}{
		{
			name: "happy path - decodes the profile",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/users/alice", r.URL.Path)
				w.WriteHeader(http.StatusOK)
				fmt.Fprint(w, `{"login":"alice","name":"Alice","followers":12,"following":3,"public_repos":7,"created_at":"2019-05-01T10:00:00Z"}`)
			},
			expectedUser: &domain.User{
				Login:       "alice",
				Name:        "Alice",
				Followers:   12,
				Following:   3,
				PublicRepos: 7,
				CreatedAt:   time.Date(2019, 5, 1, 10, 0, 0, 0, time.UTC),
			},
		},
		{
			name: "not found - 404 maps to ErrUserNotFound",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				fmt.Fprint(w, `{"message": "Not Found"}`)
			},
			expectNotFound: true,
			expectError:    true,
		},
		{
			name: "server error - also reported as not found",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				fmt.Fprint(w, `{"message": "Internal Server Error"}`)
			},
			expectNotFound: true,
			expectError:    true,
		},
		{
			name: "parse failure - invalid JSON body",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				fmt.Fprint(w, `{not json`)
			},
			expectError: true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gateway, server := setupTestGateway(t, http.HandlerFunc(tc.handlerFunc))
			defer server.Close()

			user, err := gateway.FetchUser(context.Background(), "alice")

			if tc.expectError {
				assert.Error(t, err)
				assert.Equal(t, tc.expectNotFound, errors.Is(err, ErrUserNotFound))
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, user)
				assert.Equal(t, tc.expectedUser.Login, user.Login)
				assert.Equal(t, tc.expectedUser.Name, user.Name)
				assert.Equal(t, tc.expectedUser.Followers, user.Followers)
				assert.Equal(t, tc.expectedUser.Following, user.Following)
				assert.Equal(t, tc.expectedUser.PublicRepos, user.PublicRepos)
				assert.True(t, tc.expectedUser.CreatedAt.Equal(user.CreatedAt))
			}
		})
	}
}

func TestGitHubGateway_FetchRepos(t *testing.T) {
	testCases := []struct {
		name           string
		handlerFunc    func(w http.ResponseWriter, r *http.Request)
		expectedNames  []string
		expectError    bool
		expectedErrMsg string
	}{
		{
			name: "happy path - requests the first page sorted by update",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/users/alice/repos", r.URL.Path)
				assert.Equal(t, "updated", r.URL.Query().Get("sort"))
				assert.Equal(t, "100", r.URL.Query().Get("per_page"))
				w.WriteHeader(http.StatusOK)
				fmt.Fprint(w, `[
					{"name":"tool","stargazers_count":10,"forks_count":2,"language":"Go","fork":false,"size":120,"description":"a tool"},
					{"name":"copy","stargazers_count":0,"forks_count":0,"language":null,"fork":true,"archived":true}
				]`)
			},
			expectedNames: []string{"tool", "copy"},
		},
		{
			name: "error case - GitHub API returns an error",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				fmt.Fprint(w, `{"message": "Internal Server Error"}`)
			},
			expectError:    true,
			expectedErrMsg: "failed to list repositories",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gateway, server := setupTestGateway(t, http.HandlerFunc(tc.handlerFunc))
			defer server.Close()

			repos, err := gateway.FetchRepos(context.Background(), "alice")

			if tc.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedErrMsg)
				return
			}
			require.NoError(t, err)
			names := make([]string, 0, len(repos))
			for _, r := range repos {
				names = append(names, r.Name)
			}
			assert.Equal(t, tc.expectedNames, names)
			assert.Equal(t, "Go", repos[0].Language)
			assert.Equal(t, "a tool", repos[0].Description)
			assert.Equal(t, 10, repos[0].StargazersCount)
			assert.Equal(t, 120, repos[0].Size)
			assert.Empty(t, repos[1].Language)
			assert.True(t, repos[1].Fork)
			assert.True(t, repos[1].Archived)
		})
	}
}

func TestGitHubGateway_CachesSuccessfulResponses(t *testing.T) {
	var hits atomic.Int32
	handler := func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `{"login":"alice"}`)
	}
	gateway, server := setupTestGateway(t, http.HandlerFunc(handler))
	defer server.Close()

	for i := 0; i < 3; i++ {
		user, err := gateway.FetchUser(context.Background(), "alice")
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Login)
	}

	assert.Equal(t, int32(1), hits.Load())
	assert.Equal(t, 1, gateway.Cache().Len())
}

func TestNewGitHubGateway(t *testing.T) {
	t.Run("custom API URL gets a trailing slash", func(t *testing.T) {
		gateway, err := NewGitHubGateway(testGitHubConfig("https://ghe.example.com/api/v3"), discardLogger())
		require.NoError(t, err)
		assert.Equal(t, "https://ghe.example.com/api/v3/", gateway.restClient.BaseURL.String())
	})

	t.Run("talks to the configured server", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Empty(t, r.Header.Get("Authorization"))
			fmt.Fprint(w, `{"login":"bob"}`)
		}))
		defer server.Close()

		gateway, err := NewGitHubGateway(testGitHubConfig(server.URL), discardLogger())
		require.NoError(t, err)

		user, err := gateway.FetchUser(context.Background(), "bob")
		require.NoError(t, err)
		assert.Equal(t, "bob", user.Login)
	})

	t.Run("attaches the token when configured", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
			fmt.Fprint(w, `{"login":"bob"}`)
		}))
		defer server.Close()

		cfg := testGitHubConfig(server.URL)
		cfg.Token = "secret"
		gateway, err := NewGitHubGateway(cfg, discardLogger())
		require.NoError(t, err)

		_, err = gateway.FetchUser(context.Background(), "bob")
		require.NoError(t, err)
	})
}
