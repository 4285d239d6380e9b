// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/naka-gawa/githunter/internal/domain"
	"github.com/naka-gawa/githunter/internal/gateway"
)

// ErrEmptyLogin is returned for a blank search.
var ErrEmptyLogin = errors.New("username must not be empty")

// Searcher is the use case for loading one GitHub profile.
// It fetches the user and their repositories concurrently.
type Searcher struct {
	fetcher gateway.Fetcher
	logger  *logrus.Logger
}

// NewSearcher creates a new Searcher instance.
func NewSearcher(fetcher gateway.Fetcher, logger *logrus.Logger) *Searcher {
	return &Searcher{
		fetcher: fetcher,
		logger:  logger,
	}
}

// Search fetches the profile and the repository list in parallel. It fails if
// either fetch fails, with the profile error taking precedence.
func (s *Searcher) Search(ctx context.Context, login string) (*domain.Profile, error) {
	login = strings.TrimSpace(login)
	if login == "" {
		return nil, ErrEmptyLogin
	}
	log := s.logger.WithField("login", login)
	log.Debug("starting search")

	var (
		user     *domain.User
		repos    []domain.Repository
		userErr  error
		reposErr error
	)

	// Both fetches run to completion so a missing profile is always reported
	// as such, even when the repository listing fails first.
	var eg errgroup.Group
	eg.Go(func() error {
		user, userErr = s.fetcher.FetchUser(ctx, login)
		return userErr
	})
	eg.Go(func() error {
		repos, reposErr = s.fetcher.FetchRepos(ctx, login)
		return reposErr
	})
	if err := eg.Wait(); err != nil {
		log.WithError(err).Debug("search failed")
		if userErr != nil {
			return nil, userErr
		}
		return nil, reposErr
	}
	if repos == nil {
		repos = []domain.Repository{}
	}

	log.WithField("repos", len(repos)).Info("search complete")
	return &domain.Profile{User: *user, Repos: repos}, nil
}
