package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/naka-gawa/githunter/internal/battle"
	"github.com/naka-gawa/githunter/internal/domain"
	"github.com/naka-gawa/githunter/internal/history"
)

var (
	// ErrStaleSearch is returned by a search that was overtaken by a newer one.
	ErrStaleSearch = errors.New("search superseded by a newer search")
	// ErrNoProfile is returned when an operation needs a current profile.
	ErrNoProfile = errors.New("no profile loaded")
)

// Session is the state of one interactive run: the current profile, the
// search history and the battle comparison list.
type Session struct {
	searcher   *Searcher
	history    *history.History
	comparison *battle.Comparison
	logger     *logrus.Logger

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	current    *domain.Profile
}

func NewSession(searcher *Searcher, h *history.History, logger *logrus.Logger) *Session {
	return &Session{
		searcher:   searcher,
		history:    h,
		comparison: &battle.Comparison{},
		logger:     logger,
	}
}

// Search starts a new search, cancelling any still in flight. The previous
// profile is cleared right away. Results of a search that has been superseded
// are discarded and reported as ErrStaleSearch.
func (s *Session) Search(ctx context.Context, login string) (*domain.Profile, error) {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.generation++
	gen := s.generation
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.current = nil
	s.mu.Unlock()
	defer cancel()

	profile, err := s.searcher.Search(ctx, login)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		s.logger.WithFields(logrus.Fields{"login": login, "generation": gen}).Debug("discarding stale search result")
		return nil, ErrStaleSearch
	}
	s.cancel = nil
	if err != nil {
		return nil, err
	}
	s.current = profile
	if err := s.history.Add(profile.User.Login); err != nil {
		s.logger.WithError(err).Warn("could not record search history")
	}
	return profile, nil
}

// Current returns the profile of the latest successful search.
func (s *Session) Current() (*domain.Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, s.current != nil
}

func (s *Session) History() []string {
	return s.history.Entries()
}

// ClearHistory forgets every recorded search.
func (s *Session) ClearHistory() error {
	return s.history.Clear()
}

// CanJoinComparison reports why login could not be added to the battle, before
// any fetch is made for it.
func (s *Session) CanJoinComparison(login string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.comparison.Contains(strings.TrimSpace(login)) {
		return battle.ErrDuplicateParticipant
	}
	if s.comparison.Len() >= battle.MaxParticipants {
		return battle.ErrComparisonFull
	}
	return nil
}

// ClearComparison empties the battle.
func (s *Session) ClearComparison() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comparison.Clear()
}

// AddCurrentToComparison puts the current profile into the battle.
func (s *Session) AddCurrentToComparison() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return ErrNoProfile
	}
	if err := s.comparison.Add(s.current.User, s.current.Repos); err != nil {
		return err
	}
	return nil
}

func (s *Session) RemoveFromComparison(login string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.comparison.Remove(login)
}

func (s *Session) ComparisonLogins() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	participants := s.comparison.Participants()
	logins := make([]string, len(participants))
	for i, p := range participants {
		logins[i] = p.User.Login
	}
	return logins
}

// Battle ranks the comparison list by metric.
func (s *Session) Battle(metric string, now time.Time) (battle.Summary, error) {
	s.mu.Lock()
	participants := s.comparison.Participants()
	s.mu.Unlock()

	summary, err := battle.Summarize(metric, battle.Compute(participants, now))
	if err != nil {
		return battle.Summary{}, fmt.Errorf("battle: %w", err)
	}
	return summary, nil
}
