// Package battle ranks a small set of GitHub users against each other.
package battle

import (
	"errors"

	"github.com/naka-gawa/githunter/internal/domain"
)

// MaxParticipants is the largest comparison allowed.
const MaxParticipants = 3

var (
	ErrDuplicateParticipant = errors.New("user already in comparison list")
	ErrComparisonFull       = errors.New("maximum 3 users for comparison")
)

// Participant is a user together with the repositories fetched for them.
type Participant struct {
	User  domain.User         `json:"user"`
	Repos []domain.Repository `json:"repos"`
}

// Comparison is the set of users explicitly added to a battle, in insertion
// order. The zero value is an empty comparison. It is not safe for concurrent
// use.
type Comparison struct {
	participants []Participant
}

// Add appends a participant. A duplicate login or a full comparison is
// rejected and leaves the set unchanged.
func (c *Comparison) Add(user domain.User, repos []domain.Repository) error {
	if c.Contains(user.Login) {
		return ErrDuplicateParticipant
	}
	if len(c.participants) >= MaxParticipants {
		return ErrComparisonFull
	}
	c.participants = append(c.participants, Participant{User: user, Repos: repos})
	return nil
}

// Remove drops the participant with the given login and reports whether one
// was found.
func (c *Comparison) Remove(login string) bool {
	for i, p := range c.participants {
		if p.User.Login == login {
			c.participants = append(c.participants[:i:i], c.participants[i+1:]...)
			return true
		}
	}
	return false
}

func (c *Comparison) Contains(login string) bool {
	for _, p := range c.participants {
		if p.User.Login == login {
			return true
		}
	}
	return false
}

func (c *Comparison) Len() int {
	return len(c.participants)
}

// Participants returns a copy of the participants in insertion order.
func (c *Comparison) Participants() []Participant {
	out := make([]Participant, len(c.participants))
	copy(out, c.participants)
	return out
}

func (c *Comparison) Clear() {
	c.participants = nil
}
