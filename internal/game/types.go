// internal/game/types.go
//
// Core type definitions for the word game engine.
// Defines:
//   - Outcome: result of validating one candidate word.
//   - Mode: how the base word of a session was chosen.
//   - Session: state of a single game (base word, accepted words, scores).
//   - DictionaryChecker / Rand: capabilities the engine consumes.

package game

import (
	"errors"
	"fmt"
	"time"
)

// ErrResourceUnavailable reports that the start word list could not be read or is empty.
// A game cannot start without it.
var ErrResourceUnavailable = errors.New("word list unavailable")

// Outcome is the evaluation result for a single candidate word.
type Outcome int

const (
	Accepted Outcome = iota
	RejectedAlreadyUsed
	RejectedNotPossible
	RejectedNotReal
	RejectedSameAsBase
)

var outcomeNames = [...]string{
	Accepted:            "accepted",
	RejectedAlreadyUsed: "already_used",
	RejectedNotPossible: "not_possible",
	RejectedNotReal:     "not_real",
	RejectedSameAsBase:  "same_as_base",
}

// String returns the snake_case name used in JSON payloads and logs.
func (o Outcome) String() string {
	if o < 0 || int(o) >= len(outcomeNames) {
		return fmt.Sprintf("outcome(%d)", int(o))
	}
	return outcomeNames[o]
}

// MarshalText implements encoding.TextMarshaler.
func (o Outcome) MarshalText() ([]byte, error) {
	if o < 0 || int(o) >= len(outcomeNames) {
		return nil, fmt.Errorf("unknown outcome %d", int(o))
	}
	return []byte(outcomeNames[o]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Outcome) UnmarshalText(b []byte) error {
	for i, name := range outcomeNames {
		if name == string(b) {
			*o = Outcome(i)
			return nil
		}
	}
	return fmt.Errorf("unknown outcome %q", b)
}

// Mode describes how a session's base word was picked.
type Mode string

const (
	ModeRandom Mode = "random"
	ModeDaily  Mode = "daily"
)

// Session holds the state of a single game.
type Session struct {
	ID          string    // Unique session identifier (uuid).
	Mode        Mode      // How BaseWord was chosen.
	BaseWord    string    // Normalized base word.
	UsedWords   []string  // Accepted words, most recent first.
	WordScore   int       // len(UsedWords).
	LetterScore int       // Sum of rune counts of UsedWords.
	StartedAt   time.Time // UTC.
}

// Clone returns a deep copy of s. An empty UsedWords stays non-nil.
func (s *Session) Clone() *Session {
	c := *s
	if s.UsedWords != nil {
		c.UsedWords = append(make([]string, 0, len(s.UsedWords)), s.UsedWords...)
	}
	return &c
}

// DictionaryChecker reports whether a word is known in a language.
type DictionaryChecker interface {
	IsKnownWord(word, language string) bool
}

// Rand picks an index in [0, n). *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}
