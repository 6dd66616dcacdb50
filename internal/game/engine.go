// internal/game/engine.go
//
// Core game engine for a single word game session.
// Responsibilities:
//   - Start sessions by picking a base word from the start word list.
//   - Normalize raw input (trim, lowercase, NFC).
//   - Validate candidates with four ordered rules: original, possible, real, not the base word.
//   - Record accepted words and keep both scores in step with the used word list.
//
// Notes:
//   - Letters are compared as Unicode scalar values after NFC composition.
//   - The dictionary and the random source are injected so Start and Submit stay testable.
package game

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// DefaultLanguage is used when a Game is created without a language.
const DefaultLanguage = "en"

// Game owns the immutable start word list and the capabilities used to validate words.
type Game struct {
	words    []string
	dict     DictionaryChecker
	language string
	rng      Rand
}

// New constructs a Game. rng may be nil, in which case CryptoRand is used.
// The word list is copied and normalized; blank entries are dropped.
func New(words []string, dict DictionaryChecker, lang string, rng Rand) *Game {
	if lang == "" {
		lang = DefaultLanguage
	}
	if rng == nil {
		rng = CryptoRand{}
	}
	list := make([]string, 0, len(words))
	for _, w := range words {
		if w = Normalize(w); w != "" {
			list = append(list, w)
		}
	}
	return &Game{words: list, dict: dict, language: lang, rng: rng}
}

// Words returns the number of start words available.
func (g *Game) Words() int { return len(g.words) }

// Language returns the dictionary language used for the realness rule.
func (g *Game) Language() string { return g.language }

// Start begins a new random session.
func (g *Game) Start() (*Session, error) {
	return g.StartWith(g.rng, ModeRandom)
}

// StartWith begins a new session using rng to pick the base word.
func (g *Game) StartWith(rng Rand, mode Mode) (*Session, error) {
	s, err := StartGame(g.words, rng)
	if err != nil {
		return nil, err
	}
	s.Mode = mode
	log.Debug().Str("session", s.ID).Str("mode", string(mode)).Msg("game started")
	return s, nil
}

// Submit normalizes raw, validates it against s and records it when accepted.
// ok is false when raw is empty after normalization; nothing is evaluated in that case.
func (g *Game) Submit(raw string, s *Session) (outcome Outcome, ok bool) {
	candidate := Normalize(raw)
	if candidate == "" {
		return Accepted, false
	}
	outcome = s.Validate(candidate, g.dict, g.language)
	if outcome == Accepted {
		s.Accept(candidate)
	}
	log.Debug().
		Str("session", s.ID).
		Str("word", candidate).
		Stringer("outcome", outcome).
		Int("wordScore", s.WordScore).
		Int("letterScore", s.LetterScore).
		Msg("word submitted")
	return outcome, true
}

// StartGame picks a base word uniformly at random from words and returns a fresh session.
// It returns ErrResourceUnavailable when words has no usable entry; no session is created.
func StartGame(words []string, rng Rand) (*Session, error) {
	if len(words) == 0 {
		return nil, fmt.Errorf("start game: %w", ErrResourceUnavailable)
	}
	if rng == nil {
		rng = CryptoRand{}
	}
	base := Normalize(words[rng.Intn(len(words))])
	if base == "" {
		return nil, fmt.Errorf("start game: blank base word: %w", ErrResourceUnavailable)
	}
	return &Session{
		ID:        uuid.NewString(),
		Mode:      ModeRandom,
		BaseWord:  base,
		UsedWords: []string{},
		StartedAt: time.Now().UTC(),
	}, nil
}

// Accept records an accepted candidate at the front of the used words and bumps both scores.
func (s *Session) Accept(candidate string) {
	s.UsedWords = append([]string{candidate}, s.UsedWords...)
	s.WordScore++
	s.LetterScore += utf8.RuneCountInString(candidate)
}

// Validate runs the four rules in order and returns the first failure, or Accepted.
// candidate must already be normalized.
func (s *Session) Validate(candidate string, dict DictionaryChecker, lang string) Outcome {
	switch {
	case !s.isOriginal(candidate):
		return RejectedAlreadyUsed
	case !s.isPossible(candidate):
		return RejectedNotPossible
	case !isReal(dict, candidate, lang):
		return RejectedNotReal
	case !s.isNotBase(candidate):
		return RejectedSameAsBase
	}
	return Accepted
}

func (s *Session) isOriginal(word string) bool {
	for _, w := range s.UsedWords {
		if w == word {
			return false
		}
	}
	return true
}

// isPossible removes one matching letter from a working copy of the base word for every
// letter of word, so repeated letters need repeated occurrences in the base word.
func (s *Session) isPossible(word string) bool {
	available := []rune(s.BaseWord)
	for _, r := range word {
		i := indexRune(available, r)
		if i < 0 {
			return false
		}
		available = append(available[:i], available[i+1:]...)
	}
	return true
}

func isReal(dict DictionaryChecker, word, lang string) bool {
	if dict == nil {
		return false
	}
	return dict.IsKnownWord(word, lang)
}

func (s *Session) isNotBase(word string) bool {
	return word != s.BaseWord
}

// Normalize trims surrounding whitespace and control characters, lowercases, and
// composes to NFC. An empty result means there is nothing to submit.
func Normalize(raw string) string {
	trimmed := strings.TrimFunc(raw, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsControl(r)
	})
	if trimmed == "" {
		return ""
	}
	// Casers keep state and are not safe to share between goroutines.
	lower := cases.Lower(language.Und).String(trimmed)
	return norm.NFC.String(lower)
}

func indexRune(rs []rune, r rune) int {
	for i, x := range rs {
		if x == r {
			return i
		}
	}
	return -1
}

// CryptoRand is a Rand backed by crypto/rand.
type CryptoRand struct{}

// Intn returns a uniformly random int in [0, n). It panics if n <= 0.
func (CryptoRand) Intn(n int) int {
	if n <= 0 {
		panic("game: CryptoRand.Intn called with n <= 0")
	}
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(fmt.Sprintf("game: read random: %v", err))
	}
	return int(nBig.Int64())
}
