// Package dictionary provides the known-word lookups behind the game's realness rule.
//
// Two backends satisfy game.DictionaryChecker:
//   - Set: an in-memory hash set of lowercase words.
//   - SQLite: the same word list indexed in the dictionary table, queried with a timeout.
package dictionary

import (
	"context"
	"strings"

	"golang.org/x/text/language"

	"github.com/destinyelysse/A-Word-Game/internal/game"
)

// Set is an in-memory dictionary for one language.
type Set struct {
	language string
	words    map[string]struct{}
}

// NewSet builds a Set from words, normalized the same way as candidates.
func NewSet(lang string, words []string) *Set {
	s := &Set{language: baseLanguage(lang), words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		if w = game.Normalize(w); w != "" {
			s.words[w] = struct{}{}
		}
	}
	return s
}

// IsKnownWord reports whether word is in the set and lang matches the set's language.
func (s *Set) IsKnownWord(word, lang string) bool {
	if baseLanguage(lang) != s.language {
		return false
	}
	_, ok := s.words[game.Normalize(word)]
	return ok
}

// Size returns the number of words.
func (s *Set) Size(context.Context) (int, error) {
	return len(s.words), nil
}

// baseLanguage reduces a BCP 47 tag to its base language, so "en-US" and "en" match.
func baseLanguage(lang string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		return strings.ToLower(lang)
	}
	base, _ := tag.Base()
	return base.String()
}
