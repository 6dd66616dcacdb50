// internal/words/words.go
//
// Word list loading for the game.
//
// Responsibilities:
//   - Load newline-separated word lists from a configured file, or fall back to the
//     embedded defaults in the assets package.
//   - Normalize entries (trim, lowercase) and drop blanks and "#" comments.
//   - Report unreadable or empty lists as game.ErrResourceUnavailable.
//
// Environment (read by internal/config, passed in as Source.Path):
//   WORDS_START_FILE=/path/to/start.txt
//   DICTIONARY_FILE=/path/to/dictionary.txt

package words

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/destinyelysse/A-Word-Game/assets"
	"github.com/destinyelysse/A-Word-Game/internal/game"
)

// Source locates a word list: a file on disk when Path is set, else an embedded asset.
type Source struct {
	Path  string // optional file path
	Asset string // embedded fallback, e.g. assets.StartFile
	FS    fs.FS  // embedded filesystem; assets.FS when nil
}

// Start returns the source of base words.
func Start(path string) Source {
	return Source{Path: path, Asset: assets.StartFile}
}

// Dictionary returns the source of known words.
func Dictionary(path string) Source {
	return Source{Path: path, Asset: assets.DictionaryFile}
}

// Load reads the list. The result is never empty when err is nil.
func (s Source) Load() ([]string, error) {
	name := s.Path
	f, err := s.open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %v: %w", s.name(), err, game.ErrResourceUnavailable)
	}
	defer f.Close()

	list, err := ReadWords(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %v: %w", s.name(), err, game.ErrResourceUnavailable)
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("%s has no words: %w", s.name(), game.ErrResourceUnavailable)
	}
	if name == "" {
		name = "embedded:" + s.Asset
	}
	log.Info().Str("source", name).Int("words", len(list)).Msg("word list loaded")
	return list, nil
}

func (s Source) open() (io.ReadCloser, error) {
	if s.Path != "" {
		return os.Open(s.Path)
	}
	fsys := s.FS
	if fsys == nil {
		fsys = assets.FS
	}
	return fsys.Open(s.Asset)
}

func (s Source) name() string {
	if s.Path != "" {
		return s.Path
	}
	return s.Asset
}

// ReadWords reads one word per line, normalizing each line with game.Normalize.
// Blank lines and lines starting with "#" are skipped.
func ReadWords(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w := game.Normalize(sc.Text())
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		out = append(out, w)
	}
	return out, sc.Err()
}

// Merge returns the union of lists by normalized form, keeping first-seen order.
// Blank entries are dropped.
func Merge(lists ...[]string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, list := range lists {
		for _, w := range list {
			w = game.Normalize(w)
			if w == "" {
				continue
			}
			if _, ok := seen[w]; ok {
				continue
			}
			seen[w] = struct{}{}
			out = append(out, w)
		}
	}
	return out
}
