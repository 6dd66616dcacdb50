package words

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/rs/zerolog"

	"github.com/destinyelysse/A-Word-Game/internal/game"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

func TestReadWords(t *testing.T) {
	readWordsTests := []struct {
		text      string
		wantWords []string
	}{
		{},
		{
			text: "\n\n   \n",
		},
		{
			text:      "Orange\nsample\r\n  PIN  \n",
			wantWords: []string{"orange", "sample", "pin"},
		},
		{
			text:      "CAFE\u0301\n\tcaf\u00e9\x00\n",
			wantWords: []string{"caf\u00e9", "caf\u00e9"},
		},
		{
			text:      "# comment\norange\n#another\n",
			wantWords: []string{"orange"},
		},
	}
	for i, test := range readWordsTests {
		got, err := ReadWords(strings.NewReader(test.text))
		if err != nil {
			t.Errorf("Test %v: unwanted error: %v", i, err)
			continue
		}
		if !reflect.DeepEqual(test.wantWords, got) {
			t.Errorf("Test %v:\nwanted: %v\ngot:    %v", i, test.wantWords, got)
		}
	}
}

func TestSourceLoad(t *testing.T) {
	dir := t.TempDir()
	goodPath := filepath.Join(dir, "start.txt")
	if err := os.WriteFile(goodPath, []byte("orange\nsample\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	emptyPath := filepath.Join(dir, "empty.txt")
	if err := os.WriteFile(emptyPath, []byte("\n# nothing\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	fsys := fstest.MapFS{
		"start.txt": {Data: []byte("planets\n")},
	}
	loadTests := []struct {
		source    Source
		wantWords []string
		wantErr   bool
	}{
		{
			source:    Source{Path: goodPath},
			wantWords: []string{"orange", "sample"},
		},
		{
			source:  Source{Path: filepath.Join(dir, "missing.txt")},
			wantErr: true,
		},
		{
			source:  Source{Path: emptyPath},
			wantErr: true,
		},
		{
			source:    Source{Asset: "start.txt", FS: fsys},
			wantWords: []string{"planets"},
		},
		{
			source:  Source{Asset: "other.txt", FS: fsys},
			wantErr: true,
		},
	}
	for i, test := range loadTests {
		got, err := test.source.Load()
		switch {
		case test.wantErr:
			if !errors.Is(err, game.ErrResourceUnavailable) {
				t.Errorf("Test %v: wanted ErrResourceUnavailable, got %v", i, err)
			}
		case err != nil:
			t.Errorf("Test %v: unwanted error: %v", i, err)
		case !reflect.DeepEqual(test.wantWords, got):
			t.Errorf("Test %v:\nwanted: %v\ngot:    %v", i, test.wantWords, got)
		}
	}
}

func TestEmbeddedLists(t *testing.T) {
	start, err := Start("").Load()
	if err != nil {
		t.Fatalf("loading embedded start words: %v", err)
	}
	dict, err := Dictionary("").Load()
	if err != nil {
		t.Fatalf("loading embedded dictionary: %v", err)
	}
	if len(start) < 100 {
		t.Errorf("wanted at least 100 start words, got %v", len(start))
	}
	known := make(map[string]bool, len(dict))
	for _, w := range dict {
		known[w] = true
	}
	for _, w := range []string{"an", "orange", "maps", "range"} {
		if !known[w] {
			t.Errorf("wanted %q in embedded dictionary", w)
		}
	}
}

func TestMerge(t *testing.T) {
	mergeTests := []struct {
		lists [][]string
		want  []string
	}{
		{
			lists: [][]string{{"b", "a"}, nil, {"a", "c", "b"}},
			want:  []string{"b", "a", "c"},
		},
		{
			lists: [][]string{{"caf\u00e9"}, {"cafe\u0301", "Caf\u00c9", " "}},
			want:  []string{"caf\u00e9"},
		},
	}
	for i, test := range mergeTests {
		if got := Merge(test.lists...); !reflect.DeepEqual(test.want, got) {
			t.Errorf("Test %v: wanted %q, got %q", i, test.want, got)
		}
	}
}
