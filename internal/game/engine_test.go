package game

import (
	"encoding/json"
	"errors"
	"math/rand"
	"os"
	"reflect"
	"testing"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

type knownWords map[string]bool

func (k knownWords) IsKnownWord(word, language string) bool {
	return language == "en" && k[word]
}

type fixedRand int

func (f fixedRand) Intn(n int) int { return int(f) % n }

func newSession(base string, used ...string) *Session {
	s := &Session{BaseWord: base, UsedWords: []string{}}
	for i := len(used) - 1; i >= 0; i-- {
		s.Accept(used[i])
	}
	return s
}

func TestNormalize(t *testing.T) {
	normalizeTests := []struct {
		raw  string
		want string
	}{
		{},
		{
			raw: " \t\n ",
		},
		{
			raw:  "Orange",
			want: "orange",
		},
		{
			raw:  "  MAPS\r\n",
			want: "maps",
		},
		{
			raw:  "\x00an\x07",
			want: "an",
		},
		{
			raw:  "two words",
			want: "two words",
		},
		{
			raw:  "CAF\u00c9",
			want: "caf\u00e9",
		},
		{
			raw:  "Cafe\u0301",
			want: "caf\u00e9",
		},
	}
	for i, test := range normalizeTests {
		got := Normalize(test.raw)
		if test.want != got {
			t.Errorf("Test %v: wanted %q, got %q for %q", i, test.want, got, test.raw)
		}
	}
}

func TestStartGame(t *testing.T) {
	startGameTests := []struct {
		words        []string
		rng          Rand
		wantBaseWord string
		wantErr      bool
	}{
		{
			wantErr: true,
		},
		{
			words:   []string{},
			rng:     fixedRand(0),
			wantErr: true,
		},
		{
			words:   []string{"  "},
			rng:     fixedRand(0),
			wantErr: true,
		},
		{
			words:        []string{"apple", "Orange\n", "pear"},
			rng:          fixedRand(1),
			wantBaseWord: "orange",
		},
		{
			words:        []string{"apple", "orange", "pear"},
			rng:          fixedRand(5),
			wantBaseWord: "pear",
		},
	}
	for i, test := range startGameTests {
		s, err := StartGame(test.words, test.rng)
		switch {
		case test.wantErr:
			if !errors.Is(err, ErrResourceUnavailable) {
				t.Errorf("Test %v: wanted ErrResourceUnavailable, got %v", i, err)
			}
			if s != nil {
				t.Errorf("Test %v: wanted no session when start fails, got %+v", i, s)
			}
		case err != nil:
			t.Errorf("Test %v: unwanted error: %v", i, err)
		default:
			if test.wantBaseWord != s.BaseWord {
				t.Errorf("Test %v: wanted base word %q, got %q", i, test.wantBaseWord, s.BaseWord)
			}
			if len(s.UsedWords) != 0 || s.WordScore != 0 || s.LetterScore != 0 {
				t.Errorf("Test %v: wanted empty session, got %+v", i, s)
			}
			if s.ID == "" || s.StartedAt.IsZero() {
				t.Errorf("Test %v: wanted id and start time, got %+v", i, s)
			}
		}
	}
}

func TestStartGameUniform(t *testing.T) {
	words := []string{"alpha", "bravo", "charlie", "delta"}
	rng := rand.New(rand.NewSource(1))
	counts := make(map[string]int)
	for i := 0; i < 4000; i++ {
		s, err := StartGame(words, rng)
		if err != nil {
			t.Fatalf("unwanted error: %v", err)
		}
		counts[s.BaseWord]++
	}
	for _, w := range words {
		if counts[w] < 800 {
			t.Errorf("word %q picked %v times out of 4000, wanted roughly 1000", w, counts[w])
		}
	}
}

func TestGameNewDropsBlankWords(t *testing.T) {
	g := New([]string{"", " ", "\n"}, knownWords{}, "", nil)
	if g.Words() != 0 {
		t.Errorf("wanted no start words, got %v", g.Words())
	}
	if g.Language() != DefaultLanguage {
		t.Errorf("wanted default language %q, got %q", DefaultLanguage, g.Language())
	}
	s, err := g.Start()
	if !errors.Is(err, ErrResourceUnavailable) || s != nil {
		t.Errorf("wanted ErrResourceUnavailable and no session, got %v, %v", s, err)
	}
}

func TestValidate(t *testing.T) {
	dict := knownWords{
		"an": true, "orange": true, "range": true, "maps": true, "samples": true,
		"pip": true, "pin": true, "sample": true, "zebra": true, "xyzzy": true,
	}
	validateTests := []struct {
		baseWord  string
		usedWords []string
		candidate string
		want      Outcome
	}{
		{
			baseWord:  "orange",
			candidate: "an",
			want:      Accepted,
		},
		{
			baseWord:  "orange",
			usedWords: []string{"an"},
			candidate: "an",
			want:      RejectedAlreadyUsed,
		},
		{
			baseWord:  "orange",
			candidate: "orange",
			want:      RejectedSameAsBase,
		},
		{
			baseWord:  "orange",
			candidate: "xyzzy",
			want:      RejectedNotPossible,
		},
		{
			baseWord:  "orange",
			usedWords: []string{"zebra"},
			candidate: "zebra",
			want:      RejectedAlreadyUsed, // also not possible
		},
		{
			baseWord:  "orange",
			candidate: "ogre",
			want:      RejectedNotReal,
		},
		{
			baseWord:  "sample",
			candidate: "maps",
			want:      Accepted,
		},
		{
			baseWord:  "sample",
			candidate: "samples",
			want:      RejectedNotPossible,
		},
		{
			baseWord:  "pin",
			candidate: "pip",
			want:      RejectedNotPossible,
		},
		{
			baseWord:  "orange",
			candidate: "range",
			want:      Accepted,
		},
	}
	for i, test := range validateTests {
		s := newSession(test.baseWord, test.usedWords...)
		got := s.Validate(test.candidate, dict, "en")
		if test.want != got {
			t.Errorf("Test %v: wanted %v, got %v for %q against %q", i, test.want, got, test.candidate, test.baseWord)
		}
	}
}

func TestValidateNilDictionary(t *testing.T) {
	s := newSession("orange")
	if got := s.Validate("an", nil, "en"); got != RejectedNotReal {
		t.Errorf("wanted %v without a dictionary, got %v", RejectedNotReal, got)
	}
}

func TestValidateUnicode(t *testing.T) {
	dict := knownWords{"café": true, "face": true, "ça": true}
	s := newSession(Normalize("Cafe\u0301"))
	validateTests := []struct {
		raw  string
		want Outcome
	}{
		{
			raw:  "face",
			want: RejectedNotPossible, // é is not e
		},
		{
			raw:  "cafe\u0301",
			want: RejectedSameAsBase,
		},
		{
			raw:  "Ça",
			want: RejectedNotPossible,
		},
		{
			raw:  "FACE\u0301",
			want: RejectedNotReal, // composes to "facé"
		},
	}
	for i, test := range validateTests {
		got := s.Validate(Normalize(test.raw), dict, "en")
		if test.want != got {
			t.Errorf("Test %v: wanted %v, got %v for %q", i, test.want, got, test.raw)
		}
	}
}

func TestSubmitOrangeScenario(t *testing.T) {
	dict := knownWords{"an": true, "orange": true, "xyzzy": true}
	g := New([]string{"orange"}, dict, "en", fixedRand(0))
	s, err := g.Start()
	if err != nil {
		t.Fatalf("unwanted error: %v", err)
	}
	steps := []struct {
		raw             string
		want            Outcome
		wantUsedWords   []string
		wantWordScore   int
		wantLetterScore int
	}{
		{
			raw:             "an",
			want:            Accepted,
			wantUsedWords:   []string{"an"},
			wantWordScore:   1,
			wantLetterScore: 2,
		},
		{
			raw:             " AN ",
			want:            RejectedAlreadyUsed,
			wantUsedWords:   []string{"an"},
			wantWordScore:   1,
			wantLetterScore: 2,
		},
		{
			raw:             "Orange",
			want:            RejectedSameAsBase,
			wantUsedWords:   []string{"an"},
			wantWordScore:   1,
			wantLetterScore: 2,
		},
		{
			raw:             "xyzzy",
			want:            RejectedNotPossible,
			wantUsedWords:   []string{"an"},
			wantWordScore:   1,
			wantLetterScore: 2,
		},
	}
	for i, step := range steps {
		got, ok := g.Submit(step.raw, s)
		switch {
		case !ok:
			t.Errorf("Step %v: wanted %q to be evaluated", i, step.raw)
		case step.want != got:
			t.Errorf("Step %v: wanted %v, got %v", i, step.want, got)
		case !reflect.DeepEqual(step.wantUsedWords, s.UsedWords):
			t.Errorf("Step %v: wanted used words %v, got %v", i, step.wantUsedWords, s.UsedWords)
		case step.wantWordScore != s.WordScore, step.wantLetterScore != s.LetterScore:
			t.Errorf("Step %v: wanted scores %v/%v, got %v/%v", i, step.wantWordScore, step.wantLetterScore, s.WordScore, s.LetterScore)
		}
	}
}

func TestSubmitEmptyIsIgnored(t *testing.T) {
	g := New([]string{"orange"}, knownWords{"an": true}, "en", fixedRand(0))
	s, err := g.Start()
	if err != nil {
		t.Fatalf("unwanted error: %v", err)
	}
	before := s.Clone()
	for _, raw := range []string{"", "   ", "\n\t"} {
		if _, ok := g.Submit(raw, s); ok {
			t.Errorf("wanted %q to be ignored", raw)
		}
	}
	if !reflect.DeepEqual(before, s) {
		t.Errorf("session changed by ignored input:\nwanted: %+v\ngot:    %+v", before, s)
	}
}

func TestSubmitRejectionIsIdempotent(t *testing.T) {
	g := New([]string{"orange"}, knownWords{}, "en", fixedRand(0))
	s, err := g.Start()
	if err != nil {
		t.Fatalf("unwanted error: %v", err)
	}
	for _, raw := range []string{"ogre", "xyzzy"} {
		first, _ := g.Submit(raw, s)
		before := s.Clone()
		second, _ := g.Submit(raw, s)
		if first != second {
			t.Errorf("wanted same outcome for %q twice, got %v then %v", raw, first, second)
		}
		if !reflect.DeepEqual(before, s) {
			t.Errorf("rejected %q changed the session", raw)
		}
	}
}

func TestScoreInvariants(t *testing.T) {
	dict := knownWords{}
	candidates := []string{"a", "an", "ran", "rag", "ago", "nag", "gear", "near", "range", "anger", "ogre", "roan", "goner"}
	for _, c := range candidates {
		dict[c] = true
	}
	g := New([]string{"orange"}, dict, "en", fixedRand(0))
	s, err := g.Start()
	if err != nil {
		t.Fatalf("unwanted error: %v", err)
	}
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		g.Submit(candidates[rng.Intn(len(candidates))], s)
		letters := 0
		seen := make(map[string]bool, len(s.UsedWords))
		for _, w := range s.UsedWords {
			if seen[w] {
				t.Fatalf("duplicate used word %q in %v", w, s.UsedWords)
			}
			if w == s.BaseWord {
				t.Fatalf("base word accepted: %v", s.UsedWords)
			}
			seen[w] = true
			letters += utf8.RuneCountInString(w)
		}
		if s.WordScore != len(s.UsedWords) || s.LetterScore != letters {
			t.Fatalf("scores %v/%v do not match used words %v", s.WordScore, s.LetterScore, s.UsedWords)
		}
	}
}

func TestAcceptMostRecentFirst(t *testing.T) {
	s := newSession("orange")
	s.Accept("an")
	s.Accept("café")
	want := []string{"café", "an"}
	if !reflect.DeepEqual(want, s.UsedWords) {
		t.Errorf("wanted %v, got %v", want, s.UsedWords)
	}
	if s.LetterScore != 6 {
		t.Errorf("wanted letter score of runes (6), got %v", s.LetterScore)
	}
}

func TestOutcomeText(t *testing.T) {
	outcomeTests := []struct {
		outcome Outcome
		want    string
	}{
		{Accepted, `"accepted"`},
		{RejectedAlreadyUsed, `"already_used"`},
		{RejectedNotPossible, `"not_possible"`},
		{RejectedNotReal, `"not_real"`},
		{RejectedSameAsBase, `"same_as_base"`},
	}
	for i, test := range outcomeTests {
		b, err := json.Marshal(test.outcome)
		if err != nil {
			t.Errorf("Test %v: unwanted error: %v", i, err)
			continue
		}
		if got := string(b); test.want != got {
			t.Errorf("Test %v: wanted %v, got %v", i, test.want, got)
		}
		var o Outcome
		if err := json.Unmarshal(b, &o); err != nil || o != test.outcome {
			t.Errorf("Test %v: wanted %v back, got %v (%v)", i, test.outcome, o, err)
		}
	}
	if _, err := Outcome(42).MarshalText(); err == nil {
		t.Error("wanted error for unknown outcome")
	}
	if got := Outcome(42).String(); got != "outcome(42)" {
		t.Errorf("wanted outcome(42), got %v", got)
	}
}

func TestCryptoRand(t *testing.T) {
	var r CryptoRand
	for i := 0; i < 100; i++ {
		if n := r.Intn(3); n < 0 || n >= 3 {
			t.Fatalf("wanted value in [0,3), got %v", n)
		}
	}
}

func TestSessionClone(t *testing.T) {
	cloneTests := []struct {
		used []string
	}{
		{},
		{
			used: []string{},
		},
		{
			used: []string{"range", "an"},
		},
	}
	for i, test := range cloneTests {
		s := &Session{ID: "a", BaseWord: "orange", UsedWords: test.used, WordScore: len(test.used)}
		c := s.Clone()
		if !reflect.DeepEqual(s, c) {
			t.Errorf("Test %v:\nwanted: %+v\ngot:    %+v", i, s, c)
		}
		if (test.used == nil) != (c.UsedWords == nil) {
			t.Errorf("Test %v: wanted nil UsedWords to be %v, got %v", i, test.used == nil, c.UsedWords == nil)
		}
		if len(c.UsedWords) > 0 {
			c.UsedWords[0] = "changed"
			if s.UsedWords[0] == "changed" {
				t.Errorf("Test %v: clone shares UsedWords with the session", i)
			}
		}
	}
}
