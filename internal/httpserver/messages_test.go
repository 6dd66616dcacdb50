package httpserver

import (
	"testing"

	"github.com/destinyelysse/A-Word-Game/internal/game"
)

func TestOutcomeText(t *testing.T) {
	outcomeTextTests := []struct {
		outcome     game.Outcome
		wantTitle   string
		wantMessage string
	}{
		{
			outcome: game.Accepted,
		},
		{
			outcome:     game.RejectedAlreadyUsed,
			wantTitle:   "Already Used",
			wantMessage: "You have already discovered this word.",
		},
		{
			outcome:     game.RejectedNotPossible,
			wantTitle:   "Not Possible",
			wantMessage: "The word you entered cannot be made from the letters in orange",
		},
		{
			outcome:     game.RejectedNotReal,
			wantTitle:   "Not Real",
			wantMessage: "The word you entered doesn't seem to be a real word.",
		},
		{
			outcome:     game.RejectedSameAsBase,
			wantTitle:   "Same as Base",
			wantMessage: "Your word is the base word.",
		},
	}
	for i, test := range outcomeTextTests {
		title, message := outcomeText(test.outcome, "orange")
		if test.wantTitle != title || test.wantMessage != message {
			t.Errorf("Test %v: wanted %q / %q, got %q / %q", i, test.wantTitle, test.wantMessage, title, message)
		}
	}
}
