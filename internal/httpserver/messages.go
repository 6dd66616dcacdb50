// internal/httpserver/messages.go
//
// Player-facing text for word outcomes.
// Responsibilities:
//   - Title + message for each rejection, as shown in the game's alert.
//   - The "not possible" message names the base word.
//   - Accepted words carry no text.

package httpserver

import "github.com/destinyelysse/A-Word-Game/internal/game"

// outcomeText returns the alert title and message shown to the player for a rejection.
// Accepted words have no message.
func outcomeText(o game.Outcome, baseWord string) (title, message string) {
	switch o {
	case game.RejectedAlreadyUsed:
		return "Already Used", "You have already discovered this word."
	case game.RejectedNotPossible:
		return "Not Possible", "The word you entered cannot be made from the letters in " + baseWord
	case game.RejectedNotReal:
		return "Not Real", "The word you entered doesn't seem to be a real word."
	case game.RejectedSameAsBase:
		return "Same as Base", "Your word is the base word."
	}
	return "", ""
}
