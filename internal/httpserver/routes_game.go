// internal/httpserver/routes_game.go
//
// Game endpoints:
//   - POST /game/new  → start a session (random or daily base word), returns state + token
//   - GET  /game/{id} → current state of the caller's session
//   - POST /game/word → submit a word; returns the outcome and the updated state
//
// Rejections (already used, not possible, not real, same as base) are normal 200 responses;
// only transport problems (bad JSON, missing token, unknown game) are HTTP errors.

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/destinyelysse/A-Word-Game/internal/daily"
	"github.com/destinyelysse/A-Word-Game/internal/game"
	"github.com/destinyelysse/A-Word-Game/internal/store"
)

func (s *Server) mountGame() {
	s.r.Post("/game/new", s.handleNewGame)
	s.r.With(s.requireToken()).Get("/game/{id}", s.handleGetGame)
	s.r.With(s.requireToken()).Post("/game/word", s.handleWord)
}

// gameState is the public view of a session.
type gameState struct {
	GameID      string    `json:"gameId"`
	Mode        game.Mode `json:"mode"`
	BaseWord    string    `json:"baseWord"`
	UsedWords   []string  `json:"usedWords"`
	WordScore   int       `json:"wordScore"`
	LetterScore int       `json:"letterScore"`
	StartedAt   time.Time `json:"startedAt"`
}

func stateOf(sess *game.Session) gameState {
	used := sess.UsedWords
	if used == nil {
		used = []string{}
	}
	return gameState{
		GameID:      sess.ID,
		Mode:        sess.Mode,
		BaseWord:    sess.BaseWord,
		UsedWords:   used,
		WordScore:   sess.WordScore,
		LetterScore: sess.LetterScore,
		StartedAt:   sess.StartedAt,
	}
}

// newGameReq/Res payloads for POST /game/new.
type newGameReq struct {
	Mode           string `json:"mode"`           // "random" (default) | "daily"
	PreviousGameID string `json:"previousGameId"` // replaced session, deleted if the caller owns it
}
type newGameRes struct {
	gameState
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// handleNewGame starts a session, stores it and returns its state with a session token.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	var (
		sess *game.Session
		err  error
	)
	switch game.Mode(req.Mode) {
	case "", game.ModeRandom:
		sess, err = s.opts.Game.Start()
	case game.ModeDaily:
		sess, err = s.opts.Game.StartWith(daily.NewRand(s.now(), s.opts.DailySalt), game.ModeDaily)
	default:
		writeError(w, http.StatusBadRequest, "invalid_mode")
		return
	}
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("start game")
		writeError(w, http.StatusServiceUnavailable, "word_list_unavailable")
		return
	}

	s.dropPrevious(r, req.PreviousGameID)

	if err := s.opts.Store.Save(r.Context(), sess); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	tok, exp, err := s.signToken(sess.ID)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("sign token")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	s.setTokenCookie(w, tok, exp)
	hlog.FromRequest(r).Info().Str("gameId", sess.ID).Str("mode", string(sess.Mode)).Msg("game started")
	writeJSON(w, http.StatusOK, newGameRes{gameState: stateOf(sess), Token: tok, ExpiresAt: exp})
}

// dropPrevious deletes the replaced session when the request's token belongs to it.
func (s *Server) dropPrevious(r *http.Request, prevID string) {
	if prevID == "" {
		return
	}
	tok := s.bearerOrCookie(r)
	if tok == "" {
		return
	}
	if gid, err := s.parseToken(tok); err != nil || gid != prevID {
		return
	}
	if err := s.opts.Store.Delete(r.Context(), prevID); err != nil {
		hlog.FromRequest(r).Warn().Err(err).Str("gameId", prevID).Msg("delete previous session")
	}
}

// handleGetGame returns the state of the session named in the path.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id != tokenGameID(r) {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}
	sess, err := s.opts.Store.Get(r.Context(), id)
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stateOf(sess))
}

// wordReq/Res payloads for POST /game/word.
type wordReq struct {
	GameID string `json:"gameId"`
	Word   string `json:"word"`
}
type wordRes struct {
	Outcome  *game.Outcome `json:"outcome,omitempty"`
	Accepted bool          `json:"accepted"`
	Ignored  bool          `json:"ignored,omitempty"` // empty input, nothing evaluated
	Title    string        `json:"title,omitempty"`
	Message  string        `json:"message,omitempty"`
	State    gameState     `json:"state"`
}

// handleWord validates a submitted word and applies it to the session when accepted.
func (s *Server) handleWord(w http.ResponseWriter, r *http.Request) {
	var req wordReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if req.GameID == "" {
		writeError(w, http.StatusBadRequest, "missing_game_id")
		return
	}
	if req.GameID != tokenGameID(r) {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}

	var res wordRes
	err := s.opts.Store.Update(r.Context(), req.GameID, func(sess *game.Session) error {
		outcome, ok := s.opts.Game.Submit(req.Word, sess)
		if !ok {
			res.Ignored = true
		} else {
			res.Outcome = &outcome
			res.Accepted = outcome == game.Accepted
			res.Title, res.Message = outcomeText(outcome, sess.BaseWord)
		}
		res.State = stateOf(sess)
		return nil
	})
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) storeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	hlog.FromRequest(r).Error().Err(err).Msg("session store")
	writeError(w, http.StatusInternalServerError, "store_failed")
}
