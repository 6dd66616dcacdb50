// internal/httpserver/routes_debug.go
//
// Operator endpoints under /debug, guarded by HTTP Basic auth.
// The password is checked against the bcrypt hash in DEBUG_PASSWORD_HASH; the user name is ignored.

package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"
	"golang.org/x/crypto/bcrypt"
)

func (s *Server) mountDebug() {
	s.r.Route("/debug", func(r chi.Router) {
		r.Use(s.requireDebugAuth)
		r.Get("/words", s.handleDebugWords)
	})
}

// requireDebugAuth rejects requests whose Basic auth password does not match the hash.
func (s *Server) requireDebugAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, pw, ok := r.BasicAuth()
		if !ok || bcrypt.CompareHashAndPassword([]byte(s.opts.DebugHash), []byte(pw)) != nil {
			w.Header().Set("WWW-Authenticate", `Basic realm="debug"`)
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleDebugWords reports word list, dictionary and session counts.
func (s *Server) handleDebugWords(w http.ResponseWriter, r *http.Request) {
	out := map[string]any{
		"startWords": s.opts.Game.Words(),
		"language":   s.opts.Game.Language(),
		"sessions":   s.opts.Store.Len(),
	}
	if s.opts.Dictionary != nil {
		n, err := s.opts.Dictionary.Size(r.Context())
		if err != nil {
			hlog.FromRequest(r).Warn().Err(err).Msg("dictionary size")
		} else {
			out["dictionary"] = n
		}
	}
	writeJSON(w, http.StatusOK, out)
}
