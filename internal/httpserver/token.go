// internal/httpserver/token.go
//
// Session tokens: an HS256 JWT whose "gid" claim names the game session it unlocks.
// Tokens are returned in the /game/new body and set as an HttpOnly cookie; requests may
// present either an Authorization: Bearer header or the cookie.

package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var errInvalidToken = errors.New("invalid token")

// signToken creates a token for gameID valid for ttl.
func (s *Server) signToken(gameID string) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.opts.TokenTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"gid": gameID,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	})
	ss, err := t.SignedString([]byte(s.opts.JWTSecret))
	return ss, exp, err
}

// parseToken validates tokenStr and returns its game id.
func (s *Server) parseToken(tokenStr string) (string, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.opts.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return "", errInvalidToken
	}
	gid, _ := claims["gid"].(string)
	if gid == "" {
		return "", errInvalidToken
	}
	return gid, nil
}

// setTokenCookie writes the session cookie with appropriate security attributes.
func (s *Server) setTokenCookie(w http.ResponseWriter, token string, exp time.Time) {
	sameSite := http.SameSiteLaxMode
	if s.opts.SecureCookies {
		sameSite = http.SameSiteNoneMode // required for third-party contexts when Secure
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.opts.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.opts.SecureCookies,
		SameSite: sameSite,
		Expires:  exp,
	})
}

// bearerOrCookie extracts a token from the Authorization header or the session cookie.
func (s *Server) bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(s.opts.CookieName); err == nil {
		return c.Value
	}
	return ""
}

// ctxGameKey is the context key for the game id carried by the request token.
type ctxGameKey struct{}

// requireToken enforces a valid session token and puts its game id into the request context.
func (s *Server) requireToken() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := s.bearerOrCookie(r)
			if tokenStr == "" {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			gid, err := s.parseToken(tokenStr)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid_token")
				return
			}
			ctx := context.WithValue(r.Context(), ctxGameKey{}, gid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// tokenGameID returns the game id placed in the context by requireToken.
func tokenGameID(r *http.Request) string {
	gid, _ := r.Context().Value(ctxGameKey{}).(string)
	return gid
}
