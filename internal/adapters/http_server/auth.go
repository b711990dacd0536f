package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"hotels_api/internal/adapters/observability"
	"hotels_api/internal/auth"
	"hotels_api/internal/domain"
)

type ctxKey int

const userIDKey ctxKey = iota

func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// Authenticator accepts a request when its bearer token verifies and belongs
// to a live session.
type Authenticator struct {
	signer   *auth.Signer
	sessions domain.SessionStore
	store    string // metrics label
}

func NewAuthenticator(signer *auth.Signer, sessions domain.SessionStore, store string) *Authenticator {
	return &Authenticator{signer: signer, sessions: sessions, store: store}
}

func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			writeProblem(w, http.StatusUnauthorized, "Unauthorized", "")
			return
		}
		claims, err := a.signer.Parse(token)
		if err != nil {
			writeProblem(w, http.StatusUnauthorized, "Unauthorized", "")
			return
		}

		userID, err := a.sessions.UserIDForToken(r.Context(), token)
		switch {
		case errors.Is(err, domain.ErrUnauthorized):
			observability.ObserveSession(a.store, "miss")
			writeProblem(w, http.StatusUnauthorized, "Unauthorized", "")
			return
		case err != nil:
			log.Error().Err(err).Str("store", a.store).Msg("session lookup failed")
			writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
			return
		}
		observability.ObserveSession(a.store, "hit")

		// A session must belong to the subject the token was issued for.
		if userID != claims.UserID {
			writeProblem(w, http.StatusUnauthorized, "Unauthorized", "")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
	})
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
