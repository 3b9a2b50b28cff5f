package httpapi

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/notekeeper/internal/server/auth"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// requireAccessToken validates the Authorization header as an access token
// and stores the subject user id in the request context. The id is extracted
// here once; downstream code receives it explicitly and never re-reads the
// token.
func (s *Server) requireAccessToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("Authorization")
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing token")
			return
		}

		userID, err := s.signer.Verify(token, auth.KindAccess)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}
