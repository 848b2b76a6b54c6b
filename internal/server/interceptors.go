package server

import (
	"net/http"
	"strings"
)

// requireUser resolves the request's bearer credential to a user id before
// handing off to next. The streaming handler runs only with an authenticated
// identity; credential formats are the verifier's concern.
func (s *Server) requireUser(next func(http.ResponseWriter, *http.Request, int64)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "invalid authorization scheme")
			return
		}
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing credentials")
			return
		}

		userID, err := s.verifier.Verify(token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		next(w, r, userID)
	}
}

// bearerToken extracts the credential from the Authorization header, falling
// back to the token query parameter because EventSource cannot set headers.
func bearerToken(r *http.Request) (string, bool) {
	if h := r.Header.Get("Authorization"); h != "" {
		if !strings.HasPrefix(h, "Bearer ") {
			return "", false
		}
		return strings.TrimPrefix(h, "Bearer "), true
	}
	return r.URL.Query().Get("token"), true
}
