package http

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// AdminAuth gates admin routes behind a pre-shared bearer token. The
// surrounding site's identity provider is responsible for handing the
// token to authenticated staff; this layer only checks possession.
func AdminAuth(token string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token == "" {
			writeError(w, http.StatusForbidden, codeForbidden, "admin access disabled")
			return
		}

		auth := r.Header.Get("Authorization")
		presented, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok {
			writeError(w, http.StatusUnauthorized, codeUnauthorized, "missing bearer token")
			return
		}
		if subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
			writeError(w, http.StatusUnauthorized, codeUnauthorized, "invalid token")
			return
		}
		next.ServeHTTP(w, r)
	})
}
