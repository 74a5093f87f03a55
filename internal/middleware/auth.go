package middleware

import (
	"net/http"
	"strings"

	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/auth"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/httputil"
)

// Auth verifies the Bearer token on every request and stores the verified
// subject in the request context. Requests without a valid token are rejected
// with 401 before reaching any handler; authorization beyond authentication
// (roles, permissions) happens in the service layer, which knows the target
// resource.
//
// Paths listed in skip are served without a token (health checks).
func Auth(verifier auth.TokenVerifier, skip ...string) func(http.Handler) http.Handler {
	skipSet := make(map[string]struct{}, len(skip))
	for _, p := range skip {
		skipSet[p] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := skipSet[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				httputil.RespondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, httputil.WithAuthSubject(r, claims.Subject, claims.Email, claims.Name))
		})
	}
}
