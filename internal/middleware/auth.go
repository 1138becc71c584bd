package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"projectboard/internal/auth"
	"projectboard/internal/httputil"
)

// AuthMiddleware requires a valid bearer token on every request except the
// paths listed in public. EventSource cannot set headers, so the token may
// also arrive as the access_token query parameter.
func AuthMiddleware(verifier auth.JWTVerifier, logger *slog.Logger, public ...string) func(http.Handler) http.Handler {
	skip := make(map[string]bool, len(public))
	for _, p := range public {
		skip[p] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if skip[r.URL.Path] || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			token := bearerToken(r)
			if token == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "missing access token")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				logger.Info("unauthorized request",
					"path", r.URL.Path,
					"method", r.Method,
				)
				httputil.RespondError(w, http.StatusUnauthorized, "invalid access token")
				return
			}

			next.ServeHTTP(w, httputil.WithUserID(r, claims.GetUserID()))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if scheme, token, ok := strings.Cut(header, " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}
	return r.URL.Query().Get("access_token")
}
