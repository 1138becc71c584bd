package httputil

import (
	"context"
	"net/http"
)

type contextKey string

const (
	userIDKey contextKey = "userID"
)

// WithUserID adds the authenticated subject to the request context
func WithUserID(r *http.Request, userID string) *http.Request {
	ctx := context.WithValue(r.Context(), userIDKey, userID)
	return r.WithContext(ctx)
}

// GetUserID retrieves the subject from context, returns empty string when the
// board runs without authentication
func GetUserID(r *http.Request) string {
	userID, _ := r.Context().Value(userIDKey).(string)
	return userID
}
