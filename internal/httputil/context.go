package httputil

import (
	"context"
	"net/http"
)

// Context key type to avoid collisions
type contextKey string

const (
	userIDKey contextKey = "userID"
	emailKey  contextKey = "userEmail"
	nameKey   contextKey = "userName"
)

// WithAuthSubject adds the verified token subject and profile claims to the
// request context.
func WithAuthSubject(r *http.Request, userID, email, name string) *http.Request {
	ctx := context.WithValue(r.Context(), userIDKey, userID)
	ctx = context.WithValue(ctx, emailKey, email)
	ctx = context.WithValue(ctx, nameKey, name)
	return r.WithContext(ctx)
}

// GetUserID retrieves the authenticated user ID from context, returns empty
// string if the request is unauthenticated.
func GetUserID(r *http.Request) string {
	userID, _ := r.Context().Value(userIDKey).(string)
	return userID
}

// GetUserEmail retrieves the token's email claim from context.
func GetUserEmail(r *http.Request) string {
	email, _ := r.Context().Value(emailKey).(string)
	return email
}

// GetUserName retrieves the token's name claim from context.
func GetUserName(r *http.Request) string {
	name, _ := r.Context().Value(nameKey).(string)
	return name
}
