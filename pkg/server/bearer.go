package server

import (
	"net/http"
	"strings"
)

// parseBearer extracts the bearer credential from the Authorization
// header. Empty string when the header is missing or uses another scheme.
func parseBearer(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	if !strings.HasPrefix(auth, "Bearer ") {
		// Unsupported auth scheme, for example, Basic
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
}
