package server

import (
	"net/http"

	"github.com/gorilla/context"

	"github.com/hourboard/dashboard-api/pkg/session"
)

type SessionFinder interface {
	Get(id string) *session.Session
}

type Middleware struct {
	sessions SessionFinder
}

func NewMiddleware(sessions SessionFinder) *Middleware {
	return &Middleware{sessions: sessions}
}

// withSession resolves the bearer credential to a live session and
// attaches it to the request. Missing or stale credentials get 401.
func (mw *Middleware) withSession(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := parseBearer(r)
		if sessionID == "" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		sess := mw.sessions.Get(sessionID)
		if sess == nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		context.Set(r, sessionKey, sess)
		handler(w, r)
	}
}
