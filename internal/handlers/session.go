package handlers

import (
	"net/http"

	"github.com/google/uuid"
)

// SessionCookie names the cookie that ties a browser to its cart
const SessionCookie = "cart_session"

// sessionID returns the request's cart session, issuing a new cookie when absent
func sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		if _, err := uuid.Parse(c.Value); err == nil {
			return c.Value
		}
	}

	id := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	// Make the new session visible to the rest of this request.
	r.AddCookie(&http.Cookie{Name: SessionCookie, Value: id})
	return id
}
