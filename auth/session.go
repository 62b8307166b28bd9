package auth

import (
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/sirupsen/logrus"
)

const (
	sessionName = "tweetapp_session"
	userIDKey   = "user_id"
)

// Sessions maps the signed session cookie to a user id. It is the only
// place that touches session mechanics; everything downstream works
// with the resolved viewer.
type Sessions struct {
	store *sessions.CookieStore
}

// NewSessions builds a cookie-backed session store. When secret is
// empty a random key is generated, which invalidates all sessions on
// restart.
func NewSessions(secret string, maxAge time.Duration) *Sessions {
	key := []byte(secret)
	if len(key) == 0 {
		logrus.Warn("SESSION_SECRET not set, generating a volatile key")
		key = securecookie.GenerateRandomKey(32)
	}

	store := sessions.NewCookieStore(key)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &Sessions{store: store}
}

// SignIn binds the session cookie to userID.
func (s *Sessions) SignIn(w http.ResponseWriter, r *http.Request, userID uint) error {
	session, _ := s.store.Get(r, sessionName)
	session.Values[userIDKey] = userID
	return session.Save(r, w)
}

// SignOut drops the session.
func (s *Sessions) SignOut(w http.ResponseWriter, r *http.Request) error {
	session, _ := s.store.Get(r, sessionName)
	delete(session.Values, userIDKey)
	session.Options.MaxAge = -1
	return session.Save(r, w)
}

// CurrentUserID returns the user id bound to the request's session.
func (s *Sessions) CurrentUserID(r *http.Request) (uint, bool) {
	session, err := s.store.Get(r, sessionName)
	if err != nil {
		return 0, false
	}
	id, ok := session.Values[userIDKey].(uint)
	return id, ok
}
