package server

import (
	"net/http"

	"github.com/matzehuels/formio/pkg/session"
)

const cookieName = "formio_session"

// loadSession returns the visitor's session, starting a new one holding
// the form defaults when there is none.
func (s *Server) loadSession(w http.ResponseWriter, r *http.Request) (*session.Session, error) {
	if c, err := r.Cookie(cookieName); err == nil && session.ValidID(c.Value) {
		sess, err := s.sessions.Get(r.Context(), c.Value)
		if err != nil {
			return nil, err
		}
		if sess != nil {
			if sess.Values == nil {
				sess.Values = s.schema.Defaults()
			}
			return sess, nil
		}
	}

	sess, err := session.New(s.schema.Defaults(), s.ttl)
	if err != nil {
		return nil, err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess, nil
}

func (s *Server) saveSession(r *http.Request, sess *session.Session) error {
	sess.Touch(s.ttl)
	return s.sessions.Set(r.Context(), sess)
}
