package www

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	sessionName  = "elexon-forecast"
	sessionStart = "start"
	sessionEnd   = "end"
)

// Session remembers the last requested window per browser.
type Session struct {
	logger *slog.Logger
	store  sessions.Store
}

func NewSession(logger *slog.Logger, key string) *Session {
	store := sessions.NewCookieStore([]byte(key))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &Session{logger: logger, store: store}
}

// Window returns the stored dates, empty strings when nothing is stored.
func (s *Session) Window(r *http.Request) (string, string) {
	sess, err := s.store.Get(r, sessionName)
	if err != nil {
		s.logger.Debug("ignoring invalid session", slog.Any("error", err))
		return "", ""
	}
	start, _ := sess.Values[sessionStart].(string)
	end, _ := sess.Values[sessionEnd].(string)
	return start, end
}

func (s *Session) SaveWindow(w http.ResponseWriter, r *http.Request, start, end string) {
	// Get returns a new session along with the decode error, it can still be saved.
	sess, _ := s.store.Get(r, sessionName)
	sess.Values[sessionStart] = start
	sess.Values[sessionEnd] = end
	if err := sess.Save(r, w); err != nil {
		s.logger.Warn("failed to save session", slog.Any("error", err))
	}
}
