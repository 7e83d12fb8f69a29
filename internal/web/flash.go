package web

import (
	"encoding/gob"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/rs/zerolog"
)

// Flash categories used by the templates for styling.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Category string
	Message  string
}

func init() {
	gob.Register(Flash{})
}

// FlashStore keeps flashes in a signed session cookie so they survive the
// redirect after a successful booking.
type FlashStore struct {
	store *sessions.CookieStore
	name  string
}

func NewFlashStore(secret, cookieName string, secure bool) *FlashStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &FlashStore{store: store, name: cookieName}
}

// Add queues a flash for the next request.
func (f *FlashStore) Add(w http.ResponseWriter, r *http.Request, flash Flash) error {
	// a tampered or stale cookie yields a fresh session along with the error
	sess, _ := f.store.Get(r, f.name)
	sess.AddFlash(flash)
	return sess.Save(r, w)
}

// Pop returns and clears the pending flashes.
func (f *FlashStore) Pop(w http.ResponseWriter, r *http.Request) []Flash {
	sess, err := f.store.Get(r, f.name)
	if err != nil {
		zerolog.Ctx(r.Context()).Debug().Err(err).Msg("discarding unreadable session cookie")
	}

	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := sess.Save(r, w); err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("clear flashes")
	}

	flashes := make([]Flash, 0, len(raw))
	for _, v := range raw {
		if fl, ok := v.(Flash); ok {
			flashes = append(flashes, fl)
		}
	}
	return flashes
}
