package session

import (
	"net/http"

	gorilla "github.com/gorilla/sessions"
)

// keys used internal to Session.
const (
	sessionKey = "personachat-session-gorilla"
	stateKey   = sessionKey + "-oauth-state"
)

// The Sessionable wraps methods for basic adding values to, deleting, and getting values from a session
// associated with an *http.Request and saving those to the session store.
type Sessionable interface {
	Delete(w http.ResponseWriter, r *http.Request) error
	Get(key string) any
	ResetExpiry(w http.ResponseWriter, r *http.Request) error
	Save(w http.ResponseWriter, r *http.Request) error
	Set(w http.ResponseWriter, r *http.Request, key string, val any) error
}

// The StateSessionable wraps methods for holding the nonce
// an OAuth sign in round trip is checked against.
type StateSessionable interface {
	PopState(w http.ResponseWriter, r *http.Request) (string, error)
	SetState(w http.ResponseWriter, r *http.Request, state string) error
}

// The FullSessionable composes session's major interfaces.
type FullSessionable interface {
	FlashSessionable
	Sessionable
	StateSessionable
}

// A Session provides all functionality for managing a fully featured session.
//
// Its functionality is implemented by lightly wrapping a gorilla.Session.
type Session struct {
	s *gorilla.Session
}

// NewSession constructs a new Session as an implementation of FullSessionable.
func NewSession(g *gorilla.Session) FullSessionable { return Session{s: g} }

// ClearFlashes drops any flashes stored in the session.
func (s Session) ClearFlashes(w http.ResponseWriter, r *http.Request) {
	_ = s.Flashes(w, r)
}

// Delete removes a session by making the MaxAge negative.
func (s Session) Delete(w http.ResponseWriter, r *http.Request) error {
	s.s.Options.MaxAge = -1
	return s.Save(w, r)
}

// Flashes retrieves []Flash stored in the session.
func (s Session) Flashes(w http.ResponseWriter, r *http.Request) []Flash {
	raw := s.s.Flashes()
	fs := make([]Flash, 0)
	for _, r := range raw {
		f, ok := r.(Flash)
		if !ok {
			continue
		}

		fs = append(fs, f)
	}
	if len(fs) > 0 {
		// NOTE: flashes are removed once accessed,
		// but the session needs to be saved for them to be finally removed
		if err := s.Save(w, r); err != nil {
			return nil
		}
	}

	return fs
}

// Get retrieves a value from the session according to the key passed in.
func (s Session) Get(key string) any {
	return s.s.Values[key]
}

// PopState retrieves and removes the OAuth state nonce stored in the session.
//
// If no nonce is stored, ErrNoValue returns.
// If the stored value is not a string, ErrNotValid returns and represents a programming error.
func (s Session) PopState(w http.ResponseWriter, r *http.Request) (string, error) {
	raw, ok := s.s.Values[stateKey]
	if !ok {
		return "", ErrNoValue
	}

	delete(s.s.Values, stateKey)
	if err := s.Save(w, r); err != nil {
		return "", err
	}

	state, ok := raw.(string)
	if !ok {
		return "", ErrNotValid
	}

	return state, nil
}

// ResetExpiry resets the expiration of the session by saving it.
func (s Session) ResetExpiry(w http.ResponseWriter, r *http.Request) error {
	return s.Save(w, r)
}

// Save wraps gorilla.Session.Save, saving the session in the request.
func (s Session) Save(w http.ResponseWriter, r *http.Request) error { return s.s.Save(r, w) }

// Set stores a value according to the key passed in on the session.
func (s Session) Set(w http.ResponseWriter, r *http.Request, key string, val any) error {
	s.s.Values[key] = val
	return s.Save(w, r)
}

// SetFlash stores the passed in Flash in the session.
func (s Session) SetFlash(w http.ResponseWriter, r *http.Request, flash Flash) error {
	s.s.AddFlash(flash)
	return s.Save(w, r)
}

// SetState stores the OAuth state nonce in the session.
func (s Session) SetState(w http.ResponseWriter, r *http.Request, state string) error {
	return s.Set(w, r, stateKey, state)
}
