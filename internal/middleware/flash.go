package middleware

import (
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	sessionName = "form"

	flashKind    = "kind"
	flashMessage = "message"
	flashInput   = "input"
)

// Flash is a message shown once on the next render of the form.
type Flash struct {
	Kind    string
	Message string
	Input   string
}

type FlashStore struct {
	store sessions.Store
}

func NewFlashStore(store sessions.Store) *FlashStore {
	return &FlashStore{
		store: store,
	}
}

func (m *FlashStore) AddFlash(w http.ResponseWriter, r *http.Request, f Flash) error {
	session, err := m.store.Get(r, sessionName)
	if err != nil && session == nil {
		return err
	}

	session.AddFlash(f.Kind, flashKind)
	session.AddFlash(f.Message, flashMessage)
	session.AddFlash(f.Input, flashInput)

	return session.Save(r, w)
}

// PopFlash returns the pending flash, if any, and clears it.
func (m *FlashStore) PopFlash(w http.ResponseWriter, r *http.Request) (Flash, bool, error) {
	session, err := m.store.Get(r, sessionName)
	if err != nil && session == nil {
		return Flash{}, false, err
	}

	messages := session.Flashes(flashMessage)
	if len(messages) == 0 {
		return Flash{}, false, nil
	}

	f := Flash{
		Kind:    lastString(session.Flashes(flashKind)),
		Message: lastString(messages),
		Input:   lastString(session.Flashes(flashInput)),
	}

	if err := session.Save(r, w); err != nil {
		return f, true, err
	}
	return f, true, nil
}

func lastString(values []interface{}) string {
	if len(values) == 0 {
		return ""
	}
	s, _ := values[len(values)-1].(string)
	return s
}
