package service

import (
	"context"
	"errors"
	"testing"

	"emailform/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingView struct {
	errors    []string
	successes []string
}

func (v *recordingView) ShowError(message string)   { v.errors = append(v.errors, message) }
func (v *recordingView) ShowSuccess(message string) { v.successes = append(v.successes, message) }

type memoryStore struct {
	records []string
	unique  bool
	err     error
}

func (m *memoryStore) Append(_ context.Context, email domain.EmailAddress) error {
	if m.err != nil {
		return m.err
	}
	if m.unique {
		for _, r := range m.records {
			if r == email.String() {
				return domain.ErrDuplicateEntry
			}
		}
	}
	m.records = append(m.records, email.String())
	return nil
}

type recordingNotifier struct {
	sent []string
	err  error
}

func (n *recordingNotifier) SendEmail(to, subject, body string) error {
	n.sent = append(n.sent, to)
	return n.err
}

func TestFormController_SaveSuccess(t *testing.T) {
	store := &memoryStore{}
	view := &recordingView{}
	c := NewFormController(store, nil, zap.NewNop())

	out := c.Save(context.Background(), view, "hello@pythontutorial.net")

	assert.Equal(t, StateReporting, out.State)
	assert.Equal(t, MessageSuccess, out.Kind)
	assert.Equal(t, "The email hello@pythontutorial.net saved!", out.Message)
	assert.Empty(t, out.Input)
	assert.Equal(t, []string{"The email hello@pythontutorial.net saved!"}, view.successes)
	assert.Empty(t, view.errors)
	assert.Equal(t, []string{"hello@pythontutorial.net"}, store.records)
}

func TestFormController_InvalidFormat(t *testing.T) {
	store := &memoryStore{}
	view := &recordingView{}
	c := NewFormController(store, nil, zap.NewNop())

	out := c.Save(context.Background(), view, "not-an-email")

	assert.Equal(t, MessageError, out.Kind)
	assert.Equal(t, "Invalid email address: not-an-email", out.Message)
	assert.Equal(t, "not-an-email", out.Input)
	assert.Equal(t, []string{"Invalid email address: not-an-email"}, view.errors)
	assert.Empty(t, view.successes)
	assert.Empty(t, store.records)
}

func TestFormController_EmptyInput(t *testing.T) {
	store := &memoryStore{}
	view := &recordingView{}
	c := NewFormController(store, nil, zap.NewNop())

	out := c.Save(context.Background(), view, "")

	assert.Equal(t, MessageError, out.Kind)
	assert.Empty(t, store.records)
}

func TestFormController_DuplicateEntry(t *testing.T) {
	store := &memoryStore{unique: true}
	view := &recordingView{}
	c := NewFormController(store, nil, zap.NewNop())

	first := c.Save(context.Background(), view, "hello@pythontutorial.net")
	second := c.Save(context.Background(), view, "hello@pythontutorial.net")

	assert.Equal(t, MessageSuccess, first.Kind)
	assert.Equal(t, MessageError, second.Kind)
	assert.Equal(t, "The email hello@pythontutorial.net is already in the database!", second.Message)
	assert.Equal(t, "hello@pythontutorial.net", second.Input)
	assert.Len(t, store.records, 1)
}

func TestFormController_StorageFailure(t *testing.T) {
	store := &memoryStore{err: errors.New("disk full")}
	view := &recordingView{}
	c := NewFormController(store, nil, zap.NewNop())

	out := c.Save(context.Background(), view, "a@example.com")

	assert.Equal(t, MessageError, out.Kind)
	assert.Equal(t, "The email a@example.com could not be saved, please try again.", out.Message)
	assert.Equal(t, "a@example.com", out.Input)
}

func TestFormController_NotifiesOnSuccessOnly(t *testing.T) {
	notifier := &recordingNotifier{}
	c := NewFormController(&memoryStore{unique: true}, notifier, zap.NewNop())
	view := &recordingView{}

	c.Save(context.Background(), view, "hello@pythontutorial.net")
	c.Save(context.Background(), view, "hello@pythontutorial.net")
	c.Save(context.Background(), view, "bad")

	assert.Equal(t, []string{"hello@pythontutorial.net"}, notifier.sent)
}

func TestFormController_NotifierFailureKeepsSuccess(t *testing.T) {
	notifier := &recordingNotifier{err: errors.New("smtp down")}
	c := NewFormController(&memoryStore{}, notifier, zap.NewNop())
	view := &recordingView{}

	out := c.Save(context.Background(), view, "a@example.com")

	require.Equal(t, MessageSuccess, out.Kind)
	assert.Len(t, view.successes, 1)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "reporting", StateReporting.String())
	assert.Equal(t, "State(7)", State(7).String())
}
