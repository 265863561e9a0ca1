package service

import (
	"context"
	"errors"
	"fmt"

	"emailform/internal/domain"
	"emailform/internal/repository"
	"emailform/pkg/email"
	"emailform/pkg/logger"

	"go.uber.org/zap"
)

// View is the surface the controller reports to.
type View interface {
	ShowError(message string)
	ShowSuccess(message string)
}

type State int

const (
	StateIdle State = iota
	StateReporting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateReporting:
		return "reporting"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

type MessageKind string

const (
	MessageSuccess MessageKind = "success"
	MessageError   MessageKind = "error"
)

// Outcome describes what the form shows after a submission. Input is the
// text the email field holds afterwards.
type Outcome struct {
	State   State
	Kind    MessageKind
	Message string
	Input   string
}

type FormController struct {
	store    repository.EmailStore
	notifier email.Service
	logger   *zap.Logger
}

// NewFormController wires the controller to the process-wide store.
// notifier may be nil.
func NewFormController(store repository.EmailStore, notifier email.Service, logger *zap.Logger) *FormController {
	return &FormController{
		store:    store,
		notifier: notifier,
		logger:   logger,
	}
}

func (c *FormController) Save(ctx context.Context, view View, input string) Outcome {
	address, err := domain.ParseEmailAddress(input)
	if err != nil {
		c.logger.Debug("rejected submission", zap.Error(err))
		return c.fail(view, input, fmt.Sprintf("Invalid email address: %s", input))
	}

	if err := c.store.Append(ctx, address); err != nil {
		if errors.Is(err, domain.ErrDuplicateEntry) {
			c.logger.Info("duplicate email", logger.Email(input))
			return c.fail(view, input, fmt.Sprintf("The email %s is already in the database!", input))
		}
		c.logger.Error("failed to save email", logger.Email(input), zap.Error(err))
		return c.fail(view, input, fmt.Sprintf("The email %s could not be saved, please try again.", input))
	}

	c.logger.Info("email saved", logger.Email(input))
	c.notify(address)

	message := fmt.Sprintf("The email %s saved!", input)
	view.ShowSuccess(message)
	return Outcome{State: StateReporting, Kind: MessageSuccess, Message: message}
}

func (c *FormController) fail(view View, input, message string) Outcome {
	view.ShowError(message)
	return Outcome{State: StateReporting, Kind: MessageError, Message: message, Input: input}
}

func (c *FormController) notify(address domain.EmailAddress) {
	if c.notifier == nil {
		return
	}

	subject := "Thanks for subscribing"
	body := fmt.Sprintf("<p>We will keep %s posted.</p>", address.String())
	if err := c.notifier.SendEmail(address.String(), subject, body); err != nil {
		c.logger.Warn("confirmation email not sent", logger.Email(address.String()), zap.Error(err))
	}
}
