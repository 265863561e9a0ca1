package handler

import (
	"fmt"
	"html/template"
	"net/http"
	"time"

	"emailform/internal/middleware"
	"emailform/internal/service"
	"emailform/templates"

	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

type FormHandler struct {
	controller     *service.FormController
	flashes        *middleware.FlashStore
	formTemplate   *template.Template
	messageTimeout time.Duration
	logger         *zap.Logger
}

func NewFormHandler(
	controller *service.FormController,
	flashes *middleware.FlashStore,
	messageTimeout time.Duration,
	logger *zap.Logger,
) (*FormHandler, error) {
	formTemplate, err := template.ParseFS(templates.FS, "form.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse form template: %w", err)
	}

	return &FormHandler{
		controller:     controller,
		flashes:        flashes,
		formTemplate:   formTemplate,
		messageTimeout: messageTimeout,
		logger:         logger,
	}, nil
}

// Show renders the form together with the pending message, if any. A
// message is rendered once; the next request shows the form idle.
func (h *FormHandler) Show(w http.ResponseWriter, r *http.Request) {
	flash, ok, err := h.flashes.PopFlash(w, r)
	if err != nil {
		h.logger.Warn("failed to read flash", zap.Error(err))
	}

	state := service.StateIdle
	if ok {
		state = service.StateReporting
	}

	data := map[string]interface{}{
		"State":          state.String(),
		"Email":          flash.Input,
		"Kind":           flash.Kind,
		"Message":        flash.Message,
		"MessageTimeout": h.messageTimeout.Seconds(),
		"csrfField":      csrf.TemplateField(r),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.formTemplate.Execute(w, data); err != nil {
		h.logger.Error("failed to render form", zap.Error(err))
	}
}

func (h *FormHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	view := &flashView{}
	outcome := h.controller.Save(r.Context(), view, r.FormValue("email"))
	view.flash.Input = outcome.Input

	if err := h.flashes.AddFlash(w, r, view.flash); err != nil {
		h.logger.Error("failed to save flash", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *FormHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

// flashView captures what the controller reports so it can be shown on
// the page rendered after the redirect.
type flashView struct {
	flash middleware.Flash
}

func (v *flashView) ShowError(message string) {
	v.flash.Kind = string(service.MessageError)
	v.flash.Message = message
}

func (v *flashView) ShowSuccess(message string) {
	v.flash.Kind = string(service.MessageSuccess)
	v.flash.Message = message
}
