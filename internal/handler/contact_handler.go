package handler

import (
	"encoding/json"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"go-portfolio-app/internal/logger"
	"go-portfolio-app/internal/mail"
	"go-portfolio-app/internal/middleware"
)

// ContactHandler forwards contact-form submissions to the email
// collaborator.
type ContactHandler struct {
	sender mail.Sender
	log    logger.Logger
}

// NewContactHandler creates a ContactHandler.
func NewContactHandler(sender mail.Sender, log logger.Logger) *ContactHandler {
	return &ContactHandler{sender: sender, log: log}
}

func (h *ContactHandler) handleSend(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var msg mail.Message
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		return &middleware.AppError{Err: err, Message: "Invalid request body", Code: http.StatusBadRequest}
	}

	if err := validation.ValidateStruct(&msg,
		validation.Field(&msg.FromName, validation.Required.Error("name_required")),
		validation.Field(&msg.FromEmail, validation.Required.Error("email_required"), is.Email.Error("invalid_email_format")),
		validation.Field(&msg.Body, validation.Required.Error("message_required")),
	); err != nil {
		return &middleware.AppError{Err: err, Message: err.Error(), Code: http.StatusUnprocessableEntity}
	}

	// The visitor only ever sees a generic failure; details go to the log.
	if err := h.sender.Send(msg); err != nil {
		return &middleware.AppError{Err: err, Message: "Sorry, there was an error sending your message. Please try again later.", Code: http.StatusBadGateway}
	}

	respondJSON(w, http.StatusAccepted, map[string]string{"status": "sent"})
	return nil
}
