package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/stockpile-app/stockpile-backend/internal/middleware"
)

type ContactRequest struct {
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// Contact relays a support request from the authenticated account to
// the configured support address. Replies go back to the requester.
func Contact(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "Not authorized, please login")
		return
	}

	var req ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := validationMessage(req); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	if mailer == nil {
		respondError(w, http.StatusInternalServerError, "Email service not available")
		return
	}
	if err := mailer.Send(req.Subject, req.Message, settings.SupportEmail, settings.EmailUser, user.Email); err != nil {
		respondError(w, http.StatusInternalServerError, "Email not sent")
		return
	}

	respondMessage(w, http.StatusOK, "Email sent successfully")
}
