package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/stockpile-app/stockpile-backend/internal/models"
	"github.com/stockpile-app/stockpile-backend/internal/services"
	"github.com/stockpile-app/stockpile-backend/pkg/utils"
)

// ResetTokenDuration is how long a password-reset link stays valid.
const ResetTokenDuration = 30 * time.Minute

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required"`
}

// ForgotPassword issues a fresh reset token and emails the reset link.
// Any outstanding token for the account is discarded first, so only
// the newest link works.
func ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := validationMessage(req); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	user, err := services.FindUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respondError(w, http.StatusNotFound, "User does not exist")
			return
		}
		respondError(w, http.StatusInternalServerError, "Database error")
		return
	}

	if err := services.DeleteTokensForUser(r.Context(), user.ID); err != nil {
		respondError(w, http.StatusInternalServerError, "Database error")
		return
	}

	resetToken, err := utils.NewResetToken(user.ID.Hex())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create reset token")
		return
	}

	now := time.Now().UTC()
	token := &models.Token{
		UserID:    user.ID,
		TokenHash: utils.HashResetToken(resetToken),
		CreatedAt: now,
		ExpiresAt: now.Add(ResetTokenDuration),
	}
	if err := services.CreateToken(r.Context(), token); err != nil {
		respondError(w, http.StatusInternalServerError, "Database error")
		return
	}

	resetURL := fmt.Sprintf("%s/resetpassword/%s", settings.FrontendURL, resetToken)
	body := fmt.Sprintf(`
	<h2>Hello %s</h2>
	<p>Please use the URL below to reset your password.</p>
	<p>This link is valid for 30 minutes only.</p>
	<a href=%q>%s</a>
	<p>Regards,</p>
	<p>Stockpile</p>
	`, user.Name, resetURL, resetURL)

	if mailer == nil {
		respondError(w, http.StatusInternalServerError, "Email service not available")
		return
	}
	if err := mailer.Send("Password Reset Request", body, user.Email, settings.EmailUser); err != nil {
		respondError(w, http.StatusInternalServerError, "Email not sent")
		return
	}

	respondMessage(w, http.StatusOK, "Reset email sent")
}

// ResetPassword consumes a reset token and replaces the password. The
// token document is deleted on success, so a link works at most once.
func ResetPassword(w http.ResponseWriter, r *http.Request) {
	resetToken := chi.URLParam(r, "resetToken")

	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := validationMessage(req); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	token, err := services.FindValidToken(r.Context(), utils.HashResetToken(resetToken))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respondError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}
		respondError(w, http.StatusInternalServerError, "Database error")
		return
	}

	user, err := services.FindUserByID(r.Context(), token.UserID)
	if err != nil {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}
	if err := services.UpdateUserPassword(r.Context(), user.ID, hashed); err != nil {
		respondError(w, http.StatusInternalServerError, "Error updating password")
		return
	}

	if err := services.DeleteToken(r.Context(), token.ID); err != nil {
		// Password is already changed; the TTL index removes the
		// token at expiry anyway.
		log.Printf("delete reset token %s: %v", token.ID.Hex(), err)
	}

	respondMessage(w, http.StatusOK, "Password reset successful, please login")
}
