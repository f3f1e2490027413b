package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/stockpile-app/stockpile-backend/internal/middleware"
	"github.com/stockpile-app/stockpile-backend/internal/models"
	"github.com/stockpile-app/stockpile-backend/internal/services"
	"github.com/stockpile-app/stockpile-backend/pkg/utils"
)

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UpdateUserRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Photo string `json:"photo"`
	Bio   string `json:"bio"`
}

type UpdatePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	Password    string `json:"password" validate:"required,min=6"`
}

// ProfileResponse is the account as returned to clients. The session
// token is echoed in the body on register/login, matching the cookie.
type ProfileResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Photo string `json:"photo,omitempty"`
	Bio   string `json:"bio,omitempty"`
	Token string `json:"token,omitempty"`
}

func profileOf(user *models.User, token string) ProfileResponse {
	return ProfileResponse{
		ID:    user.ID.Hex(),
		Name:  user.Name,
		Email: user.Email,
		Phone: user.Phone,
		Photo: user.Photo,
		Bio:   user.Bio,
		Token: token,
	}
}

// setSessionCookie sends the session credential as an HTTP-only cookie
// so it is not readable from frontend JavaScript.
func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(services.SessionDuration),
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
		Secure:   settings.IsProduction(),
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
		Secure:   settings.IsProduction(),
	})
}

// Register creates a new account and signs it in.
func Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := validationMessage(req); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	_, err := services.FindUserByEmail(r.Context(), req.Email)
	if err == nil {
		respondError(w, http.StatusBadRequest, "Email already in use")
		return
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		respondError(w, http.StatusInternalServerError, "Database error")
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashed,
		Phone:    models.DefaultPhone,
		Photo:    models.DefaultPhoto,
		Bio:      models.DefaultBio,
	}
	if err := services.CreateUser(r.Context(), user); err != nil {
		// Unique index on email still applies if two registrations race.
		if mongo.IsDuplicateKeyError(err) {
			respondError(w, http.StatusBadRequest, "Email already in use")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	token, err := services.IssueSession(user.ID, settings.JWTSecret)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	setSessionCookie(w, token)
	respondJSON(w, http.StatusCreated, profileOf(user, token))
}

// Login verifies credentials and signs the account in.
func Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
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
			respondError(w, http.StatusNotFound, "User not found, please signup")
			return
		}
		respondError(w, http.StatusInternalServerError, "Database error")
		return
	}

	ok, err := utils.VerifyPassword(req.Password, user.Password)
	if err != nil || !ok {
		respondError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := services.IssueSession(user.ID, settings.JWTSecret)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	setSessionCookie(w, token)
	respondJSON(w, http.StatusOK, profileOf(user, token))
}

// Logout clears the session cookie. Tokens are stateless, so there is
// nothing to invalidate server-side.
func Logout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w)
	respondMessage(w, http.StatusOK, "User logged out successfully")
}

// GetUser returns the profile of the authenticated account.
func GetUser(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "Not authorized, please login")
		return
	}
	respondJSON(w, http.StatusOK, profileOf(user, ""))
}

// LoginStatus reports whether the request carries a verifiable session
// cookie. It always answers with a bare JSON boolean.
func LoginStatus(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(middleware.SessionCookieName)
	if err != nil || cookie.Value == "" {
		respondJSON(w, http.StatusOK, false)
		return
	}
	if _, err := services.VerifySession(cookie.Value, settings.JWTSecret); err != nil {
		respondJSON(w, http.StatusOK, false)
		return
	}
	respondJSON(w, http.StatusOK, true)
}

// UpdateUser updates the mutable profile fields. Omitted fields keep
// their stored values; email cannot be changed here.
func UpdateUser(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "Not authorized, please login")
		return
	}

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	fields := bson.M{}
	if req.Name != "" {
		fields["name"] = req.Name
	}
	if req.Phone != "" {
		fields["phone"] = req.Phone
	}
	if req.Photo != "" {
		fields["photo"] = req.Photo
	}
	if req.Bio != "" {
		fields["bio"] = req.Bio
	}

	updated, err := services.UpdateUserProfile(r.Context(), user.ID, fields)
	if err != nil {
		log.Printf("update user %s: %v", user.ID.Hex(), err)
		respondError(w, http.StatusInternalServerError, "Error updating user")
		return
	}
	respondJSON(w, http.StatusOK, profileOf(updated, ""))
}

// UpdatePassword replaces the password after verifying the old one.
func UpdatePassword(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "Not authorized, please login")
		return
	}

	var req UpdatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := validationMessage(req); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	// Protect clears the password on the context user; reload it.
	stored, err := services.FindUserByID(r.Context(), user.ID)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "User not found")
		return
	}

	ok, err := utils.VerifyPassword(req.OldPassword, stored.Password)
	if err != nil || !ok {
		respondError(w, http.StatusUnauthorized, "Incorrect password")
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

	respondMessage(w, http.StatusOK, "Password update successful")
}
