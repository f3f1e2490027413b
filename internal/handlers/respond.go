package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/stockpile-app/stockpile-backend/internal/config"
	"github.com/stockpile-app/stockpile-backend/internal/services"
)

// Shared handler state, set once from main before the router starts.
var (
	settings          *config.Settings
	cloudinaryService *services.CloudinaryService
	mailer            *services.Mailer
)

var validate = validator.New()

// Init wires the handlers package to the loaded settings.
func Init(cfg *config.Settings) {
	settings = cfg
}

func InitCloudinaryService(cfg *config.Settings) error {
	service, err := services.NewCloudinaryService(
		cfg.CloudinaryName,
		cfg.CloudinaryAPIKey,
		cfg.CloudinaryAPISecret,
	)
	if err != nil {
		return err
	}
	cloudinaryService = service
	return nil
}

func InitMailer(cfg *config.Settings) {
	mailer = services.NewMailer(cfg.EmailHost, cfg.EmailPort, cfg.EmailUser, cfg.EmailPassword)
}

// MessageResponse is the envelope for plain status replies and errors.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, MessageResponse{Success: true, Message: message})
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, MessageResponse{Success: false, Message: message})
}

// validationMessage turns the first validator failure into a
// human-readable message, or returns "" when the struct is valid.
func validationMessage(v interface{}) string {
	err := validate.Struct(v)
	if err == nil {
		return ""
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return "Invalid request"
	}

	field := strings.ToLower(errs[0].Field())
	switch errs[0].Tag() {
	case "required":
		return "Please add a " + field
	case "email":
		return "Please provide a valid email"
	case "min":
		return "Password must be at least " + errs[0].Param() + " characters"
	default:
		return "Invalid value for " + field
	}
}
