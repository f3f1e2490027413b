package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/stockpile-app/stockpile-backend/internal/middleware"
	"github.com/stockpile-app/stockpile-backend/internal/models"
)

func TestContactWithoutSession(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/contactus/",
		strings.NewReader(`{"subject":"Help","message":"Something broke"}`))
	rec := httptest.NewRecorder()
	Contact(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestContactValidation(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID(), Email: "ann@x.com"}

	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing subject", `{"message":"Something broke"}`, "Please add a subject"},
		{"missing message", `{"subject":"Help"}`, "Please add a message"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/contactus/", strings.NewReader(tt.body))
			req = req.WithContext(middleware.WithUser(req.Context(), user))

			rec := httptest.NewRecorder()
			Contact(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.want)
		})
	}
}
