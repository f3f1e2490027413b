package handlers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/stockpile-app/stockpile-backend/internal/middleware"
	"github.com/stockpile-app/stockpile-backend/internal/models"
)

func multipartBody(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestAccountOwns(t *testing.T) {
	owner := primitive.NewObjectID()
	product := &models.Product{UserID: owner}

	assert.True(t, accountOwns(product, owner))
	assert.False(t, accountOwns(product, primitive.NewObjectID()))
}

func TestParseProductForm(t *testing.T) {
	t.Run("multipart with zero quantity", func(t *testing.T) {
		body, contentType := multipartBody(t, map[string]string{
			"name":        "Widget",
			"category":    "tools",
			"quantity":    "0",
			"price":       "12.50",
			"description": "a widget",
		})
		req := httptest.NewRequest(http.MethodPost, "/api/products/createproduct", body)
		req.Header.Set("Content-Type", contentType)

		form, file, err := parseProductForm(req)
		require.NoError(t, err)
		assert.Nil(t, file)
		assert.Equal(t, "0", form.Quantity)
		// "0" counts as present; the record is simply out of stock.
		assert.Empty(t, validationMessage(form))
	})

	t.Run("json body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPatch, "/api/products/abc",
			bytes.NewReader([]byte(`{"name":"Widget","price":"15.00"}`)))
		req.Header.Set("Content-Type", "application/json")

		form, file, err := parseProductForm(req)
		require.NoError(t, err)
		assert.Nil(t, file)
		assert.Equal(t, "Widget", form.Name)
		assert.Equal(t, "15.00", form.Price)
	})
}

func TestCreateProductValidation(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID(), Name: "Ann"}

	body, contentType := multipartBody(t, map[string]string{
		"name":     "Widget",
		"category": "tools",
		"quantity": "0",
		"price":    "12.50",
		// description intentionally absent
	})
	req := httptest.NewRequest(http.MethodPost, "/api/products/createproduct", body)
	req.Header.Set("Content-Type", contentType)
	req = req.WithContext(middleware.WithUser(req.Context(), user))

	rec := httptest.NewRecorder()
	CreateProduct(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "description")
}

func TestCreateProductWithoutSession(t *testing.T) {
	rec := httptest.NewRecorder()
	CreateProduct(rec, httptest.NewRequest(http.MethodPost, "/api/products/createproduct", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetProductInvalidID(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID(), Name: "Ann"}

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("productId", "not-a-hex-id")

	req := httptest.NewRequest(http.MethodGet, "/api/products/not-a-hex-id", nil)
	ctx := middleware.WithUser(req.Context(), user)
	ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()
	GetProduct(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Product not found")
}
