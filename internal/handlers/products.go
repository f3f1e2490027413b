package handlers

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/stockpile-app/stockpile-backend/internal/middleware"
	"github.com/stockpile-app/stockpile-backend/internal/models"
	"github.com/stockpile-app/stockpile-backend/internal/services"
)

const maxUploadSize = 10 << 20 // 10MB

type ProductForm struct {
	Name        string `json:"name" validate:"required"`
	SKU         string `json:"sku"`
	Category    string `json:"category" validate:"required"`
	Quantity    string `json:"quantity" validate:"required"`
	Price       string `json:"price" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// accountOwns is the single ownership predicate: a record may be read
// or mutated only by the account it references as owner.
func accountOwns(product *models.Product, userID primitive.ObjectID) bool {
	return product.UserID == userID
}

// parseProductForm reads product fields plus the optional "image" part.
// Create and update arrive as multipart form data; update also accepts
// a plain JSON body when no image is being sent.
func parseProductForm(r *http.Request) (*ProductForm, *multipart.FileHeader, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			return nil, nil, err
		}
		form := &ProductForm{
			Name:        r.FormValue("name"),
			SKU:         r.FormValue("sku"),
			Category:    r.FormValue("category"),
			Quantity:    r.FormValue("quantity"),
			Price:       r.FormValue("price"),
			Description: r.FormValue("description"),
		}
		var file *multipart.FileHeader
		if headers := r.MultipartForm.File["image"]; len(headers) > 0 {
			file = headers[0]
		}
		return form, file, nil
	}

	var form ProductForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		return nil, nil, err
	}
	return &form, nil, nil
}

// uploadImage pushes the file to Cloudinary and returns its metadata.
func uploadImage(r *http.Request, file *multipart.FileHeader) (models.FileData, error) {
	if cloudinaryService == nil {
		return models.FileData{}, errors.New("cloudinary service not initialized")
	}
	return cloudinaryService.UploadImage(r.Context(), file)
}

// CreateProduct creates an inventory record for the authenticated
// account, uploading the image first when one was attached.
func CreateProduct(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "Not authorized, please login")
		return
	}

	form, file, err := parseProductForm(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := validationMessage(form); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	var image models.FileData
	if file != nil {
		image, err = uploadImage(r, file)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Image could not be uploaded")
			return
		}
	}

	product := &models.Product{
		UserID:      user.ID,
		Name:        form.Name,
		SKU:         form.SKU,
		Category:    form.Category,
		Quantity:    form.Quantity,
		Price:       form.Price,
		Description: form.Description,
		Image:       image,
	}
	if err := services.CreateProduct(r.Context(), product); err != nil {
		respondError(w, http.StatusInternalServerError, "Product creation failed")
		return
	}

	respondJSON(w, http.StatusCreated, product)
}

// GetProducts lists the authenticated account's records. No products
// is a valid, empty result.
func GetProducts(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "Not authorized, please login")
		return
	}

	products, err := services.FindProductsByOwner(r.Context(), user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Database error")
		return
	}
	respondJSON(w, http.StatusOK, products)
}

// fetchOwnedProduct loads the record named in the URL and enforces the
// ownership check shared by get, update and delete. On failure it has
// already written the response and returns nil.
func fetchOwnedProduct(w http.ResponseWriter, r *http.Request) *models.Product {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "Not authorized, please login")
		return nil
	}

	productID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "productId"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Product not found")
		return nil
	}

	product, err := services.FindProductByID(r.Context(), productID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respondError(w, http.StatusNotFound, "Product not found")
			return nil
		}
		respondError(w, http.StatusInternalServerError, "Database error")
		return nil
	}

	if !accountOwns(product, user.ID) {
		respondError(w, http.StatusUnauthorized, "Not authorized")
		return nil
	}
	return product
}

// GetProduct returns a single owned record.
func GetProduct(w http.ResponseWriter, r *http.Request) {
	product := fetchOwnedProduct(w, r)
	if product == nil {
		return
	}
	respondJSON(w, http.StatusOK, product)
}

// DeleteProduct removes an owned record.
func DeleteProduct(w http.ResponseWriter, r *http.Request) {
	product := fetchOwnedProduct(w, r)
	if product == nil {
		return
	}

	if err := services.DeleteProduct(r.Context(), product.ID); err != nil {
		respondError(w, http.StatusInternalServerError, "Database error")
		return
	}
	respondMessage(w, http.StatusOK, "Product deleted successfully")
}

// UpdateProduct updates an owned record. Omitted fields keep their
// stored values; a new image replaces the stored metadata, otherwise
// the prior image is retained.
func UpdateProduct(w http.ResponseWriter, r *http.Request) {
	product := fetchOwnedProduct(w, r)
	if product == nil {
		return
	}

	form, file, err := parseProductForm(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	fields := bson.M{}
	if form.Name != "" {
		fields["name"] = form.Name
	}
	if form.SKU != "" {
		fields["sku"] = form.SKU
	}
	if form.Category != "" {
		fields["category"] = form.Category
	}
	if form.Quantity != "" {
		fields["quantity"] = form.Quantity
	}
	if form.Price != "" {
		fields["price"] = form.Price
	}
	if form.Description != "" {
		fields["description"] = form.Description
	}
	if file != nil {
		image, err := uploadImage(r, file)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Image could not be uploaded")
			return
		}
		fields["image"] = image
	}

	updated, err := services.UpdateProduct(r.Context(), product.ID, fields)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Error updating product")
		return
	}
	respondJSON(w, http.StatusOK, updated)
}
