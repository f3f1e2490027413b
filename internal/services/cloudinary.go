package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"

	"github.com/stockpile-app/stockpile-backend/internal/models"
)

// UploadFolder is the Cloudinary folder product images land in.
const UploadFolder = "Stockpile App"

type CloudinaryService struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryService(cloudName, apiKey, apiSecret string) (*CloudinaryService, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}

	return &CloudinaryService{cld: cld}, nil
}

// UploadImage pushes a multipart image to Cloudinary and returns the
// stored file metadata (original name, secure URL, content type, size).
func (s *CloudinaryService) UploadImage(ctx context.Context, fileHeader *multipart.FileHeader) (models.FileData, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return models.FileData{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	result, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:     uuid.New().String(),
		Folder:       UploadFolder,
		ResourceType: "image",
	})
	if err != nil {
		return models.FileData{}, fmt.Errorf("failed to upload to Cloudinary: %w", err)
	}

	return models.FileData{
		FileName: fileHeader.Filename,
		FilePath: result.SecureURL,
		FileType: fileHeader.Header.Get("Content-Type"),
		FileSize: fileHeader.Size,
	}, nil
}
