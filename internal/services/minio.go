package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"path"

	"swadbazaar-backend/internal/database"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// UploadProductImage stores an uploaded image in the product bucket and
// returns its public URL.
func UploadProductImage(file *multipart.FileHeader) (string, error) {
	if database.MinIO == nil {
		return "", fmt.Errorf("MinIO not initialised")
	}

	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	bucket := os.Getenv("MINIO_BUCKET")
	if bucket == "" {
		bucket = "swadbazaar-products"
	}

	// uuid prefix avoids clobbering same-named uploads
	objectName := "products/" + uuid.NewString() + path.Ext(file.Filename)

	_, err = database.MinIO.PutObject(context.Background(), bucket, objectName, f, file.Size,
		minio.PutObjectOptions{ContentType: file.Header.Get("Content-Type")})
	if err != nil {
		return "", err
	}

	scheme := "http"
	if os.Getenv("MINIO_USE_SSL") == "true" {
		scheme = "https"
	}
	url := fmt.Sprintf("%s://%s/%s/%s", scheme, os.Getenv("MINIO_ENDPOINT"), bucket, objectName)
	return url, nil
}
