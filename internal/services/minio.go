package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"velora_back_end/internal/config"
	"velora_back_end/internal/database"

	"github.com/minio/minio-go/v7"
)

// UploadFile pousse une image produit dans le bucket et renvoie son URL
// publique.
func UploadFile(cfg *config.Config, file *multipart.FileHeader) (string, error) {
	if database.MinIO == nil {
		return "", fmt.Errorf("MinIO non initialisé")
	}

	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	objectName := fmt.Sprintf("%d_%s", time.Now().UnixNano(), file.Filename)

	_, err = database.MinIO.PutObject(context.Background(), cfg.MinioBucket, objectName, f, file.Size,
		minio.PutObjectOptions{ContentType: file.Header.Get("Content-Type")})
	if err != nil {
		return "", err
	}

	scheme := "http"
	if cfg.MinioUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, cfg.MinioEndpoint, cfg.MinioBucket, objectName), nil
}
