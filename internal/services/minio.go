package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"verdura_back_end/internal/database"
)

func bucketName() string {
	if b := os.Getenv("MINIO_BUCKET"); b != "" {
		return b
	}
	return "verdura-images"
}

// UploadFile pousse un fichier multipart vers MinIO et retourne le nom d'objet.
// Le nom est préfixé d'un uuid pour éviter les collisions entre uploads.
func UploadFile(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if database.MinioClient == nil {
		return "", fmt.Errorf("MinIO non initialisé")
	}

	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	objectName := fmt.Sprintf("products/%s-%s", uuid.NewString(), file.Filename)
	_, err = database.MinioClient.PutObject(ctx, bucketName(), objectName, f, file.Size,
		minio.PutObjectOptions{ContentType: file.Header.Get("Content-Type")})
	if err != nil {
		return "", err
	}

	return objectName, nil
}

// RemoveFile supprime un objet du bucket
func RemoveFile(ctx context.Context, objectName string) error {
	if database.MinioClient == nil {
		return fmt.Errorf("MinIO non initialisé")
	}
	return database.MinioClient.RemoveObject(ctx, bucketName(), objectName, minio.RemoveObjectOptions{})
}
