package services

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"verdura_back_end/internal/database"
)

// GenerateSignedURL génère une URL GET signée avec expiration pour un objet du bucket
func GenerateSignedURL(ctx context.Context, objectName string, duration time.Duration) (string, error) {
	if database.MinioClient == nil {
		return "", fmt.Errorf("MinIO non initialisé")
	}

	reqParams := make(url.Values)
	presignedURL, err := database.MinioClient.PresignedGetObject(ctx, bucketName(), objectName, duration, reqParams)
	if err != nil {
		return "", err
	}

	return presignedURL.String(), nil
}
