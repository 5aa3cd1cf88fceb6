package storage

import (
	"context"
	"sync"
	"time"

	"farmalink-service/internal/app/config"
	"farmalink-service/internal/app/contracts"
	"farmalink-service/internal/pkg/exceptions"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

var (
	minioStorageInstance contracts.StorageService
	onceMinioStorage     sync.Once
)

type minioStorage struct {
	client     *minio.Client
	bucketName string
	Log        *zap.Logger
}

func NewMinioStorage(client *minio.Client, driverConfig *config.DriverConfig, logger *zap.Logger) contracts.StorageService {
	onceMinioStorage.Do(func() {
		instance := &minioStorage{
			client:     client,
			bucketName: driverConfig.Minio.BucketName,
			Log:        logger,
		}
		minioStorageInstance = instance
	})
	return minioStorageInstance
}

func (s *minioStorage) PresignedGetURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	if objectName == "" {
		return "", nil
	}

	presignedURL, err := s.client.PresignedGetObject(ctx, s.bucketName, objectName, expiry, nil)
	if err != nil {
		s.Log.Error("minioStorage.PresignedGetURL failed",
			zap.String("object_name", objectName),
			zap.Error(err),
		)
		return "", exceptions.ErrStorageResolve(err)
	}
	return presignedURL.String(), nil
}
