package contracts

import (
	"context"
	"time"
)

type StorageService interface {
	PresignedGetURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
}
