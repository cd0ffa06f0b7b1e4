package ports

import (
	"context"
	"time"

	"fintrack-backend/domain"
)

// ObjectStore is the managed blob store holding receipts and attachments.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	List(ctx context.Context, prefix string) ([]domain.StoredObject, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)

	// PresignGet returns a temporary download URL for a key.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}
