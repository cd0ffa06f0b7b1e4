// Package s3 implements the object store port on Amazon S3.
package s3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"time"

	"fintrack-backend/application/ports"
	"fintrack-backend/domain"
	apperrors "fintrack-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"
)

// Store keeps all attachments in a single bucket.
type Store struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
	logger  *zap.Logger
}

// NewStore creates an S3-backed object store.
func NewStore(client *s3.Client, bucket string, logger *zap.Logger) ports.ObjectStore {
	return &Store{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  bucket,
		logger:  logger,
	}
}

// Put writes an object with its content type.
func (s *Store) Put(ctx context.Context, key, contentType string, body []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		s.logger.Error("failed to put object",
			zap.String("key", key),
			zap.Error(err),
		)
		return apperrors.NewExternalError("s3", err)
	}
	return nil
}

// Get reads a whole object into memory.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, apperrors.NewNotFoundError("file")
		}
		return nil, apperrors.NewExternalError("s3", err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, apperrors.NewExternalError("s3", err)
	}
	return body, nil
}

// List returns the bucket's objects under a prefix.
func (s *Store) List(ctx context.Context, prefix string) ([]domain.StoredObject, error) {
	var objects []domain.StoredObject

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, apperrors.NewExternalError("s3", err)
		}
		for _, obj := range page.Contents {
			stored := domain.StoredObject{
				Key:  aws.ToString(obj.Key),
				Size: aws.ToInt64(obj.Size),
			}
			if obj.LastModified != nil {
				stored.LastModified = obj.LastModified.UTC().Format(time.RFC3339)
			}
			if obj.ETag != nil {
				stored.ETag = trimETag(aws.ToString(obj.ETag))
			}
			objects = append(objects, stored)
		}
	}

	return objects, nil
}

// Delete removes an object. Deleting an absent key is not an error in S3.
func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return apperrors.NewExternalError("s3", err)
	}
	return nil
}

// Exists heads the object.
func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, apperrors.NewExternalError("s3", err)
	}
	return true, nil
}

// PresignGet returns a temporary download URL for a key.
func (s *Store) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", apperrors.NewExternalError("s3", err)
	}
	return req.URL, nil
}

// trimETag strips the quotes S3 wraps around ETag values.
func trimETag(etag string) string {
	if len(etag) >= 2 && etag[0] == '"' && etag[len(etag)-1] == '"' {
		return etag[1 : len(etag)-1]
	}
	return etag
}
