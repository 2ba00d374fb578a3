// Package storage uploads booking attachments to Cloudflare R2 through the
// S3-compatible API.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	intconfig "courierdesk/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// ObjectStore is what the upload handler and docs service depend on;
// R2Store is the production implementation.
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, fileURL string) error
}

type R2Store struct {
	client     *s3.Client
	bucket     string
	publicBase string
}

func NewR2Store(env intconfig.Env) (*R2Store, error) {
	if env.R2Bucket == "" || env.R2AccountID == "" || env.R2PublicURL == "" {
		return nil, fmt.Errorf("missing required R2 environment variables")
	}

	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", env.R2AccountID)

	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{URL: endpoint, SigningRegion: "auto"}, nil
	})

	cfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			env.R2AccessKey,
			env.R2SecretKey,
			"",
		)),
		awsconfig.WithEndpointResolverWithOptions(resolver),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load R2 config: %v", err)
	}

	return &R2Store{
		client:     s3.NewFromConfig(cfg),
		bucket:     env.R2Bucket,
		publicBase: strings.TrimRight(env.R2PublicURL, "/"),
	}, nil
}

// Put stores the object and returns its public URL.
func (s *R2Store) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to R2: %v", err)
	}
	return s.publicBase + "/" + url.PathEscape(key), nil
}

func (s *R2Store) Delete(ctx context.Context, fileURL string) error {
	u, err := url.Parse(fileURL)
	if err != nil {
		return fmt.Errorf("invalid file URL: %v", err)
	}
	key := strings.TrimPrefix(u.Path, "/")

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete R2 object: %v", err)
	}
	return nil
}

// ObjectKey builds a date-prefixed unique key. Only the extension of the
// original filename survives: an uploaded "label.jpg" becomes
// "uploads/2026-08-30/package/<uuid>.jpg".
func ObjectKey(kind, fileName string) string {
	ext := path.Ext(fileName)
	return fmt.Sprintf("uploads/%s/%s/%s%s",
		time.Now().Format("2006-01-02"), kind, uuid.NewString(), ext)
}
