package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	appconfig "github.com/formaplace/formaplace-backend/internal/config"
)

// Upload errors.
var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds the upload size limit")
)

// allowedUploadTypes maps accepted MIME types to the stored file extension.
// Images cover avatars and formation covers; PDF covers course resources.
var allowedUploadTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/gif":       ".gif",
	"image/webp":      ".webp",
	"application/pdf": ".pdf",
}

// MediaService stores uploaded files in S3-compatible object storage and
// hands back publicly reachable URLs.
type MediaService struct {
	client    *s3.Client
	bucket    string
	publicURL string
	maxBytes  int64
}

// NewMediaService builds the S3 client from static credentials. A custom
// BaseEndpoint keeps MinIO and other S3-compatible stores working.
func NewMediaService(cfg *appconfig.Config) (*MediaService, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load S3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		o.UsePathStyle = true
	})

	return &MediaService{
		client:    client,
		bucket:    cfg.S3Bucket,
		publicURL: strings.TrimRight(cfg.S3PublicURL, "/"),
		maxBytes:  cfg.MaxUploadBytes,
	}, nil
}

// Upload validates type and size, then writes the file under a dated
// random key so concurrent uploads never collide.
func (s *MediaService) Upload(ctx context.Context, contentType string, size int64, body io.Reader) (string, error) {
	ext, ok := allowedUploadTypes[contentType]
	if !ok {
		return "", ErrUnsupportedFileType
	}
	if size > s.maxBytes {
		return "", ErrFileTooLarge
	}

	key := storageKey(ext)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return s.publicURL + "/" + key, nil
}

func storageKey(ext string) string {
	now := time.Now()
	return path.Join(
		fmt.Sprintf("media/%d/%02d", now.Year(), now.Month()),
		uuid.NewString()+ext,
	)
}
