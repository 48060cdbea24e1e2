// internal/storage/s3.go
package storage

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Service owns the lead-documents bucket: per-lead document folders and
// generated document PDFs.
type S3Service struct {
	client     *s3.Client
	uploader   *manager.Uploader
	downloader *manager.Downloader
	bucket     string
	region     string
	publicBase string
}

type UploadResult struct {
	Key        string
	Bucket     string
	PublicURL  string
	FileHash   string // SHA-256 hash of the uploaded file
	FileSize   int64
	MimeType   string
	UploadedAt time.Time
}

// NewS3Service creates a new S3 service instance with MinIO support
func NewS3Service() (*S3Service, error) {
	bucket := os.Getenv("AWS_S3_BUCKET")
	if bucket == "" {
		bucket = "lead-documents"
	}

	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "us-east-1" // default region
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	endpointURL := os.Getenv("AWS_ENDPOINT_URL")

	// Create S3 client with custom endpoint for MinIO
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpointURL != "" {
			o.BaseEndpoint = aws.String(endpointURL)
			o.UsePathStyle = true // MinIO requires path-style addressing
		}
	})

	publicBase := os.Getenv("AWS_S3_PUBLIC_BASE_URL")
	if publicBase == "" {
		if endpointURL != "" {
			publicBase = fmt.Sprintf("%s/%s", strings.TrimSuffix(endpointURL, "/"), bucket)
		} else {
			publicBase = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
		}
	}

	return &S3Service{
		client:     client,
		uploader:   manager.NewUploader(client),
		downloader: manager.NewDownloader(client),
		bucket:     bucket,
		region:     region,
		publicBase: publicBase,
	}, nil
}

// ObjectKey builds the bucket path for a lead-owned file:
// {ownerID}/{timestamp_or_fieldname}_{originalFileName}.
func ObjectKey(ownerID, prefix, fileName string) string {
	if prefix == "" {
		prefix = fmt.Sprintf("%d", time.Now().UTC().UnixMilli())
	}
	return fmt.Sprintf("%s/%s_%s", ownerID, prefix, sanitizeFileName(fileName))
}

func sanitizeFileName(name string) string {
	name = path.Base(name)
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, name)
}

// UploadDocument uploads a file under an owner-scoped key and returns its
// public URL and content hash.
func (s *S3Service) UploadDocument(ctx context.Context, key string, data []byte, contentType string) (*UploadResult, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("file is empty")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	hash := sha256.Sum256(data)
	fileHash := hex.EncodeToString(hash[:])

	uploadInput := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		Metadata: map[string]string{
			"content-hash": fileHash,
		},
	}

	_, err := s.uploader.Upload(ctx, uploadInput)
	if err != nil {
		return nil, fmt.Errorf("failed to upload to S3: %w", err)
	}

	return &UploadResult{
		Key:        key,
		Bucket:     s.bucket,
		PublicURL:  s.PublicURL(key),
		FileHash:   fileHash,
		FileSize:   int64(len(data)),
		MimeType:   contentType,
		UploadedAt: time.Now().UTC(),
	}, nil
}

// PublicURL computes the retrieval URL for an object key.
func (s *S3Service) PublicURL(key string) string {
	return fmt.Sprintf("%s/%s", strings.TrimSuffix(s.publicBase, "/"), key)
}

// DownloadFile downloads a file from S3 and returns its bytes and hash.
func (s *S3Service) DownloadFile(ctx context.Context, key string) ([]byte, string, error) {
	buf := manager.NewWriteAtBuffer([]byte{})

	_, err := s.downloader.Download(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to download from S3: %w", err)
	}

	hash := sha256.Sum256(buf.Bytes())
	return buf.Bytes(), hex.EncodeToString(hash[:]), nil
}

// GeneratePresignedURL generates a presigned URL for temporary access
func (s *S3Service) GeneratePresignedURL(ctx context.Context, key string, expiration time.Duration) (string, error) {
	presignClient := s3.NewPresignClient(s.client)

	request, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = expiration
	})

	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return request.URL, nil
}

// DeleteFile deletes a file from S3
func (s *S3Service) DeleteFile(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})

	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}

	return nil
}

// CheckFileExists checks if a file exists in S3
func (s *S3Service) CheckFileExists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})

	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check file existence: %w", err)
	}

	return true, nil
}

// ValidateFileIntegrity validates a file against its stored hash
func (s *S3Service) ValidateFileIntegrity(data []byte, expectedHash string) error {
	hash := sha256.Sum256(data)
	actualHash := hex.EncodeToString(hash[:])

	if actualHash != expectedHash {
		return fmt.Errorf("file integrity check failed: expected %s, got %s", expectedHash, actualHash)
	}

	return nil
}
