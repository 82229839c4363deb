package services

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"time"

	"movie-i18n/internal/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"
)

const presignExpiry = 15 * time.Minute

// FileStorage removes uploaded artwork when a movie drops it.
type FileStorage interface {
	DeleteByURL(ctx context.Context, rawURL string) (bool, error)
}

// StorageService stores posters and backdrops in a MinIO/S3 bucket.
type StorageService struct {
	client    *minio.Client
	bucket    string
	publicURL string
	logger    *logrus.Logger
}

func NewStorageService(ctx context.Context, cfg *config.MinIOConfig, logger *logrus.Logger) (*StorageService, error) {
	endpoint := cfg.Endpoint
	endpoint = strings.TrimPrefix(endpoint, "https://")
	endpoint = strings.TrimPrefix(endpoint, "http://")

	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"endpoint": endpoint,
		"bucket":   cfg.BucketName,
		"useSSL":   cfg.UseSSL,
	}).Info("MinIO client initialized successfully")

	service := &StorageService{
		client:    minioClient,
		bucket:    cfg.BucketName,
		publicURL: cfg.PublicURL,
		logger:    logger,
	}

	if err := service.ensureBucket(ctx, cfg.Region); err != nil {
		logger.WithError(err).Warn("Failed to configure bucket, but continuing...")
	}

	return service, nil
}

func (s *StorageService) ensureBucket(ctx context.Context, region string) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: region}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
		s.logger.WithField("bucket", s.bucket).Info("Bucket created successfully")
	}

	policy := fmt.Sprintf(`{
		"Version": "2012-10-17",
		"Statement": [
			{
				"Effect": "Allow",
				"Principal": {"AWS": ["*"]},
				"Action": ["s3:GetObject"],
				"Resource": ["arn:aws:s3:::%s/*"]
			}
		]
	}`, s.bucket)

	if err := s.client.SetBucketPolicy(ctx, s.bucket, policy); err != nil {
		return fmt.Errorf("failed to set bucket policy: %w", err)
	}

	s.logger.WithField("bucket", s.bucket).Info("Bucket policy set to public read")
	return nil
}

// GeneratePresignedURL returns an upload URL for filename and the public URL
// the object will be served from.
func (s *StorageService) GeneratePresignedURL(ctx context.Context, filename string) (string, string, error) {
	objectKey := UniqueObjectKey(filename)

	presignedURL, err := s.client.PresignedPutObject(ctx, s.bucket, objectKey, presignExpiry)
	if err != nil {
		s.logger.WithError(err).Error("Failed to generate presigned URL")
		return "", "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	publicURL, err := PublicObjectURL(s.publicURL, s.bucket, objectKey)
	if err != nil {
		return "", "", err
	}

	s.logger.WithFields(logrus.Fields{
		"filename":  filename,
		"objectKey": objectKey,
		"expiry":    presignExpiry,
	}).Info("Generated presigned URL")

	return presignedURL.String(), publicURL, nil
}

// DeleteByURL removes the object behind rawURL. URLs outside the bucket, such
// as TMDB image paths, are ignored and reported as not deleted.
func (s *StorageService) DeleteByURL(ctx context.Context, rawURL string) (bool, error) {
	objectKey, ok := ObjectKeyFromURL(s.bucket, rawURL)
	if !ok {
		return false, nil
	}

	if err := s.client.RemoveObject(ctx, s.bucket, objectKey, minio.RemoveObjectOptions{}); err != nil {
		s.logger.WithError(err).WithField("objectKey", objectKey).Error("Failed to delete file")
		return false, fmt.Errorf("failed to delete file: %w", err)
	}

	s.logger.WithField("objectKey", objectKey).Info("File deleted successfully from MinIO")
	return true, nil
}

// UniqueObjectKey suffixes filename with a short random id, keeping the extension.
func UniqueObjectKey(filename string) string {
	filename = path.Base(filepath.ToSlash(filename))
	ext := filepath.Ext(filename)
	name := strings.TrimSuffix(filename, ext)
	return fmt.Sprintf("%s_%s%s", name, uuid.New().String()[:8], ext)
}

// PublicObjectURL joins the scheme and host of base with bucket and key.
func PublicObjectURL(base, bucket, objectKey string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid public URL %q: %w", base, err)
	}
	if u.Scheme == "" {
		u.Scheme = "http"
	}
	return (&url.URL{Scheme: u.Scheme, Host: u.Host, Path: "/" + path.Join(bucket, objectKey)}).String(), nil
}

// ObjectKeyFromURL extracts the object key from an http(s) URL whose path
// starts with bucket. Query strings of presigned URLs are dropped.
func ObjectKeyFromURL(bucket, rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return "", false
	}

	key, ok := strings.CutPrefix(strings.TrimPrefix(u.Path, "/"), bucket+"/")
	if !ok || key == "" {
		return "", false
	}
	return key, true
}
