package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"portfolio/internal/config"
)

var ErrForeignURL = errors.New("blob url does not belong to this store")

// BlobStore is the object storage holding gallery photos and project images.
// Blobs are addressed by their public URL everywhere outside this package.
type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Open(ctx context.Context, blobURL string) (io.ReadCloser, error)
	Delete(ctx context.Context, blobURL string) error
	Owns(blobURL string) bool
}

type minioStore struct {
	client     *minio.Client
	bucket     string
	publicBase string
	host       string
}

func NewMinioStore(client *minio.Client, cfg *config.Config) BlobStore {
	scheme := "http"
	if cfg.MinIOPublicUseSSL {
		scheme = "https"
	}
	return &minioStore{
		client:     client,
		bucket:     cfg.MinIOBucket,
		publicBase: fmt.Sprintf("%s://%s/%s", scheme, cfg.MinIOPublicEndpoint, cfg.MinIOBucket),
		host:       strings.ToLower(cfg.BlobPublicHost),
	}
}

// NewObjectKey builds "<prefix>/<yyyy>/<mm>/<uuid><ext>" keeping the
// extension of the client-supplied file name.
func NewObjectKey(prefix, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("%s/%s/%s%s", prefix, time.Now().UTC().Format("2006/01"), uuid.New().String(), ext)
}

func (s *minioStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to blob store: %w", err)
	}
	return s.publicURL(key), nil
}

func (s *minioStore) Open(ctx context.Context, blobURL string) (io.ReadCloser, error) {
	key, err := s.keyFromURL(blobURL)
	if err != nil {
		return nil, err
	}
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to open blob %s: %w", key, err)
	}
	// GetObject is lazy; Stat surfaces a missing object before the first read.
	if _, err := obj.Stat(); err != nil {
		_ = obj.Close()
		return nil, fmt.Errorf("failed to stat blob %s: %w", key, err)
	}
	return obj, nil
}

func (s *minioStore) Delete(ctx context.Context, blobURL string) error {
	key, err := s.keyFromURL(blobURL)
	if err != nil {
		return err
	}
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete blob %s: %w", key, err)
	}
	return nil
}

// Owns reports whether blobURL is a well-formed http(s) URL on the configured
// blob domain (or one of its subdomains) naming an object inside the bucket.
func (s *minioStore) Owns(blobURL string) bool {
	_, err := s.keyFromURL(blobURL)
	return err == nil
}

func HostAllowed(rawURL, allowedHost string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	host := strings.ToLower(u.Hostname())
	allowedHost = strings.ToLower(allowedHost)
	if allowedHost == "" {
		return false
	}
	return host == allowedHost || strings.HasSuffix(host, "."+allowedHost)
}

func (s *minioStore) publicURL(key string) string {
	segments := strings.Split(key, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return s.publicBase + "/" + strings.Join(segments, "/")
}

func (s *minioStore) keyFromURL(blobURL string) (string, error) {
	if !HostAllowed(blobURL, s.host) {
		return "", ErrForeignURL
	}
	u, err := url.Parse(blobURL)
	if err != nil {
		return "", ErrForeignURL
	}
	prefix := "/" + s.bucket + "/"
	if !strings.HasPrefix(u.Path, prefix) || len(u.Path) == len(prefix) {
		return "", ErrForeignURL
	}
	return strings.TrimPrefix(u.Path, prefix), nil
}
