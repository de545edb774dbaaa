package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/minio/minio-go/v7"
)

// GalleryPrefix is the key prefix every uploaded image is stored under. Only
// objects below it are readable anonymously.
const GalleryPrefix = "gallery"

type bucketPolicy struct {
	Version   string            `json:"Version"`
	Statement []policyStatement `json:"Statement"`
}

type policyStatement struct {
	Effect    string   `json:"Effect"`
	Principal string   `json:"Principal"`
	Action    []string `json:"Action"`
	Resource  []string `json:"Resource"`
}

func publicReadPolicy(bucket string, prefixes ...string) (string, error) {
	resources := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		resources = append(resources, fmt.Sprintf("arn:aws:s3:::%s/%s/*", bucket, p))
	}
	raw, err := json.Marshal(bucketPolicy{
		Version: "2012-10-17",
		Statement: []policyStatement{{
			Effect:    "Allow",
			Principal: "*",
			Action:    []string{"s3:GetObject"},
			Resource:  resources,
		}},
	})
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// EnsureBucket creates the bucket when it is missing and makes the gallery
// prefix publicly readable. A policy that cannot be applied is only logged:
// the bucket may already be exposed through the storage provider.
func EnsureBucket(ctx context.Context, client *minio.Client, bucket string) error {
	logger := slog.Default().With(slog.String("component", "storage"), slog.String("bucket", bucket))

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
		logger.Info("Created blob bucket")
	}

	policy, err := publicReadPolicy(bucket, GalleryPrefix)
	if err != nil {
		return err
	}
	if err := client.SetBucketPolicy(ctx, bucket, policy); err != nil {
		logger.Warn("Failed to set bucket policy", slog.Any("error", err))
	}
	return nil
}
