package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alcyxob/exercise-discovery/internal/config"
	"alcyxob/exercise-discovery/internal/logger"
)

func TestNewS3StorageDisabledWithoutBucket(t *testing.T) {
	_, err := NewS3Storage(context.Background(), config.S3Config{Region: "us-east-1"}, logger.NewNop())
	assert.ErrorIs(t, err, ErrStorageDisabled)
}

func TestPresignedDownloadURL(t *testing.T) {
	store, err := NewS3Storage(context.Background(), config.S3Config{
		Endpoint:        "http://localhost:9000",
		Region:          "us-east-1",
		AccessKeyID:     "minio",
		SecretAccessKey: "minio-secret",
		BucketName:      "reports",
	}, logger.NewNop())
	require.NoError(t, err)

	url, err := store.GeneratePresignedDownloadURL(context.Background(), ReportKey("abc"), 5*time.Minute)
	require.NoError(t, err)
	assert.Contains(t, url, "http://localhost:9000/reports/reports/discovery/abc.json")
	assert.Contains(t, url, "X-Amz-Expires=300")
	assert.Contains(t, url, "X-Amz-Signature=")
}

func TestReportKey(t *testing.T) {
	assert.Equal(t, "reports/discovery/s-1.json", ReportKey("s-1"))
}
