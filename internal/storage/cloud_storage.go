// Package storage keeps uploaded files either in Google Cloud Storage or,
// when no bucket is configured, inline in the database row.
package storage

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
)

// Client is an object store.
type Client interface {
	UploadFile(ctx context.Context, objectName string, fileData io.Reader) error
	DownloadFile(ctx context.Context, objectName string) (io.ReadCloser, int64, error)
}

// CloudStorageClient stores objects in one GCS bucket.
type CloudStorageClient struct {
	BucketName string
	Client     *storage.Client
}

// NewCloudStorageClient creates a client using application default credentials.
func NewCloudStorageClient(ctx context.Context, bucketName string) (*CloudStorageClient, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloud storage client: %w", err)
	}
	return &CloudStorageClient{
		BucketName: bucketName,
		Client:     client,
	}, nil
}

// UploadFile implements Client.
func (c *CloudStorageClient) UploadFile(ctx context.Context, objectName string, fileData io.Reader) error {
	wc := c.Client.Bucket(c.BucketName).Object(objectName).NewWriter(ctx)
	if _, err := io.Copy(wc, fileData); err != nil {
		_ = wc.Close()
		return fmt.Errorf("failed to write data to object: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("failed to close object writer: %w", err)
	}
	return nil
}

// DownloadFile implements Client.
func (c *CloudStorageClient) DownloadFile(ctx context.Context, objectName string) (io.ReadCloser, int64, error) {
	rc, err := c.Client.Bucket(c.BucketName).Object(objectName).NewReader(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open object %s: %w", objectName, err)
	}
	return rc, rc.Attrs.Size, nil
}

// Close releases the underlying client.
func (c *CloudStorageClient) Close() error {
	return c.Client.Close()
}
