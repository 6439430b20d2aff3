// Package mobjectstore manages the MinIO connection used to resolve a
// memory's originalContentRef.
package mobjectstore

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mlog"
)

// Connection is a hub for the MinIO client.
type Connection struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
	Client          *minio.Client
	Connected       bool
	Logger          mlog.Logger
}

// Connect opens the MinIO client. MinIO's client is lazy about the
// network, so this only validates configuration, not reachability.
func (c *Connection) Connect(ctx context.Context) error {
	if c.Logger == nil {
		c.Logger = mlog.NoOp{}
	}

	client, err := minio.New(c.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(c.AccessKeyID, c.SecretAccessKey, ""),
		Secure: c.UseSSL,
	})
	if err != nil {
		return fmt.Errorf("building minio client: %w", err)
	}

	c.Logger.Info("connected to object store")

	c.Client = client
	c.Connected = true

	return nil
}

// GetClient returns the minio client, connecting lazily if necessary.
func (c *Connection) GetClient(ctx context.Context) (*minio.Client, error) {
	if c.Client == nil {
		if err := c.Connect(ctx); err != nil {
			return nil, err
		}
	}

	return c.Client, nil
}

// Store is the narrow surface the rest of the core depends on, so
// callers never reach for MinIO-specific types directly.
type Store interface {
	BucketExists(ctx context.Context, bucket string) (bool, error)
	MakeBucket(ctx context.Context, bucket string) error
	Put(ctx context.Context, bucket, key string, body io.Reader, size int64, contentType string) error
	Get(ctx context.Context, bucket, key string) (io.ReadCloser, error)
	// Stat verifies an object exists without fetching it. minio's
	// GetObject is lazy about the network, so Get alone cannot report a
	// missing key.
	Stat(ctx context.Context, bucket, key string) error
	Remove(ctx context.Context, bucket, key string) error
}

// minioStore adapts *minio.Client to Store.
type minioStore struct {
	client *minio.Client
}

// NewStore wraps an already-connected Connection as a Store.
func NewStore(conn *Connection) Store {
	return &minioStore{client: conn.Client}
}

func (s *minioStore) BucketExists(ctx context.Context, bucket string) (bool, error) {
	ok, err := s.client.BucketExists(ctx, bucket)
	if err != nil {
		return false, fmt.Errorf("checking bucket %q: %w", bucket, err)
	}

	return ok, nil
}

func (s *minioStore) MakeBucket(ctx context.Context, bucket string) error {
	if err := s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("creating bucket %q: %w", bucket, err)
	}

	return nil
}

func (s *minioStore) Put(ctx context.Context, bucket, key string, body io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, bucket, key, body, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("putting object %s/%s: %w", bucket, key, err)
	}

	return nil
}

func (s *minioStore) Get(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("getting object %s/%s: %w", bucket, key, err)
	}

	return obj, nil
}

func (s *minioStore) Stat(ctx context.Context, bucket, key string) error {
	if _, err := s.client.StatObject(ctx, bucket, key, minio.StatObjectOptions{}); err != nil {
		return fmt.Errorf("statting object %s/%s: %w", bucket, key, err)
	}

	return nil
}

// Remove deletes an object. Used by DeleteMemory to best-effort clean up
// a memory's blob alongside its row.
func (s *minioStore) Remove(ctx context.Context, bucket, key string) error {
	if err := s.client.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("removing object %s/%s: %w", bucket, key, err)
	}

	return nil
}
