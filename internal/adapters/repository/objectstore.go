package repository

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const objectScheme = "s3://"

// ObjectStoreConfig locates an S3-compatible endpoint holding the dataset.
type ObjectStoreConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Region    string
	UseSSL    bool
}

// Validate reports whether the endpoint can be dialled.
func (c ObjectStoreConfig) Validate() error {
	if strings.TrimSpace(c.Endpoint) == "" {
		return fmt.Errorf("%w: endpoint is empty", ErrObjectStoreConfig)
	}
	if strings.Contains(c.Endpoint, "://") {
		return fmt.Errorf("%w: endpoint must be host[:port], got %q", ErrObjectStoreConfig, c.Endpoint)
	}
	return nil
}

// ParseObjectURL splits s3://bucket/key into its bucket and key.
func ParseObjectURL(raw string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(raw, objectScheme)
	if !ok {
		return "", "", fmt.Errorf("%w: %q is not an %s url", ErrInvalidSource, raw, objectScheme)
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || strings.Trim(key, "/") == "" {
		return "", "", fmt.Errorf("%w: %q needs a bucket and a key", ErrInvalidSource, raw)
	}
	return bucket, key, nil
}

func newMinioClient(cfg ObjectStoreConfig) (*minio.Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return minio.New(cfg.Endpoint, &minio.Options{
		Creds:     credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:    cfg.UseSSL,
		Region:    cfg.Region,
		Transport: newTransport(),
	})
}

// openObject stats the object first so a missing key fails here rather than
// on the first read.
func openObject(ctx context.Context, cfg ObjectStoreConfig, bucket, key string) (io.ReadCloser, error) {
	client, err := newMinioClient(cfg)
	if err != nil {
		return nil, err
	}
	if _, err := client.StatObject(ctx, bucket, key, minio.StatObjectOptions{}); err != nil {
		return nil, fmt.Errorf("%w: stat %s/%s: %v", ErrObjectStoreNotReached, bucket, key, err)
	}
	obj, err := client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("%w: get %s/%s: %v", ErrObjectStoreNotReached, bucket, key, err)
	}
	return obj, nil
}

func newTransport() *http.Transport {
	dialer := &net.Dialer{
		Timeout:   5 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	return &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
}
