// Package media talks to the S3-compatible object store that hosts site
// imagery (university logos, blog covers).
package media

import (
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
)

// Client handles media host operations
type Client struct {
	s3Client *s3.S3
	bucket   string
	endpoint string
	cdnURL   string
}

// Config holds configuration for the media client
type Config struct {
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	Endpoint  string
	CDNURL    string
}

// Upload is the result of a successful upload
type Upload struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// NewClient creates a new media client
func NewClient(config Config) (*Client, error) {
	sess, err := session.NewSession(&aws.Config{
		Credentials: credentials.NewStaticCredentials(
			config.AccessKey,
			config.SecretKey,
			"",
		),
		Endpoint:         aws.String(config.Endpoint),
		Region:           aws.String(config.Region),
		S3ForcePathStyle: aws.Bool(false),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create media session: %w", err)
	}

	return &Client{
		s3Client: s3.New(sess),
		bucket:   config.Bucket,
		endpoint: config.Endpoint,
		cdnURL:   config.CDNURL,
	}, nil
}

// UploadFile stores a file under folder and returns its key and public URL.
// Keys carry a timestamp and random suffix so re-uploads never collide.
func (c *Client) UploadFile(ctx context.Context, folder, filename string, data io.Reader, contentType string) (*Upload, error) {
	ext := filepath.Ext(filename)
	key := fmt.Sprintf("%s/%d-%s%s", strings.Trim(folder, "/"), time.Now().Unix(), uuid.New().String()[:8], ext)

	_, err := c.s3Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        aws.ReadSeekCloser(data),
		ACL:         aws.String("public-read"),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}

	return &Upload{Key: key, URL: c.publicURL(key)}, nil
}

// DeleteFile removes a stored object by key
func (c *Client) DeleteFile(ctx context.Context, key string) error {
	_, err := c.s3Client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// DeleteQuietly removes a stored object and logs instead of failing. Deletion
// failures must never block the primary write that triggered the cleanup.
func (c *Client) DeleteQuietly(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := c.DeleteFile(ctx, key); err != nil {
		log.Printf("media: failed to delete %q: %v", key, err)
	}
}

func (c *Client) publicURL(key string) string {
	if c.cdnURL != "" {
		return fmt.Sprintf("%s/%s", c.cdnURL, key)
	}
	return fmt.Sprintf("https://%s.%s/%s", c.bucket, c.endpoint, key)
}
