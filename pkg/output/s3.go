package output

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// UploadTimeout bounds a single object upload
const UploadTimeout = 30 * time.Second

// S3Config locates the bucket renders are uploaded to
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string // Optional, for S3-compatible stores
	AccessKey string
	SecretKey string
	Prefix    string // Key prefix, e.g. "renders"
}

// Enabled reports whether uploads were configured at all
func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

// Validate checks that an enabled config can build a session
func (c S3Config) Validate() error {
	if !c.Enabled() {
		return errors.New("S3 bucket is not set")
	}
	if c.Region == "" {
		return errors.New("S3 region is not set")
	}
	if (c.AccessKey == "") != (c.SecretKey == "") {
		return errors.New("S3 access key and secret key must be set together")
	}
	return nil
}

// ObjectPutter is the part of the S3 client the uploader needs
type ObjectPutter interface {
	PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error)
}

// S3Uploader stores encoded renders in a bucket
type S3Uploader struct {
	client ObjectPutter
	config S3Config
}

// NewS3Uploader creates an uploader backed by a real S3 session.
// Without static keys the SDK's default credential chain is used.
func NewS3Uploader(config S3Config) (*S3Uploader, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	awsConfig := &aws.Config{
		Region:           aws.String(config.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if config.AccessKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(config.AccessKey, config.SecretKey, "")
	}
	if config.Endpoint != "" {
		awsConfig.Endpoint = aws.String(config.Endpoint)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}

	return NewS3UploaderWithClient(s3.New(sess), config), nil
}

// NewS3UploaderWithClient creates an uploader around an existing client
func NewS3UploaderWithClient(client ObjectPutter, config S3Config) *S3Uploader {
	return &S3Uploader{client: client, config: config}
}

// Key returns the object key for a file name under the configured prefix
func (u *S3Uploader) Key(name string) string {
	return path.Join(u.config.Prefix, name)
}

// UploadPNG uploads encoded PNG data under name and returns the object key
func (u *S3Uploader) UploadPNG(ctx context.Context, name string, data []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	key := u.Key(name)
	_, err := u.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.config.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String("image/png"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return key, nil
}
