package output

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/taigrr/lumen/pkg/config"
	"github.com/taigrr/lumen/pkg/render"
)

// UploadTimeout bounds a single upload.
const UploadTimeout = 30 * time.Second

// objectPutter is the part of the S3 API the uploader uses.
type objectPutter interface {
	PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error)
}

// Uploader puts rendered PNGs into an S3 bucket.
type Uploader struct {
	client objectPutter
	bucket string
	prefix string
}

// NewUploader creates an uploader for an S3-compatible endpoint. Empty
// credentials fall back to the SDK's default credential chain.
func NewUploader(cfg config.S3Config) (*Uploader, error) {
	awsCfg := &aws.Config{
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
	}
	if cfg.AccessKey != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("create s3 session: %w", err)
	}
	return &Uploader{client: s3.New(sess), bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

// Key returns the object key for a file name.
func (u *Uploader) Key(name string) string {
	return path.Join(u.prefix, path.Base(name))
}

// Upload stores a PNG under name and returns its key.
func (u *Uploader) Upload(ctx context.Context, name string, data []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	key := u.Key(name)
	size := int64(len(data))
	_, err := u.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String("image/png"),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	render.Logger().Info("uploaded frame", "bucket", u.bucket, "key", key, "bytes", size)
	return key, nil
}
