package resume

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// MaxResumeSize caps how much of an uploaded object is read into memory.
const MaxResumeSize = 10 << 20

var ErrTooLarge = errors.New("resume exceeds size limit")

// ObjectGetter is the part of the S3 client Download needs.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// NewR2Client points an S3 client at a Cloudflare R2 account.
func NewR2Client(cfg aws.Config, accountID string) *s3.Client {
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID))
	})
}

// Download reads a resume object of at most MaxResumeSize bytes.
func Download(ctx context.Context, client ObjectGetter, bucket, key string) ([]byte, error) {
	return download(ctx, client, bucket, key, MaxResumeSize)
}

func download(ctx context.Context, client ObjectGetter, bucket, key string, limit int64) ([]byte, error) {
	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s: %w", key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(io.LimitReader(out.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read object %s: %w", key, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: %s is over %d bytes", ErrTooLarge, key, limit)
	}
	return data, nil
}
