package s3media

import (
	"context"
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	crerr "github.com/cockroachdb/errors"
)

type Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	// Prefix is the public URL prefix that maps onto the bucket root.
	Prefix string
}

type headObjectAPI interface {
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

// Checker verifies that media referenced by public URL is present in the bucket.
type Checker struct {
	api    headObjectAPI
	bucket string
	prefix string
}

func NewChecker(ctx context.Context, cfg Config) (*Checker, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, crerr.New("s3 bucket is required")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, crerr.Wrap(err, "load aws config")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return newChecker(client, cfg.Bucket, cfg.Prefix), nil
}

func newChecker(api headObjectAPI, bucket, prefix string) *Checker {
	return &Checker{api: api, bucket: bucket, prefix: prefix}
}

// Exists reports whether the object behind rawURL is in the bucket. URLs
// outside the configured prefix are not ours to check and count as present.
func (c *Checker) Exists(ctx context.Context, rawURL string) (bool, error) {
	key, ok := c.objectKey(rawURL)
	if !ok {
		return true, nil
	}

	_, err := c.api.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err == nil {
		return true, nil
	}
	if isNotFound(err) {
		return false, nil
	}
	return false, crerr.Wrapf(err, "head object %s", key)
}

func (c *Checker) objectKey(rawURL string) (string, bool) {
	if c.prefix == "" || !strings.HasPrefix(rawURL, c.prefix) {
		return "", false
	}
	key := strings.TrimPrefix(rawURL, c.prefix)
	return key, key != ""
}

func isNotFound(err error) bool {
	var notFound *types.NotFound
	if stderrors.As(err, &notFound) {
		return true
	}
	var noSuchKey *types.NoSuchKey
	if stderrors.As(err, &noSuchKey) {
		return true
	}
	var respErr *awshttp.ResponseError
	return stderrors.As(err, &respErr) && respErr.HTTPStatusCode() == http.StatusNotFound
}
