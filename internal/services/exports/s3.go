package exports

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config holds the configuration for S3-backed exports.
type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string // optional, for S3-compatible services
	AccessKeyID     string // optional, falls back to the default chain
	SecretAccessKey string
}

// S3Backend stores exported files in an S3 bucket.
type S3Backend struct {
	client *s3.Client
	bucket string
	region string
}

// NewS3Backend builds an S3 client from the given configuration.
func NewS3Backend(ctx context.Context, cfg S3Config) (*S3Backend, error) {
	var configOpts []func(*awsconfig.LoadOptions) error
	configOpts = append(configOpts, awsconfig.WithRegion(cfg.Region))

	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		configOpts = append(configOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, configOpts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	var clientOpts []func(*s3.Options)
	if cfg.Endpoint != "" {
		clientOpts = append(clientOpts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	}

	return &S3Backend{
		client: s3.NewFromConfig(awsCfg, clientOpts...),
		bucket: cfg.Bucket,
		region: cfg.Region,
	}, nil
}

// Store uploads the cut file under "exports/<filename>" and removes the
// local copy.
func (b *S3Backend) Store(ctx context.Context, filename, sourcePath string) (*StoredObject, error) {
	f, err := os.Open(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("open export file: %w", err)
	}
	defer f.Close()

	key := "exports/" + filename
	_, err = b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String("audio/wav"),
	})
	if err != nil {
		return nil, fmt.Errorf("upload to S3: %w", err)
	}
	if err := os.Remove(sourcePath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("remove local export copy: %w", err)
	}

	return &StoredObject{
		Location: key,
		URL:      fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", b.bucket, b.region, key),
	}, nil
}

// Open streams the stored object from S3.
func (b *S3Backend) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	out, err := b.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(location),
	})
	if err != nil {
		return nil, fmt.Errorf("fetch from S3: %w", err)
	}
	return out.Body, nil
}
