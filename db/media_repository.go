package db

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/pkg/errors"
	"github.com/techagentng/cleancity/config"
)

// MediaRepository stores binary media and hands back a public URL.
type MediaRepository interface {
	UploadToS3(ctx context.Context, key, contentType string, body []byte) (string, error)
}

type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type mediaRepo struct {
	client s3API
	bucket string
	region string
}

func NewMediaRepo(ctx context.Context, c *config.Config) (MediaRepository, error) {
	client, err := createS3Client(ctx, c)
	if err != nil {
		return nil, err
	}
	return &mediaRepo{client: client, bucket: c.EvidenceBucket, region: c.AwsRegion}, nil
}

func createS3Client(ctx context.Context, c *config.Config) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(c.AwsRegion)}
	if c.AwsAccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AwsAccessKeyID, c.AwsSecretAccessKey, ""),
		))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "unable to load AWS config")
	}
	return s3.NewFromConfig(cfg), nil
}

func (m *mediaRepo) UploadToS3(ctx context.Context, key, contentType string, body []byte) (string, error) {
	_, err := m.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(m.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
		ACL:         types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", errors.Wrapf(err, "failed to upload %s to S3", key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", m.bucket, m.region, key), nil
}
