package db

import (
	"context"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	input *s3.PutObjectInput
	body  []byte
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	f.body, _ = io.ReadAll(params.Body)
	return &s3.PutObjectOutput{}, nil
}

func TestMediaRepo_UploadToS3(t *testing.T) {
	client := &fakeS3{}
	repo := &mediaRepo{client: client, bucket: "evidence", region: "eu-west-1"}

	url, err := repo.UploadToS3(context.Background(), "evidence/r1/a.jpg", "image/jpeg", []byte("jpeg"))
	require.NoError(t, err)

	assert.Equal(t, "https://evidence.s3.eu-west-1.amazonaws.com/evidence/r1/a.jpg", url)
	assert.Equal(t, "evidence", aws.ToString(client.input.Bucket))
	assert.Equal(t, "image/jpeg", aws.ToString(client.input.ContentType))
	assert.Equal(t, []byte("jpeg"), client.body)
}
