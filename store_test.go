package main

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	s3iface.S3API
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakeS3) PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error) {
	f.input = input
	body, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}
	f.body = body
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestS3StorePutObject(t *testing.T) {
	client := &fakeS3{}
	store := &s3Store{client: client}

	err := store.PutObject(context.Background(), "test-bucket", "paris-20240301-101530.json", []byte(sampleStations), jsonContentType)
	require.NoError(t, err)

	assert.Equal(t, "test-bucket", aws.StringValue(client.input.Bucket))
	assert.Equal(t, "paris-20240301-101530.json", aws.StringValue(client.input.Key))
	assert.Equal(t, "application/json", aws.StringValue(client.input.ContentType))
	assert.Equal(t, sampleStations, string(client.body))
}

func TestS3StorePutObjectError(t *testing.T) {
	cause := errors.New("AccessDenied")
	store := &s3Store{client: &fakeS3{err: cause}}

	err := store.PutObject(context.Background(), "test-bucket", "k.json", []byte("[]"), jsonContentType)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "test-bucket")
}

func TestNewS3Store(t *testing.T) {
	cfg := testConfig("")
	cfg.Region = "eu-west-3"
	cfg.Endpoint = "http://localhost:9000"

	store, err := newS3Store(cfg, &staticResolver{keyID: "AKIAEXAMPLE", keySecret: "secret"})
	require.NoError(t, err)

	client, ok := store.client.(*s3.S3)
	require.True(t, ok)
	assert.Equal(t, "eu-west-3", aws.StringValue(client.Config.Region))
	assert.Equal(t, "http://localhost:9000", aws.StringValue(client.Config.Endpoint))
	assert.True(t, aws.BoolValue(client.Config.S3ForcePathStyle))

	value, err := client.Config.Credentials.Get()
	require.NoError(t, err)
	assert.Equal(t, "AKIAEXAMPLE", value.AccessKeyID)
}
