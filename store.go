package main

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

const jsonContentType = "application/json"

// ObjectStore is the single write the archiver needs from a bucket.
type ObjectStore interface {
	PutObject(ctx context.Context, bucket, key string, body []byte, contentType string) error
}

type s3Store struct {
	client s3iface.S3API
}

func newS3Store(cfg Config, resolver credentialResolver) (*s3Store, error) {
	awsConfig := aws.NewConfig().
		WithCredentialsChainVerboseErrors(true)

	if creds := resolver.Credentials(); creds != nil {
		awsConfig = awsConfig.WithCredentials(creds)
	}
	if cfg.Region != "" {
		awsConfig = awsConfig.WithRegion(cfg.Region)
	}
	if cfg.Endpoint != "" {
		awsConfig = awsConfig.
			WithEndpoint(cfg.Endpoint).
			WithS3ForcePathStyle(true)
	}

	sess, err := session.NewSessionWithOptions(session.Options{
		Config:            *awsConfig,
		SharedConfigState: session.SharedConfigEnable,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating AWS session: %w", err)
	}

	return &s3Store{client: s3.New(sess)}, nil
}

func (s *s3Store) PutObject(ctx context.Context, bucket, key string, body []byte, contentType string) error {
	_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("error putting object [%s] in bucket [%s]: %w", key, bucket, err)
	}

	return nil
}
