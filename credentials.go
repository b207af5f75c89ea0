package main

import (
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/sirupsen/logrus"
)

// credentialResolver decides which credentials the S3 client signs with.
type credentialResolver interface {
	Name() string
	// Credentials returns nil when the SDK default chain should be used.
	Credentials() *credentials.Credentials
}

type staticResolver struct {
	keyID     string
	keySecret string
}

func (*staticResolver) Name() string { return "static" }

func (r *staticResolver) Credentials() *credentials.Credentials {
	return credentials.NewStaticCredentialsFromCreds(credentials.Value{
		AccessKeyID:     r.keyID,
		SecretAccessKey: r.keySecret,
	})
}

// ambientResolver defers to the environment, shared config or the role
// attached to the function.
type ambientResolver struct{}

func (ambientResolver) Name() string { return "ambient" }

func (ambientResolver) Credentials() *credentials.Credentials { return nil }

func newCredentialResolver(logger logrus.FieldLogger, cfg Config) credentialResolver {
	if cfg.hasStaticCredentials() {
		logger.Warn("using static AWS access keys instead of the execution role")
		return &staticResolver{keyID: cfg.KeyID, keySecret: cfg.KeySecret}
	}

	if cfg.KeyID != "" || cfg.KeySecret != "" {
		logger.Warn("only one of KEY_ID and KEY_SECRET is set, ignoring both")
	}

	return ambientResolver{}
}
