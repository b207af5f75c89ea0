package main

import (
	"time"

	flag "github.com/spf13/pflag"
)

const (
	defaultBaseURL     = "https://api.jcdecaux.com/vls/v1"
	defaultTimeout     = 5 * time.Second
	defaultEnvironment = "dev"
	defaultLogLevel    = "info"
)

// Config is everything a single invocation needs. It is built once at
// process start and handed to the collector by value.
type Config struct {
	Contract   string
	APIKey     string
	BucketName string

	// Optional static object store credentials. Both must be set to be used.
	KeyID     string
	KeySecret string

	Region   string
	Endpoint string

	BaseURL string
	Timeout time.Duration

	Environment string
	LogLevel    string
}

type lookupEnvFunc func(key string) (string, bool)

func configFromEnv(lookup lookupEnvFunc) Config {
	get := func(key, fallback string) string {
		if v, ok := lookup(key); ok && v != "" {
			return v
		}
		return fallback
	}

	return Config{
		Contract:    get("CONTRACT", ""),
		APIKey:      get("API_KEY", ""),
		BucketName:  get("BUCKET_NAME", ""),
		KeyID:       get("KEY_ID", ""),
		KeySecret:   get("KEY_SECRET", ""),
		Region:      get("AWS_REGION", ""),
		Endpoint:    get("S3_ENDPOINT", ""),
		BaseURL:     get("VLS_BASE_URL", defaultBaseURL),
		Timeout:     defaultTimeout,
		Environment: get("ENVIRONMENT", defaultEnvironment),
		LogLevel:    get("LOG_LEVEL", defaultLogLevel),
	}
}

// bindFlags registers flags on fs that override the values already in cfg.
func bindFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.Contract, "contract", cfg.Contract, "JCDecaux contract (city) to collect")
	fs.StringVar(&cfg.APIKey, "api-key", cfg.APIKey, "JCDecaux API key")
	fs.StringVar(&cfg.BucketName, "bucket", cfg.BucketName, "Destination S3 bucket")
	fs.StringVar(&cfg.KeyID, "key-id", cfg.KeyID, "Static AWS access key id, ambient credentials are used when empty")
	fs.StringVar(&cfg.KeySecret, "key-secret", cfg.KeySecret, "Static AWS secret access key")
	fs.StringVar(&cfg.Region, "region", cfg.Region, "AWS region of the bucket")
	fs.StringVar(&cfg.Endpoint, "s3-endpoint", cfg.Endpoint, "Custom S3 compatible endpoint")
	fs.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "Base URL of the VLS API")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Timeout of the request to the VLS API")
	fs.StringVar(&cfg.Environment, "environment", cfg.Environment, "Environment name attached to every log line")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level")
}

// Validate checks the required settings in the order the environment
// documents them and reports the first one missing.
func (c Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"CONTRACT", c.Contract},
		{"API_KEY", c.APIKey},
		{"BUCKET_NAME", c.BucketName},
	}

	for _, r := range required {
		if r.value == "" {
			return &ConfigurationError{Field: r.name}
		}
	}

	return nil
}

func (c Config) hasStaticCredentials() bool {
	return c.KeyID != "" && c.KeySecret != ""
}
