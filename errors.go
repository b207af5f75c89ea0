package main

import (
	"errors"
	"fmt"
)

var errNoBody = errors.New("empty response body")

// ConfigurationError reports a required setting that is missing.
type ConfigurationError struct {
	Field string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("Required environment variable %s is not set", e.Field)
}

type TimeoutError struct {
	Err error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("API request timed out: %s", e.Err)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// UpstreamError is returned when the stations API answers with anything
// other than 200. Excerpt holds the start of the response body.
type UpstreamError struct {
	StatusCode int
	Excerpt    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("API request failed with status code: %d", e.StatusCode)
}

type MalformedResponseError struct {
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("Invalid JSON response: %s", e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("Request error: %s", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StorageError wraps a failed object store write for the given key. The
// store's own error already names the bucket and key.
type StorageError struct {
	Bucket string
	Key    string
	Err    error
}

func (e *StorageError) Error() string {
	return e.Err.Error()
}

func (e *StorageError) Unwrap() error { return e.Err }
