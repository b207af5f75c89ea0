package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const (
	statusSuccess = "success"
	statusError   = "error"

	metadataTimeLayout = "2006-01-02T15:04:05Z"
)

type Metadata struct {
	StationCount int    `json:"station_count"`
	Timestamp    string `json:"timestamp"`
}

// Body is the payload returned to whoever triggered the invocation.
type Body struct {
	Status   string    `json:"status"`
	Message  string    `json:"message"`
	Metadata *Metadata `json:"metadata,omitempty"`
}

// Result is the outcome of one invocation. StatusCode follows HTTP
// semantics: 200 on success, the upstream status on upstream failures, 504
// on timeout and 500 otherwise.
type Result struct {
	StatusCode int
	Body       Body
	Err        error
}

func (r Result) Success() bool {
	return r.StatusCode == http.StatusOK
}

// outcome is the label used in metrics and logs.
func (r Result) outcome() string {
	var (
		configErr    *ConfigurationError
		timeoutErr   *TimeoutError
		upstreamErr  *UpstreamError
		malformedErr *MalformedResponseError
		transportErr *TransportError
		storageErr   *StorageError
	)

	switch {
	case r.Err == nil:
		return "success"
	case errors.As(r.Err, &configErr):
		return "configuration_error"
	case errors.As(r.Err, &timeoutErr):
		return "timeout"
	case errors.As(r.Err, &upstreamErr):
		return "upstream_error"
	case errors.As(r.Err, &malformedErr):
		return "malformed_response"
	case errors.As(r.Err, &transportErr):
		return "transport_error"
	case errors.As(r.Err, &storageErr):
		return "storage_error"
	default:
		return "unexpected_error"
	}
}

func successResult(contract string, stationCount int, at time.Time) Result {
	return Result{
		StatusCode: http.StatusOK,
		Body: Body{
			Status:  statusSuccess,
			Message: fmt.Sprintf("Data for %s successfully retrieved and stored", contract),
			Metadata: &Metadata{
				StationCount: stationCount,
				Timestamp:    at.UTC().Format(metadataTimeLayout),
			},
		},
	}
}

func errorResult(statusCode int, message string, err error) Result {
	return Result{
		StatusCode: statusCode,
		Body: Body{
			Status:  statusError,
			Message: message,
		},
		Err: err,
	}
}

func resultFromError(err error) Result {
	var (
		upstreamErr *UpstreamError
		timeoutErr  *TimeoutError
		storageErr  *StorageError
	)

	switch {
	case errors.As(err, &upstreamErr):
		return errorResult(upstreamErr.StatusCode, upstreamErr.Error(), err)
	case errors.As(err, &timeoutErr):
		return errorResult(http.StatusGatewayTimeout, "API request timed out", err)
	case errors.As(err, &storageErr):
		return errorResult(http.StatusInternalServerError, "Failed to upload data to S3", err)
	default:
		// configuration, transport, malformed and anything unforeseen
		return errorResult(http.StatusInternalServerError, err.Error(), err)
	}
}

// Response is the shape handed back to the Lambda runtime.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

func (r Result) Response() (Response, error) {
	body, err := json.Marshal(r.Body)
	if err != nil {
		return Response{}, fmt.Errorf("error encoding response body: %w", err)
	}

	return Response{StatusCode: r.StatusCode, Body: string(body)}, nil
}
