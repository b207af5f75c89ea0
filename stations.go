package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

const errorExcerptLength = 200

var errInvalidJSON = errors.New("body is not valid JSON")

// stationsSnapshot is a successful answer of the stations endpoint. Body is
// kept exactly as received.
type stationsSnapshot struct {
	Body         []byte
	StationCount int
}

type stationsClient struct {
	logger     logrus.FieldLogger
	httpClient *http.Client
	baseURL    string
	contract   string
	apiKey     string
}

func newStationsClient(logger logrus.FieldLogger, cfg Config) *stationsClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &stationsClient{
		logger:     logger,
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		contract:   cfg.Contract,
		apiKey:     cfg.APIKey,
	}
}

func (c *stationsClient) endpoint() string {
	return c.baseURL + "/stations"
}

// Fetch issues the one GET of an invocation and classifies the outcome into
// a snapshot or one of TimeoutError, TransportError, UpstreamError and
// MalformedResponseError.
func (c *stationsClient) Fetch(ctx context.Context) (*stationsSnapshot, error) {
	query := url.Values{}
	query.Set("contract", c.contract)
	query.Set("apiKey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint()+"?"+query.Encode(), http.NoBody)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Content-type", jsonContentType)

	c.logger.WithField("endpoint", c.endpoint()).Info("requesting data from JCDecaux API")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(c.redact(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	elapsed := time.Since(start)
	upstreamLatencyHistogram.Observe(elapsed.Seconds())
	if err != nil {
		return nil, classifyTransportError(c.redact(err))
	}

	c.logger.WithFields(logrus.Fields{
		"status_code":      resp.StatusCode,
		"response_time_ms": elapsed.Milliseconds(),
	}).Info("API response received")

	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{
			StatusCode: resp.StatusCode,
			Excerpt:    excerpt(string(body), errorExcerptLength),
		}
	}

	count, err := countEntries(body)
	if err != nil {
		return nil, &MalformedResponseError{Err: err}
	}

	return &stationsSnapshot{
		Body:         body,
		StationCount: count,
	}, nil
}

// redact drops the query string, which carries the API key, from the URL
// the http client puts in its errors.
func (c *stationsClient) redact(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		urlErr.URL = c.endpoint()
	}

	return err
}

func classifyTransportError(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &TimeoutError{Err: err}
	}

	return &TransportError{Err: err}
}

// countEntries validates body as JSON and returns the number of top-level
// entries: array length, object key count, or 0 for a scalar.
func countEntries(body []byte) (int, error) {
	if len(body) == 0 {
		return 0, errNoBody
	}
	if !gjson.ValidBytes(body) {
		return 0, errInvalidJSON
	}

	parsed := gjson.ParseBytes(body)
	switch {
	case parsed.IsArray():
		return len(parsed.Array()), nil
	case parsed.IsObject():
		count := 0
		parsed.ForEach(func(_, _ gjson.Result) bool {
			count++
			return true
		})
		return count, nil
	default:
		return 0, nil
	}
}

func excerpt(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}

	return string(runes[:n])
}
