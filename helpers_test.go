package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

const sampleStations = `[
  {
    "number": 123,
    "name": "Test Station",
    "address": "123 Test Street",
    "position": {"lat": 48.8566, "lng": 2.3522},
    "status": "OPEN",
    "bike_stands": 20,
    "available_bike_stands": 10,
    "available_bikes": 10,
    "last_update": 1617282000000
  },
  {
    "number": 124,
    "name": "Other Station",
    "status": "CLOSED",
    "bike_stands": 15,
    "available_bike_stands": 15,
    "available_bikes": 0
  }
]`

type putCall struct {
	Bucket      string
	Key         string
	Body        []byte
	ContentType string
}

type fakeStore struct {
	mu      sync.Mutex
	calls   []putCall
	objects map[string][]byte
	err     error
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: make(map[string][]byte)}
}

func (s *fakeStore) PutObject(ctx context.Context, bucket, key string, body []byte, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, putCall{Bucket: bucket, Key: key, Body: body, ContentType: contentType})
	if s.err != nil {
		return s.err
	}
	s.objects[bucket+"/"+key] = body
	return nil
}

func (s *fakeStore) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func newTestLogger() (*logrus.Entry, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return logrus.NewEntry(logger), hook
}

// fakeUpstream serves the stations endpoint and counts the requests it gets.
type fakeUpstream struct {
	*httptest.Server
	requests int64
}

func newFakeUpstream(t *testing.T, handler http.HandlerFunc) *fakeUpstream {
	u := &fakeUpstream{}
	u.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&u.requests, 1)
		handler(w, r)
	}))
	t.Cleanup(u.Close)
	return u
}

func (u *fakeUpstream) requestCount() int64 {
	return atomic.LoadInt64(&u.requests)
}

func respondWith(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func testConfig(baseURL string) Config {
	return Config{
		Contract:    "paris",
		APIKey:      "test-api-key",
		BucketName:  "test-bucket",
		BaseURL:     baseURL,
		Timeout:     defaultTimeout,
		Environment: "test",
		LogLevel:    "debug",
	}
}
