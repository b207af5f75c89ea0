package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

type Collector interface {
	Collect(ctx context.Context) error
}

type requestIDKey struct{}

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// stationCollector fetches one contract's station status and archives it.
type stationCollector struct {
	logger logrus.FieldLogger
	store  ObjectStore
	cfg    Config
	now    func() time.Time
}

func newStationCollector(logger logrus.FieldLogger, cfg Config, store ObjectStore) *stationCollector {
	return &stationCollector{
		logger: logger,
		store:  store,
		cfg:    cfg,
		now:    time.Now,
	}
}

func (c *stationCollector) Collect(ctx context.Context) error {
	return c.Run(ctx, c.cfg).Err
}

// Run performs a whole invocation with cfg: validate, fetch, archive. Every
// failure is reported in the returned Result.
func (c *stationCollector) Run(ctx context.Context, cfg Config) (result Result) {
	logger := c.logger.WithFields(logrus.Fields{
		"aws_request_id": requestIDFromContext(ctx),
		"contract":       cfg.Contract,
	})

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("unexpected error: %v", r)
			logger.WithError(err).Error("Unexpected error")
			result = errorResult(http.StatusInternalServerError, fmt.Sprintf("Unexpected error: %v", r), err)
		}
		invocationsCounter.WithLabelValues(result.outcome()).Inc()
	}()

	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Error("missing environment variable")
		return resultFromError(err)
	}

	snapshot, err := newStationsClient(logger, cfg).Fetch(ctx)
	if err != nil {
		entry := logger.WithError(err)
		var upstreamErr *UpstreamError
		if errors.As(err, &upstreamErr) {
			entry = entry.WithFields(logrus.Fields{
				"status_code":   upstreamErr.StatusCode,
				"error_message": upstreamErr.Excerpt,
			})
		}
		entry.Error("API request failed")
		return resultFromError(err)
	}

	lastStationCountGauge.WithLabelValues(cfg.Contract).Set(float64(snapshot.StationCount))
	logger.WithField("station_count", snapshot.StationCount).Info("successfully retrieved station data")

	a := newArchiver(logger, c.store, cfg.BucketName)
	a.now = c.now
	archived := a.Archive(ctx, cfg.Contract, snapshot.Body)
	if !archived.OK() {
		return resultFromError(archived.Err)
	}

	return successResult(cfg.Contract, snapshot.StationCount, archived.At)
}
