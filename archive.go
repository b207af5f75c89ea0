package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

const storageKeyTimeLayout = "20060102-150405"

// StorageKey names the snapshot of contract taken at t. Two snapshots of
// the same contract within one second share a key and the later one wins.
func StorageKey(contract string, t time.Time) string {
	return contract + "-" + t.UTC().Format(storageKeyTimeLayout) + ".json"
}

// ArchiveResult is the outcome of one write. Err is nil when the store
// acknowledged the object.
type ArchiveResult struct {
	Key string
	At  time.Time
	Err error
}

func (r ArchiveResult) OK() bool {
	return r.Err == nil
}

type archiver struct {
	logger logrus.FieldLogger
	store  ObjectStore
	bucket string
	now    func() time.Time
}

func newArchiver(logger logrus.FieldLogger, store ObjectStore, bucket string) *archiver {
	return &archiver{
		logger: logger,
		store:  store,
		bucket: bucket,
		now:    time.Now,
	}
}

// Archive writes content verbatim under a key derived from contract and the
// current second. It never retries; a failed write is returned in the result.
func (a *archiver) Archive(ctx context.Context, contract string, content []byte) ArchiveResult {
	at := a.now().UTC().Truncate(time.Second)
	key := StorageKey(contract, at)
	logger := a.logger.WithFields(logrus.Fields{
		"bucket": a.bucket,
		"key":    key,
	})

	if err := a.store.PutObject(ctx, a.bucket, key, content, jsonContentType); err != nil {
		logger.WithError(err).Error("S3 upload error")
		return ArchiveResult{
			Key: key,
			At:  at,
			Err: &StorageError{Bucket: a.bucket, Key: key, Err: err},
		}
	}

	archivedBytesCounter.Add(float64(len(content)))
	logger.WithField("bytes", len(content)).Infof("file '%s' uploaded to S3 bucket '%s'", key, a.bucket)

	return ArchiveResult{Key: key, At: at}
}
