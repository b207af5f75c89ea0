package main

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewLogger(t *testing.T) {
	cfg := testConfig("")
	cfg.LogLevel = "WARNING"

	entry := newLogger(cfg)
	assert.Equal(t, logrus.WarnLevel, entry.Logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, entry.Logger.Formatter)
	assert.Equal(t, serviceName, entry.Data["service"])
	assert.Equal(t, "test", entry.Data["environment"])

	cfg.LogLevel = "chatty"
	assert.Equal(t, logrus.InfoLevel, newLogger(cfg).Logger.GetLevel())
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]logrus.Level{
		"CRITICAL": logrus.FatalLevel,
		"critical": logrus.FatalLevel,
		"ERROR":    logrus.ErrorLevel,
		"WARNING":  logrus.WarnLevel,
		"INFO":     logrus.InfoLevel,
		"DEBUG":    logrus.DebugLevel,
		"":         logrus.InfoLevel,
		"chatty":   logrus.InfoLevel,
	}

	for name, level := range tests {
		assert.Equal(t, level, parseLogLevel(name), name)
	}
}

func TestResolveMode(t *testing.T) {
	assert.Equal(t, "once", resolveMode(mapLookup(nil)))
	assert.Equal(t, "lambda", resolveMode(mapLookup(map[string]string{"AWS_LAMBDA_RUNTIME_API": "127.0.0.1:9001"})))

	mode = "serve"
	defer func() { mode = "" }()
	assert.Equal(t, "serve", resolveMode(mapLookup(map[string]string{"AWS_LAMBDA_RUNTIME_API": "127.0.0.1:9001"})))
}
