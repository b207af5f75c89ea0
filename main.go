package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"
)

const serviceName = "vls-data-collector"

var (
	// The `gitRevision` variable is optionally set at compilation time.
	gitRevision string

	mode           string
	listenAddress  string
	listenPort     int
	pushgatewayURL string
)

func init() {
	flag.StringVar(&mode, "mode", "", "How invocations are triggered: lambda, once or serve. Defaults to lambda inside the Lambda runtime and once elsewhere")
	flag.StringVar(&listenAddress, "address", "0.0.0.0", "Address to listen on in serve mode")
	flag.IntVar(&listenPort, "port", 5000, "Port to listen on in serve mode")
	flag.StringVar(&pushgatewayURL, "pushgateway-url", "", "Prometheus pushgateway receiving metrics after a once mode run")
}

func newLogger(cfg Config) *logrus.Entry {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.SetLevel(parseLogLevel(cfg.LogLevel))

	return logger.WithFields(logrus.Fields{
		"service":     serviceName,
		"environment": cfg.Environment,
	})
}

// parseLogLevel accepts logrus level names plus CRITICAL, which existing
// deployments set. Anything unknown means info.
func parseLogLevel(name string) logrus.Level {
	if strings.EqualFold(name, "critical") {
		return logrus.FatalLevel
	}

	level, err := logrus.ParseLevel(name)
	if err != nil {
		return logrus.InfoLevel
	}

	return level
}

func resolveMode(lookup lookupEnvFunc) string {
	if mode != "" {
		return mode
	}
	if _, ok := lookup("AWS_LAMBDA_RUNTIME_API"); ok {
		return "lambda"
	}
	return "once"
}

func main() {
	cfg := configFromEnv(os.LookupEnv)
	bindFlags(flag.CommandLine, &cfg)
	flag.Parse()

	logger := newLogger(cfg)
	runMode := resolveMode(os.LookupEnv)

	logger.WithFields(logrus.Fields{
		"gitRevision":   gitRevision,
		"mode":          runMode,
		"contract":      cfg.Contract,
		"bucket":        cfg.BucketName,
		"region":        cfg.Region,
		"baseURL":       cfg.BaseURL,
		"timeout":       cfg.Timeout.String(),
		"listenAddress": listenAddress,
		"listenPort":    listenPort,
	}).Info("loaded config")

	resolver := newCredentialResolver(logger, cfg)
	logger.WithField("credentials", resolver.Name()).Info("resolved object store credentials")

	store, err := newS3Store(cfg, resolver)
	if err != nil {
		logger.WithError(err).Fatal("could not create S3 client")
	}

	handler := &invocationHandler{
		logger:    logger,
		collector: newStationCollector(logger, cfg, store),
	}

	switch runMode {
	case "lambda":
		lambda.Start(handler.HandleLambda)
	case "once":
		resp := handler.invoke(context.Background(), "")
		fmt.Println(resp.Body)

		if pushgatewayURL != "" {
			if err := pushMetrics(pushgatewayURL, cfg.Contract); err != nil {
				logger.WithError(err).Warn("failed to push metrics")
			}
		}

		if resp.StatusCode != http.StatusOK {
			os.Exit(1)
		}
	case "serve":
		address := fmt.Sprintf("%s:%d", listenAddress, listenPort)
		logger.WithField("listen_address", address).Info("starting server")

		err = http.ListenAndServe(address, httpHandler(handler))
		logger.WithError(err).Fatal("server unexpectedly exited")
	default:
		logger.WithField("mode", runMode).Fatal("unknown mode")
	}
}
