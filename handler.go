package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

const requestIDHeader = "X-Request-Id"

// invocationHandler adapts trigger surfaces (Lambda, HTTP, CLI) to a
// collector run.
type invocationHandler struct {
	logger    logrus.FieldLogger
	collector *stationCollector
}

func (h *invocationHandler) invoke(ctx context.Context, requestID string) Response {
	if requestID == "" {
		requestID = uuid.NewString()
	}

	result := h.collector.Run(withRequestID(ctx, requestID), h.collector.cfg)

	resp, err := result.Response()
	if err != nil {
		h.logger.WithError(err).WithField("aws_request_id", requestID).Error("failed to encode result")
		return Response{
			StatusCode: http.StatusInternalServerError,
			Body:       `{"status":"error","message":"Unexpected error"}`,
		}
	}

	return resp
}

// HandleLambda is the AWS Lambda entry point. The event is only inspected
// for its source and errors are always reported in the Response.
func (h *invocationHandler) HandleLambda(ctx context.Context, event json.RawMessage) (Response, error) {
	var requestID string
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		requestID = lc.AwsRequestID
	}

	source := gjson.GetBytes(event, "source").String()
	if source == "" {
		source = "unknown"
	}

	h.logger.WithFields(logrus.Fields{
		"aws_request_id": requestID,
		"event_source":   source,
	}).Info("Lambda execution started")

	return h.invoke(ctx, requestID), nil
}

func newHealthcheckHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "ok")
	})
}

func newCollectHandler(h *invocationHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := h.invoke(r.Context(), r.Header.Get(requestIDHeader))

		w.Header().Set("Content-Type", jsonContentType)
		w.WriteHeader(resp.StatusCode)
		fmt.Fprint(w, resp.Body)
	})
}

func httpHandler(h *invocationHandler) http.Handler {
	router := mux.NewRouter()

	router.Methods("GET").Path("/health").Handler(newHealthcheckHandler())
	router.Methods("GET").Path("/metrics").Handler(promhttp.Handler())

	router.Methods("POST").Path("/collect").Handler(newCollectHandler(h))

	return router
}
