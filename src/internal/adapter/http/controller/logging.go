package controller

import (
	"net/http"
	"time"

	"github.com/api-sage/fx-transfer/src/internal/logger"
)

const requestIDHeader = "X-Request-ID"

// summarizer is implemented by commons.Response.
type summarizer interface {
	Summary() (success bool, message string)
}

func requestFields(r *http.Request) logger.Fields {
	fields := logger.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
	}
	if id := r.Header.Get(requestIDHeader); id != "" {
		fields["requestId"] = id
	}
	return fields
}

func logRequest(r *http.Request, payload any) {
	fields := requestFields(r)
	fields["query"] = r.URL.RawQuery
	fields["payload"] = logger.SanitizePayload(payload)
	logger.Info("http request", fields)
}

func logResponse(r *http.Request, status int, payload any, start time.Time) {
	fields := requestFields(r)
	fields["status"] = status
	fields["outcome"] = statusOutcome(status)
	fields["durationMs"] = time.Since(start).Milliseconds()
	if s, ok := payload.(summarizer); ok {
		success, message := s.Summary()
		fields["success"] = success
		fields["message"] = message
	} else {
		fields["response"] = logger.SanitizePayload(payload)
	}
	logger.Info("http response", fields)
}

func logError(r *http.Request, err error, extra logger.Fields) {
	fields := requestFields(r)
	fields["query"] = r.URL.RawQuery
	for k, v := range extra {
		fields[k] = v
	}
	logger.Error("http handler error", err, fields)
}

func statusOutcome(status int) string {
	switch {
	case status >= http.StatusInternalServerError:
		return "server_error"
	case status >= http.StatusBadRequest:
		return "client_error"
	default:
		return "ok"
	}
}
