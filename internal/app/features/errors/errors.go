// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/ecohub/internal/app/system/apperr"
	"github.com/dalemusser/ecohub/internal/app/system/respond"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// ErrorLogger writes error responses and logs what the client does not see.
// Internal and unavailable failures get a reference id that appears in both
// the response body and the log line.
type ErrorLogger struct {
	Log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ErrorLogger{Log: logger}
}

// Respond classifies err and writes the matching response. Client errors
// (validation, not found and the like) log at debug; server-side failures
// log at error with the cause.
func (l *ErrorLogger) Respond(w http.ResponseWriter, r *http.Request, op string, err error) {
	e := apperr.From(err)
	fields := []zap.Field{
		zap.String("op", op),
		zap.String("kind", e.Kind.String()),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	}
	if id := middleware.GetReqID(r.Context()); id != "" {
		fields = append(fields, zap.String("request_id", id))
	}

	switch e.Kind {
	case apperr.Internal, apperr.Unavailable:
		if e.Ref != "" {
			fields = append(fields, zap.String("ref", e.Ref))
		}
		if e.Cause != nil {
			fields = append(fields, zap.Error(e.Cause))
		}
		l.Log.Error("request failed", fields...)
	default:
		fields = append(fields, zap.String("message", e.Message))
		l.Log.Debug("request rejected", fields...)
	}
	respond.Error(w, e)
}

// LogServerError logs err and writes a 500 with a generic message and a
// reference id.
func (l *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, op string, err error) {
	l.Respond(w, r, op, apperr.Wrap(err))
}

// LogBadRequest writes a 400 carrying userMsg.
func (l *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, op string, userMsg string) {
	l.Respond(w, r, op, apperr.NewValidation(userMsg))
}

// NotFound is the router's 404 handler.
func NotFound(w http.ResponseWriter, r *http.Request) {
	respond.Fail(w, http.StatusNotFound, "Route not found")
}

// MethodNotAllowed is the router's 405 handler.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respond.Fail(w, http.StatusMethodNotAllowed, "Method not allowed")
}
