// internal/app/system/respond/respond.go
//
// Package respond writes the JSON envelopes used by every endpoint:
// {success, message, ...} for mutations and {success:false, message, ref}
// for errors.
package respond

import (
	"io"
	"net/http"

	"github.com/dalemusser/ecohub/internal/app/system/apperr"
	json "github.com/goccy/go-json"
)

// MaxBodyBytes bounds request bodies read by Decode.
const MaxBodyBytes = 1 << 20

// ErrorBody is the JSON shape of every failed request.
type ErrorBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Ref     string `json:"ref,omitempty"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Fail writes a failure envelope with a caller-safe message.
func Fail(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, ErrorBody{Success: false, Message: msg})
}

// Error writes e using its kind's status, message and reference id.
func Error(w http.ResponseWriter, e *apperr.E) {
	JSON(w, e.Kind.HTTPStatus(), ErrorBody{Success: false, Message: e.Message, Ref: e.Ref})
}

// Decode reads a JSON body into dst. Unknown fields are rejected so typos
// in field names surface as errors instead of silently doing nothing.
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apperr.NewValidation("Request body must be valid JSON.")
	}
	return nil
}
