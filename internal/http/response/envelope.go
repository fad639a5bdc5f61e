// Package response writes the platform's standard response envelope.
// Every response, success or failure, has the same shape:
//
//	{"data": <payload or null>, "error": <error or null>, "traceId": "<id>"}
package response

import (
	"encoding/json"
	"net/http"
)

// Error codes returned in the envelope.
const (
	CodeJSONParseError         = "JSON_PARSE_ERROR"
	CodeInvalidRequest         = "INVALID_REQUEST"
	CodeInvalidParameters      = "INVALID_PARAMETERS"
	CodePriceCalculationFailed = "PRICE_CALCULATION_FAILED"
	CodeInternalError          = "INTERNAL_ERROR"
	CodeNotFound               = "NOT_FOUND"
	CodeMethodNotAllowed       = "METHOD_NOT_ALLOWED"
	CodeRateLimited            = "RATE_LIMITED"
)

// HeaderRequestID carries the trace id in both directions.
const HeaderRequestID = "X-Request-Id"

// Envelope is the shared response shape.
type Envelope struct {
	Data    any    `json:"data"`
	Error   *Error `json:"error"`
	TraceID string `json:"traceId"`
}

// Error describes a failed request.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// JSON writes v as a JSON body with the given status.
func JSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// Success writes data in an envelope.
func Success(w http.ResponseWriter, traceID string, status int, data any) error {
	return JSON(w, status, Envelope{
		Data:    data,
		Error:   nil,
		TraceID: traceID,
	})
}

// Fail writes an error envelope with null data.
func Fail(w http.ResponseWriter, traceID string, status int, code, message string) error {
	return JSON(w, status, Envelope{
		Data: nil,
		Error: &Error{
			Code:    code,
			Message: message,
		},
		TraceID: traceID,
	})
}
