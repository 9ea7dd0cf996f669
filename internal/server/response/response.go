// Package response provides the JSON envelope shared by every API endpoint.
// Successful responses carry success=true plus data and optional pagination,
// meta or message fields; failures carry success=false and a short error
// string that never exposes internal state.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/StreamMUSE/streammuse/pkg/errors"
)

// Client-facing error strings.
const (
	MsgInternal     = "Internal server error"
	MsgVoteFailed   = "Failed to record vote"
	MsgVoteRecorded = "Vote recorded successfully"
)

// Pagination describes the window of a paged listing.
type Pagination struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"hasMore"`
}

// Response is the API envelope.
type Response struct {
	Success    bool        `json:"success"`
	Data       any         `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Meta       any         `json:"meta,omitempty"`
	Message    string      `json:"message,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// Success creates a successful response with data.
func Success(data any) Response {
	return Response{Success: true, Data: data}
}

// Paged creates a successful listing response.
func Paged(data any, p Pagination) Response {
	return Response{Success: true, Data: data, Pagination: &p}
}

// WithMeta creates a successful response with data and metadata.
func WithMeta(data, meta any) Response {
	return Response{Success: true, Data: data, Meta: meta}
}

// Acknowledged creates a successful response carrying only a message.
func Acknowledged(message string) Response {
	return Response{Success: true, Message: message}
}

// Fail creates an error response.
func Fail(message string) Response {
	return Response{Success: false, Error: message}
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent; an encoding failure cannot be reported.
	_ = json.NewEncoder(w).Encode(resp)
}

// OK writes a successful response with 200 status.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, Success(data))
}

// BadRequest writes a 400 error response.
func BadRequest(w http.ResponseWriter, message string) {
	JSON(w, http.StatusBadRequest, Fail(message))
}

// Unauthorized writes a 401 error response.
func Unauthorized(w http.ResponseWriter, message string) {
	JSON(w, http.StatusUnauthorized, Fail(message))
}

// NotFound writes a 404 error response.
func NotFound(w http.ResponseWriter, message string) {
	JSON(w, http.StatusNotFound, Fail(message))
}

// MethodNotAllowed writes a 405 error response.
func MethodNotAllowed(w http.ResponseWriter, method string) {
	JSON(w, http.StatusMethodNotAllowed, Fail("Method "+method+" is not allowed"))
}

// UnprocessableEntity writes a 422 error response.
func UnprocessableEntity(w http.ResponseWriter, message string) {
	JSON(w, http.StatusUnprocessableEntity, Fail(message))
}

// RateLimited writes a 429 error response.
func RateLimited(w http.ResponseWriter) {
	JSON(w, http.StatusTooManyRequests, Fail("Rate limit exceeded"))
}

// InternalError writes a 500 error response. The error is not exposed.
func InternalError(w http.ResponseWriter, _ error) {
	JSON(w, http.StatusInternalServerError, Fail(MsgInternal))
}

// ServiceUnavailable writes a 503 error response.
func ServiceUnavailable(w http.ResponseWriter, message string) {
	JSON(w, http.StatusServiceUnavailable, Fail(message))
}

// ErrorFromType maps typed errors to HTTP responses.
func ErrorFromType(w http.ResponseWriter, err error) {
	var (
		notFound   *errors.NotFoundError
		validation *errors.ValidationError
		parse      *errors.ParseError
	)
	switch {
	case errors.As(err, &notFound):
		NotFound(w, notFound.Error())
	case errors.As(err, &validation):
		BadRequest(w, validation.Error())
	case errors.As(err, &parse):
		UnprocessableEntity(w, "Unable to decode "+parse.Format+" data")
	default:
		InternalError(w, err)
	}
}
