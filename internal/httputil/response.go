package httputil

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Machine-readable error codes returned in the "error" field.
const (
	CodeInvalidRequestBody    = "invalid_request_body"
	CodeMissingFields         = "missing_fields"
	CodeEmailInUse            = "email_in_use"
	CodeInvalidCredentials    = "invalid_credentials"
	CodeMissingToken          = "missing_token"
	CodeInvalidToken          = "invalid_token"
	CodeTextIsEmpty           = "text_is_empty"
	CodeNoImageProvided       = "no_image_provided"
	CodeNoTextFoundInImage    = "no_text_found_in_image"
	CodeImageProcessingFailed = "image_processing_failed"
	CodeImageTooLarge         = "image_too_large"
	CodeRateLimited           = "rate_limited"
	CodeInternal              = "internal_error"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RespondJSON sends a JSON response with the given status code.
func RespondJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondError sends {"error": code} with the given status code.
func RespondError(w http.ResponseWriter, code string, statusCode int) {
	RespondJSON(w, ErrorResponse{Error: code}, statusCode)
}
