package services

import (
	"errors"
	"net/http"
)

// ErrorKind classifies every way the scan pipeline can fail. Each kind maps
// to exactly one HTTP status and user-facing message, so controllers never
// branch on individual failures.
type ErrorKind int

const (
	// ValidationError covers a missing required input field.
	ValidationError ErrorKind = iota
	// InvalidBarcode means a supplied barcode or URL contained no 8–14 digit run.
	InvalidBarcode
	// BarcodeNotDetected means image recognition found no usable barcode.
	BarcodeNotDetected
	// ProductNotFound means the catalog has no entry for the barcode.
	ProductNotFound
	// NoIngredients means the product exists but lists no ingredients.
	NoIngredients
	// UpstreamTimeout means an external call exceeded its deadline.
	UpstreamTimeout
	// UpstreamHTTPError means an external service returned an unexpected status.
	UpstreamHTTPError
	// UpstreamMalformed means an external response body could not be parsed.
	UpstreamMalformed
	// UpstreamUnavailable means the completion service could not be reached.
	UpstreamUnavailable
	// Internal covers anything else.
	Internal
)

// ScanError is the single error type flowing out of the pipeline.
type ScanError struct {
	Kind    ErrorKind
	Message string
	cause   error
}

func (e *ScanError) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *ScanError) Unwrap() error { return e.cause }

// NewScanError builds a ScanError wrapping an optional cause.
func NewScanError(kind ErrorKind, message string, cause error) *ScanError {
	return &ScanError{Kind: kind, Message: message, cause: cause}
}

var statusByKind = map[ErrorKind]int{
	ValidationError:     http.StatusBadRequest,
	InvalidBarcode:      http.StatusBadRequest,
	BarcodeNotDetected:  http.StatusNotFound,
	ProductNotFound:     http.StatusNotFound,
	NoIngredients:       http.StatusNotFound,
	UpstreamTimeout:     http.StatusGatewayTimeout,
	UpstreamHTTPError:   http.StatusBadGateway,
	UpstreamMalformed:   http.StatusBadGateway,
	UpstreamUnavailable: http.StatusServiceUnavailable,
	Internal:            http.StatusInternalServerError,
}

// Dispatch maps any pipeline error to an HTTP status and user-facing message.
// Errors that are not ScanErrors fall through to a generic 500.
func Dispatch(err error) (int, string) {
	var se *ScanError
	if errors.As(err, &se) {
		if status, ok := statusByKind[se.Kind]; ok {
			return status, se.Message
		}
	}
	return http.StatusInternalServerError, "Internal server error."
}
