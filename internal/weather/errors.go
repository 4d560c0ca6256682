package weather

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField is wrapped by DecodeError when a required response field is absent.
	ErrMissingField = errors.New("required field missing")
	// ErrEmptyDescriptions is wrapped by DecodeError when weather_descriptions has no elements.
	ErrEmptyDescriptions = errors.New("weather descriptions are empty")
	// ErrMissingAPIKey is returned before any request is made when no key is given.
	ErrMissingAPIKey = errors.New("weather api key is not configured")
	// ErrFetchInFlight is returned when a fetch is triggered while another one is running.
	ErrFetchInFlight = errors.New("weather fetch already in flight")
)

// Fetch outcomes reported to a Recorder.
const (
	OutcomeSuccess        = "success"
	OutcomeDecodeError    = "decode_error"
	OutcomeHTTPError      = "http_error"
	OutcomeAPIError       = "api_error"
	OutcomeTransportError = "transport_error"
)

// DecodeError reports a response body that could not be turned into Conditions.
// Path is the dotted JSON path that failed, empty when the body is not JSON.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("decode weather response: %v", e.Err)
	}
	return fmt.Sprintf("decode weather response: %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// StatusError is returned for a completed response with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("weather api returned status %d: %s", e.StatusCode, e.Body)
}

// APIError is the provider's own error envelope, e.g. an invalid access key.
type APIError struct {
	Code int
	Type string
	Info string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("weather api error %d (%s): %s", e.Code, e.Type, e.Info)
}

// Outcome classifies a fetch result for metrics and logs.
func Outcome(err error) string {
	if err == nil {
		return OutcomeSuccess
	}

	var (
		decodeErr *DecodeError
		statusErr *StatusError
		apiErr    *APIError
	)
	switch {
	case errors.As(err, &decodeErr):
		return OutcomeDecodeError
	case errors.As(err, &statusErr):
		return OutcomeHTTPError
	case errors.As(err, &apiErr):
		return OutcomeAPIError
	default:
		return OutcomeTransportError
	}
}
