package weather

import (
	"errors"
	"fmt"
)

// ErrInvalidQuery is returned when a PlaceQuery fails validation inside the service.
var ErrInvalidQuery = errors.New("invalid place query")

// NotFoundError reports that geocoding found no place for the query.
type NotFoundError struct {
	City        string
	CountryCode string
}

func (e *NotFoundError) Error() string {
	if e.CountryCode != "" {
		return fmt.Sprintf("city not found: %s (%s)", e.City, e.CountryCode)
	}
	return fmt.Sprintf("city not found: %s", e.City)
}

// UpstreamTransportError wraps any network failure, timeout or unexpected
// status from the geocoding or weather endpoints.
type UpstreamTransportError struct {
	Op  string
	Err error
}

func (e *UpstreamTransportError) Error() string {
	return fmt.Sprintf("%s: upstream transport error: %v", e.Op, e.Err)
}

func (e *UpstreamTransportError) Unwrap() error { return e.Err }

// DataShapeError reports an upstream payload that does not match the expected schema:
// missing or mis-typed fields, mismatched array lengths, non-finite numbers.
type DataShapeError struct {
	Field  string
	Reason string
	Err    error
}

func (e *DataShapeError) Error() string {
	msg := "unexpected upstream payload"
	if e.Field != "" {
		msg += ": " + e.Field
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DataShapeError) Unwrap() error { return e.Err }

// StatusError is a non-2xx answer from an upstream endpoint. Providers return it
// unmodified; the service reclassifies it.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d for %s", e.StatusCode, e.URL)
}
