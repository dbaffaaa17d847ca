package repository

import (
	"errors"
	"fmt"
)

var (
	// ErrProviderUnavailable marks a single provider failure or timeout.
	// The aggregator logs it and moves on to the next provider.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrMalformedResponse marks an upstream payload with an unexpected
	// shape. Treated the same as an unavailable provider.
	ErrMalformedResponse = errors.New("malformed provider response")
)

// NoDataError is returned when every quote provider has been exhausted
// without producing a positive price.
type NoDataError struct {
	Ticker string
}

func (e *NoDataError) Error() string {
	return fmt.Sprintf("no real data found for %s", e.Ticker)
}

// IsNoData reports whether err is a NoDataError.
func IsNoData(err error) bool {
	var nde *NoDataError
	return errors.As(err, &nde)
}
