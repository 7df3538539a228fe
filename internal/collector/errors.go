package collector

import (
	"errors"
	"fmt"
)

// ErrNetwork wraps transport-level failures talking to the price API.
var ErrNetwork = errors.New("network error")

// APIError is returned when the price API answers but not with usable data.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
	}
	return "api error: " + e.Message
}
