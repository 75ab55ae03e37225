package chapa

import "errors"

const (
	ErrCodeUnavailable = "GATEWAY_UNAVAILABLE"
	ErrCodeRejected    = "GATEWAY_REJECTED"
)

var (
	ErrUnavailable = errors.New(ErrCodeUnavailable)
	ErrRejected    = errors.New(ErrCodeRejected)
)

// MapStatusToError classifies a non-2xx gateway response. 4xx means the
// gateway refused the request shape, anything else counts as unavailable.
func MapStatusToError(statusCode int) error {
	if statusCode >= 400 && statusCode < 500 {
		return ErrRejected
	}

	return ErrUnavailable
}
