package detail

import (
	"errors"

	"github.com/s0up4200/cineparadis/tmdb"
)

// ErrorKind classifies a failed fetch for display
type ErrorKind int

const (
	ErrorNone ErrorKind = iota
	ErrorNetwork
	ErrorNotFound
	ErrorMalformed
	ErrorUnknown
)

// String returns the metric and log label for the kind
func (k ErrorKind) String() string {
	switch k {
	case ErrorNone:
		return "none"
	case ErrorNetwork:
		return "network"
	case ErrorNotFound:
		return "not_found"
	case ErrorMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// Classify maps a fetch error onto an ErrorKind
func Classify(err error) ErrorKind {
	if err == nil {
		return ErrorNone
	}

	var (
		notFound  *tmdb.NotFoundError
		network   *tmdb.NetworkError
		malformed *tmdb.MalformedResponseError
	)
	switch {
	case errors.As(err, &notFound):
		return ErrorNotFound
	case errors.As(err, &malformed):
		return ErrorMalformed
	case errors.As(err, &network):
		return ErrorNetwork
	default:
		return ErrorUnknown
	}
}
