package orderly

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrRemoteUnavailable indicates the settlement service could not be
// reached or returned an unusable response. The request may or may not
// have been processed.
var ErrRemoteUnavailable = errors.New("settlement service unavailable")

// APIError is a rejection returned by the settlement service. Code and
// Message are passed through verbatim from the response body.
type APIError struct {
	HTTPStatus int
	Code       int64
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d (http %d): %s", e.Code, e.HTTPStatus, e.Message)
}
