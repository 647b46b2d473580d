package biz

import (
	"net/http"

	"github.com/go-kratos/kratos/v2/errors"
)

// Error taxonomy at the orchestration boundary. Reasons surface as the
// "code" field of the JSON error body; codes map to HTTP statuses.
var (
	// ErrMissingInput: the caller supplied no usable content in any field.
	ErrMissingInput = errors.New(http.StatusBadRequest, "BadRequest", "content is empty")
)

// aiError wraps a judge failure as an upstream-dependency fault.
func aiError(msg string) *errors.Error {
	return errors.New(http.StatusBadGateway, "AiError", msg)
}

// shodoError wraps a proofreading failure as an upstream-dependency fault.
func shodoError(msg string) *errors.Error {
	return errors.New(http.StatusBadGateway, "ShodoError", msg)
}
