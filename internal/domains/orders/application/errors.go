package application

import (
	"errors"
	"fmt"
)

// ErrInvalidRequest marks request-shape failures so transport adapters can map
// them to a 4xx without inspecting individual domain sentinels.
var ErrInvalidRequest = errors.New("invalid order request")

func invalidRequest(cause error) error {
	return fmt.Errorf("%w: %w", ErrInvalidRequest, cause)
}
