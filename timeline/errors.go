package timeline

import (
	"fmt"

	"github.com/sgostarter/i/commerr"
	"github.com/sgostarter/libcontrolpoints/controlpoint"
)

var (
	ErrNoPoint       = fmt.Errorf("no control point: %w", commerr.ErrInvalidArgument)
	ErrKindMismatch  = fmt.Errorf("control point of another kind: %w", controlpoint.ErrTypeMismatch)
	ErrSharedDefault = fmt.Errorf("shared default cannot be placed: %w", controlpoint.ErrInvalidOperation)
	ErrNaNTime       = fmt.Errorf("control point time is NaN: %w", controlpoint.ErrNonFinite)
)
