package controlpoint

import (
	"fmt"

	"github.com/sgostarter/i/commerr"
)

var (
	ErrTypeMismatch     = fmt.Errorf("control point type mismatch: %w", commerr.ErrInvalidArgument)
	ErrInvalidOperation = fmt.Errorf("shared default control point is read-only: %w", commerr.ErrReject)
	ErrNonFinite        = fmt.Errorf("non-finite value: %w", commerr.ErrInvalidArgument)
)
