package controlpointinfo

import (
	"fmt"

	"github.com/sgostarter/i/commerr"
	"github.com/sgostarter/libcontrolpoints/timeline"
)

var (
	ErrUnknownKind        = fmt.Errorf("control point kind not registered: %w", commerr.ErrNotFound)
	ErrAlreadyRegistered  = fmt.Errorf("control point kind already registered: %w", commerr.ErrAlreadyExists)
	ErrNoControlPoint     = timeline.ErrNoPoint
	ErrKindDefaultInvalid = fmt.Errorf("default control point must be a frozen shared value: %w", commerr.ErrInvalidArgument)
)
