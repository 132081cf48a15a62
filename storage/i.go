package storage

import (
	"context"
	"fmt"

	"github.com/sgostarter/i/commerr"
)

var (
	ErrNotFound    = fmt.Errorf("snapshot not found: %w", commerr.ErrNotFound)
	ErrInvalidKey  = fmt.Errorf("invalid snapshot key: %w", commerr.ErrInvalidArgument)
	ErrNoCodec     = fmt.Errorf("no codec for control point kind: %w", commerr.ErrNotFound)
	ErrBadRecord   = fmt.Errorf("bad control point record: %w", commerr.ErrInvalidArgument)
	ErrNilSnapshot = fmt.Errorf("nil snapshot: %w", commerr.ErrInvalidArgument)
)

// Storage parks editor snapshots under a caller chosen key.
type Storage interface {
	Save(ctx context.Context, key string, snapshot *Snapshot) error
	// Load returns ErrNotFound when nothing was saved under key.
	Load(ctx context.Context, key string) (*Snapshot, error)
	Delete(ctx context.Context, key string) error
}
