package controlpoint

import (
	"encoding/binary"
	"image/color"
	"math"
	"reflect"

	"github.com/cespare/xxhash/v2"
)

// ControlPoint is a timed, typed change of a gameplay parameter. It stays in effect from Time()
// until the next point of the same kind.
//
// Time is fixed at construction. To move a point remove it from its timeline and insert CloneAt(t).
// Points handed out by a timeline are read-only for the caller.
type ControlPoint interface {
	Kind() Kind
	Time() float64

	// IsRedundant reports whether inserting this point after existing would change nothing.
	IsRedundant(existing ControlPoint) bool
	// Equals compares kind and payload, never time.
	Equals(other ControlPoint) bool
	Hash() uint64
	// CopyFrom overwrites the payload with other's, leaving time untouched.
	CopyFrom(other ControlPoint) error

	RepresentingColour(p *Palette) color.RGBA

	Clone() ControlPoint
	CloneAt(time float64) ControlPoint

	// Frozen reports whether this is a shared default that rejects every mutation.
	Frozen() bool
}

type base struct {
	time   float64
	frozen bool
}

func (b *base) Time() float64 {
	return b.time
}

func (b *base) Frozen() bool {
	return b.frozen
}

func (b *base) checkMutable() error {
	if b.frozen {
		return ErrInvalidOperation
	}

	return nil
}

// IsNil reports whether cp is nil or an interface holding a nil pointer.
func IsNil(cp ControlPoint) bool {
	if cp == nil {
		return true
	}

	v := reflect.ValueOf(cp)

	return v.Kind() == reflect.Pointer && v.IsNil()
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}

	if v > hi {
		return hi
	}

	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}

	if v > hi {
		return hi
	}

	return v
}

// normaliseFloat maps NaN to def and clamps everything else, infinities included.
func normaliseFloat(v, lo, hi, def float64) float64 {
	if math.IsNaN(v) {
		return def
	}

	return clampFloat(v, lo, hi)
}

func floatWord(v float64) uint64 {
	if v == 0 {
		v = 0 // -0 == +0, so both must hash alike
	}

	return math.Float64bits(v)
}

func boolWord(v bool) uint64 {
	if v {
		return 1
	}

	return 0
}

func hashWords(kind Kind, words ...uint64) uint64 {
	buf := make([]byte, 0, 8*(len(words)+1))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(kind))

	for _, w := range words {
		buf = binary.LittleEndian.AppendUint64(buf, w)
	}

	return xxhash.Sum64(buf)
}
