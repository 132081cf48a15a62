package controlpoint

import (
	"image/color"
)

const (
	BeatLengthMin        = 6.0
	BeatLengthMax        = 60000.0
	BeatLengthDefault    = 1000.0
	TimeSignatureDefault = 4
)

// TimingControlPoint restarts the beat grid with a new beat length and time signature.
type TimingControlPoint struct {
	base

	beatLength       float64
	timeSignature    int
	omitFirstBarLine bool
}

var defaultTiming = &TimingControlPoint{
	base:          base{frozen: true},
	beatLength:    BeatLengthDefault,
	timeSignature: TimeSignatureDefault,
}

func DefaultTiming() *TimingControlPoint {
	return defaultTiming
}

// NewTimingControlPoint clamps timeSignature to at least one beat per bar, like SetTimeSignature.
func NewTimingControlPoint(time, beatLength float64, timeSignature int) *TimingControlPoint {
	if timeSignature < 1 {
		timeSignature = 1
	}

	return &TimingControlPoint{
		base:          base{time: time},
		beatLength:    normaliseFloat(beatLength, BeatLengthMin, BeatLengthMax, BeatLengthDefault),
		timeSignature: timeSignature,
	}
}

func (cp *TimingControlPoint) Kind() Kind {
	return KindTiming
}

func (cp *TimingControlPoint) BeatLength() float64 {
	return cp.beatLength
}

func (cp *TimingControlPoint) BPM() float64 {
	return 60000 / cp.beatLength
}

func (cp *TimingControlPoint) TimeSignature() int {
	return cp.timeSignature
}

func (cp *TimingControlPoint) OmitFirstBarLine() bool {
	return cp.omitFirstBarLine
}

func (cp *TimingControlPoint) SetBeatLength(v float64) (changed bool, err error) {
	if err = cp.checkMutable(); err != nil {
		return
	}

	if !isFinite(v) {
		err = ErrNonFinite

		return
	}

	v = clampFloat(v, BeatLengthMin, BeatLengthMax)
	if v == cp.beatLength {
		return
	}

	cp.beatLength = v
	changed = true

	return
}

// SetTimeSignature clamps to at least one beat per bar.
func (cp *TimingControlPoint) SetTimeSignature(v int) (changed bool, err error) {
	if err = cp.checkMutable(); err != nil {
		return
	}

	if v < 1 {
		v = 1
	}

	if v == cp.timeSignature {
		return
	}

	cp.timeSignature = v
	changed = true

	return
}

func (cp *TimingControlPoint) SetOmitFirstBarLine(v bool) (changed bool, err error) {
	if err = cp.checkMutable(); err != nil {
		return
	}

	if v == cp.omitFirstBarLine {
		return
	}

	cp.omitFirstBarLine = v
	changed = true

	return
}

// IsRedundant is always false, even against an Equals point: an explicit timing point restarts the
// beat grid at its time, so a repeat of the previous values still changes playback. The game this
// model comes from treats timing points the same way.
func (cp *TimingControlPoint) IsRedundant(_ ControlPoint) bool {
	return false
}

func (cp *TimingControlPoint) Equals(other ControlPoint) bool {
	o, ok := other.(*TimingControlPoint)

	return ok && o != nil &&
		cp.beatLength == o.beatLength &&
		cp.timeSignature == o.timeSignature &&
		cp.omitFirstBarLine == o.omitFirstBarLine
}

func (cp *TimingControlPoint) Hash() uint64 {
	return hashWords(KindTiming, floatWord(cp.beatLength), uint64(cp.timeSignature), boolWord(cp.omitFirstBarLine))
}

func (cp *TimingControlPoint) CopyFrom(other ControlPoint) error {
	if err := cp.checkMutable(); err != nil {
		return err
	}

	o, ok := other.(*TimingControlPoint)
	if !ok || o == nil {
		return ErrTypeMismatch
	}

	cp.beatLength = o.beatLength
	cp.timeSignature = o.timeSignature
	cp.omitFirstBarLine = o.omitFirstBarLine

	return nil
}

func (cp *TimingControlPoint) RepresentingColour(p *Palette) color.RGBA {
	return paletteOrDefault(p).Orange1
}

func (cp *TimingControlPoint) Clone() ControlPoint {
	c := *cp
	c.frozen = false

	return &c
}

func (cp *TimingControlPoint) CloneAt(time float64) ControlPoint {
	c := *cp
	c.frozen = false
	c.time = time

	return &c
}
