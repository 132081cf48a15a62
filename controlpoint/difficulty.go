package controlpoint

import (
	"image/color"
	"math"
)

const (
	SliderVelocityMin       = 0.1
	SliderVelocityMax       = 10.0
	SliderVelocityDefault   = 1.0
	SliderVelocityPrecision = 0.01
)

// DifficultyControlPoint sets the slider velocity multiplier and whether slider ticks are generated.
type DifficultyControlPoint struct {
	base

	sliderVelocity float64
	generateTicks  bool
}

var defaultDifficulty = &DifficultyControlPoint{
	base:           base{frozen: true},
	sliderVelocity: SliderVelocityDefault,
	generateTicks:  true,
}

// DefaultDifficulty is the state in effect before the first difficulty point.
func DefaultDifficulty() *DifficultyControlPoint {
	return defaultDifficulty
}

// NewDifficultyControlPoint builds a point, normalising degenerate velocities.
// A NaN velocity is how old content asked for "no slider ticks": it becomes the default velocity
// with generateTicks forced off. Infinite velocities clamp to the nearest bound.
func NewDifficultyControlPoint(time, sliderVelocity float64, generateTicks bool) *DifficultyControlPoint {
	if math.IsNaN(sliderVelocity) {
		sliderVelocity = SliderVelocityDefault
		generateTicks = false
	}

	return &DifficultyControlPoint{
		base:           base{time: time},
		sliderVelocity: clampFloat(sliderVelocity, SliderVelocityMin, SliderVelocityMax),
		generateTicks:  generateTicks,
	}
}

func (cp *DifficultyControlPoint) Kind() Kind {
	return KindDifficulty
}

func (cp *DifficultyControlPoint) SliderVelocity() float64 {
	return cp.sliderVelocity
}

// SliderVelocityDisplay is the velocity rounded to SliderVelocityPrecision.
func (cp *DifficultyControlPoint) SliderVelocityDisplay() float64 {
	return math.Round(cp.sliderVelocity/SliderVelocityPrecision) * SliderVelocityPrecision
}

func (cp *DifficultyControlPoint) GenerateTicks() bool {
	return cp.generateTicks
}

func (cp *DifficultyControlPoint) SetSliderVelocity(v float64) (changed bool, err error) {
	if err = cp.checkMutable(); err != nil {
		return
	}

	if !isFinite(v) {
		err = ErrNonFinite

		return
	}

	v = clampFloat(v, SliderVelocityMin, SliderVelocityMax)
	if v == cp.sliderVelocity {
		return
	}

	cp.sliderVelocity = v
	changed = true

	return
}

func (cp *DifficultyControlPoint) SetGenerateTicks(v bool) (changed bool, err error) {
	if err = cp.checkMutable(); err != nil {
		return
	}

	if v == cp.generateTicks {
		return
	}

	cp.generateTicks = v
	changed = true

	return
}

func (cp *DifficultyControlPoint) IsRedundant(existing ControlPoint) bool {
	e, ok := existing.(*DifficultyControlPoint)

	return ok && e != nil &&
		cp.sliderVelocity == e.sliderVelocity &&
		cp.generateTicks == e.generateTicks
}

func (cp *DifficultyControlPoint) Equals(other ControlPoint) bool {
	o, ok := other.(*DifficultyControlPoint)

	return ok && o != nil &&
		cp.sliderVelocity == o.sliderVelocity &&
		cp.generateTicks == o.generateTicks
}

func (cp *DifficultyControlPoint) Hash() uint64 {
	return hashWords(KindDifficulty, floatWord(cp.sliderVelocity), boolWord(cp.generateTicks))
}

func (cp *DifficultyControlPoint) CopyFrom(other ControlPoint) error {
	if err := cp.checkMutable(); err != nil {
		return err
	}

	o, ok := other.(*DifficultyControlPoint)
	if !ok || o == nil {
		return ErrTypeMismatch
	}

	cp.sliderVelocity = o.sliderVelocity
	cp.generateTicks = o.generateTicks

	return nil
}

func (cp *DifficultyControlPoint) RepresentingColour(p *Palette) color.RGBA {
	return paletteOrDefault(p).Lime1
}

func (cp *DifficultyControlPoint) Clone() ControlPoint {
	c := *cp
	c.frozen = false

	return &c
}

func (cp *DifficultyControlPoint) CloneAt(time float64) ControlPoint {
	c := *cp
	c.frozen = false
	c.time = time

	return &c
}
