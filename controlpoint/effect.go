package controlpoint

import "image/color"

const (
	ScrollSpeedMin     = 0.01
	ScrollSpeedMax     = 10.0
	ScrollSpeedDefault = 1.0
)

type EffectControlPoint struct {
	base

	kiaiMode    bool
	scrollSpeed float64
}

var defaultEffect = &EffectControlPoint{
	base:        base{frozen: true},
	scrollSpeed: ScrollSpeedDefault,
}

func DefaultEffect() *EffectControlPoint {
	return defaultEffect
}

func NewEffectControlPoint(time float64, kiaiMode bool, scrollSpeed float64) *EffectControlPoint {
	return &EffectControlPoint{
		base:        base{time: time},
		kiaiMode:    kiaiMode,
		scrollSpeed: normaliseFloat(scrollSpeed, ScrollSpeedMin, ScrollSpeedMax, ScrollSpeedDefault),
	}
}

func (cp *EffectControlPoint) Kind() Kind {
	return KindEffect
}

func (cp *EffectControlPoint) KiaiMode() bool {
	return cp.kiaiMode
}

func (cp *EffectControlPoint) ScrollSpeed() float64 {
	return cp.scrollSpeed
}

func (cp *EffectControlPoint) SetKiaiMode(v bool) (changed bool, err error) {
	if err = cp.checkMutable(); err != nil {
		return
	}

	if v == cp.kiaiMode {
		return
	}

	cp.kiaiMode = v
	changed = true

	return
}

func (cp *EffectControlPoint) SetScrollSpeed(v float64) (changed bool, err error) {
	if err = cp.checkMutable(); err != nil {
		return
	}

	if !isFinite(v) {
		err = ErrNonFinite

		return
	}

	v = clampFloat(v, ScrollSpeedMin, ScrollSpeedMax)
	if v == cp.scrollSpeed {
		return
	}

	cp.scrollSpeed = v
	changed = true

	return
}

func (cp *EffectControlPoint) IsRedundant(existing ControlPoint) bool {
	e, ok := existing.(*EffectControlPoint)

	return ok && e != nil &&
		cp.kiaiMode == e.kiaiMode &&
		cp.scrollSpeed == e.scrollSpeed
}

func (cp *EffectControlPoint) Equals(other ControlPoint) bool {
	return cp.IsRedundant(other)
}

func (cp *EffectControlPoint) Hash() uint64 {
	return hashWords(KindEffect, boolWord(cp.kiaiMode), floatWord(cp.scrollSpeed))
}

func (cp *EffectControlPoint) CopyFrom(other ControlPoint) error {
	if err := cp.checkMutable(); err != nil {
		return err
	}

	o, ok := other.(*EffectControlPoint)
	if !ok || o == nil {
		return ErrTypeMismatch
	}

	cp.kiaiMode = o.kiaiMode
	cp.scrollSpeed = o.scrollSpeed

	return nil
}

func (cp *EffectControlPoint) RepresentingColour(p *Palette) color.RGBA {
	return paletteOrDefault(p).Purple
}

func (cp *EffectControlPoint) Clone() ControlPoint {
	c := *cp
	c.frozen = false

	return &c
}

func (cp *EffectControlPoint) CloneAt(time float64) ControlPoint {
	c := *cp
	c.frozen = false
	c.time = time

	return &c
}
