package controlpoint

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLegacyInheritedRow(t *testing.T) {
	points, err := FromLegacyTimingRecord(LegacyTimingRecord{
		Time:         1200,
		BeatLength:   -50,
		SampleBank:   "none",
		SampleVolume: 60,
		EffectFlags:  LegacyEffectKiai,
	})
	assert.Nil(t, err)
	assert.Len(t, points, 3)

	difficulty := points[0].(*DifficultyControlPoint)
	assert.EqualValues(t, 2, difficulty.SliderVelocity())
	assert.True(t, difficulty.GenerateTicks())

	effect := points[1].(*EffectControlPoint)
	assert.True(t, effect.KiaiMode())
	assert.EqualValues(t, 2, effect.ScrollSpeed())

	sample := points[2].(*SampleControlPoint)
	assert.EqualValues(t, "normal", sample.SampleBank())
	assert.EqualValues(t, 60, sample.SampleVolume())
}

func TestLegacyNaNBeatLength(t *testing.T) {
	points, err := FromLegacyTimingRecord(LegacyTimingRecord{
		Time:         300,
		BeatLength:   math.NaN(),
		SampleVolume: 100,
	})
	assert.Nil(t, err)

	difficulty := points[0].(*DifficultyControlPoint)
	assert.EqualValues(t, SliderVelocityDefault, difficulty.SliderVelocity())
	assert.False(t, difficulty.GenerateTicks())

	for _, p := range points {
		if e, ok := p.(*EffectControlPoint); ok {
			assert.False(t, math.IsNaN(e.ScrollSpeed()))
		}
	}
}

func TestLegacyUninheritedRow(t *testing.T) {
	points, err := FromLegacyTimingRecord(LegacyTimingRecord{
		Time:          0,
		BeatLength:    333.33,
		TimeSignature: 3,
		SampleBank:    LegacySampleBank(2),
		SampleVolume:  80,
		Uninherited:   true,
		EffectFlags:   LegacyEffectOmitFirstBarLine,
	})
	assert.Nil(t, err)
	assert.Len(t, points, 4)

	timing := points[0].(*TimingControlPoint)
	assert.EqualValues(t, 333.33, timing.BeatLength())
	assert.EqualValues(t, 3, timing.TimeSignature())
	assert.True(t, timing.OmitFirstBarLine())

	assert.EqualValues(t, 1, points[1].(*DifficultyControlPoint).SliderVelocity())
	assert.EqualValues(t, "soft", points[3].(*SampleControlPoint).SampleBank())

	points, err = FromLegacyTimingRecord(LegacyTimingRecord{BeatLength: 500, Uninherited: true})
	assert.Nil(t, err)
	assert.EqualValues(t, TimeSignatureDefault, points[0].(*TimingControlPoint).TimeSignature())

	_, err = FromLegacyTimingRecord(LegacyTimingRecord{BeatLength: math.NaN(), Uninherited: true})
	assert.ErrorIs(t, err, ErrNonFinite)

	_, err = FromLegacyTimingRecord(LegacyTimingRecord{Time: math.NaN(), BeatLength: 500})
	assert.ErrorIs(t, err, ErrNonFinite)
}

func TestLegacyExtremeVelocityClamps(t *testing.T) {
	points, err := FromLegacyTimingRecord(LegacyTimingRecord{BeatLength: -0.5})
	assert.Nil(t, err)
	assert.EqualValues(t, SliderVelocityMax, points[0].(*DifficultyControlPoint).SliderVelocity())
}
