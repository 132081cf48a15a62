package usage

import (
	"testing"

	"github.com/sgostarter/libcontrolpoints/controlpoint"
	"github.com/sgostarter/libcontrolpoints/timeline"
	"github.com/stretchr/testify/assert"
)

func TestStatistics(t *testing.T) {
	tl := timeline.New(controlpoint.DefaultDifficulty())

	_, _ = tl.Add(controlpoint.NewDifficultyControlPoint(100, 2, true))
	_, _ = tl.Add(controlpoint.NewDifficultyControlPoint(400, 1, true))
	_, _ = tl.Add(controlpoint.NewDifficultyControlPoint(500, 2, true))

	ds := Statistics[*controlpoint.DifficultyControlPoint](tl, 0, 1000, nil)
	assert.Len(t, ds, 2)

	assert.EqualValues(t, 1, ds[0].Point.SliderVelocity())
	assert.InDelta(t, 200, ds[0].Duration, 1e-9)
	assert.Same(t, controlpoint.DefaultDifficulty(), ds[0].Point)

	assert.EqualValues(t, 2, ds[1].Point.SliderVelocity())
	assert.InDelta(t, 800, ds[1].Duration, 1e-9)
	assert.EqualValues(t, 100, ds[1].Point.Time())

	point, ok := Dominant(ds)
	assert.True(t, ok)
	assert.EqualValues(t, 2, point.SliderVelocity())

	ds = Statistics[*controlpoint.DifficultyControlPoint](tl, 0, 1000, MergeReplace[*controlpoint.DifficultyControlPoint])
	assert.EqualValues(t, 500, ds[1].Point.Time())
}

func TestStatisticsWindowInsideSegment(t *testing.T) {
	tl := timeline.New(controlpoint.DefaultEffect())

	_, _ = tl.Add(controlpoint.NewEffectControlPoint(0, true, 1))
	_, _ = tl.Add(controlpoint.NewEffectControlPoint(1000, false, 1))

	ds := Statistics[*controlpoint.EffectControlPoint](tl, 200, 1000, nil)
	assert.Len(t, ds, 1)
	assert.True(t, ds[0].Point.KiaiMode())
	assert.InDelta(t, 800, ds[0].Duration, 1e-9)

	assert.Empty(t, Statistics[*controlpoint.EffectControlPoint](tl, 10, 10, nil))

	_, ok := Dominant[*controlpoint.EffectControlPoint](nil)
	assert.False(t, ok)
}
