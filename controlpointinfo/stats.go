package controlpointinfo

import (
	"math"

	"github.com/sgostarter/libcontrolpoints/controlpoint"
	"github.com/sgostarter/libcontrolpoints/usage"
)

// MostCommonBeatLength returns the beat length active for the longest time between the first timing
// point and lastTime. Beat lengths are compared at microsecond precision.
func (info *Info) MostCommonBeatLength(lastTime float64) float64 {
	first, ok := info.timing.First()
	if !ok {
		return controlpoint.DefaultTiming().BeatLength()
	}

	ds := usage.Statistics[*controlpoint.TimingControlPoint](info.timing, first.Time(), lastTime, nil)
	if len(ds) == 0 {
		return first.BeatLength()
	}

	durations := make(map[float64]float64)

	var order []float64

	for _, d := range ds {
		key := math.Round(d.Point.BeatLength()*1000) / 1000
		if _, ok := durations[key]; !ok {
			order = append(order, key)
		}

		durations[key] += d.Duration
	}

	best := order[0]
	for _, key := range order[1:] {
		if durations[key] > durations[best] {
			best = key
		}
	}

	return best
}

// DominantSliderVelocity returns the slider velocity active for the longest time within
// [start, end).
func (info *Info) DominantSliderVelocity(start, end float64) float64 {
	ds := usage.Statistics[*controlpoint.DifficultyControlPoint](info.difficulty, start, end, nil)

	point, ok := usage.Dominant(ds)
	if !ok {
		return info.DifficultyPointAt(start).SliderVelocity()
	}

	return point.SliderVelocity()
}
