package controlpoint

import (
	"math"
	"strings"
)

const (
	LegacyEffectKiai             = 1 << 0
	LegacyEffectOmitFirstBarLine = 1 << 3
)

// LegacyTimingRecord is one decoded row of a legacy timing section. A row mixes several logical
// concepts into shared numeric fields; FromLegacyTimingRecord splits them into explicit points.
type LegacyTimingRecord struct {
	Time          float64
	BeatLength    float64
	TimeSignature int
	SampleBank    string
	SampleVolume  int
	Uninherited   bool
	EffectFlags   int
}

// LegacySampleBank maps a legacy sample set id to a bank name. Unknown ids fall back to the default.
func LegacySampleBank(id int) string {
	switch id {
	case 2:
		return "soft"
	case 3:
		return "drum"
	default:
		return SampleBankDefault
	}
}

// FromLegacyTimingRecord expands a legacy row into explicit control points, timing first.
//
// A negative beat length on an inherited row encodes a slider velocity of 100 / -beatLength.
// A NaN beat length encodes "no slider ticks"; it is turned into GenerateTicks=false here and never
// reaches any numeric field. Uninherited rows must carry a finite beat length.
func FromLegacyTimingRecord(r LegacyTimingRecord) (points []ControlPoint, err error) {
	if math.IsNaN(r.Time) {
		err = ErrNonFinite

		return
	}

	nan := math.IsNaN(r.BeatLength)

	if r.Uninherited {
		if nan || math.IsInf(r.BeatLength, 0) {
			err = ErrNonFinite

			return
		}

		meter := r.TimeSignature
		if meter < 1 {
			// rows without a meter column
			meter = TimeSignatureDefault
		}

		timing := NewTimingControlPoint(r.Time, r.BeatLength, meter)
		timing.omitFirstBarLine = r.EffectFlags&LegacyEffectOmitFirstBarLine != 0

		points = append(points, timing)
	}

	speed := 1.0
	if r.BeatLength < 0 {
		speed = 100 / -r.BeatLength
	}

	sliderVelocity := speed
	if nan {
		sliderVelocity = math.NaN()
	}

	bank := strings.ToLower(strings.TrimSpace(r.SampleBank))
	if bank == "none" {
		bank = SampleBankDefault
	}

	points = append(points,
		NewDifficultyControlPoint(r.Time, sliderVelocity, true),
		NewEffectControlPoint(r.Time, r.EffectFlags&LegacyEffectKiai != 0, speed),
		NewSampleControlPoint(r.Time, bank, r.SampleVolume),
	)

	return
}
