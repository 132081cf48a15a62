package storage

import (
	"image/color"
	"testing"

	"github.com/sgostarter/libcontrolpoints/controlpoint"
	"github.com/sgostarter/libcontrolpoints/controlpointinfo"
	"github.com/spf13/cast"
	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"
)

func TestEncodeDecode(t *testing.T) {
	info := controlpointinfo.NewInfo(nil, nil)

	tp := controlpoint.NewTimingControlPoint(0, 350, 7)
	_, _ = tp.SetOmitFirstBarLine(true)
	_, _ = info.Add(tp)
	_, _ = info.Add(controlpoint.NewDifficultyControlPoint(100, 2.345, false))
	_, _ = info.Add(controlpoint.NewEffectControlPoint(-50, true, 0.5))
	_, _ = info.Add(controlpoint.NewSampleControlPoint(100, "drum", 0))

	snapshot, err := Encode(info)
	assert.Nil(t, err)
	assert.NotEmpty(t, snapshot.Revision)
	assert.Len(t, snapshot.Points, 4)
	assert.Equal(t, "effect", snapshot.Points[0].Kind)

	d, err := yaml.Marshal(snapshot)
	assert.Nil(t, err)

	var decoded Snapshot

	assert.Nil(t, yaml.Unmarshal(d, &decoded))

	restored, err := Restore(&decoded, nil)
	assert.Nil(t, err)
	assert.True(t, info.Equals(restored))
	assert.True(t, restored.TimingPointAt(0).OmitFirstBarLine())
	assert.EqualValues(t, 2.345, restored.DifficultyPointAt(100).SliderVelocity())
}

func TestRoundTripKeepsRedundantPoints(t *testing.T) {
	info := controlpointinfo.NewInfo(nil, nil)

	_, _ = info.Add(controlpoint.NewDifficultyControlPoint(0, 2, true))
	_, _ = info.Add(controlpoint.NewDifficultyControlPoint(1000, 1.5, true))

	changed, err := info.Add(controlpoint.NewDifficultyControlPoint(0, 1.5, true))
	assert.Nil(t, err)
	assert.True(t, changed)
	assert.Equal(t, 2, info.DifficultyPoints().Len())

	snapshot, err := Encode(info)
	assert.Nil(t, err)
	assert.Len(t, snapshot.Points, 2)

	restored, err := Restore(snapshot, nil)
	assert.Nil(t, err)
	assert.Equal(t, 2, restored.DifficultyPoints().Len())
	assert.True(t, info.Equals(restored))

	kept := controlpointinfo.NewInfo(&controlpointinfo.Config{KeepRedundant: true}, nil)
	_, _ = kept.Add(controlpoint.NewEffectControlPoint(0, false, 1))
	_, _ = kept.Add(controlpoint.NewSampleControlPoint(10, "normal", 100))
	_, _ = kept.Add(controlpoint.NewSampleControlPoint(20, "normal", 100))

	snapshot, err = Encode(kept)
	assert.Nil(t, err)

	restored, err = Restore(snapshot, nil)
	assert.Nil(t, err)
	assert.Equal(t, 3, restored.Len())
	assert.True(t, kept.Equals(restored))
}

func TestRevisionsDiffer(t *testing.T) {
	assert.NotEqual(t, NewRevision(), NewRevision())
}

func TestDecodeLooseFields(t *testing.T) {
	const doc = `
revision: hand-edited
points:
  - kind: difficulty
    time: 1000
    fields:
      sliderVelocity: "1.5"
      generateTicks: "false"
  - kind: sample
    time: 0
    fields:
      sampleBank: SOFT
      sampleVolume: 70.0
  - kind: timing
    time: 0
`

	var snapshot Snapshot

	assert.Nil(t, yaml.Unmarshal([]byte(doc), &snapshot))

	info, err := Restore(&snapshot, nil)
	assert.Nil(t, err)

	dp := info.DifficultyPointAt(1000)
	assert.EqualValues(t, 1.5, dp.SliderVelocity())
	assert.False(t, dp.GenerateTicks())
	assert.EqualValues(t, "soft", info.SamplePointAt(0).SampleBank())
	assert.EqualValues(t, 70, info.SamplePointAt(0).SampleVolume())
	assert.EqualValues(t, controlpoint.BeatLengthDefault, info.TimingPointAt(0).BeatLength())
	assert.Equal(t, 1, info.TimingPoints().Len())
}

func TestDecodeBadRecords(t *testing.T) {
	snapshot := &Snapshot{
		Points: []*PointRecord{
			{Kind: "nope", Time: 0},
			{Kind: "difficulty", Time: 0, Fields: map[string]any{"sliderVelocity": "fast"}},
			nil,
			{Kind: "effect", Time: 10, Fields: map[string]any{"kiaiMode": true}},
		},
	}

	info, err := Restore(snapshot, nil)
	assert.ErrorIs(t, err, ErrNoCodec)
	assert.True(t, info.EffectPointAt(10).KiaiMode())
	assert.Equal(t, 1, info.Len())

	assert.ErrorIs(t, Decode(nil, info), ErrNilSnapshot)
	assert.ErrorIs(t, Decode(&Snapshot{Points: snapshot.Points[1:2]}, info), ErrBadRecord)
}

const utKindMarker = controlpoint.KindCustomStart + 11

type utMarkerPoint struct {
	time   float64
	label  string
	frozen bool
}

func (p *utMarkerPoint) Kind() controlpoint.Kind { return utKindMarker }
func (p *utMarkerPoint) Time() float64           { return p.time }
func (p *utMarkerPoint) Frozen() bool            { return p.frozen }
func (p *utMarkerPoint) Hash() uint64            { return uint64(len(p.label)) }

func (p *utMarkerPoint) IsRedundant(existing controlpoint.ControlPoint) bool { return p.Equals(existing) }

func (p *utMarkerPoint) Equals(other controlpoint.ControlPoint) bool {
	o, ok := other.(*utMarkerPoint)

	return ok && o.label == p.label
}

func (p *utMarkerPoint) CopyFrom(other controlpoint.ControlPoint) error {
	o, ok := other.(*utMarkerPoint)
	if !ok {
		return controlpoint.ErrTypeMismatch
	}

	p.label = o.label

	return nil
}

func (p *utMarkerPoint) RepresentingColour(pl *controlpoint.Palette) color.RGBA { return pl.Gray }
func (p *utMarkerPoint) Clone() controlpoint.ControlPoint                      { return p.CloneAt(p.time) }

func (p *utMarkerPoint) CloneAt(time float64) controlpoint.ControlPoint {
	return &utMarkerPoint{time: time, label: p.label}
}

func TestCustomKindCodec(t *testing.T) {
	info := controlpointinfo.NewInfo(nil, nil)

	_, err := controlpointinfo.Register(info, &utMarkerPoint{frozen: true})
	assert.Nil(t, err)

	_, err = info.Add(&utMarkerPoint{time: 30, label: "chorus"})
	assert.Nil(t, err)

	_, err = Encode(info)
	assert.ErrorIs(t, err, ErrNoCodec)

	controlpoint.RegisterKindName(utKindMarker, "marker")
	RegisterCodec(utKindMarker, Codec{
		Encode: func(cp controlpoint.ControlPoint) map[string]any {
			return map[string]any{"label": cp.(*utMarkerPoint).label}
		},
		Decode: func(time float64, fields map[string]any) (controlpoint.ControlPoint, error) {
			label, err := field(fields, "label", "", cast.ToStringE)

			return &utMarkerPoint{time: time, label: label}, err
		},
	})

	snapshot, err := Encode(info)
	assert.Nil(t, err)
	assert.Equal(t, "marker", snapshot.Points[0].Kind)

	target := controlpointinfo.NewInfo(nil, nil)
	_, err = controlpointinfo.Register(target, &utMarkerPoint{frozen: true})
	assert.Nil(t, err)

	assert.Nil(t, Decode(snapshot, target))
	assert.True(t, info.Equals(target))
}
