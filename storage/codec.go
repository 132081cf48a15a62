package storage

import (
	"sync"

	"github.com/sgostarter/libcontrolpoints/controlpoint"
	"github.com/spf13/cast"
)

// Codec converts the payload of one control point kind to and from loose record fields.
type Codec struct {
	Encode func(cp controlpoint.ControlPoint) map[string]any
	Decode func(time float64, fields map[string]any) (controlpoint.ControlPoint, error)
}

var (
	codecsLock sync.RWMutex
	codecs     = map[controlpoint.Kind]Codec{
		controlpoint.KindTiming:     {Encode: encodeTiming, Decode: decodeTiming},
		controlpoint.KindDifficulty: {Encode: encodeDifficulty, Decode: decodeDifficulty},
		controlpoint.KindEffect:     {Encode: encodeEffect, Decode: decodeEffect},
		controlpoint.KindSample:     {Encode: encodeSample, Decode: decodeSample},
	}
)

// RegisterCodec makes a custom kind storable. The kind also needs a name, see
// controlpoint.RegisterKindName.
func RegisterCodec(kind controlpoint.Kind, codec Codec) {
	codecsLock.Lock()
	defer codecsLock.Unlock()

	codecs[kind] = codec
}

func codecOf(kind controlpoint.Kind) (codec Codec, ok bool) {
	codecsLock.RLock()
	defer codecsLock.RUnlock()

	codec, ok = codecs[kind]

	return
}

func field[T any](fields map[string]any, name string, def T, fn func(any) (T, error)) (T, error) {
	v, ok := fields[name]
	if !ok || v == nil {
		return def, nil
	}

	return fn(v)
}

func encodeTiming(cp controlpoint.ControlPoint) map[string]any {
	p := cp.(*controlpoint.TimingControlPoint)

	return map[string]any{
		"beatLength":       p.BeatLength(),
		"timeSignature":    p.TimeSignature(),
		"omitFirstBarLine": p.OmitFirstBarLine(),
	}
}

func decodeTiming(time float64, fields map[string]any) (cp controlpoint.ControlPoint, err error) {
	beatLength, err := field(fields, "beatLength", controlpoint.BeatLengthDefault, cast.ToFloat64E)
	if err != nil {
		return
	}

	timeSignature, err := field(fields, "timeSignature", controlpoint.TimeSignatureDefault, cast.ToIntE)
	if err != nil {
		return
	}

	omit, err := field(fields, "omitFirstBarLine", false, cast.ToBoolE)
	if err != nil {
		return
	}

	p := controlpoint.NewTimingControlPoint(time, beatLength, timeSignature)

	_, err = p.SetOmitFirstBarLine(omit)
	if err != nil {
		return
	}

	cp = p

	return
}

func encodeDifficulty(cp controlpoint.ControlPoint) map[string]any {
	p := cp.(*controlpoint.DifficultyControlPoint)

	return map[string]any{
		"sliderVelocity": p.SliderVelocity(),
		"generateTicks":  p.GenerateTicks(),
	}
}

func decodeDifficulty(time float64, fields map[string]any) (cp controlpoint.ControlPoint, err error) {
	sv, err := field(fields, "sliderVelocity", controlpoint.SliderVelocityDefault, cast.ToFloat64E)
	if err != nil {
		return
	}

	generateTicks, err := field(fields, "generateTicks", true, cast.ToBoolE)
	if err != nil {
		return
	}

	cp = controlpoint.NewDifficultyControlPoint(time, sv, generateTicks)

	return
}

func encodeEffect(cp controlpoint.ControlPoint) map[string]any {
	p := cp.(*controlpoint.EffectControlPoint)

	return map[string]any{
		"kiaiMode":    p.KiaiMode(),
		"scrollSpeed": p.ScrollSpeed(),
	}
}

func decodeEffect(time float64, fields map[string]any) (cp controlpoint.ControlPoint, err error) {
	kiai, err := field(fields, "kiaiMode", false, cast.ToBoolE)
	if err != nil {
		return
	}

	scrollSpeed, err := field(fields, "scrollSpeed", controlpoint.ScrollSpeedDefault, cast.ToFloat64E)
	if err != nil {
		return
	}

	cp = controlpoint.NewEffectControlPoint(time, kiai, scrollSpeed)

	return
}

func encodeSample(cp controlpoint.ControlPoint) map[string]any {
	p := cp.(*controlpoint.SampleControlPoint)

	return map[string]any{
		"sampleBank":   p.SampleBank(),
		"sampleVolume": p.SampleVolume(),
	}
}

func decodeSample(time float64, fields map[string]any) (cp controlpoint.ControlPoint, err error) {
	bank, err := field(fields, "sampleBank", controlpoint.SampleBankDefault, cast.ToStringE)
	if err != nil {
		return
	}

	volume, err := field(fields, "sampleVolume", controlpoint.SampleVolumeDefault, cast.ToIntE)
	if err != nil {
		return
	}

	cp = controlpoint.NewSampleControlPoint(time, bank, volume)

	return
}
