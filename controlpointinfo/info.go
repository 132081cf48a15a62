package controlpointinfo

import (
	"cmp"
	"math"
	"slices"

	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libcontrolpoints/controlpoint"
	"github.com/sgostarter/libcontrolpoints/timeline"
	"github.com/spf13/cast"
)

type Config struct {
	// KeepRedundant stores points that restate the active value instead of skipping them.
	KeepRedundant bool `yaml:"keepRedundant" json:"keepRedundant"`
}

type Change struct {
	Kind controlpoint.Kind
	Op   timeline.Op
	Time float64
}

type Observer interface {
	OnControlPointChanged(change Change)
}

// Info owns one timeline per control point kind. Kinds are independent: a change to one timeline
// never touches another, and every kind answers queries at every time through its default.
//
// Like Timeline it performs no locking.
type Info struct {
	logger l.Wrapper
	cfg    Config

	kinds     []controlpoint.Kind
	timelines map[controlpoint.Kind]kindTimeline
	observers []Observer

	timing     *timeline.Timeline[*controlpoint.TimingControlPoint]
	difficulty *timeline.Timeline[*controlpoint.DifficultyControlPoint]
	effect     *timeline.Timeline[*controlpoint.EffectControlPoint]
	sample     *timeline.Timeline[*controlpoint.SampleControlPoint]
}

func NewInfo(cfg *Config, logger l.Wrapper) *Info {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	info := &Info{
		logger:    logger.WithFields(l.StringField(l.ClsKey, "controlPointInfo")),
		timelines: make(map[controlpoint.Kind]kindTimeline),
	}

	if cfg != nil {
		info.cfg = *cfg
	}

	info.timing, _ = Register(info, controlpoint.DefaultTiming())
	info.difficulty, _ = Register(info, controlpoint.DefaultDifficulty())
	info.effect, _ = Register(info, controlpoint.DefaultEffect())
	info.sample, _ = Register(info, controlpoint.DefaultSample())

	return info
}

// Register adds a timeline for def's kind. def is the frozen shared default of that kind.
func Register[K controlpoint.ControlPoint](info *Info, def K) (*timeline.Timeline[K], error) {
	cp := controlpoint.ControlPoint(def)
	if controlpoint.IsNil(cp) || !cp.Frozen() {
		return nil, ErrKindDefaultInvalid
	}

	kind := cp.Kind()
	if _, ok := info.timelines[kind]; ok {
		return nil, ErrAlreadyRegistered
	}

	var options []timeline.Option
	if info.cfg.KeepRedundant {
		options = append(options, timeline.KeepRedundantOption())
	}

	tl := timeline.New(def, options...)

	info.attach(kind, typedTimeline[K]{tl: tl})

	return tl, nil
}

// TimelineOf returns the typed timeline registered for kind.
func TimelineOf[K controlpoint.ControlPoint](info *Info, kind controlpoint.Kind) (*timeline.Timeline[K], bool) {
	kt, ok := info.timelines[kind]
	if !ok {
		return nil, false
	}

	tt, ok := kt.(typedTimeline[K])
	if !ok {
		return nil, false
	}

	return tt.tl, true
}

func (info *Info) attach(kind controlpoint.Kind, kt kindTimeline) {
	kt.observe(func(c timeline.Change) {
		info.notify(Change{Kind: kind, Op: c.Op, Time: c.Time})
	})

	info.kinds = append(info.kinds, kind)
	info.timelines[kind] = kt
}

func (info *Info) AddObserver(o Observer) {
	if o != nil {
		info.observers = append(info.observers, o)
	}
}

func (info *Info) notify(c Change) {
	for _, o := range info.observers {
		o.OnControlPointChanged(c)
	}
}

func (info *Info) Kinds() []controlpoint.Kind {
	return slices.Clone(info.kinds)
}

// Add dispatches point to the timeline of its kind and reports whether anything changed.
func (info *Info) Add(point controlpoint.ControlPoint) (changed bool, err error) {
	return info.insert(point, false)
}

// Place stores point as given, without skipping redundant values. Restoring saved content uses it so
// that every stored point comes back.
func (info *Info) Place(point controlpoint.ControlPoint) (changed bool, err error) {
	return info.insert(point, true)
}

func (info *Info) insert(point controlpoint.ControlPoint, place bool) (changed bool, err error) {
	if controlpoint.IsNil(point) {
		err = ErrNoControlPoint

		return
	}

	kt, ok := info.timelines[point.Kind()]
	if !ok {
		err = ErrUnknownKind

		info.logger.WithFields(l.StringField("kind", point.Kind().String())).Error("add: kind not registered")

		return
	}

	if place {
		changed, err = kt.place(point)
	} else {
		changed, err = kt.add(point)
	}

	if err != nil {
		info.logger.WithFields(l.ErrorField(err), l.StringField("kind", point.Kind().String()),
			l.StringField("time", cast.ToString(point.Time()))).Error("add: rejected")

		return
	}

	if !changed {
		info.logger.WithFields(l.StringField("kind", point.Kind().String()),
			l.StringField("time", cast.ToString(point.Time()))).Debug("add: redundant point skipped")
	}

	return
}

func (info *Info) RemoveAt(kind controlpoint.Kind, time float64) bool {
	kt, ok := info.timelines[kind]
	if !ok {
		return false
	}

	return kt.removeAt(time)
}

// Remove deletes the point stored at point's time when it is equal to point.
func (info *Info) Remove(point controlpoint.ControlPoint) bool {
	if controlpoint.IsNil(point) {
		return false
	}

	kt, ok := info.timelines[point.Kind()]
	if !ok {
		return false
	}

	existing, ok := kt.exactAt(point.Time())
	if !ok || !existing.Equals(point) {
		return false
	}

	return kt.removeAt(point.Time())
}

// PointAt returns the point of kind active at time. ok is false only for unregistered kinds.
func (info *Info) PointAt(kind controlpoint.Kind, time float64) (point controlpoint.ControlPoint, ok bool) {
	kt, ok := info.timelines[kind]
	if !ok {
		return
	}

	return kt.pointAt(time), true
}

func (info *Info) TimingPointAt(time float64) *controlpoint.TimingControlPoint {
	return info.timing.ControlPointAt(time)
}

func (info *Info) DifficultyPointAt(time float64) *controlpoint.DifficultyControlPoint {
	return info.difficulty.ControlPointAt(time)
}

func (info *Info) EffectPointAt(time float64) *controlpoint.EffectControlPoint {
	return info.effect.ControlPointAt(time)
}

func (info *Info) SamplePointAt(time float64) *controlpoint.SampleControlPoint {
	return info.sample.ControlPointAt(time)
}

func (info *Info) TimingPoints() *timeline.Timeline[*controlpoint.TimingControlPoint] {
	return info.timing
}

func (info *Info) DifficultyPoints() *timeline.Timeline[*controlpoint.DifficultyControlPoint] {
	return info.difficulty
}

func (info *Info) EffectPoints() *timeline.Timeline[*controlpoint.EffectControlPoint] {
	return info.effect
}

func (info *Info) SamplePoints() *timeline.Timeline[*controlpoint.SampleControlPoint] {
	return info.sample
}

// AllPoints lists the points of every kind ordered by time, then by kind registration order.
func (info *Info) AllPoints() []controlpoint.ControlPoint {
	var ps []controlpoint.ControlPoint

	order := make(map[controlpoint.Kind]int, len(info.kinds))

	for idx, kind := range info.kinds {
		order[kind] = idx

		ps = append(ps, info.timelines[kind].points()...)
	}

	slices.SortStableFunc(ps, func(a, b controlpoint.ControlPoint) int {
		if c := cmp.Compare(a.Time(), b.Time()); c != 0 {
			return c
		}

		return cmp.Compare(order[a.Kind()], order[b.Kind()])
	})

	return ps
}

func (info *Info) Len() (n int) {
	for _, kt := range info.timelines {
		n += kt.length()
	}

	return
}

func (info *Info) Clear() {
	for _, kind := range info.kinds {
		info.timelines[kind].clear()
	}
}

// Compact drops points made redundant by earlier edits in every timeline.
func (info *Info) Compact() (removed int) {
	for _, kind := range info.kinds {
		removed += info.timelines[kind].compact()
	}

	return
}

// Clone deep-copies every timeline. Observers stay with the original.
func (info *Info) Clone() *Info {
	c := &Info{
		logger:    info.logger,
		cfg:       info.cfg,
		timelines: make(map[controlpoint.Kind]kindTimeline, len(info.timelines)),
	}

	for _, kind := range info.kinds {
		c.attach(kind, info.timelines[kind].clone())
	}

	c.timing, _ = TimelineOf[*controlpoint.TimingControlPoint](c, controlpoint.KindTiming)
	c.difficulty, _ = TimelineOf[*controlpoint.DifficultyControlPoint](c, controlpoint.KindDifficulty)
	c.effect, _ = TimelineOf[*controlpoint.EffectControlPoint](c, controlpoint.KindEffect)
	c.sample, _ = TimelineOf[*controlpoint.SampleControlPoint](c, controlpoint.KindSample)

	return c
}

// Equals reports whether both hold the same kinds with the same points at the same times.
func (info *Info) Equals(other *Info) bool {
	if other == nil || len(info.kinds) != len(other.kinds) {
		return false
	}

	for _, kind := range info.kinds {
		okt, ok := other.timelines[kind]
		if !ok {
			return false
		}

		a, b := info.timelines[kind].points(), okt.points()
		if len(a) != len(b) {
			return false
		}

		for i := range a {
			if a[i].Time() != b[i].Time() || !a[i].Equals(b[i]) {
				return false
			}
		}
	}

	return true
}

// Merge adds a copy of every point of other. Points of kinds this Info does not know are rejected
// with ErrUnknownKind after the known ones are merged.
func (info *Info) Merge(other *Info) (changed int, err error) {
	if other == nil {
		return
	}

	for _, p := range other.AllPoints() {
		ok, e := info.Add(p.Clone())
		if e != nil {
			err = e

			continue
		}

		if ok {
			changed++
		}
	}

	return
}

func (info *Info) BPMAt(time float64) float64 {
	return info.TimingPointAt(time).BPM()
}

// BPMRange returns the slowest and fastest BPM over all timing points, or the default BPM when
// there are none.
func (info *Info) BPMRange() (minBPM, maxBPM float64) {
	if info.timing.Len() == 0 {
		bpm := controlpoint.DefaultTiming().BPM()

		return bpm, bpm
	}

	minBPM, maxBPM = math.Inf(1), math.Inf(-1)

	for _, p := range info.timing.Points() {
		minBPM = math.Min(minBPM, p.BPM())
		maxBPM = math.Max(maxBPM, p.BPM())
	}

	return
}
