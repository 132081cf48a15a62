package timeline

import (
	"iter"
	"math"

	"github.com/sgostarter/libcontrolpoints/controlpoint"
)

type Op int

const (
	OpAdd Op = iota
	OpReplace
	OpRemove
	OpClear
)

func (op Op) String() string {
	switch op {
	case OpAdd:
		return "add"
	case OpReplace:
		return "replace"
	case OpRemove:
		return "remove"
	case OpClear:
		return "clear"
	}

	return "unknown"
}

type Change struct {
	Op   Op
	Time float64
}

// Timeline keeps the points of one kind strictly ordered by time, at most one per timestamp.
//
// It does no locking: one owner mutates it, readers may query between mutations. Mutating while an
// EnumerateBetween sequence is being consumed is safe because the sequence ranges over a snapshot.
type Timeline[K controlpoint.ControlPoint] struct {
	def       K
	points    []K
	opts      *Options
	observers []func(Change)
}

func New[K controlpoint.ControlPoint](def K, options ...Option) *Timeline[K] {
	if controlpoint.IsNil(def) {
		panic("timeline: no default control point")
	}

	return &Timeline[K]{
		def:  def,
		opts: optionNew(options...),
	}
}

func (tl *Timeline[K]) Default() K {
	return tl.def
}

func (tl *Timeline[K]) Len() int {
	return len(tl.points)
}

// Observe registers fn to be called after every structural change.
func (tl *Timeline[K]) Observe(fn func(Change)) {
	if fn != nil {
		tl.observers = append(tl.observers, fn)
	}
}

func (tl *Timeline[K]) notify(op Op, time float64) {
	for _, fn := range tl.observers {
		fn(Change{Op: op, Time: time})
	}
}

// search returns the index of the first point with Time() >= time, and whether it is exactly time.
func (tl *Timeline[K]) search(time float64) (idx int, found bool) {
	lo, hi := 0, len(tl.points)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if tl.points[mid].Time() < time {
			lo = mid + 1
		} else {
			hi = mid
		}
	}

	return lo, lo < len(tl.points) && tl.points[lo].Time() == time
}

// Add places point, returning whether the timeline changed.
//
// A point at an existing timestamp replaces the previous one unless it is equal to it or redundant
// against it. Any other point is skipped when it is redundant against the point active at its time
// (possibly the default), otherwise it is inserted in order.
func (tl *Timeline[K]) Add(point K) (changed bool, err error) {
	return tl.insert(point, tl.opts.keepRedundant)
}

// Place stores point at its time as given, replacing any point already there. Nothing is elided, so
// content saved from a timeline comes back point for point.
func (tl *Timeline[K]) Place(point K) (changed bool, err error) {
	return tl.insert(point, true)
}

func (tl *Timeline[K]) insert(point K, keepRedundant bool) (changed bool, err error) {
	cp := controlpoint.ControlPoint(point)
	if controlpoint.IsNil(cp) {
		err = ErrNoPoint

		return
	}

	if cp.Frozen() {
		err = ErrSharedDefault

		return
	}

	if cp.Kind() != tl.def.Kind() {
		err = ErrKindMismatch

		return
	}

	time := cp.Time()
	if math.IsNaN(time) {
		err = ErrNaNTime

		return
	}

	idx, found := tl.search(time)

	if found {
		existing := tl.points[idx]
		if cp.Equals(existing) || (!keepRedundant && cp.IsRedundant(existing)) {
			return
		}

		tl.points[idx] = point
		tl.notify(OpReplace, time)

		changed = true

		return
	}

	if !keepRedundant {
		var active controlpoint.ControlPoint = tl.def
		if idx > 0 {
			active = tl.points[idx-1]
		}

		if cp.IsRedundant(active) {
			return
		}
	}

	var zero K

	tl.points = append(tl.points, zero)
	copy(tl.points[idx+1:], tl.points[idx:])
	tl.points[idx] = point
	tl.notify(OpAdd, time)

	changed = true

	return
}

// RemoveAt removes the point at exactly time. Removing a missing point is not an error.
func (tl *Timeline[K]) RemoveAt(time float64) bool {
	idx, found := tl.search(time)
	if !found {
		return false
	}

	var zero K

	copy(tl.points[idx:], tl.points[idx+1:])
	tl.points[len(tl.points)-1] = zero
	tl.points = tl.points[:len(tl.points)-1]
	tl.notify(OpRemove, time)

	return true
}

// ControlPointAt returns the latest point with Time() <= time, or the default when none exists.
// It does not allocate.
func (tl *Timeline[K]) ControlPointAt(time float64) K {
	idx, found := tl.search(time)
	if found {
		return tl.points[idx]
	}

	if idx == 0 {
		return tl.def
	}

	return tl.points[idx-1]
}

// PointAt returns the point placed at exactly time.
func (tl *Timeline[K]) PointAt(time float64) (point K, exists bool) {
	idx, found := tl.search(time)
	if !found {
		return
	}

	return tl.points[idx], true
}

// EnumerateBetween yields every point with start <= Time() <= end in time order. The matching points
// are captured when EnumerateBetween is called; the sequence can be ranged over any number of times.
func (tl *Timeline[K]) EnumerateBetween(start, end float64) iter.Seq[K] {
	var snapshot []K

	if start <= end {
		from, _ := tl.search(start)

		to := from
		for to < len(tl.points) && tl.points[to].Time() <= end {
			to++
		}

		snapshot = append([]K(nil), tl.points[from:to]...)
	}

	return func(yield func(K) bool) {
		for _, p := range snapshot {
			if !yield(p) {
				return
			}
		}
	}
}

func (tl *Timeline[K]) Points() []K {
	return append([]K(nil), tl.points...)
}

func (tl *Timeline[K]) First() (point K, exists bool) {
	if len(tl.points) == 0 {
		return
	}

	return tl.points[0], true
}

func (tl *Timeline[K]) Last() (point K, exists bool) {
	if len(tl.points) == 0 {
		return
	}

	return tl.points[len(tl.points)-1], true
}

func (tl *Timeline[K]) Clear() {
	if len(tl.points) == 0 {
		return
	}

	tl.points = nil
	tl.notify(OpClear, 0)
}

// Compact drops points left redundant by earlier edits, such as a point whose predecessor was
// replaced by an equal value. It returns how many points were removed.
func (tl *Timeline[K]) Compact() (removed int) {
	var active controlpoint.ControlPoint = tl.def

	kept := tl.points[:0]

	var dropped []float64

	for _, p := range tl.points {
		if p.IsRedundant(active) {
			dropped = append(dropped, p.Time())

			continue
		}

		kept = append(kept, p)
		active = p
	}

	var zero K

	for i := len(kept); i < len(tl.points); i++ {
		tl.points[i] = zero
	}

	tl.points = kept

	for _, time := range dropped {
		tl.notify(OpRemove, time)
	}

	return len(dropped)
}

// Clone deep-copies the points and options. Observers are not carried over.
func (tl *Timeline[K]) Clone() *Timeline[K] {
	c := &Timeline[K]{
		def:  tl.def,
		opts: tl.opts,
	}

	if len(tl.points) > 0 {
		c.points = make([]K, len(tl.points))
		for i, p := range tl.points {
			c.points[i] = p.Clone().(K)
		}
	}

	return c
}
