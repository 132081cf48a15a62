package controlpointinfo

import (
	"github.com/sgostarter/libcontrolpoints/controlpoint"
	"github.com/sgostarter/libcontrolpoints/timeline"
)

// kindTimeline is the untyped view Info keeps of every registered timeline.
type kindTimeline interface {
	add(cp controlpoint.ControlPoint) (bool, error)
	place(cp controlpoint.ControlPoint) (bool, error)
	removeAt(time float64) bool
	pointAt(time float64) controlpoint.ControlPoint
	exactAt(time float64) (controlpoint.ControlPoint, bool)
	points() []controlpoint.ControlPoint
	length() int
	clear()
	compact() int
	clone() kindTimeline
	observe(fn func(timeline.Change))
}

type typedTimeline[K controlpoint.ControlPoint] struct {
	tl *timeline.Timeline[K]
}

func (tt typedTimeline[K]) add(cp controlpoint.ControlPoint) (bool, error) {
	k, ok := cp.(K)
	if !ok {
		return false, timeline.ErrKindMismatch
	}

	return tt.tl.Add(k)
}

func (tt typedTimeline[K]) place(cp controlpoint.ControlPoint) (bool, error) {
	k, ok := cp.(K)
	if !ok {
		return false, timeline.ErrKindMismatch
	}

	return tt.tl.Place(k)
}

func (tt typedTimeline[K]) removeAt(time float64) bool {
	return tt.tl.RemoveAt(time)
}

func (tt typedTimeline[K]) pointAt(time float64) controlpoint.ControlPoint {
	return tt.tl.ControlPointAt(time)
}

func (tt typedTimeline[K]) exactAt(time float64) (controlpoint.ControlPoint, bool) {
	p, ok := tt.tl.PointAt(time)
	if !ok {
		return nil, false
	}

	return p, true
}

func (tt typedTimeline[K]) points() []controlpoint.ControlPoint {
	ps := make([]controlpoint.ControlPoint, 0, tt.tl.Len())
	for _, p := range tt.tl.Points() {
		ps = append(ps, p)
	}

	return ps
}

func (tt typedTimeline[K]) length() int {
	return tt.tl.Len()
}

func (tt typedTimeline[K]) clear() {
	tt.tl.Clear()
}

func (tt typedTimeline[K]) compact() int {
	return tt.tl.Compact()
}

func (tt typedTimeline[K]) clone() kindTimeline {
	return typedTimeline[K]{tl: tt.tl.Clone()}
}

func (tt typedTimeline[K]) observe(fn func(timeline.Change)) {
	tt.tl.Observe(fn)
}
