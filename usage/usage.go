package usage

import (
	"iter"

	"github.com/sgostarter/libcontrolpoints/controlpoint"
)

// MergeData picks the point that represents a group of equal points.
type MergeData[K controlpoint.ControlPoint] func(dOld, dNew K) K

func MergeReplace[K controlpoint.ControlPoint](_, dNew K) K {
	return dNew
}

func MergeIgnore[K controlpoint.ControlPoint](dOld, _ K) K {
	return dOld
}

type Source[K controlpoint.ControlPoint] interface {
	ControlPointAt(time float64) K
	EnumerateBetween(start, end float64) iter.Seq[K]
}

// PointUsageData is how long, in milliseconds, a payload was active.
type PointUsageData[K controlpoint.ControlPoint] struct {
	Duration float64
	Point    K
}

// Statistics measures how long each distinct payload is active within [start, end). Equal payloads
// at different times share one entry. Entries are ordered by first activation.
func Statistics[K controlpoint.ControlPoint](src Source[K], start, end float64, md MergeData[K]) (ds []*PointUsageData[K]) {
	if end <= start {
		return
	}

	if md == nil {
		md = MergeIgnore[K]
	}

	groups := make(map[uint64][]*PointUsageData[K])

	fnD := func(point K) *PointUsageData[K] {
		h := point.Hash()

		for _, d := range groups[h] {
			if d.Point.Equals(point) {
				d.Point = md(d.Point, point)

				return d
			}
		}

		d := &PointUsageData[K]{
			Point: point,
		}
		groups[h] = append(groups[h], d)
		ds = append(ds, d)

		return d
	}

	last := start
	current := src.ControlPointAt(start)

	for p := range src.EnumerateBetween(start, end) {
		if p.Time() <= start {
			continue
		}

		if p.Time() >= end {
			break
		}

		fnD(current).Duration += p.Time() - last
		last = p.Time()
		current = p
	}

	fnD(current).Duration += end - last

	return
}

// Dominant returns the point active for the longest time. Ties go to the earliest activation.
func Dominant[K controlpoint.ControlPoint](ds []*PointUsageData[K]) (point K, ok bool) {
	var best *PointUsageData[K]

	for _, d := range ds {
		if best == nil || d.Duration > best.Duration {
			best = d
		}
	}

	if best == nil {
		return
	}

	return best.Point, true
}
