package controlpoint

import (
	"strconv"
	"sync"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindTiming
	KindDifficulty
	KindEffect
	KindSample

	// KindCustomStart is the first value available to kinds declared outside this package.
	KindCustomStart Kind = 100
)

var (
	kindNamesLock sync.RWMutex
	kindNames     = map[Kind]string{
		KindTiming:     "timing",
		KindDifficulty: "difficulty",
		KindEffect:     "effect",
		KindSample:     "sample",
	}
)

// RegisterKindName names a custom kind so that it can be printed and parsed.
func RegisterKindName(k Kind, name string) {
	kindNamesLock.Lock()
	defer kindNamesLock.Unlock()

	kindNames[k] = name
}

func (k Kind) String() string {
	kindNamesLock.RLock()
	defer kindNamesLock.RUnlock()

	if name, ok := kindNames[k]; ok {
		return name
	}

	return "kind(" + strconv.Itoa(int(k)) + ")"
}

func ParseKind(name string) (Kind, bool) {
	kindNamesLock.RLock()
	defer kindNamesLock.RUnlock()

	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}

	return KindUnknown, false
}
