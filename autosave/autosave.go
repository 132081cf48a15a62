package autosave

import (
	"context"
	"sync"
	"time"

	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libcontrolpoints/controlpointinfo"
	"github.com/sgostarter/libcontrolpoints/storage"
)

// AutoSaver parks a snapshot of an Info in a Storage while it is being edited.
type AutoSaver interface {
	// Touch marks the Info as edited. Changes observed on the Info touch automatically.
	Touch()

	Start()
	Stop()
	Started() bool

	// Flush saves now if anything changed since the last save. The caller must not hold the Info lock.
	Flush(ctx context.Context) error
}

type INotify interface {
	OnSaved(key, revision string, err error)
}

type Config struct {
	Key           string        `yaml:"key" json:"key"`
	CheckInterval time.Duration `yaml:"checkInterval" json:"checkInterval"`

	// QuietDuration is how long edits must pause before a save.
	QuietDuration time.Duration `yaml:"quietDuration" json:"quietDuration"`
	// MaxDirtyDuration forces a save during a long editing burst.
	MaxDirtyDuration time.Duration `yaml:"maxDirtyDuration" json:"maxDirtyDuration"`
}

// NewAutoSaver watches info and saves it under cfg.Key. Info does no locking, so the editor must hold
// lock while mutating info; the saver takes it while encoding. The routine exits when ctx is done.
func NewAutoSaver(ctx context.Context, cfg Config, info *controlpointinfo.Info, lock sync.Locker,
	stg storage.Storage, notify INotify, logger l.Wrapper) AutoSaver {
	if info == nil || stg == nil || lock == nil {
		return NewFakeAutoSaver()
	}

	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	impl := &autoSaverImpl{
		logger: logger.WithFields(l.StringField(l.ClsKey, "autoSaver"), l.StringField("key", cfg.Key)),
		cfg:    cfg,
		info:   info,
		infoL:  lock,
		stg:    stg,
		notify: notify,
	}

	impl.init(ctx)

	return impl
}

type autoSaverImpl struct {
	logger l.Wrapper
	cfg    Config
	info   *controlpointinfo.Info
	infoL  sync.Locker
	stg    storage.Storage
	notify INotify

	lock        sync.Mutex
	started     bool
	dirty       bool
	dirtySince  time.Time
	lastTouchAt time.Time

	saveLock sync.Mutex
}

func (impl *autoSaverImpl) OnControlPointChanged(_ controlpointinfo.Change) {
	impl.Touch()
}

func (impl *autoSaverImpl) Touch() {
	impl.lock.Lock()
	defer impl.lock.Unlock()

	now := time.Now()

	if !impl.dirty {
		impl.dirty = true
		impl.dirtySince = now
	}

	impl.lastTouchAt = now
}

func (impl *autoSaverImpl) Start() {
	impl.lock.Lock()
	defer impl.lock.Unlock()

	impl.started = true
}

func (impl *autoSaverImpl) Stop() {
	impl.lock.Lock()
	defer impl.lock.Unlock()

	impl.started = false
}

func (impl *autoSaverImpl) Started() bool {
	impl.lock.Lock()
	defer impl.lock.Unlock()

	return impl.started
}

func (impl *autoSaverImpl) init(ctx context.Context) {
	if impl.cfg.CheckInterval <= 0 {
		impl.cfg.CheckInterval = time.Second
	}

	if impl.cfg.QuietDuration <= 0 {
		impl.cfg.QuietDuration = 3 * time.Second
	}

	if impl.cfg.MaxDirtyDuration <= 0 {
		impl.cfg.MaxDirtyDuration = time.Minute
	}

	impl.info.AddObserver(impl)

	go impl.mainRoutine(ctx)
}

func (impl *autoSaverImpl) due(now time.Time) bool {
	impl.lock.Lock()
	defer impl.lock.Unlock()

	if !impl.started || !impl.dirty {
		return false
	}

	return now.Sub(impl.lastTouchAt) >= impl.cfg.QuietDuration || now.Sub(impl.dirtySince) >= impl.cfg.MaxDirtyDuration
}

func (impl *autoSaverImpl) mainRoutine(ctx context.Context) {
	ticker := time.NewTicker(impl.cfg.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if impl.due(now) {
				_ = impl.Flush(ctx)
			}
		}
	}
}

func (impl *autoSaverImpl) Flush(ctx context.Context) (err error) {
	impl.saveLock.Lock()
	defer impl.saveLock.Unlock()

	impl.lock.Lock()
	dirty := impl.dirty
	impl.dirty = false
	impl.lock.Unlock()

	if !dirty {
		return
	}

	impl.infoL.Lock()
	snapshot, err := storage.Encode(impl.info)
	impl.infoL.Unlock()

	if err == nil {
		err = impl.stg.Save(ctx, impl.cfg.Key, snapshot)
	}

	var revision string

	if err != nil {
		impl.logger.WithFields(l.ErrorField(err)).Error("save snapshot failed")

		impl.Touch()
	} else {
		revision = snapshot.Revision

		impl.logger.WithFields(l.StringField("revision", revision)).Debug("snapshot saved")
	}

	if impl.notify != nil {
		impl.notify.OnSaved(impl.cfg.Key, revision, err)
	}

	return
}
