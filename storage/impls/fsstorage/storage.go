package fsstorage

import (
	"context"
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sgostarter/i/l"
	"github.com/sgostarter/i/stg"
	"github.com/sgostarter/libcontrolpoints/storage"
	"github.com/sgostarter/libeasygo/pathutils"
	"github.com/sgostarter/libeasygo/stg/fs/rawfs"
	"gopkg.in/yaml.v3"
)

const (
	fileExt = ".yaml"

	defaultCacheTTL = time.Minute
)

type Config struct {
	Root     string        `yaml:"root" json:"root"`
	CacheTTL time.Duration `yaml:"cacheTTL" json:"cacheTTL"`
}

// NewFSStorage keeps one YAML file per key under cfg.Root. fileStorage may be nil to use the local
// file system.
func NewFSStorage(cfg *Config, fileStorage stg.FileStorage, logger l.Wrapper) storage.Storage {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	logger = logger.WithFields(l.StringField(l.ClsKey, "fsSnapshotStorage"))

	if cfg == nil {
		cfg = &Config{}
	}

	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}

	if fileStorage == nil {
		if cfg.Root != "" {
			if err := pathutils.MustDirExists(cfg.Root); err != nil {
				logger.WithFields(l.ErrorField(err), l.StringField("root", cfg.Root)).Error("create root failed")
			}
		}

		fileStorage = rawfs.NewFSStorage(cfg.Root)
	}

	return &fsStorageImpl{
		logger:      logger,
		fileStorage: fileStorage,
		cache:       cache.New(ttl, ttl*2),
	}
}

type fsStorageImpl struct {
	logger      l.Wrapper
	fileStorage stg.FileStorage
	cache       *cache.Cache
}

func (impl *fsStorageImpl) fileName(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.HasPrefix(key, ".") {
		return "", storage.ErrInvalidKey
	}

	return key + fileExt, nil
}

func (impl *fsStorageImpl) Save(_ context.Context, key string, snapshot *storage.Snapshot) (err error) {
	if snapshot == nil {
		err = storage.ErrNilSnapshot

		return
	}

	fileName, err := impl.fileName(key)
	if err != nil {
		return
	}

	d, err := yaml.Marshal(snapshot)
	if err != nil {
		return
	}

	err = impl.fileStorage.WriteFile(fileName, d)
	if err != nil {
		impl.logger.WithFields(l.ErrorField(err), l.StringField("key", key)).Error("write snapshot failed")

		impl.cache.Delete(key)

		return
	}

	impl.cache.Set(key, d, cache.DefaultExpiration)

	return
}

func (impl *fsStorageImpl) Load(_ context.Context, key string) (snapshot *storage.Snapshot, err error) {
	fileName, err := impl.fileName(key)
	if err != nil {
		return
	}

	var d []byte

	if v, ok := impl.cache.Get(key); ok {
		d, _ = v.([]byte)
	}

	if d == nil {
		d, err = impl.fileStorage.ReadFile(fileName)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				err = storage.ErrNotFound
			}

			return
		}

		// Delete leaves an empty file behind
		if len(d) == 0 {
			err = storage.ErrNotFound

			return
		}

		impl.cache.Set(key, d, cache.DefaultExpiration)
	}

	// decode on every load: callers own the returned snapshot
	snapshot = &storage.Snapshot{}

	err = yaml.Unmarshal(d, snapshot)
	if err != nil {
		snapshot = nil

		impl.logger.WithFields(l.ErrorField(err), l.StringField("key", key)).Error("decode snapshot failed")
	}

	return
}

func (impl *fsStorageImpl) Delete(_ context.Context, key string) (err error) {
	fileName, err := impl.fileName(key)
	if err != nil {
		return
	}

	impl.cache.Delete(key)

	err = impl.fileStorage.WriteFile(fileName, []byte{})

	return
}
