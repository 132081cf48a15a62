package redisstorage

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libcontrolpoints/storage"
	"gopkg.in/yaml.v3"
)

type Config struct {
	PreKey string        `yaml:"preKey" json:"preKey"`
	TTL    time.Duration `yaml:"ttl" json:"ttl"`
}

func NewRedisStorage(cfg *Config, redisCli *redis.Client, logger l.Wrapper) storage.Storage {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	logger = logger.WithFields(l.StringField(l.ClsKey, "redisSnapshotStorage"))

	if redisCli == nil {
		logger.Fatal("no redis client")
	}

	if cfg == nil {
		cfg = &Config{}
	}

	return &redisStorageImpl{
		logger:   logger,
		cfg:      *cfg,
		redisCli: redisCli,
	}
}

type redisStorageImpl struct {
	logger   l.Wrapper
	cfg      Config
	redisCli *redis.Client
}

func (impl *redisStorageImpl) snapshotKey(key string) string {
	return impl.cfg.PreKey + ":cp:" + key
}

func (impl *redisStorageImpl) Save(ctx context.Context, key string, snapshot *storage.Snapshot) (err error) {
	if key == "" {
		err = storage.ErrInvalidKey

		return
	}

	if snapshot == nil {
		err = storage.ErrNilSnapshot

		return
	}

	d, err := yaml.Marshal(snapshot)
	if err != nil {
		return
	}

	err = impl.redisCli.Set(ctx, impl.snapshotKey(key), d, impl.cfg.TTL).Err()
	if err != nil {
		impl.logger.WithFields(l.ErrorField(err), l.StringField("key", key)).Error("set snapshot failed")
	}

	return
}

func (impl *redisStorageImpl) Load(ctx context.Context, key string) (snapshot *storage.Snapshot, err error) {
	if key == "" {
		err = storage.ErrInvalidKey

		return
	}

	d, err := impl.redisCli.Get(ctx, impl.snapshotKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			err = storage.ErrNotFound
		}

		return
	}

	snapshot = &storage.Snapshot{}

	err = yaml.Unmarshal(d, snapshot)
	if err != nil {
		snapshot = nil
	}

	return
}

func (impl *redisStorageImpl) Delete(ctx context.Context, key string) error {
	if key == "" {
		return storage.ErrInvalidKey
	}

	return impl.redisCli.Del(ctx, impl.snapshotKey(key)).Err()
}
