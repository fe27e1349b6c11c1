package repository

import (
	"fmt"

	errorvalues "github.com/limbo/fitlog/internal/error_values"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

type StoreOptions struct {
	Driver   string
	Postgres DBConfig
	Redis    *RedisCfg
}

// NewStore builds the key-value store picked by opts.Driver
func NewStore(opts *StoreOptions) (KeyValueStore, error) {
	switch opts.Driver {
	case DriverMemory, "":
		return NewMemoryKV(), nil
	case DriverPostgres:
		if opts.Postgres == nil {
			return nil, fmt.Errorf("%s driver requires postgres config", DriverPostgres)
		}
		return NewPostgresKV(opts.Postgres), nil
	case DriverRedis:
		if opts.Redis == nil {
			return nil, fmt.Errorf("%s driver requires redis config", DriverRedis)
		}
		return NewRedisKV(opts.Redis), nil
	default:
		return nil, fmt.Errorf("%w: %q", errorvalues.ErrUnknownStorageDriver, opts.Driver)
	}
}

var (
	_ KeyValueStore = (*MemoryKV)(nil)
	_ KeyValueStore = (*PostgresKV)(nil)
	_ KeyValueStore = (*RedisKV)(nil)
)
