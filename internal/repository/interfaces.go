package repository

import (
	"context"
	"fmt"

	"github.com/gomodule/redigo/redis"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type KeyValueStore interface {
	// Returns value stored under key or errorvalues.ErrKeyNotFound
	Get(ctx context.Context, key string) (string, error)
	// Stores value under key, replacing the previous one
	Set(ctx context.Context, key, value string) error
}

type DBConfig interface {
	ConnString() string
}

type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// RedisPool is satisfied by *redis.Pool
type RedisPool interface {
	Get() redis.Conn
}

type PGCfg struct {
	Address  string
	Username string
	Password string
	DB       string
}

func (pgcfg *PGCfg) ConnString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s/%s", pgcfg.Username, pgcfg.Password, pgcfg.Address, pgcfg.DB)
}

type RedisCfg struct {
	Address  string
	Password string
	Prefix   string
}
