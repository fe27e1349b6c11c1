package repository

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gomodule/redigo/redis"
	errorvalues "github.com/limbo/fitlog/internal/error_values"
	"github.com/limbo/fitlog/pkg/cleanup"
)

const defaultRedisPrefix = "fitlog"

// RedisKV keeps blobs as plain redis strings under "<prefix>:<key>"
type RedisKV struct {
	pool   RedisPool
	prefix string
}

func NewRedisKV(cfg *RedisCfg) *RedisKV {
	pool := &redis.Pool{
		MaxIdle:     3,
		IdleTimeout: 240 * time.Second,
		Dial: func() (redis.Conn, error) {
			opts := []redis.DialOption{}
			if cfg.Password != "" {
				opts = append(opts, redis.DialPassword(cfg.Password))
			}
			return redis.Dial("tcp", cfg.Address, opts...)
		},
	}
	conn := pool.Get()
	_, err := conn.Do("PING")
	conn.Close()
	if err != nil {
		log.Fatal("error while pinging redis for redis kv: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing redis pool",
		F:    pool.Close,
	})
	return NewRedisKVWithPool(pool, cfg.Prefix)
}

func NewRedisKVWithPool(pool RedisPool, prefix string) *RedisKV {
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	return &RedisKV{
		pool:   pool,
		prefix: prefix,
	}
}

func (kv *RedisKV) prefixedKey(key string) string {
	return fmt.Sprintf("%s:%s", kv.prefix, key)
}

func (kv *RedisKV) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	conn := kv.pool.Get()
	defer conn.Close()
	value, err := redis.String(conn.Do("GET", kv.prefixedKey(key)))
	if err != nil {
		if errors.Is(err, redis.ErrNil) {
			return "", errorvalues.ErrKeyNotFound
		}
		return "", errors.New("getting value by key error: " + err.Error())
	}
	return value, nil
}

func (kv *RedisKV) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	conn := kv.pool.Get()
	defer conn.Close()
	res, err := redis.String(conn.Do("SET", kv.prefixedKey(key), value))
	if err != nil {
		return errors.New("setting value error: " + err.Error())
	}
	if res != "OK" {
		return fmt.Errorf("failed to set key: %v", res)
	}
	return nil
}
