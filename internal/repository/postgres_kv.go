package repository

import (
	"context"
	"errors"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/limbo/fitlog/internal/error_values"
	"github.com/limbo/fitlog/pkg/cleanup"
)

// PostgresKV keeps blobs in the kv_store table (see migrations/)
type PostgresKV struct {
	conn PgConnection
}

func NewPostgresKV(cfg DBConfig) *PostgresKV {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for postgres kv error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for postgres kv: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &PostgresKV{
		conn: pool,
	}
}

func NewPostgresKVWithConn(conn PgConnection) *PostgresKV {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for postgres kv: " + err.Error())
	}
	return &PostgresKV{
		conn: conn,
	}
}

func (kv *PostgresKV) Get(ctx context.Context, key string) (string, error) {
	var value string
	row := kv.conn.QueryRow(ctx, `SELECT value FROM kv_store WHERE key = $1;`, key)
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", errorvalues.ErrKeyNotFound
		}
		return "", errors.New("getting value by key error: " + err.Error())
	}
	return value, nil
}

func (kv *PostgresKV) Set(ctx context.Context, key, value string) error {
	ct, err := kv.conn.Exec(ctx, `INSERT INTO kv_store (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW();`, key, value)
	if err != nil {
		return errors.New("setting value error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errors.New("setting value error: no rows affected")
	}
	return nil
}
