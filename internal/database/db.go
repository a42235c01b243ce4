package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgconn"
)

// DB 為憑證寫入與健康檢查所需的最小介面，*pgxpool.Pool 直接實作
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Ping(context.Context) error
	Close()
}

type FakeDB struct {
	ExecFn  func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	PingFn  func(ctx context.Context) error
	CloseFn func()
}

func (f *FakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if f.ExecFn != nil {
		return f.ExecFn(ctx, sql, args...)
	}
	panic("unexpected Exec")
}

func (f *FakeDB) Ping(ctx context.Context) error {
	if f.PingFn != nil {
		return f.PingFn(ctx)
	}
	panic("unexpected Ping")
}

func (f *FakeDB) Close() {
	if f.CloseFn != nil {
		f.CloseFn()
	}
}
