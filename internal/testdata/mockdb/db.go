package mockdb

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"
)

type DB struct {
	mock.Mock
}

func (m *DB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	callArgs := []any{ctx, sql}
	callArgs = append(callArgs, args...)
	res := m.Called(callArgs...)
	return res.Get(0).(pgconn.CommandTag), res.Error(1)
}

func (m *DB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	callArgs := []any{ctx, sql}
	callArgs = append(callArgs, args...)
	res := m.Called(callArgs...)
	if v := res.Get(0); v != nil {
		return v.(pgx.Rows), res.Error(1)
	}
	return nil, res.Error(1)
}

func (m *DB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	callArgs := []any{ctx, sql}
	callArgs = append(callArgs, args...)
	res := m.Called(callArgs...)
	return res.Get(0).(pgx.Row)
}

func (m *DB) Begin(ctx context.Context) (pgx.Tx, error) {
	res := m.Called(ctx)
	if v := res.Get(0); v != nil {
		return v.(pgx.Tx), res.Error(1)
	}
	return nil, res.Error(1)
}

func (m *DB) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults {
	res := m.Called(ctx, b)
	return res.Get(0).(pgx.BatchResults)
}
