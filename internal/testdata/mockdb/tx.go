package mockdb

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"
)

type Tx struct {
	mock.Mock
}

var _ pgx.Tx = &Tx{}

func (m *Tx) Begin(ctx context.Context) (pgx.Tx, error) {
	res := m.Called(ctx)
	if v := res.Get(0); v != nil {
		return v.(pgx.Tx), res.Error(1)
	}
	return nil, res.Error(1)
}

func (m *Tx) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *Tx) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *Tx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	res := m.Called(ctx, tableName, columnNames, rowSrc)
	return res.Get(0).(int64), res.Error(1)
}

func (m *Tx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults {
	res := m.Called(ctx, b)
	return res.Get(0).(pgx.BatchResults)
}

func (m *Tx) LargeObjects() pgx.LargeObjects {
	m.Called()
	return pgx.LargeObjects{}
}

func (m *Tx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	res := m.Called(ctx, name, sql)
	if v := res.Get(0); v != nil {
		return v.(*pgconn.StatementDescription), res.Error(1)
	}
	return nil, res.Error(1)
}

func (m *Tx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	callArgs := []any{ctx, sql}
	callArgs = append(callArgs, args...)
	res := m.Called(callArgs...)
	return res.Get(0).(pgconn.CommandTag), res.Error(1)
}

func (m *Tx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	callArgs := []any{ctx, sql}
	callArgs = append(callArgs, args...)
	res := m.Called(callArgs...)
	if v := res.Get(0); v != nil {
		return v.(pgx.Rows), res.Error(1)
	}
	return nil, res.Error(1)
}

func (m *Tx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	callArgs := []any{ctx, sql}
	callArgs = append(callArgs, args...)
	return m.Called(callArgs...).Get(0).(pgx.Row)
}

func (m *Tx) Conn() *pgx.Conn {
	m.Called()
	return nil
}

type BatchResults struct {
	mock.Mock
}

var _ pgx.BatchResults = &BatchResults{}

func (m *BatchResults) Exec() (pgconn.CommandTag, error) {
	res := m.Called()
	return res.Get(0).(pgconn.CommandTag), res.Error(1)
}

func (m *BatchResults) Query() (pgx.Rows, error) {
	res := m.Called()
	if v := res.Get(0); v != nil {
		return v.(pgx.Rows), res.Error(1)
	}
	return nil, res.Error(1)
}

func (m *BatchResults) QueryRow() pgx.Row {
	return m.Called().Get(0).(pgx.Row)
}

func (m *BatchResults) Close() error {
	return m.Called().Error(0)
}
