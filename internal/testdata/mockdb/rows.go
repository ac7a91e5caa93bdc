package mockdb

import (
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Row is a canned pgx.Row that copies fixed values into scan targets.
type Row struct {
	Values []any
	Err    error
}

var _ pgx.Row = Row{}

func (r Row) Scan(dest ...any) error {
	if r.Err != nil {
		return r.Err
	}
	for i, d := range dest {
		if i < len(r.Values) {
			scanInto(d, r.Values[i])
		}
	}
	return nil
}

// Rows is a canned pgx.Rows over a fixed result set.
type Rows struct {
	Data    [][]any
	RowsErr error
	idx     int
}

var _ pgx.Rows = &Rows{}

func (r *Rows) Next() bool {
	if r.idx >= len(r.Data) {
		return false
	}
	r.idx++
	return true
}

func (r *Rows) Scan(dest ...any) error {
	row := r.Data[r.idx-1]
	for i, d := range dest {
		if i < len(row) {
			scanInto(d, row[i])
		}
	}
	return nil
}

func (r *Rows) Close()                                       {}
func (r *Rows) Err() error                                   { return r.RowsErr }
func (r *Rows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *Rows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *Rows) Values() ([]any, error)                       { return nil, nil }
func (r *Rows) RawValues() [][]byte                          { return nil }
func (r *Rows) Conn() *pgx.Conn                              { return nil }

// scanInto assigns val to the pointer dest, allocating a pointer cell when
// dest is a pointer-to-pointer scan target (nullable column).
func scanInto(dest, val any) {
	dv := reflect.ValueOf(dest).Elem()
	if val == nil {
		dv.Set(reflect.Zero(dv.Type()))
		return
	}
	v := reflect.ValueOf(val)
	switch {
	case v.Type().AssignableTo(dv.Type()):
		dv.Set(v)
	case dv.Kind() == reflect.Ptr && v.Type().AssignableTo(dv.Type().Elem()):
		p := reflect.New(dv.Type().Elem())
		p.Elem().Set(v)
		dv.Set(p)
	case v.Type().ConvertibleTo(dv.Type()):
		dv.Set(v.Convert(dv.Type()))
	}
}
