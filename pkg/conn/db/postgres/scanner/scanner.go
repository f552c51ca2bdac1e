package scanner

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
)

type Queryer interface {
	Query(context.Context, string, ...any) (pgx.Rows, error)
}

// ErrTooManyRows is returned by QueryOne when the query responds more than one row.
var ErrTooManyRows = errors.New("too many rows")

// QueryOne queries a row and scans it into T.
//
// When the query responds no rows, it returns pgx.ErrNoRows.
func QueryOne[T any](ctx context.Context, conn Queryer, q string, params ...any) (T, error) {
	found, err := New[T]().QueryAll(ctx, conn, q, params...)
	if err != nil {
		return *new(T), err
	}
	switch len(found) {
	case 0:
		return *new(T), pgx.ErrNoRows
	case 1:
		return found[0], nil
	default:
		return *new(T), fmt.Errorf("%w: %d rows for %T", ErrTooManyRows, len(found), *new(T))
	}
}

// type-safe scanner for pgx.Rows
//
// # example
//
//	type Ingredient struct {
//		Id   int64
//		Name string
//	}
//
//	func All(ctx context.Context, conn scanner.Queryer) ([]Ingredient, error) {
//		return scanner.New[Ingredient]().QueryAll(
//			ctx, conn, `select "ingredient_id" as "id", "name" from "ingredient"`,
//		)
//	}
//
// # mapping rule
//
// columns are mapped into
//
//  1. field with tag `sql:"column_name"`
//  2. or, field named as same as the column name
//  3. or, field which has a name in CamelCase version of column name ("created_at" -> "CreatedAt").
//
// When T is a primitive type, time.Time or []byte, the query should have exactly one column.
type Scanner[T any] interface {
	// scan all rows in pgx.Rows and convert to []T
	ScanAll(pgx.Rows) ([]T, error)

	// scan all rows in response of query.
	QueryAll(context.Context, Queryer, string, ...any) ([]T, error)
}

type scanner[T any] struct {
	mapByTag       map[string]reflect.StructField
	mapByFieldName map[string]reflect.StructField
	mux            sync.Mutex
}

func New[T any]() Scanner[T] {
	tval := reflect.TypeOf(*new(T))

	if tval.AssignableTo(reflect.TypeOf(time.Time{})) || tval.AssignableTo(reflect.TypeOf([]byte{})) {
		return &singleColumnScanner[T]{}
	}

	switch tval.Kind() {
	case
		reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.String:
		return &singleColumnScanner[T]{}
	}

	mapByTag := map[string]reflect.StructField{}
	mapByFieldName := map[string]reflect.StructField{}
	for i := 0; i < tval.NumField(); i++ {
		f := tval.Field(i)
		mapByFieldName[f.Name] = f
		if tag, ok := f.Tag.Lookup("sql"); ok {
			mapByTag[tag] = f
		}
	}

	return &scanner[T]{mapByTag: mapByTag, mapByFieldName: mapByFieldName}
}

func camel(s string) string {
	b := &strings.Builder{}
	for _, ss := range strings.Split(s, "_") {
		if len(ss) == 0 {
			b.WriteString("_")
			continue
		}
		b.WriteString(strings.ToUpper(ss[0:1]))
		b.WriteString(ss[1:])
	}
	return b.String()
}

func (s *scanner[T]) ScanAll(rows pgx.Rows) ([]T, error) {
	s.mux.Lock()
	defer s.mux.Unlock()

	sqlColumns := rows.FieldDescriptions()
	fields := make([]reflect.StructField, 0, len(sqlColumns))
	for _, fd := range sqlColumns {
		col := string(fd.Name)

		var field reflect.StructField
		if f, ok := s.mapByTag[col]; ok {
			field = f
		} else if f, ok := s.mapByFieldName[col]; ok {
			field = f
		} else if f, ok := s.mapByFieldName[camel(col)]; ok {
			field = f
		} else {
			return nil, fmt.Errorf(
				`field for column "%s" is not found in type "%T"`,
				col, *new(T),
			)
		}
		fields = append(fields, field)
	}

	ret := []T{}
	for rows.Next() {
		elem := new(T)
		re := reflect.ValueOf(elem).Elem()

		dest := make([]any, len(fields))
		for nth, f := range fields {
			dest[nth] = re.FieldByIndex(f.Index).Addr().Interface()
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		ret = append(ret, *elem)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ret, nil
}

func (s *scanner[T]) QueryAll(ctx context.Context, conn Queryer, q string, params ...any) ([]T, error) {
	rows, err := conn.Query(ctx, q, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return s.ScanAll(rows)
}

type singleColumnScanner[T any] struct{}

func (s *singleColumnScanner[T]) ScanAll(rows pgx.Rows) ([]T, error) {
	sqlColumns := rows.FieldDescriptions()
	if len(sqlColumns) != 1 {
		return nil, fmt.Errorf(`too much columns for %T`, *new(T))
	}

	ret := []T{}
	for rows.Next() {
		elem := new(T)
		field := reflect.ValueOf(elem).Elem()

		sqlValues, err := rows.Values()
		if err != nil {
			return nil, err
		}

		sqlv := reflect.ValueOf(sqlValues[0])
		if !sqlv.IsValid() || !sqlv.CanConvert(field.Type()) {
			return nil, fmt.Errorf(
				`column "%s" (type: %s in sql, %T in golang) can not be converted to "%T"`,
				sqlColumns[0].Name, pgOID2String(sqlColumns[0].DataTypeOID), sqlValues[0], *elem,
			)
		}
		field.Set(sqlv.Convert(field.Type()))
		ret = append(ret, *elem)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ret, nil
}

func (s *singleColumnScanner[T]) QueryAll(ctx context.Context, conn Queryer, q string, params ...any) ([]T, error) {
	rows, err := conn.Query(ctx, q, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return s.ScanAll(rows)
}

// name of column types used in this application, for error messages.
func pgOID2String(oid uint32) string {
	switch oid {
	case pgtype.BoolOID:
		return "bool"
	case pgtype.Int2OID:
		return "int2"
	case pgtype.Int4OID:
		return "int4"
	case pgtype.Int8OID:
		return "int8"
	case pgtype.Float4OID:
		return "float4"
	case pgtype.Float8OID:
		return "float8"
	case pgtype.NumericOID:
		return "numeric"
	case pgtype.TextOID:
		return "text"
	case pgtype.VarcharOID:
		return "varchar"
	case pgtype.DateOID:
		return "date"
	case pgtype.TimestampOID:
		return "timestamp"
	case pgtype.TimestamptzOID:
		return "timestamptz"
	case pgtype.ByteaOID:
		return "bytea"
	case pgtype.JSONBOID:
		return "jsonb"
	}
	return fmt.Sprintf("undefined oid(%d)", oid)
}
