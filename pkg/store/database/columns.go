package database

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/sony/gobreaker/v2"
	"gorm.io/gorm"
)

// Kind 数据库后端类型
type Kind string

const (
	KindUnsupported Kind = ""
	KindMySQL       Kind = "mysql"
	KindPostgres    Kind = "pgsql"
	KindSQLite      Kind = "sqlite"
	KindOracle      Kind = "oracle"
)

// ParseKind 解析驱动名称 未知的驱动返回 KindUnsupported
func ParseKind(s string) Kind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mysql":
		return KindMySQL
	case "pgsql", "postgres", "postgresql":
		return KindPostgres
	case "sqlite", "sqlite3":
		return KindSQLite
	case "oracle", "oci", "oci8":
		return KindOracle
	}
	return KindUnsupported
}

// Column 数据表的一列
type Column struct {
	Name     string
	Default  *string
	Nullable bool
	DataType string
}

// ColumnFetcher 读取数据表的列信息
// 任何查询错误都会被忽略并返回空列表
type ColumnFetcher interface {
	FetchColumns(ctx context.Context, table string) []Column
}

type dialect struct {
	kind Kind
	// 查询结果中的列名
	name     string
	dflt     string
	nullable string
	dataType string
	query    func(table, schema string) (string, []any)
	// nullable 列的解码规则
	isNullable func(v string) bool
}

var dialects = map[Kind]*dialect{
	KindMySQL: {
		kind:     KindMySQL,
		name:     "COLUMN_NAME",
		dflt:     "COLUMN_DEFAULT",
		nullable: "IS_NULLABLE",
		dataType: "DATA_TYPE",
		query: func(table, schema string) (string, []any) {
			q := "SELECT COLUMN_NAME AS COLUMN_NAME, COLUMN_DEFAULT AS COLUMN_DEFAULT, " +
				"IS_NULLABLE AS IS_NULLABLE, DATA_TYPE AS DATA_TYPE " +
				"FROM information_schema.COLUMNS "
			if schema == "" {
				return q + "WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ? ORDER BY ORDINAL_POSITION",
					[]any{table}
			}
			return q + "WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ? ORDER BY ORDINAL_POSITION",
				[]any{schema, table}
		},
		isNullable: func(v string) bool { return v == "YES" },
	},
	KindPostgres: {
		kind:     KindPostgres,
		name:     "column_name",
		dflt:     "column_default",
		nullable: "is_nullable",
		dataType: "data_type",
		query: func(table, schema string) (string, []any) {
			q := "SELECT column_name, column_default, is_nullable, data_type " +
				"FROM information_schema.columns WHERE table_name = ?"
			if schema == "" {
				return q + " ORDER BY ordinal_position", []any{table}
			}
			return q + " AND table_schema = ? ORDER BY ordinal_position", []any{table, schema}
		},
		isNullable: func(v string) bool { return v == "YES" },
	},
	KindSQLite: {
		kind:     KindSQLite,
		name:     "name",
		dflt:     "dflt_value",
		nullable: "notnull",
		dataType: "type",
		query: func(table, _ string) (string, []any) {
			return "SELECT * FROM pragma_table_info(?) ORDER BY cid", []any{table}
		},
		// notnull 为 1 表示不可为空
		isNullable: func(v string) bool {
			n, _ := strconv.Atoi(strings.TrimSpace(v))
			return n != 1
		},
	},
	KindOracle: {
		kind:     KindOracle,
		name:     "COLUMN_NAME",
		dflt:     "DATA_DEFAULT",
		nullable: "NULLABLE",
		dataType: "DATA_TYPE",
		query: func(table, schema string) (string, []any) {
			q := "SELECT COLUMN_NAME, DATA_DEFAULT, NULLABLE, DATA_TYPE FROM ALL_TAB_COLUMNS WHERE TABLE_NAME = ?"
			if schema == "" {
				return q + " ORDER BY COLUMN_ID", []any{table}
			}
			return q + " AND OWNER = ? ORDER BY COLUMN_ID", []any{table, schema}
		},
		isNullable: func(v string) bool { return v == "Y" },
	},
}

// decode 将一行查询结果转为 Column
func (d *dialect) decode(row map[string]any) Column {
	var col Column
	col.Name, _ = asString(lookup(row, d.name))
	col.DataType, _ = asString(lookup(row, d.dataType))
	if v, ok := asString(lookup(row, d.dflt)); ok {
		col.Default = &v
	}
	if v, ok := asString(lookup(row, d.nullable)); ok {
		col.Nullable = d.isNullable(v)
	}
	return col
}

func lookup(row map[string]any, key string) any {
	if v, ok := row[key]; ok {
		return v
	}
	for k, v := range row {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return nil
}

func asString(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		return x, true
	case []byte:
		return string(x), true
	case bool:
		if x {
			return "1", true
		}
		return "0", true
	default:
		return fmt.Sprint(x), true
	}
}

type fetcherOption struct {
	schema  string
	breaker *gobreaker.Settings
	log     *slog.Logger
}

// FetcherOption ColumnFetcher 的配置
type FetcherOption func(*fetcherOption)

// WithSchema 限定查询的 schema/database/owner
func WithSchema(schema string) FetcherOption {
	return func(o *fetcherOption) {
		o.schema = schema
	}
}

// WithBreaker 使用熔断器保护元数据查询 熔断期间返回空列表
func WithBreaker(st gobreaker.Settings) FetcherOption {
	return func(o *fetcherOption) {
		o.breaker = &st
	}
}

func WithLogger(l *slog.Logger) FetcherOption {
	return func(o *fetcherOption) {
		o.log = l
	}
}

// NewColumnFetcher 按后端类型创建 ColumnFetcher
// 不支持的类型总是返回空列表
func NewColumnFetcher(db *gorm.DB, kind Kind, opts ...FetcherOption) ColumnFetcher {
	opt := &fetcherOption{log: slog.Default()}
	for _, o := range opts {
		o(opt)
	}
	d, ok := dialects[kind]
	if !ok || db == nil {
		return unsupported{}
	}
	f := &dialectFetcher{
		db:      db,
		dialect: d,
		schema:  opt.schema,
		log:     opt.log.With(slog.String("dialect", string(kind))),
	}
	if opt.breaker != nil {
		st := *opt.breaker
		if st.Name == "" {
			st.Name = "columns." + string(kind)
		}
		f.breaker = gobreaker.NewCircuitBreaker[[]Column](st)
	}
	return f
}

type unsupported struct{}

func (unsupported) FetchColumns(context.Context, string) []Column {
	return []Column{}
}

type dialectFetcher struct {
	db      *gorm.DB
	dialect *dialect
	schema  string
	breaker *gobreaker.CircuitBreaker[[]Column]
	log     *slog.Logger
}

func (f *dialectFetcher) FetchColumns(ctx context.Context, table string) []Column {
	var (
		cols []Column
		err  error
	)
	if f.breaker != nil {
		cols, err = f.breaker.Execute(func() ([]Column, error) {
			return f.query(ctx, table)
		})
	} else {
		cols, err = f.query(ctx, table)
	}
	if err != nil {
		f.log.WarnContext(ctx, "fetch columns failed",
			slog.String("table", table),
			slog.String("err", err.Error()),
		)
		return []Column{}
	}
	return cols
}

func (f *dialectFetcher) query(ctx context.Context, table string) ([]Column, error) {
	sql, args := f.dialect.query(table, f.schema)
	rows, err := f.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	cols := make([]Column, 0)
	for rows.Next() {
		values := make([]any, len(names))
		ptrs := make([]any, len(names))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(map[string]any, len(names))
		for i, n := range names {
			row[n] = values[i]
		}
		cols = append(cols, f.dialect.decode(row))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return cols, nil
}
