package database

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/glebarez/sqlite"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func strptr(s string) *string { return &s }

func newMockMySQL(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      conn,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	return db, mock
}

func newMockPostgres(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	return db, mock
}

func TestParseKind(t *testing.T) {
	tests := map[string]Kind{
		"mysql":      KindMySQL,
		"MySQL":      KindMySQL,
		"pgsql":      KindPostgres,
		"postgres":   KindPostgres,
		"postgresql": KindPostgres,
		"sqlite":     KindSQLite,
		"sqlite3":    KindSQLite,
		"oracle":     KindOracle,
		"oci":        KindOracle,
		"oci8":       KindOracle,
		"sqlsrv":     KindUnsupported,
		"":           KindUnsupported,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseKind(in), in)
	}
}

func TestDialectNullable(t *testing.T) {
	tests := []struct {
		kind  Kind
		value any
		want  bool
	}{
		{KindSQLite, int64(1), false},
		{KindSQLite, int64(0), true},
		{KindSQLite, int64(2), true},
		{KindSQLite, "1", false},
		{KindSQLite, "abc", true},
		{KindMySQL, "YES", true},
		{KindMySQL, []byte("YES"), true},
		{KindMySQL, "NO", false},
		{KindMySQL, "yes", false},
		{KindPostgres, "YES", true},
		{KindPostgres, "NO", false},
		{KindOracle, "Y", true},
		{KindOracle, "N", false},
		{KindOracle, "YES", false},
	}
	for _, tt := range tests {
		d := dialects[tt.kind]
		col := d.decode(map[string]any{d.name: "c", d.nullable: tt.value})
		assert.Equal(t, tt.want, col.Nullable, "%s %v", tt.kind, tt.value)
	}
}

func TestDialectDecodeMissingNullable(t *testing.T) {
	for kind, d := range dialects {
		col := d.decode(map[string]any{d.name: "c", d.dataType: "int"})
		assert.False(t, col.Nullable, kind)
		assert.Nil(t, col.Default, kind)
		assert.Equal(t, "int", col.DataType, kind)
	}
}

func TestFetchColumnsSQLite(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.Exec(`CREATE TABLE users (
		id int NOT NULL,
		name varchar NULL DEFAULT 'x',
		avatar blob
	)`).Error)

	cols := NewColumnFetcher(db, KindSQLite).FetchColumns(context.Background(), "users")
	require.Len(t, cols, 3)
	// 驱动对 int blob 返回大写类型名
	assert.Equal(t, Column{Name: "id", DataType: "INT", Nullable: false}, cols[0])
	assert.Equal(t, Column{Name: "name", DataType: "varchar", Nullable: true, Default: strptr("'x'")}, cols[1])
	assert.Equal(t, Column{Name: "avatar", DataType: "BLOB", Nullable: true}, cols[2])

	assert.Empty(t, NewColumnFetcher(db, KindSQLite).FetchColumns(context.Background(), "missing"))
}

func TestFetchColumnsMySQL(t *testing.T) {
	db, mock := newMockMySQL(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM information_schema.COLUMNS WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ?")).
		WithArgs("app", "users").
		WillReturnRows(sqlmock.NewRows([]string{"COLUMN_NAME", "COLUMN_DEFAULT", "IS_NULLABLE", "DATA_TYPE"}).
			AddRow("id", nil, "NO", "int").
			AddRow("name", []byte("'x'"), "YES", "varchar"))

	cols := NewColumnFetcher(db, KindMySQL, WithSchema("app")).FetchColumns(context.Background(), "users")
	require.NoError(t, mock.ExpectationsWereMet())
	assert.Equal(t, []Column{
		{Name: "id", DataType: "int"},
		{Name: "name", DataType: "varchar", Nullable: true, Default: strptr("'x'")},
	}, cols)
}

func TestFetchColumnsMySQLCurrentDatabase(t *testing.T) {
	db, mock := newMockMySQL(t)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ?")).
		WithArgs("users").
		WillReturnRows(sqlmock.NewRows([]string{"COLUMN_NAME", "COLUMN_DEFAULT", "IS_NULLABLE", "DATA_TYPE"}))

	cols := NewColumnFetcher(db, KindMySQL).FetchColumns(context.Background(), "users")
	require.NoError(t, mock.ExpectationsWereMet())
	assert.NotNil(t, cols)
	assert.Empty(t, cols)
}

func TestFetchColumnsPostgres(t *testing.T) {
	db, mock := newMockPostgres(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM information_schema.columns WHERE table_name = $1 AND table_schema = $2")).
		WithArgs("users", "public").
		WillReturnRows(sqlmock.NewRows([]string{"column_name", "column_default", "is_nullable", "data_type"}).
			AddRow("id", "nextval('users_id_seq'::regclass)", "NO", "bigint").
			AddRow("active", "true", "YES", "boolean"))

	cols := NewColumnFetcher(db, KindPostgres, WithSchema("public")).FetchColumns(context.Background(), "users")
	require.NoError(t, mock.ExpectationsWereMet())
	assert.Equal(t, []Column{
		{Name: "id", DataType: "bigint", Default: strptr("nextval('users_id_seq'::regclass)")},
		{Name: "active", DataType: "boolean", Nullable: true, Default: strptr("true")},
	}, cols)
}

func TestFetchColumnsOracle(t *testing.T) {
	db, mock := newMockMySQL(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM ALL_TAB_COLUMNS WHERE TABLE_NAME = ? ORDER BY COLUMN_ID")).
		WithArgs("USERS").
		WillReturnRows(sqlmock.NewRows([]string{"COLUMN_NAME", "DATA_DEFAULT", "NULLABLE", "DATA_TYPE"}).
			AddRow("ID", nil, "N", "NUMBER").
			AddRow("PHOTO", nil, "Y", "BLOB"))

	cols := NewColumnFetcher(db, KindOracle).FetchColumns(context.Background(), "USERS")
	require.NoError(t, mock.ExpectationsWereMet())
	assert.Equal(t, []Column{
		{Name: "ID", DataType: "NUMBER"},
		{Name: "PHOTO", DataType: "BLOB", Nullable: true},
	}, cols)
}

func TestFetchColumnsQueryError(t *testing.T) {
	db, mock := newMockMySQL(t)
	mock.ExpectQuery("information_schema").WillReturnError(errors.New("connection refused"))

	cols := NewColumnFetcher(db, KindMySQL).FetchColumns(context.Background(), "users")
	require.NoError(t, mock.ExpectationsWereMet())
	assert.NotNil(t, cols)
	assert.Empty(t, cols)
}

func TestFetchColumnsUnsupported(t *testing.T) {
	db, mock := newMockMySQL(t)
	cols := NewColumnFetcher(db, KindUnsupported).FetchColumns(context.Background(), "users")
	assert.NotNil(t, cols)
	assert.Empty(t, cols)
	assert.NoError(t, mock.ExpectationsWereMet())

	assert.Empty(t, NewColumnFetcher(nil, KindMySQL).FetchColumns(context.Background(), "users"))
	assert.Empty(t, Fetcher("not-registered").FetchColumns(context.Background(), "users"))
}

func TestFetchColumnsBreaker(t *testing.T) {
	db, mock := newMockMySQL(t)
	f := NewColumnFetcher(db, KindMySQL, WithBreaker(gobreaker.Settings{
		ReadyToTrip: func(c gobreaker.Counts) bool { return c.ConsecutiveFailures >= 2 },
	}))

	mock.ExpectQuery("information_schema").WillReturnError(errors.New("timeout"))
	mock.ExpectQuery("information_schema").WillReturnError(errors.New("timeout"))
	assert.Empty(t, f.FetchColumns(context.Background(), "users"))
	assert.Empty(t, f.FetchColumns(context.Background(), "users"))
	require.NoError(t, mock.ExpectationsWereMet())

	// 熔断后不再查询数据库
	mock.ExpectQuery("information_schema").
		WillReturnRows(sqlmock.NewRows([]string{"COLUMN_NAME"}).AddRow("id"))
	assert.Empty(t, f.FetchColumns(context.Background(), "users"))
	assert.Error(t, mock.ExpectationsWereMet())
}

func TestRegistry(t *testing.T) {
	db, _ := newMockMySQL(t)
	require.NoError(t, RegisterDB("registry-test", KindOracle, db))
	t.Cleanup(func() { Unregister("registry-test") })

	assert.Error(t, RegisterDB("registry-test", KindOracle, db))

	got, kind, ok := Lookup("registry-test")
	assert.True(t, ok)
	assert.Equal(t, KindOracle, kind)
	assert.Same(t, db, got)

	_, _, ok = Lookup("nope")
	assert.False(t, ok)
	assert.Panics(t, func() { Get(context.Background(), "nope") })

	_, err := openDialector(KindOracle, "dsn")
	assert.Error(t, err)
}
