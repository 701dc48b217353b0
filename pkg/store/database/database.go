package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/plugin/opentelemetry/tracing"
)

type entry struct {
	db   *gorm.DB
	kind Kind
}

var (
	mu  sync.RWMutex
	dbs = make(map[string]entry)
)

const defaultName = "default"

// Register 注册默认数据库
// 当只有一个数据库的时候推荐使用
func Register(kind Kind, dsn string, opts ...Option) error {
	return RegisterByName(defaultName, kind, dsn, opts...)
}

// RegisterByName 按名称注册数据库
// 适合同时需要操作多个数据库
func RegisterByName(name string, kind Kind, dsn string, opts ...Option) error {
	dialector, err := openDialector(kind, dsn)
	if err != nil {
		return err
	}
	db, err := gorm.Open(dialector, &gorm.Config{Logger: newLogger()})
	if err != nil {
		return err
	}
	for _, apply := range opts {
		if err := apply(db); err != nil {
			return err
		}
	}
	return RegisterDB(name, kind, db)
}

// RegisterDB 注册一个已经打开的连接
// oracle 等没有内置驱动的后端通过这种方式注册
func RegisterDB(name string, kind Kind, db *gorm.DB) error {
	mu.Lock()
	defer mu.Unlock()
	if _, ok := dbs[name]; ok {
		return fmt.Errorf("db %s alreay register", name)
	}
	// 启动opentelemetry
	if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		return err
	}
	dbs[name] = entry{db: db, kind: kind}
	return nil
}

func openDialector(kind Kind, dsn string) (gorm.Dialector, error) {
	switch kind {
	case KindMySQL:
		return mysql.Open(dsn), nil
	case KindPostgres:
		return postgres.Open(dsn), nil
	case KindSQLite:
		return sqlite.Open(dsn), nil
	}
	return nil, fmt.Errorf("db driver %q has no builtin dialector, use RegisterDB", kind)
}

// Get 获取数据库
func Get(ctx context.Context, name ...string) *gorm.DB {
	n := nameOf(name)
	db, _, ok := Lookup(n)
	if ok {
		return db.WithContext(ctx)
	}
	panic(fmt.Sprintf("db %s not registor", n))
}

// Lookup 查找已注册的数据库及其后端类型
func Lookup(name string) (*gorm.DB, Kind, bool) {
	mu.RLock()
	defer mu.RUnlock()
	e, ok := dbs[nameOf([]string{name})]
	return e.db, e.kind, ok
}

// Fetcher 返回已注册数据库的 ColumnFetcher
// 未注册的名称返回一个总是为空的实现
func Fetcher(name string, opts ...FetcherOption) ColumnFetcher {
	db, kind, ok := Lookup(name)
	if !ok {
		return unsupported{}
	}
	return NewColumnFetcher(db, kind, opts...)
}

// Unregister 移除并关闭数据库连接
func Unregister(name string) error {
	mu.Lock()
	e, ok := dbs[name]
	delete(dbs, name)
	mu.Unlock()
	if !ok {
		return nil
	}
	d, err := e.db.DB()
	if err != nil {
		return err
	}
	return d.Close()
}

func nameOf(name []string) string {
	if len(name) == 0 || name[0] == "" {
		return defaultName
	}
	return name[0]
}

// Option 数据库的一些配置
type Option func(*gorm.DB) error

func WithMaxOpenConns(n int) Option {
	return func(db *gorm.DB) error {
		d, err := db.DB()
		if err != nil {
			return err
		}
		d.SetMaxOpenConns(n)
		return nil
	}
}

func WithMaxIdleConns(n int) Option {
	return func(db *gorm.DB) error {
		d, err := db.DB()
		if err != nil {
			return err
		}
		d.SetMaxIdleConns(n)
		return nil
	}
}

func WithConnMaxIdleTime(n time.Duration) Option {
	return func(db *gorm.DB) error {
		d, err := db.DB()
		if err != nil {
			return err
		}
		d.SetConnMaxIdleTime(n)
		return nil
	}
}

func WithAutoMigrate(dst ...interface{}) Option {
	return func(d *gorm.DB) error {
		return d.AutoMigrate(dst...)
	}
}
