package database

import (
	"time"
)

type Config struct {
	Driver          string
	Url             string
	Schema          string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxIdleTime time.Duration
}

func RegisterFromConfig(cfgs map[string]Config) error {
	for name, opt := range cfgs {
		var opts []Option
		if opt.MaxOpenConns > 0 {
			opts = append(opts, WithMaxOpenConns(opt.MaxOpenConns))
		}
		if opt.MaxIdleConns > 0 {
			opts = append(opts, WithMaxIdleConns(opt.MaxIdleConns))
		}
		if opt.ConnMaxIdleTime > 0 {
			opts = append(opts, WithConnMaxIdleTime(opt.ConnMaxIdleTime))
		}
		if err := RegisterByName(name, ParseKind(opt.Driver), opt.Url, opts...); err != nil {
			return err
		}
	}
	return nil
}
