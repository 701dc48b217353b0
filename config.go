package oasgen

import "github.com/parkingwang/oasgen/internal/config"

// SetConfig 加载配置文件 失败时panic
func SetConfig(path string) {
	p, err := config.LoadConfig(path)
	if err != nil {
		panic(err)
	}
	defaultConfig = p
}

var defaultConfig config.Provider

func Conf() config.Provider {
	if defaultConfig == nil {
		panic("default config nil")
	}
	return defaultConfig
}
