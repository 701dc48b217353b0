// Package oasgen 根据配置生成 OpenAPI 3.0 文档
// 模型的 schema 通过数据库的列信息自动生成
package oasgen

import "runtime/debug"

type AppInfo struct {
	// app name
	Name string
	// 描述
	Description string
	// 版本号
	Version string
}

func getVCSVersion() string {
	info, ok := debug.ReadBuildInfo()
	if ok {
		for _, v := range info.Settings {
			if v.Key == "vcs.revision" {
				return v.Value
			}
		}
	}
	return ""
}
