package web

import (
	"context"
	"path"

	"github.com/parkingwang/oasgen/pkg/oas"
)

// DocumentBuilder 每次请求时生成文档
type DocumentBuilder interface {
	Build(ctx context.Context) (*oas.Document, error)
}

type option struct {
	render      Renderer
	dumpRequest bool
	pprof       bool
	metrics     bool
	addr        string
	docPath     string
	docs        DocumentBuilder
}

func defaultOption() *option {
	return &option{
		addr:    ":8080",
		render:  DefaultRender,
		docPath: "/docs",
	}
}

type Option func(*option)

// WithResponseRender 自定义响应输出
func WithResponseRender(r Renderer) Option {
	return func(opt *option) {
		opt.render = r
	}
}

// WithDumpRequest 访问日志中输出请求头
func WithDumpRequest(o bool) Option {
	return func(opt *option) {
		opt.dumpRequest = o
	}
}

func WithAddr(addr string) Option {
	return func(o *option) {
		if addr != "" {
			o.addr = addr
		}
	}
}

// WithPprof 注册 /debug/pprof 路由
func WithPprof(enabled bool) Option {
	return func(o *option) {
		o.pprof = enabled
	}
}

// WithMetrics 注册 /metrics 路由 输出文档生成的统计
func WithMetrics(enabled bool) Option {
	return func(o *option) {
		o.metrics = enabled
	}
}

// WithDocs 注册文档路由 地址为 /<prefix>/<name>
func WithDocs(b DocumentBuilder, prefix, name string) Option {
	return func(o *option) {
		o.docs = b
		if name == "" {
			name = "docs"
		}
		o.docPath = path.Join("/", prefix, name)
	}
}
