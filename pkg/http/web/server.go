package web

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/parkingwang/oasgen/pkg/http/code"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const serviceName = "oasgen"

type Server struct {
	opt     *option
	e       *gin.Engine
	httpsrv *http.Server
}

func New(opts ...Option) *Server {
	opt := defaultOption()
	for _, o := range opts {
		o(opt)
	}
	gin.SetMode(gin.ReleaseMode)
	e := gin.New()
	e.ContextWithFallback = true
	e.NoRoute(func(ctx *gin.Context) {
		warpRender(opt, ctx, nil, code.NewNotfoundError("route not found"))
	})
	e.Use(
		accessLog(opt),
		gin.CustomRecovery(func(c *gin.Context, err any) {
			slog.ErrorContext(c, "gin.panic", slog.Any("err", err))
			c.Abort()
			warpRender(opt, c, nil,
				code.NewCodeError(
					http.StatusInternalServerError,
					"%s", http.StatusText(http.StatusInternalServerError),
				),
			)
		}),
	)
	if opt.pprof {
		pprof.Register(e)
	}
	var m *metrics
	if opt.metrics {
		m = newMetrics()
		e.GET("/metrics", m.handler())
	}
	if opt.docs != nil {
		e.GET(opt.docPath, docsHandler(opt, m))
	}

	return &Server{
		opt: opt,
		e:   e,
		httpsrv: &http.Server{
			Handler: otelhttp.NewHandler(e, serviceName,
				otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
					return r.Method + " " + r.URL.Path
				}),
			),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func docsHandler(opt *option, m *metrics) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		doc, err := opt.docs.Build(ctx)
		m.observe(start, err)
		if err != nil {
			warpRender(opt, ctx, nil, err)
			return
		}
		warpRender(opt, ctx, doc, nil)
	}
}

// Handler 返回带trace的http.Handler
func (s *Server) Handler() http.Handler {
	return s.httpsrv.Handler
}

// DocPath 文档路由地址
func (s *Server) DocPath() string {
	return s.opt.docPath
}

func (s *Server) Start(ctx context.Context) error {
	l, err := net.Listen("tcp", s.opt.addr)
	if err != nil {
		return err
	}
	slog.InfoContext(ctx, "Starting HTTP server",
		slog.String("addr", s.opt.addr),
		slog.String("docs", s.opt.docPath),
	)
	go s.httpsrv.Serve(l)
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	slog.InfoContext(ctx, "Shutdown HTTP server", slog.String("addr", s.opt.addr))
	return s.httpsrv.Shutdown(ctx)
}

// GinEngine 返回原始的ginEngine
func (s *Server) GinEngine() *gin.Engine {
	return s.e
}

func accessLog(opt *option) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		status := c.Writer.Status()
		loglvl := slog.LevelInfo
		logattrs := []slog.Attr{
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.String("ip", c.ClientIP()),
			slog.Int("status", status),
			slog.Int("size", c.Writer.Size()),
			slog.Duration("latency", time.Since(start)),
		}
		if opt.dumpRequest {
			logattrs = append(logattrs, slog.Any("header", c.Request.Header))
		}
		if rerr := c.GetString("gin.response.err"); rerr != "" {
			if status >= http.StatusInternalServerError {
				loglvl = slog.LevelError
			} else {
				loglvl = slog.LevelWarn
			}
			logattrs = append(logattrs, slog.String("response.error", rerr))
		}

		slog.LogAttrs(c, loglvl, "gin.access", logattrs...)
	}
}
