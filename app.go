package oasgen

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/parkingwang/oasgen/pkg/http/web"
	"github.com/parkingwang/oasgen/pkg/oas"
	"github.com/parkingwang/oasgen/pkg/store/database"
	"go.opentelemetry.io/contrib/propagators/b3"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

type Application struct {
	fxProvides    []any
	fxInvokeFuncs []any
	info          AppInfo
	tp            *sdktrace.TracerProvider
}

func New(info AppInfo) *Application {
	cfg := Conf()
	slog.SetDefault(slog.New(NewTraceSlogHandler(
		os.Stderr,
		cfg.GetBool("app.log.addSource"),
		func() slog.Leveler {
			if cfg.GetBool("app.log.debug") {
				return slog.LevelDebug
			}
			return slog.LevelInfo
		}(),
	)))

	if info.Version == "" {
		info.Version = getVCSVersion()
	}

	slog.Info("init app",
		slog.String("name", info.Name),
		slog.String("version", info.Version),
		slog.String("traceExportType", cfg.GetString("app.traceExport.type")),
	)

	// enable trace
	tp, err := NewTraceProvider(context.Background(), info, traceConfig())
	if err != nil {
		slog.Error("init tracer povider failed", slog.Any("err", err))
		os.Exit(1)
	}
	otel.SetTextMapPropagator(b3.New())
	otel.SetTracerProvider(tp)

	// 自动加载pkg/store
	if err := initPkgStore(); err != nil {
		slog.Error("init pkg/store failed", slog.Any("err", err))
		os.Exit(1)
	}

	return &Application{info: info, tp: tp}
}

// Provide 依赖注入构造器
func (app *Application) Provide(provide ...any) {
	app.fxProvides = append(app.fxProvides, provide...)
}

// Invoke 注册调用
func (app *Application) Invoke(funcs ...any) {
	app.fxInvokeFuncs = append(app.fxInvokeFuncs, funcs...)
}

// Shutdown 刷新并关闭trace 不经过fx运行时调用
func (app *Application) Shutdown(ctx context.Context) error {
	if app.tp == nil {
		return nil
	}
	return app.tp.Shutdown(ctx)
}

func (app *Application) traceLifecycle(lc fx.Lifecycle) {
	// 退出前刷新未导出的span
	lc.Append(fx.Hook{OnStop: app.Shutdown})
}

func fxLifecycle(srvs []Servicer, lc fx.Lifecycle) {
	for _, v := range srvs {
		lc.Append(fx.Hook{
			OnStart: v.Start,
			OnStop:  v.Stop,
		})
	}
}

// Options 返回fx配置 Run 使用它启动
func (app *Application) Options(srv ...any) fx.Option {
	provides := append([]any{}, app.fxProvides...)
	for _, v := range srv {
		provides = append(provides, asServicer(v))
	}
	return fx.Options(
		fx.WithLogger(func() fxevent.Logger {
			return &fxInjectLogger{
				baselog: slog.With(slog.String("type", "oasgen")),
			}
		}),
		fx.Provide(provides...),
		fx.Invoke(app.traceLifecycle),
		fx.Invoke(app.fxInvokeFuncs...),
		fx.Invoke(
			fx.Annotate(
				fxLifecycle,
				fx.ParamTags(`group:"services"`),
			),
		),
	)
}

func (app *Application) Run(srv ...any) {
	fx.New(app.Options(srv...)).Run()
}

func asServicer(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(Servicer)),
		fx.ResultTags(`group:"services"`),
	)
}

type fxInjectLogger struct {
	baselog *slog.Logger
}

func (m *fxInjectLogger) LogEvent(event fxevent.Event) {
	switch e := event.(type) {
	case *fxevent.Provided:
		if e.Err != nil {
			m.baselog.Error("provided error encountered while applying options", slog.Any("err", e.Err))
		}
	case *fxevent.Invoked:
		if e.Err != nil {
			m.baselog.Error("invoked failed", slog.Any("err", e.Err), slog.String("function", e.FunctionName))
		}
	case *fxevent.Stopping:
		m.baselog.Info("received signal", slog.String("signal", strings.ToUpper(e.Signal.String())))
	case *fxevent.Stopped:
		if e.Err != nil {
			m.baselog.Error("stop failed", slog.Any("err", e.Err))
		}
	case *fxevent.Started:
		if e.Err != nil {
			m.baselog.Error("start failed", slog.Any("err", e.Err))
		} else {
			m.baselog.Info("started")
		}
	}
}

// Servicer 服务接口
type Servicer interface {
	Start(context.Context) error
	Stop(context.Context) error
}

// CreateWebServer 创建web服务 oas.route.enabled 为false时不注册文档路由
func (app *Application) CreateWebServer(asm *oas.Assembler) *web.Server {
	cfg := Conf()
	opts := []web.Option{
		web.WithAddr(cfg.GetString("server.web.addr")),
		web.WithDumpRequest(cfg.GetBool("server.web.dumpRequest")),
		web.WithPprof(cfg.GetBool("server.web.pprof")),
		web.WithMetrics(cfg.GetBool("server.web.metrics")),
	}
	if asm != nil && (!cfg.IsSet("oas.route.enabled") || cfg.GetBool("oas.route.enabled")) {
		opts = append(opts, web.WithDocs(asm,
			cfg.GetString("oas.route.prefix"),
			cfg.GetString("oas.route.path"),
		))
	}
	return web.New(opts...)
}

func initPkgStore() error {
	storecfg := Conf().Child("store")
	if storecfg == nil || !storecfg.IsSet("database") {
		return nil
	}
	cfg := make(map[string]database.Config)
	if err := storecfg.Decode("database", &cfg); err != nil {
		return err
	}
	return database.RegisterFromConfig(cfg)
}

func traceConfig() TraceConfig {
	var tc TraceConfig
	cfg := Conf()
	if !cfg.IsSet("app.traceExport") {
		return tc
	}
	if err := cfg.Decode("app.traceExport", &tc); err != nil {
		slog.Warn("decode app.traceExport failed", slog.Any("err", err))
	}
	return tc
}
