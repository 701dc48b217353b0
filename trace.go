package oasgen

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	tr "go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// TraceExporter 创建trace导出对象的方法类型
type TraceExporter func(ctx context.Context) (trace.SpanExporter, error)

// TraceConfig 对应 app.traceExport
type TraceConfig struct {
	Type        string            `mapstructure:"type"`
	Endpoint    string            `mapstructure:"endpoint"`
	UseHTTPS    bool              `mapstructure:"usehttps"`
	Pretty      bool              `mapstructure:"pretty"`
	Headers     map[string]string `mapstructure:"headers"`
	SampleRatio float64           `mapstructure:"sampleRatio"`
}

// Exporter 按 type 选择导出方式 未知类型不导出
func (c TraceConfig) Exporter() TraceExporter {
	switch c.Type {
	case "http":
		return ExportHTTP(c.Endpoint, c.UseHTTPS, c.Headers)
	case "grpc":
		return ExportGRPC(c.Endpoint, c.Headers)
	case "stdout":
		return ExportStdout(c.Pretty)
	}
	return ExportEmpty()
}

// Sampler 0或大于等于1时全部采样
func (c TraceConfig) Sampler() trace.Sampler {
	if c.SampleRatio <= 0 || c.SampleRatio >= 1 {
		return trace.AlwaysSample()
	}
	return trace.ParentBased(trace.TraceIDRatioBased(c.SampleRatio))
}

// ExportHTTP 使用HTTP方式 导出上报数据
func ExportHTTP(endpoint string, usehttps bool, headers map[string]string) TraceExporter {
	return func(ctx context.Context) (trace.SpanExporter, error) {
		opts := []otlptracehttp.Option{
			otlptracehttp.WithEndpoint(endpoint),
			otlptracehttp.WithTimeout(time.Second * 10),
		}
		if !usehttps {
			opts = append(opts, otlptracehttp.WithInsecure())
		}
		if len(headers) > 0 {
			opts = append(opts, otlptracehttp.WithHeaders(headers))
		}
		return otlptracehttp.New(ctx, opts...)
	}
}

// ExportGRPC 使用GRPC方式导出上报数据 连接在首次导出时建立
func ExportGRPC(endpoint string, headers map[string]string) TraceExporter {
	return func(ctx context.Context) (trace.SpanExporter, error) {
		conn, err := grpc.NewClient(endpoint,
			grpc.WithTransportCredentials(insecure.NewCredentials()),
		)
		if err != nil {
			return nil, err
		}
		opts := []otlptracegrpc.Option{otlptracegrpc.WithGRPCConn(conn)}
		if len(headers) > 0 {
			opts = append(opts, otlptracegrpc.WithHeaders(headers))
		}
		return otlptracegrpc.New(ctx, opts...)
	}
}

// ExportStdout 输出到控制台 仅限调试
func ExportStdout(pretty bool) TraceExporter {
	return func(context.Context) (trace.SpanExporter, error) {
		if pretty {
			return stdouttrace.New(stdouttrace.WithPrettyPrint())
		}
		return stdouttrace.New()
	}
}

// ExportEmpty 启用trace但丢弃所有span
func ExportEmpty() TraceExporter {
	return func(context.Context) (trace.SpanExporter, error) {
		return discardExporter{}, nil
	}
}

type discardExporter struct{}

func (discardExporter) Shutdown(context.Context) error { return nil }

func (discardExporter) ExportSpans(context.Context, []trace.ReadOnlySpan) error { return nil }

// NewTraceProvider 创建 TracerProvider
func NewTraceProvider(ctx context.Context, info AppInfo, cfg TraceConfig) (*trace.TracerProvider, error) {
	exporter := cfg.Exporter()
	if exporter == nil {
		return nil, errors.New("trace: exporter is nil")
	}
	res, err := resource.New(ctx,
		resource.WithAttributes(
			attribute.String("service.name", info.Name),
			attribute.String("service.version", info.Version),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("trace: resource: %w", err)
	}

	exp, err := exporter(ctx)
	if err != nil {
		return nil, fmt.Errorf("trace: exporter %q: %w", cfg.Type, err)
	}

	return trace.NewTracerProvider(
		trace.WithSampler(cfg.Sampler()),
		trace.WithResource(res),
		trace.WithBatcher(exp),
	), nil
}

const defaultTracerName = "github.com/parkingwang/oasgen"

// TracerStart 快速的开启一次trace记录
func TracerStart(ctx context.Context, name string) (context.Context, tr.Span) {
	return otel.GetTracerProvider().Tracer(defaultTracerName).Start(ctx, name)
}
