package oasgen

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/parkingwang/oasgen/pkg/broker/amqp"
	"github.com/parkingwang/oasgen/pkg/oas"
	"github.com/parkingwang/oasgen/pkg/store/database"
	"github.com/sony/gobreaker/v2"
)

const defaultDocument = "oas.yml"

// CreateAssembler 读取 oas.document 指定的文档配置
// 模型的列信息来自 oas.database 对应的数据库
func (app *Application) CreateAssembler() (*oas.Assembler, error) {
	cfg := Conf()
	path := cfg.GetString("oas.document")
	if path == "" {
		path = defaultDocument
	}
	doc, err := oas.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if doc.Info.Title == "" {
		doc.Info.Title = app.info.Name
	}
	if doc.Info.Description == "" {
		doc.Info.Description = app.info.Description
	}
	if doc.Info.Version == "" {
		doc.Info.Version = app.info.Version
	}

	if err := registerTables(); err != nil {
		return nil, err
	}

	log := slog.Default().With(slog.String("type", "oas"))
	models := oas.NewModelSchemaBuilder(oas.DefaultRegistry(), columnFetcher(log))
	return oas.NewAssembler(doc, oas.WithModelSchemas(models), oas.WithLogger(log)), nil
}

// TableModel 没有 go 模型时 通过配置将模型标识映射到数据表
type TableModel struct {
	Model  string
	Table  string
	Hidden []string
}

func registerTables() error {
	var tables []TableModel
	if err := Conf().Decode("oas.tables", &tables); err != nil {
		return fmt.Errorf("decode oas.tables: %w", err)
	}
	for _, t := range tables {
		if t.Model == "" || t.Table == "" {
			return fmt.Errorf("oas.tables: model and table are required, got %+v", t)
		}
		oas.RegisterTable(t.Model, t.Table, t.Hidden...)
	}
	return nil
}

func columnFetcher(log *slog.Logger) database.ColumnFetcher {
	cfg := Conf()
	name := cfg.GetString("oas.database")
	opts := []database.FetcherOption{database.WithLogger(log)}

	var dbs map[string]database.Config
	if err := cfg.Decode("store.database", &dbs); err == nil {
		if c, ok := dbs[databaseName(name)]; ok && c.Schema != "" {
			opts = append(opts, database.WithSchema(c.Schema))
		}
	}
	if cfg.GetBool("oas.breaker.enabled") {
		opts = append(opts, database.WithBreaker(breakerSettings()))
	}
	return database.Fetcher(name, opts...)
}

func databaseName(name string) string {
	if name == "" {
		return "default"
	}
	return name
}

func breakerSettings() gobreaker.Settings {
	cfg := Conf()
	failures := cfg.GetInt("oas.breaker.failures")
	if failures <= 0 {
		failures = 5
	}
	st := gobreaker.Settings{
		Name:        "oas.columns",
		MaxRequests: uint32(cfg.GetInt("oas.breaker.maxRequests")),
		Interval:    cfg.GetDuration("oas.breaker.interval"),
		Timeout:     cfg.GetDuration("oas.breaker.timeout"),
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(failures)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state changed",
				slog.String("name", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	}
	return st
}

// ExportDocument 生成文档并写入 oas.yaml 指定的文件
// 配置了 oas.publish.url 时同时发布到 amqp
func ExportDocument(ctx context.Context, asm *oas.Assembler) error {
	ctx, span := TracerStart(ctx, "oas.Export")
	defer span.End()

	cfg := Conf()
	path := cfg.GetString("oas.yaml")
	publishURL := cfg.GetString("oas.publish.url")
	if path == "" && publishURL == "" {
		slog.InfoContext(ctx, "export disabled")
		return nil
	}

	doc, err := asm.Build(ctx)
	if err != nil {
		return err
	}
	if path != "" {
		if err := oas.WriteYAMLFile(doc, path); err != nil {
			return err
		}
		slog.InfoContext(ctx, "document exported", slog.String("path", path))
	}
	if publishURL == "" {
		return nil
	}

	data, err := oas.MarshalYAML(doc)
	if err != nil {
		return err
	}
	exchange := cfg.GetString("oas.publish.exchange")
	kind := cfg.GetString("oas.publish.kind")
	if kind == "" {
		kind = "fanout"
	}
	var opts []amqp.Option
	opts = append(opts, amqp.WithDsn(publishURL), amqp.WithPersistent(true))
	if exchange != "" {
		opts = append(opts, amqp.WithExchangeDeclare(amqp.ExchangeOption{
			Name:    exchange,
			Kind:    kind,
			Durable: true,
		}))
	}
	key := cfg.GetString("oas.publish.routingKey")
	if err := amqp.NewPub(opts...).Publish(ctx, exchange, key, "application/yaml", data); err != nil {
		return fmt.Errorf("publish document: %w", err)
	}
	slog.InfoContext(ctx, "document published",
		slog.String("exchange", exchange),
		slog.String("routingKey", key),
	)
	return nil
}
