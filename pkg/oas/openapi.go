package oas

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const tracerName = "github.com/parkingwang/oasgen/pkg/oas"

type AssemblerOption func(*Assembler)

// WithModelSchemas sets the builder used for components.schemas.models.
func WithModelSchemas(b *ModelSchemaBuilder) AssemblerOption {
	return func(a *Assembler) {
		a.models = b
	}
}

func WithLogger(log *slog.Logger) AssemblerOption {
	return func(a *Assembler) {
		if log != nil {
			a.log = log
		}
	}
}

// Assembler turns a Config into a validated Document.
type Assembler struct {
	cfg    *Config
	models *ModelSchemaBuilder
	log    *slog.Logger
}

func NewAssembler(cfg *Config, opts ...AssemblerOption) *Assembler {
	if cfg == nil {
		cfg = &Config{}
	}
	a := &Assembler{
		cfg: cfg,
		log: slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Build assembles and validates the document. No document is returned
// when validation fails; the error is a *ValidationError.
func (a *Assembler) Build(ctx context.Context) (*Document, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "oas.Assemble")
	defer span.End()

	doc, err := a.populate(ctx)
	if err == nil {
		err = Validate(ctx, doc)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(
		attribute.Int("oas.paths", len(doc.Paths)),
		attribute.String("oas.version", doc.OpenAPI),
	)
	return doc, nil
}

func (a *Assembler) populate(ctx context.Context) (*Document, error) {
	cfg := a.cfg
	doc := &Document{
		OpenAPI:    cfg.OpenAPI,
		Info:       cfg.Info,
		Paths:      cfg.Paths,
		Extensions: cfg.Extensions.clone(),
	}
	if doc.OpenAPI == "" {
		doc.OpenAPI = Version
	}
	if doc.Paths == nil {
		doc.Paths = Paths{}
	}
	doc.Servers = BuildServers(cfg.Servers)
	doc.Security = BuildSecurity(cfg.Security)
	doc.Tags = BuildTags(cfg.Tags)
	if cfg.ExternalDocs != nil {
		docs := *cfg.ExternalDocs
		doc.ExternalDocs = &docs
	}

	components, err := NewComponentsBuilder(a.models, a.log).Build(ctx, cfg.Components)
	if err != nil {
		return nil, err
	}
	doc.Components = components
	return doc, nil
}
