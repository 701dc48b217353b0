package oas

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
)

const mimeJSON = "application/json"

type commonResponse struct {
	Message    string `json:"message"`
	StatusCode int    `json:"status_code"`
}

// BuildResponses generates one response per status code, described by the
// code's reason phrase. It returns nil for no codes.
func BuildResponses(codes []int) (map[string]*Response, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	out := make(map[string]*Response, len(codes))
	for _, code := range codes {
		text := http.StatusText(code)
		if text == "" {
			return nil, &UnknownStatusCodeError{Code: code}
		}
		body := SchemaOf(commonResponse{}, "json")
		body.Properties["message"].Example = text
		body.Properties["status_code"].Example = code
		out[strconv.Itoa(code)] = &Response{
			Description: text,
			Content: map[string]*MediaType{
				mimeJSON: {Schema: body},
			},
		}
	}
	return out, nil
}

// ComponentsBuilder assembles the components section.
type ComponentsBuilder struct {
	models *ModelSchemaBuilder
	log    *slog.Logger
}

func NewComponentsBuilder(models *ModelSchemaBuilder, log *slog.Logger) *ComponentsBuilder {
	if log == nil {
		log = slog.Default()
	}
	return &ComponentsBuilder{models: models, log: log}
}

// Build returns nil when the configuration yields no component at all.
// Explicitly configured schemas and responses take precedence over generated
// ones with the same name.
func (b *ComponentsBuilder) Build(ctx context.Context, cfg ComponentsConfig) (*Components, error) {
	if cfg.IsZero() {
		return nil, nil
	}
	c := &Components{
		Schemas:         copyMap(cfg.Schemas),
		Responses:       copyMap(cfg.Responses),
		Parameters:      copyMap(cfg.Parameters),
		RequestBodies:   copyMap(cfg.RequestBodies),
		Headers:         copyMap(cfg.Headers),
		SecuritySchemes: copyMap(cfg.SecuritySchemes),
		Examples:        copyMap(cfg.Examples),
		Links:           copyMap(cfg.Links),
		Callbacks:       copyMap(cfg.Callbacks),
		Extensions:      cfg.Extensions.clone(),
	}

	if len(cfg.Models) > 0 {
		models := b.models
		if models == nil {
			models = NewModelSchemaBuilder(nil, nil)
		}
		schemas, err := models.BuildAll(ctx, cfg.Models)
		if err != nil {
			return nil, err
		}
		c.Schemas = b.merge(ctx, "schemas", c.Schemas, schemas)
	}

	if len(cfg.StatusCodes) > 0 {
		responses, err := BuildResponses(cfg.StatusCodes)
		if err != nil {
			return nil, err
		}
		c.Responses = mergeMissing(c.Responses, responses)
	}

	if len(c.Schemas) == 0 && len(c.Responses) == 0 && len(c.Parameters) == 0 &&
		len(c.RequestBodies) == 0 && len(c.Headers) == 0 && len(c.SecuritySchemes) == 0 &&
		len(c.Examples) == 0 && len(c.Links) == 0 && len(c.Callbacks) == 0 && len(c.Extensions) == 0 {
		return nil, nil
	}
	return c, nil
}

func (b *ComponentsBuilder) merge(ctx context.Context, section string, explicit, generated map[string]*Schema) map[string]*Schema {
	for name := range generated {
		if _, ok := explicit[name]; ok {
			b.log.WarnContext(ctx, "generated component shadowed by configuration",
				slog.String("section", section),
				slog.String("name", name),
			)
		}
	}
	return mergeMissing(explicit, generated)
}

// mergeMissing adds the entries of src that dst does not define.
func mergeMissing[T any](dst, src map[string]T) map[string]T {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]T, len(src))
	}
	for k, v := range src {
		if _, ok := dst[k]; !ok {
			dst[k] = v
		}
	}
	return dst
}

func copyMap[T any](m map[string]T) map[string]T {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]T, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
