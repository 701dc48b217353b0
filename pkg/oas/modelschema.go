package oas

import (
	"context"
	"sort"
	"strings"

	"github.com/parkingwang/oasgen/pkg/store/database"
)

// ModelSchemaBuilder derives component schemas from the columns of registered
// models. A model registered with its Go value falls back to the schema of
// that type when its table reports no column.
type ModelSchemaBuilder struct {
	models  *Registry
	columns database.ColumnFetcher
}

// NewModelSchemaBuilder uses the default registry when models is nil.
func NewModelSchemaBuilder(models *Registry, columns database.ColumnFetcher) *ModelSchemaBuilder {
	if models == nil {
		models = defaultRegistry
	}
	return &ModelSchemaBuilder{models: models, columns: columns}
}

var quoteReplacer = strings.NewReplacer(`'`, "", `"`, "")

// Build returns the schema of the model registered under id.
func (b *ModelSchemaBuilder) Build(ctx context.Context, id string, cfg ModelConfig) (*Schema, error) {
	name := ShortName(id)
	model, err := b.models.Resolve(id)
	if err != nil {
		return nil, err
	}

	hidden := make(map[string]struct{}, len(model.Hidden)+len(cfg.Hidden))
	for _, h := range model.Hidden {
		hidden[h] = struct{}{}
	}
	for _, h := range cfg.Hidden {
		hidden[h] = struct{}{}
	}

	s := &Schema{
		Title:       name,
		Description: name + " Model (Auto Generated)",
		Required:    []string{},
		Properties:  map[string]*Schema{},
	}
	var cols []database.Column
	if b.columns != nil {
		cols = b.columns.FetchColumns(ctx, model.Table)
	}
	if len(cols) == 0 {
		if model.Model != nil {
			fromModel(s, model.Model, hidden)
		}
		return s, nil
	}
	for _, col := range cols {
		if _, ok := hidden[col.Name]; ok {
			continue
		}
		tf := MapType(col.DataType)
		nullable := col.Nullable
		prop := &Schema{
			Description: col.Name,
			Type:        tf.Type,
			Format:      tf.Format,
			Nullable:    &nullable,
		}
		if col.Default != nil {
			if v := quoteReplacer.Replace(*col.Default); v != "" {
				prop.Default = v
			}
		}
		s.Properties[col.Name] = prop
		if !nullable {
			s.Required = append(s.Required, col.Name)
		}
	}
	return s, nil
}

func fromModel(s *Schema, model any, hidden map[string]struct{}) {
	typed := SchemaOf(model, "json")
	if typed == nil || typed.Type != TypeObject {
		return
	}
	for name, prop := range typed.Properties {
		if _, ok := hidden[name]; ok {
			continue
		}
		s.Properties[name] = prop
	}
	for _, name := range typed.Required {
		if _, ok := s.Properties[name]; ok {
			s.Required = append(s.Required, name)
		}
	}
}

// BuildAll builds every configured model, keyed by the short name of its
// identifier. It returns nil when no model is configured.
func (b *ModelSchemaBuilder) BuildAll(ctx context.Context, models map[string]ModelConfig) (map[string]*Schema, error) {
	if len(models) == 0 {
		return nil, nil
	}
	ids := make([]string, 0, len(models))
	for id := range models {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make(map[string]*Schema, len(models))
	for _, id := range ids {
		s, err := b.Build(ctx, id, models[id])
		if err != nil {
			return nil, err
		}
		out[ShortName(id)] = s
	}
	return out, nil
}
