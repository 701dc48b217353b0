package oas

import (
	"fmt"
	"strings"
	"sync"

	"gorm.io/gorm/schema"
)

// ModelInfo describes the table behind a model identifier. Model is the Go
// value given to Register and nil for models added with RegisterTable.
type ModelInfo struct {
	Table  string
	Hidden []string
	Model  any
}

// Hider is implemented by models that keep columns out of their serialized form.
type Hider interface {
	HiddenFields() []string
}

// Registry resolves model identifiers to their tables.
type Registry struct {
	mu     sync.RWMutex
	models map[string]ModelInfo
	cache  *sync.Map
	namer  schema.Namer
}

// NewRegistry returns an empty registry. Table names of Go models are derived
// with namer, or gorm's default naming strategy when namer is nil.
func NewRegistry(namer schema.Namer) *Registry {
	if namer == nil {
		namer = schema.NamingStrategy{}
	}
	return &Registry{
		models: make(map[string]ModelInfo),
		cache:  &sync.Map{},
		namer:  namer,
	}
}

// Register adds a gorm model under id. The table name follows gorm's rules
// (TableName method or naming strategy) and fields tagged `json:"-"` are hidden,
// as well as the columns named by HiddenFields when the model implements Hider.
func (r *Registry) Register(id string, model any) error {
	s, err := schema.Parse(model, r.cache, r.namer)
	if err != nil {
		return fmt.Errorf("oas: register model %s: %w", id, err)
	}
	var hidden []string
	for _, f := range s.Fields {
		if f.DBName == "" {
			continue
		}
		if name, _, _ := strings.Cut(f.Tag.Get("json"), ","); name == "-" {
			hidden = append(hidden, f.DBName)
		}
	}
	if h, ok := model.(Hider); ok {
		hidden = append(hidden, h.HiddenFields()...)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.models[id] = ModelInfo{Table: s.Table, Hidden: hidden, Model: model}
	return nil
}

// RegisterTable adds a model known only by its table name.
func (r *Registry) RegisterTable(id, table string, hidden ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.models[id] = ModelInfo{Table: table, Hidden: hidden}
}

// Resolve returns the model registered under id.
func (r *Registry) Resolve(id string) (ModelInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.models[id]
	if !ok {
		return ModelInfo{}, &ModelNotFoundError{Model: id}
	}
	return m, nil
}

var defaultRegistry = NewRegistry(nil)

// DefaultRegistry returns the process wide registry used by Register.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Register adds a gorm model to the default registry.
func Register(id string, model any) error {
	return defaultRegistry.Register(id, model)
}

// RegisterTable adds a table to the default registry.
func RegisterTable(id, table string, hidden ...string) {
	defaultRegistry.RegisterTable(id, table, hidden...)
}

// ShortName returns the last segment of a model identifier, so that
// `App\Models\User`, `models.User` and `example.com/models/User` all yield User.
func ShortName(id string) string {
	if i := strings.LastIndexAny(id, `\/.`); i >= 0 {
		return id[i+1:]
	}
	return id
}
