package oas

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the declarative source of a document. It is read once and never
// modified by the builders.
type Config struct {
	OpenAPI      string           `yaml:"openapi"`
	Info         Info             `yaml:"info"`
	Servers      []ServerConfig   `yaml:"servers"`
	Paths        Paths            `yaml:"paths"`
	Components   ComponentsConfig `yaml:"components"`
	Security     SecurityConfig   `yaml:"security"`
	Tags         []TagConfig      `yaml:"tags"`
	ExternalDocs *ExternalDocs    `yaml:"externalDocs"`
	Extensions   Extensions       `yaml:",inline"`
}

// ModelConfig holds the per-model overrides of components.schemas.models.
type ModelConfig struct {
	Hidden []string `yaml:"hidden"`
}

// ComponentsConfig mirrors the components section. The models entry of schemas
// and the statusCodes entry of responses are pulled out of their parent maps.
type ComponentsConfig struct {
	Schemas         map[string]*Schema
	Models          map[string]ModelConfig
	Responses       map[string]*Response
	StatusCodes     []int
	Parameters      map[string]*Parameter
	RequestBodies   map[string]*RequestBody
	Headers         map[string]*Header
	SecuritySchemes map[string]*SecurityScheme
	Examples        map[string]*Example
	Links           map[string]*Link
	Callbacks       map[string]*Callback
	Extensions      Extensions
}

// IsZero reports whether no component of any kind is configured.
func (c ComponentsConfig) IsZero() bool {
	return len(c.Schemas) == 0 && len(c.Models) == 0 &&
		len(c.Responses) == 0 && len(c.StatusCodes) == 0 &&
		len(c.Parameters) == 0 && len(c.RequestBodies) == 0 &&
		len(c.Headers) == 0 && len(c.SecuritySchemes) == 0 &&
		len(c.Examples) == 0 && len(c.Links) == 0 &&
		len(c.Callbacks) == 0 && len(c.Extensions) == 0
}

const (
	modelsKey      = "models"
	statusCodesKey = "statusCodes"
)

func (c *ComponentsConfig) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		Schemas         map[string]yaml.Node       `yaml:"schemas"`
		Responses       map[string]yaml.Node       `yaml:"responses"`
		Parameters      map[string]*Parameter      `yaml:"parameters"`
		RequestBodies   map[string]*RequestBody    `yaml:"requestBodies"`
		Headers         map[string]*Header         `yaml:"headers"`
		SecuritySchemes map[string]*SecurityScheme `yaml:"securitySchemes"`
		Examples        map[string]*Example        `yaml:"examples"`
		Links           map[string]*Link           `yaml:"links"`
		Callbacks       map[string]*Callback       `yaml:"callbacks"`
		Extensions      Extensions                 `yaml:",inline"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*c = ComponentsConfig{
		Parameters:      raw.Parameters,
		RequestBodies:   raw.RequestBodies,
		Headers:         raw.Headers,
		SecuritySchemes: raw.SecuritySchemes,
		Examples:        raw.Examples,
		Links:           raw.Links,
		Callbacks:       raw.Callbacks,
		Extensions:      raw.Extensions,
	}

	for name, n := range raw.Schemas {
		if name == modelsKey {
			if err := n.Decode(&c.Models); err != nil {
				return fmt.Errorf("components.schemas.models: %w", err)
			}
			continue
		}
		s := new(Schema)
		if err := n.Decode(s); err != nil {
			return fmt.Errorf("components.schemas.%s: %w", name, err)
		}
		if c.Schemas == nil {
			c.Schemas = make(map[string]*Schema)
		}
		c.Schemas[name] = s
	}

	for name, n := range raw.Responses {
		if name == statusCodesKey {
			if err := n.Decode(&c.StatusCodes); err != nil {
				return fmt.Errorf("components.responses.statusCodes: %w", err)
			}
			continue
		}
		r := new(Response)
		if err := n.Decode(r); err != nil {
			return fmt.Errorf("components.responses.%s: %w", name, err)
		}
		if c.Responses == nil {
			c.Responses = make(map[string]*Response)
		}
		c.Responses[name] = r
	}
	return nil
}

// SecurityConfig accepts either a single {scheme: scopes} mapping or a list of them.
type SecurityConfig []map[string][]string

func (s *SecurityConfig) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.MappingNode {
		var m map[string][]string
		if err := node.Decode(&m); err != nil {
			return err
		}
		*s = nil
		if len(m) > 0 {
			*s = SecurityConfig{m}
		}
		return nil
	}
	var list []map[string][]string
	if err := node.Decode(&list); err != nil {
		return err
	}
	*s = list
	return nil
}

// ParseConfig decodes a YAML (or JSON) document configuration.
func ParseConfig(data []byte) (*Config, error) {
	cfg := new(Config)
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("oas: parse config: %w", err)
	}
	if cfg.OpenAPI == "" {
		cfg.OpenAPI = Version
	}
	return cfg, nil
}

// LoadConfig reads the document configuration from a file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("oas: load config: %w", err)
	}
	return ParseConfig(data)
}
