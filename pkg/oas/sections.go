package oas

import (
	"fmt"
	"sort"
)

type ServerConfig struct {
	URL         string                          `yaml:"url"`
	Description string                          `yaml:"description"`
	Variables   map[string]ServerVariableConfig `yaml:"variables"`
	Extensions  Extensions                      `yaml:",inline"`
}

// ServerVariableConfig accepts scalar values of any kind; they are rendered as
// strings in the document. Any other key of the variable is kept as is.
type ServerVariableConfig struct {
	Enum        []any      `yaml:"enum"`
	Default     any        `yaml:"default"`
	Description string     `yaml:"description"`
	Extensions  Extensions `yaml:",inline"`
}

// BuildServers returns nil when no server is configured.
func BuildServers(cfgs []ServerConfig) []Server {
	if len(cfgs) == 0 {
		return nil
	}
	servers := make([]Server, len(cfgs))
	for i, c := range cfgs {
		servers[i] = Server{URL: c.URL, Description: c.Description, Extensions: c.Extensions.clone()}
		if len(c.Variables) == 0 {
			continue
		}
		servers[i].Variables = make(map[string]*ServerVariable, len(c.Variables))
		for name, v := range c.Variables {
			sv := &ServerVariable{Description: v.Description, Extensions: v.Extensions.clone()}
			if v.Default != nil {
				sv.Default = fmt.Sprint(v.Default)
			}
			for _, e := range v.Enum {
				sv.Enum = append(sv.Enum, fmt.Sprint(e))
			}
			servers[i].Variables[name] = sv
		}
	}
	return servers
}

type TagConfig struct {
	Name         string        `yaml:"name"`
	Description  string        `yaml:"description"`
	ExternalDocs *ExternalDocs `yaml:"externalDocs"`
	Extensions   Extensions    `yaml:",inline"`
}

// BuildTags returns nil when no tag is configured.
func BuildTags(cfgs []TagConfig) []Tag {
	if len(cfgs) == 0 {
		return nil
	}
	tags := make([]Tag, len(cfgs))
	for i, c := range cfgs {
		tags[i] = Tag{Name: c.Name, Description: c.Description, Extensions: c.Extensions.clone()}
		if c.ExternalDocs != nil {
			docs := *c.ExternalDocs
			docs.Extensions = docs.Extensions.clone()
			tags[i].ExternalDocs = &docs
		}
	}
	return tags
}

// BuildSecurity flattens the configured entries into one requirement per
// scheme. An empty entry is kept as the empty requirement that makes
// authentication optional. It returns nil when nothing is configured.
func BuildSecurity(cfg SecurityConfig) []SecurityRequirement {
	var reqs []SecurityRequirement
	for _, entry := range cfg {
		if len(entry) == 0 {
			reqs = append(reqs, SecurityRequirement{})
			continue
		}
		schemes := make([]string, 0, len(entry))
		for scheme := range entry {
			schemes = append(schemes, scheme)
		}
		sort.Strings(schemes)
		for _, scheme := range schemes {
			scopes := entry[scheme]
			if scopes == nil {
				scopes = []string{}
			}
			reqs = append(reqs, SecurityRequirement{scheme: scopes})
		}
	}
	return reqs
}
