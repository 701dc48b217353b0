package oas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
openapi: 3.0.3
info: {title: t, version: '1'}
components:
  schemas:
    Error: {type: object}
    models:
      App\Models\User:
        hidden: [password, remember_token]
      App\Models\Post: {}
  responses:
    Gone: {description: gone}
    statusCodes: [400, 401]
  parameters:
    page: {name: page, in: query}
security:
  - bearer: []
  - apiKey: []
    oauth: [read, write]
`))
	require.NoError(t, err)

	assert.Equal(t, "3.0.3", cfg.OpenAPI)
	assert.Equal(t, map[string]*Schema{"Error": {Type: TypeObject}}, cfg.Components.Schemas)
	assert.Equal(t, map[string]ModelConfig{
		`App\Models\User`: {Hidden: []string{"password", "remember_token"}},
		`App\Models\Post`: {},
	}, cfg.Components.Models)
	assert.Equal(t, []int{400, 401}, cfg.Components.StatusCodes)
	assert.Equal(t, map[string]*Response{"Gone": {Description: "gone"}}, cfg.Components.Responses)
	assert.Equal(t, "query", cfg.Components.Parameters["page"].In)
	assert.Len(t, cfg.Security, 2)
	assert.Equal(t, []string{"read", "write"}, cfg.Security[1]["oauth"])
	assert.False(t, cfg.Components.IsZero())
}

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(`info: {title: t, version: '1'}`))
	require.NoError(t, err)
	assert.Equal(t, Version, cfg.OpenAPI)
	assert.True(t, cfg.Components.IsZero())
	assert.Nil(t, cfg.Paths)
}

func TestParseConfig_SecurityMapping(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
security:
  bearer: []
  apiKey: []
`))
	require.NoError(t, err)
	require.Len(t, cfg.Security, 1)
	assert.Equal(t, []SecurityRequirement{{"apiKey": {}}, {"bearer": {}}}, BuildSecurity(cfg.Security))
}

func TestParseConfig_Errors(t *testing.T) {
	_, err := ParseConfig([]byte(`components: {responses: {statusCodes: [abc]}}`))
	assert.ErrorContains(t, err, "components.responses.statusCodes")

	_, err = ParseConfig([]byte("info: ["))
	assert.ErrorContains(t, err, "oas: parse config")
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "openapi.yaml")
	require.NoError(t, os.WriteFile(path, []byte("info: {title: from file, version: '2'}"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "from file", cfg.Info.Title)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "oas: load config")
}
