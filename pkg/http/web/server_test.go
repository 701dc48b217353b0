package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/parkingwang/oasgen/pkg/oas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type builderFunc func(ctx context.Context) (*oas.Document, error)

func (f builderFunc) Build(ctx context.Context) (*oas.Document, error) {
	return f(ctx)
}

func serve(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestServer_Docs(t *testing.T) {
	cfg, err := oas.ParseConfig([]byte(`info: {title: Demo, version: '1.0'}`))
	require.NoError(t, err)
	s := New(WithDocs(oas.NewAssembler(cfg), "", ""))
	assert.Equal(t, "/docs", s.DocPath())

	w := serve(t, s, "/docs")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

	var doc map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, "3.0.2", doc["openapi"])
	assert.Equal(t, map[string]any{"title": "Demo", "version": "1.0"}, doc["info"])
	assert.Equal(t, map[string]any{}, doc["paths"])
}

func TestServer_DocsPrefix(t *testing.T) {
	calls := 0
	s := New(WithDocs(builderFunc(func(context.Context) (*oas.Document, error) {
		calls++
		return &oas.Document{OpenAPI: oas.Version, Paths: oas.Paths{}}, nil
	}), "api", "openapi.json"))

	assert.Equal(t, http.StatusOK, serve(t, s, "/api/openapi.json").Code)
	assert.Equal(t, http.StatusOK, serve(t, s, "/api/openapi.json").Code)
	assert.Equal(t, 2, calls)
	assert.Equal(t, http.StatusNotFound, serve(t, s, "/docs").Code)
}

func TestServer_ValidationError(t *testing.T) {
	s := New(WithDocs(builderFunc(func(context.Context) (*oas.Document, error) {
		return nil, &oas.ValidationError{Issues: []oas.Issue{{Path: "info.title", Message: "is required"}}}
	}), "", "docs"))

	w := serve(t, s, "/docs")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp DefaultErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "The given data was invalid.", resp.Message)
	assert.Equal(t, map[string][]string{"info.title": {"info.title is required"}}, resp.Errors)
	assert.NotEmpty(t, resp.TraceID)
}

func TestServer_ModelNotFound(t *testing.T) {
	s := New(WithDocs(builderFunc(func(context.Context) (*oas.Document, error) {
		return nil, &oas.ModelNotFoundError{Model: "User"}
	}), "", ""))

	w := serve(t, s, "/docs")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "could not find model: User")
}

func TestServer_Recovery(t *testing.T) {
	s := New(WithDocs(builderFunc(func(context.Context) (*oas.Document, error) {
		panic("100% broken")
	}), "", ""))

	w := serve(t, s, "/docs")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp DefaultErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), resp.Message)
}

func TestServer_NotFound(t *testing.T) {
	w := serve(t, New(), "/missing")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "route not found")
}

func TestServer_Pprof(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, serve(t, New(), "/debug/pprof/cmdline").Code)
	assert.Equal(t, http.StatusOK, serve(t, New(WithPprof(true)), "/debug/pprof/cmdline").Code)
}

func TestServer_Metrics(t *testing.T) {
	fail := false
	s := New(WithMetrics(true), WithDocs(builderFunc(func(context.Context) (*oas.Document, error) {
		if fail {
			return nil, &oas.ValidationError{}
		}
		return &oas.Document{OpenAPI: oas.Version, Paths: oas.Paths{}}, nil
	}), "", ""))

	serve(t, s, "/docs")
	fail = true
	serve(t, s, "/docs")

	w := serve(t, s, "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `oasgen_document_builds_total{result="ok"} 1`)
	assert.Contains(t, w.Body.String(), `oasgen_document_builds_total{result="invalid"} 1`)
	assert.Contains(t, w.Body.String(), "oasgen_document_build_duration_seconds_count 2")

	assert.Equal(t, http.StatusNotFound, serve(t, New(), "/metrics").Code)
}
