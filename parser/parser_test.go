package parser

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasdelta/deltaerrors"
	"github.com/erraggy/oasdelta/internal/testutil"
)

func TestParse_YAMLFile(t *testing.T) {
	path := testutil.WriteTempYAML(t, testutil.BaseDocument())

	p := New()
	result, err := p.Parse(path)
	require.NoError(t, err)

	assert.Equal(t, path, result.SourcePath)
	assert.Equal(t, SourceFormatYAML, result.SourceFormat)
	assert.Equal(t, "3.0.3", result.Document["openapi"])
	assert.Equal(t, 2, result.Stats.PathCount)
	assert.Equal(t, 3, result.Stats.OperationCount)
	assert.Equal(t, 1, result.Stats.SchemaCount)
	assert.Greater(t, result.SourceSize, int64(0))
}

func TestParse_JSONFile(t *testing.T) {
	path := testutil.WriteTempJSON(t, testutil.BaseDocument())

	p := New()
	result, err := p.Parse(path)
	require.NoError(t, err)

	assert.Equal(t, SourceFormatJSON, result.SourceFormat)
	assert.Equal(t, "3.0.3", result.Document["openapi"])
}

func TestParse_YAMLAndJSONProduceEquivalentDocuments(t *testing.T) {
	doc := testutil.BaseDocument()
	yamlPath := testutil.WriteTempYAML(t, doc)
	jsonPath := testutil.WriteTempJSON(t, doc)

	p := New()
	fromYAML, err := p.Parse(yamlPath)
	require.NoError(t, err)
	fromJSON, err := p.Parse(jsonPath)
	require.NoError(t, err)

	// Structure matches even though the decoders produce different
	// numeric types for the same values.
	assert.Equal(t, fromYAML.Stats, fromJSON.Stats)
	assert.Equal(t,
		fromYAML.Document["info"].(map[string]any)["title"],
		fromJSON.Document["info"].(map[string]any)["title"])
}

func TestParse_FileNotFound(t *testing.T) {
	p := New()
	_, err := p.Parse("/nonexistent/path/api.yaml")
	require.Error(t, err)

	var loadErr *deltaerrors.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "/nonexistent/path/api.yaml", loadErr.Path)
	assert.True(t, errors.Is(err, deltaerrors.ErrLoad))
}

func TestParse_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("key: [unclosed\n  nested: {"), 0600))

	p := New()
	_, err := p.Parse(path)
	require.Error(t, err)

	var loadErr *deltaerrors.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "yaml", loadErr.Format)
}

func TestParse_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"openapi": `), 0600))

	p := New()
	_, err := p.Parse(path)
	require.Error(t, err)

	var loadErr *deltaerrors.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "json", loadErr.Format)
}

func TestParse_EmptyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, []byte(""), 0600))

	p := New()
	_, err := p.Parse(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, deltaerrors.ErrLoad))
	assert.Contains(t, err.Error(), "empty")
}

func TestParse_RootNotMapping(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.json")
	require.NoError(t, os.WriteFile(path, []byte(`["a", "b"]`), 0600))

	p := New()
	_, err := p.Parse(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, deltaerrors.ErrLoad))
}

func TestParse_URL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("User-Agent"), "oasdelta")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"openapi": "3.0.3", "info": {"title": "Remote API", "version": "1.0.0"}, "paths": {}}`))
	}))
	defer server.Close()

	p := New()
	result, err := p.Parse(server.URL + "/openapi")
	require.NoError(t, err)

	assert.Equal(t, SourceFormatJSON, result.SourceFormat)
	assert.Equal(t, "Remote API", result.Document["info"].(map[string]any)["title"])
}

func TestParse_URLYAMLContentType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write([]byte("openapi: 3.0.3\ninfo:\n  title: Remote API\n  version: 1.0.0\npaths: {}\n"))
	}))
	defer server.Close()

	p := New()
	result, err := p.Parse(server.URL + "/openapi")
	require.NoError(t, err)

	assert.Equal(t, SourceFormatYAML, result.SourceFormat)
}

func TestParse_URLServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	p := New()
	_, err := p.Parse(server.URL + "/openapi")
	require.Error(t, err)

	var loadErr *deltaerrors.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, loadErr.Message, "HTTP 500")
}

func TestParse_URLCustomClient(t *testing.T) {
	var gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"openapi": "3.0.3"}`))
	}))
	defer server.Close()

	p := New()
	p.HTTPClient = server.Client()
	p.UserAgent = "custom-agent/1.0"
	_, err := p.Parse(server.URL + "/spec.json")
	require.NoError(t, err)
	assert.Equal(t, "custom-agent/1.0", gotUserAgent)
}

func TestParse_MaxDocumentSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.yaml")
	big := "openapi: 3.0.3\ndescription: " + strings.Repeat("x", 1024) + "\n"
	require.NoError(t, os.WriteFile(path, []byte(big), 0600))

	p := New()
	p.MaxDocumentSize = 64
	_, err := p.Parse(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, deltaerrors.ErrLoad))
	assert.Contains(t, err.Error(), "exceeds limit")
}

func TestParseBytes_YAML(t *testing.T) {
	p := New()
	result, err := p.ParseBytes([]byte("openapi: 3.0.3\ninfo:\n  title: T\n  version: '1.0'\npaths: {}\n"))
	require.NoError(t, err)

	assert.Equal(t, "ParseBytes.yaml", result.SourcePath)
	assert.Equal(t, SourceFormatYAML, result.SourceFormat)
}

func TestParseBytes_JSON(t *testing.T) {
	p := New()
	result, err := p.ParseBytes([]byte(`{"openapi": "3.0.3", "paths": {}}`))
	require.NoError(t, err)

	assert.Equal(t, "ParseBytes.json", result.SourcePath)
	assert.Equal(t, SourceFormatJSON, result.SourceFormat)
}

func TestParseReader(t *testing.T) {
	p := New()
	result, err := p.ParseReader(strings.NewReader(`{"openapi": "3.0.3", "paths": {}}`))
	require.NoError(t, err)

	assert.Equal(t, "ParseReader.json", result.SourcePath)
	assert.Equal(t, SourceFormatJSON, result.SourceFormat)
	assert.Equal(t, int64(33), result.SourceSize)
}

func TestParse_VendorExtensionsPreserved(t *testing.T) {
	doc := testutil.BaseDocument()
	doc["x-internal-routing"] = map[string]any{"cluster": "edge-2"}
	path := testutil.WriteTempYAML(t, doc)

	p := New()
	result, err := p.Parse(path)
	require.NoError(t, err)

	ext, ok := result.Document["x-internal-routing"].(map[string]any)
	require.True(t, ok, "vendor extension should survive parsing")
	assert.Equal(t, "edge-2", ext["cluster"])
}
