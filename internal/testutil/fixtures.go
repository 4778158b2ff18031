// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasdelta/internal/docutil"
)

// BaseDocument creates a small but realistic OAS 3.x document for testing.
// Includes paths, operations, schemas, and security schemes so that diffs
// against a mutated copy can touch every classification category.
func BaseDocument() map[string]any {
	return map[string]any{
		"openapi": "3.0.3",
		"info": map[string]any{
			"title":       "Pet Store API",
			"version":     "1.0.0",
			"description": "A sample API for managing pets",
		},
		"servers": []any{
			map[string]any{"url": "https://api.example.com/v1"},
		},
		"paths": map[string]any{
			"/pets": map[string]any{
				"get": map[string]any{
					"summary":     "List pets",
					"operationId": "listPets",
					"responses": map[string]any{
						"200": map[string]any{"description": "A list of pets"},
					},
				},
				"post": map[string]any{
					"summary":     "Create a pet",
					"operationId": "createPet",
					"responses": map[string]any{
						"201": map[string]any{"description": "Pet created"},
					},
				},
			},
			"/pets/{petId}": map[string]any{
				"get": map[string]any{
					"summary":     "Get a pet by ID",
					"operationId": "getPet",
					"parameters": []any{
						map[string]any{
							"name":     "petId",
							"in":       "path",
							"required": true,
							"schema":   map[string]any{"type": "string"},
						},
					},
					"responses": map[string]any{
						"200": map[string]any{"description": "A single pet"},
						"404": map[string]any{"description": "Pet not found"},
					},
				},
			},
		},
		"components": map[string]any{
			"schemas": map[string]any{
				"Pet": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":   map[string]any{"type": "integer"},
						"name": map[string]any{"type": "string"},
					},
					"required": []any{"id", "name"},
				},
			},
			"securitySchemes": map[string]any{
				"apiKey": map[string]any{
					"type": "apiKey",
					"name": "X-API-Key",
					"in":   "header",
				},
			},
		},
	}
}

// CopyDocument returns an independent deep copy of a document, so tests can
// mutate the copy without affecting the original.
func CopyDocument(doc map[string]any) map[string]any {
	return docutil.DeepCopy(doc).(map[string]any)
}

// WriteTempYAML marshals a document to YAML and writes it to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempYAML(t *testing.T, doc any) string {
	t.Helper()

	data, err := yaml.Marshal(doc)
	if err != nil {
		t.Fatalf("Failed to marshal document to YAML: %v", err)
	}

	tmpFile := filepath.Join(t.TempDir(), "test.yaml")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to write temporary YAML file: %v", err)
	}

	return tmpFile
}

// WriteTempJSON marshals a document to JSON and writes it to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempJSON(t *testing.T, doc any) string {
	t.Helper()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal document to JSON: %v", err)
	}

	tmpFile := filepath.Join(t.TempDir(), "test.json")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to write temporary JSON file: %v", err)
	}

	return tmpFile
}
