// Package docutil provides helpers for working with parsed OpenAPI
// documents represented as unstructured map[string]any trees.
package docutil

import (
	"fmt"

	"go.yaml.in/yaml/v4"
)

// DeepCopy creates a deep copy of a document value using recursive copying.
//
// Unlike JSON marshal/unmarshal, this preserves exact types and float
// precision, so a copied document compares deep-equal to the original.
func DeepCopy(v any) any {
	if v == nil {
		return nil
	}

	switch val := v.(type) {
	case map[string]any:
		result := make(map[string]any, len(val))
		for k, v := range val {
			result[k] = DeepCopy(v)
		}
		return result

	case []any:
		result := make([]any, len(val))
		for i, v := range val {
			result[i] = DeepCopy(v)
		}
		return result

	case string, bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		// Primitives are immutable, return as-is
		return val

	default:
		// For unknown types, return as-is (they may be immutable or
		// the caller may not need a deep copy for this type)
		return val
	}
}

// CanonicalYAML serializes a document to YAML with map keys emitted in
// sorted order. Two deep-equal documents always produce identical output,
// which makes the result suitable for line-based diffing.
func CanonicalYAML(doc any) (string, error) {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("docutil: failed to serialize document: %w", err)
	}
	return string(data), nil
}
