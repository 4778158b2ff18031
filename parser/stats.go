package parser

// DocumentStats contains statistical information about an OAS document
type DocumentStats struct {
	PathCount      int // Number of paths defined
	OperationCount int // Total number of operations across all paths
	SchemaCount    int // Number of schemas/definitions
}

// httpMethods are the PathItem keys that denote operations.
var httpMethods = map[string]bool{
	"get":     true,
	"put":     true,
	"post":    true,
	"delete":  true,
	"options": true,
	"head":    true,
	"patch":   true,
	"trace":   true,
}

// GetDocumentStats returns statistics for a parsed OAS document.
// Works across OAS versions: schemas are counted from components.schemas
// (3.x) and definitions (2.0).
func GetDocumentStats(doc map[string]any) DocumentStats {
	stats := DocumentStats{}
	if doc == nil {
		return stats
	}

	if paths, ok := doc["paths"].(map[string]any); ok {
		stats.PathCount = len(paths)
		stats.OperationCount = countOperations(paths)
	}

	if components, ok := doc["components"].(map[string]any); ok {
		if schemas, ok := components["schemas"].(map[string]any); ok {
			stats.SchemaCount += len(schemas)
		}
	}
	if definitions, ok := doc["definitions"].(map[string]any); ok {
		stats.SchemaCount += len(definitions)
	}

	return stats
}

// countOperations counts the total number of operations across all paths
func countOperations(paths map[string]any) int {
	count := 0
	for _, item := range paths {
		pathItem, ok := item.(map[string]any)
		if !ok {
			continue
		}
		for method := range pathItem {
			if httpMethods[method] {
				count++
			}
		}
	}
	return count
}
