// internal/app/system/limits/limits.go
package limits

// Request body size limits for the JSON API.
// These limits help prevent memory exhaustion from oversized requests.
const (
	// MaxJSONBodySize is the maximum size for JSON request bodies on the
	// application and recommendation endpoints.
	MaxJSONBodySize = 1 << 20 // 1 MB

	// MaxNoteBodySize is the maximum size for memo and comment submissions.
	MaxNoteBodySize = 64 << 10 // 64 KB
)
