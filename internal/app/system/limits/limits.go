// internal/app/system/limits/limits.go
package limits

// Request body size limits for the JSON endpoints.
// These limits help prevent memory exhaustion from oversized requests.
const (
	// MaxSaveSearchBody caps POST /search/save. A snapshot is a handful of
	// short strings, so anything near this size is not a real client.
	MaxSaveSearchBody = 64 << 10 // 64 KB

	// MaxClientResponse caps how much of an API response the search client
	// will read.
	MaxClientResponse = 4 << 20 // 4 MB
)
