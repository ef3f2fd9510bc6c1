package hash

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/twmb/murmur3"
)

// Hash contains MMH3 fingerprints of a fetched response. Two broken URLs
// with the same body fingerprint usually point at the same fallback page.
type Hash struct {
	BodyMMH3   string `json:"body_mmh3,omitempty"`
	HeaderMMH3 string `json:"header_mmh3,omitempty"`
}

// CalculateMMH3 calculates the MMH3 hash of the data
func CalculateMMH3(data []byte) string {
	return fmt.Sprintf("%d", murmur3.Sum32(data))
}

// CalculateHeaderMMH3 calculates the MMH3 hash of concatenated headers
func CalculateHeaderMMH3(headers http.Header) string {
	// Sort headers for consistent hashing
	var keys []string
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var headerStr strings.Builder
	for _, k := range keys {
		for _, v := range headers[k] {
			headerStr.WriteString(k)
			headerStr.WriteString(": ")
			headerStr.WriteString(v)
			headerStr.WriteString("\n")
		}
	}

	return CalculateMMH3([]byte(headerStr.String()))
}
