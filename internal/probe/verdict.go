package probe

import (
	"fmt"
	"net/http"
	"strings"

	"linkvet/internal/hash"
)

// Attempt is the outcome of one physical request. It is created fresh for
// every request and consumed immediately by Evaluate; nothing retains it.
type Attempt struct {
	Method      string
	StatusCode  int // 0 when no response was received at all
	FinalURL    string
	ContentType string
	Body        string    // decoded body, GET only
	Hash        hash.Hash // response fingerprints, GET only
	Err         string    // transport error description, empty on success
}

// Verdict is the classification of an Attempt, or of a paired HEAD+GET check.
type Verdict struct {
	OK         bool
	Method     string
	StatusCode int // 0 when no status was obtained
	Detail     string
	Retryable  bool
	FinalURL   string
	Hash       hash.Hash
	StoredPath string // capture file written for a broken response, if any
}

// retryableStatuses are statuses conventionally indicating a temporary
// condition; anything else >= 400 is a permanent failure.
var retryableStatuses = map[int]bool{
	http.StatusRequestTimeout:      true, // 408
	http.StatusTooManyRequests:     true, // 429
	http.StatusInternalServerError: true, // 500
	http.StatusBadGateway:          true, // 502
	http.StatusServiceUnavailable:  true, // 503
	http.StatusGatewayTimeout:      true, // 504
}

// IsHTML reports whether the content type declares an HTML document.
func IsHTML(contentType string) bool {
	lowered := strings.ToLower(contentType)
	return strings.Contains(lowered, "text/html") || strings.Contains(lowered, "application/xhtml+xml")
}

// Evaluate classifies a single probe attempt:
//   - no status at all (DNS failure, refused connection, timeout) is a
//     retryable failure
//   - status >= 400 is a failure, retryable only for the transient set
//   - a successful GET with an HTML body runs the soft-404 heuristic; a hit
//     is a permanent failure since retrying won't change rendered content
//   - everything else is healthy
func Evaluate(a Attempt) Verdict {
	if a.StatusCode == 0 {
		detail := a.Err
		if detail == "" {
			detail = "network failure"
		}
		return Verdict{
			Method:    a.Method,
			Detail:    detail,
			Retryable: true,
			FinalURL:  a.FinalURL,
		}
	}
	if a.StatusCode >= 400 {
		return Verdict{
			Method:     a.Method,
			StatusCode: a.StatusCode,
			Detail:     fmt.Sprintf("HTTP %d", a.StatusCode),
			Retryable:  retryableStatuses[a.StatusCode],
			FinalURL:   a.FinalURL,
			Hash:       a.Hash,
		}
	}
	if a.Method == http.MethodGet && IsHTML(a.ContentType) {
		if reason := SoftNotFound(a.Body); reason != "" {
			return Verdict{
				Method:     a.Method,
				StatusCode: a.StatusCode,
				Detail:     reason,
				FinalURL:   a.FinalURL,
				Hash:       a.Hash,
			}
		}
	}
	return Verdict{
		OK:         true,
		Method:     a.Method,
		StatusCode: a.StatusCode,
		Detail:     "ok",
		FinalURL:   a.FinalURL,
		Hash:       a.Hash,
	}
}
