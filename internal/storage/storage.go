// Package storage writes broken-response captures to disk so a soft-404 or
// unexpected error page can be triaged without re-running the checker.
package storage

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// GenerateFilename creates a SHA1 hash-based filename for the request
// Format: SHA1(METHOD:URL)
func GenerateFilename(method, urlStr string) string {
	data := fmt.Sprintf("%s:%s", method, urlStr)
	hash := sha1.Sum([]byte(data))
	return hex.EncodeToString(hash[:])
}

// SanitizeHost sanitizes a hostname for use in directory paths
// Handles ports (e.g., example.com:8080 -> example.com_8080)
func SanitizeHost(host string) string {
	sanitized := strings.ReplaceAll(host, ":", "_")
	sanitized = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || r == '.' || r == '-' || r == '_' {
			return r
		}
		return '_'
	}, sanitized)
	return sanitized
}

// BuildStoragePath creates the full path for storing a capture
// Structure: {baseDir}/response/{sanitized_host}/{hash}.txt
func BuildStoragePath(baseDir, host, filename string) string {
	return filepath.Join(baseDir, "response", SanitizeHost(host), filename+".txt")
}

// StoreCapture writes the capture data to disk and returns the path used.
func StoreCapture(baseDir string, parsedURL *url.URL, method string, data []byte) (string, error) {
	filename := GenerateFilename(method, parsedURL.String())
	storagePath := BuildStoragePath(baseDir, parsedURL.Host, filename)

	if err := os.MkdirAll(filepath.Dir(storagePath), 0755); err != nil {
		return "", fmt.Errorf("failed to create storage directory: %w", err)
	}

	if err := os.WriteFile(storagePath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write capture: %w", err)
	}

	return storagePath, nil
}

// FormatCapture formats the stored capture file content: the probed URL, the
// verdict detail, the final URL after redirects, and the decoded body.
func FormatCapture(probedURL, detail, finalURL string, body string) []byte {
	var builder strings.Builder

	builder.WriteString("=== URL ===\n")
	builder.WriteString(probedURL)
	builder.WriteString("\n\n")

	builder.WriteString("=== DETAIL ===\n")
	builder.WriteString(detail)
	builder.WriteString("\n\n")

	if finalURL != "" && finalURL != probedURL {
		builder.WriteString("=== FINAL URL ===\n")
		builder.WriteString(finalURL)
		builder.WriteString("\n\n")
	}

	builder.WriteString("=== RESPONSE BODY ===\n")
	builder.WriteString(body)

	return []byte(builder.String())
}
