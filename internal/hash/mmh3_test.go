package hash

import (
	"net/http"
	"testing"
)

func TestCalculateMMH3(t *testing.T) {
	a := CalculateMMH3([]byte("fallback page body"))
	b := CalculateMMH3([]byte("fallback page body"))
	c := CalculateMMH3([]byte("different body"))

	if a != b {
		t.Error("identical bodies must produce identical fingerprints")
	}
	if a == c {
		t.Error("different bodies should produce different fingerprints")
	}
	if CalculateMMH3(nil) == "" {
		t.Error("empty input still fingerprints")
	}
}

func TestCalculateHeaderMMH3_OrderIndependent(t *testing.T) {
	h1 := http.Header{}
	h1.Set("Content-Type", "text/html")
	h1.Set("Server", "nginx")

	h2 := http.Header{}
	h2.Set("Server", "nginx")
	h2.Set("Content-Type", "text/html")

	if CalculateHeaderMMH3(h1) != CalculateHeaderMMH3(h2) {
		t.Error("header fingerprint must not depend on insertion order")
	}
}
