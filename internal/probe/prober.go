package probe

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"time"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/charmap"

	"linkvet/internal/hash"
	"linkvet/internal/storage"
	"linkvet/pkg/version"
)

// fetch issues one physical request. GET responses are read through a
// LimitReader so a huge body caps at MaxBodyBytes; HEAD responses are never
// read.
func (c *Client) fetch(ctx context.Context, probeURL, method string) Attempt {
	attempt := Attempt{Method: method}

	if u, err := url.Parse(probeURL); err == nil {
		if err := c.limiter(u.Hostname()).Wait(ctx); err != nil {
			attempt.Err = fmt.Sprintf("rate limit wait: %v", err)
			return attempt
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, probeURL, nil)
	if err != nil {
		attempt.Err = fmt.Sprintf("failed to create request: %v", err)
		return attempt
	}
	req.Header.Set("User-Agent", version.UserAgent())
	req.Header.Set("Accept", "text/html,application/json,*/*;q=0.1")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		attempt.Err = errDescription(err)
		if c.cfg.DebugLogger != nil {
			c.cfg.DebugLogger.Error("request failed",
				"url", probeURL,
				"method", method,
				"error", err,
				"duration", elapsed,
			)
		}
		return attempt
	}
	defer resp.Body.Close()

	attempt.StatusCode = resp.StatusCode
	attempt.FinalURL = resp.Request.URL.String()
	attempt.ContentType = resp.Header.Get("Content-Type")

	if method == http.MethodGet {
		raw, err := io.ReadAll(io.LimitReader(resp.Body, c.cfg.MaxBodyBytes))
		if err != nil {
			// A connection that dies mid-body is a transport failure,
			// same as one that never answered.
			return Attempt{Method: method, Err: errDescription(err)}
		}
		attempt.Body = decodeBody(raw, attempt.ContentType)
		attempt.Hash = hash.Hash{
			BodyMMH3:   hash.CalculateMMH3(raw),
			HeaderMMH3: hash.CalculateHeaderMMH3(resp.Header),
		}
	}

	if c.cfg.DebugLogger != nil {
		c.cfg.DebugLogger.Info("request completed",
			"url", probeURL,
			"method", method,
			"status_code", resp.StatusCode,
			"content_type", attempt.ContentType,
			"duration", elapsed,
		)
	}

	return attempt
}

// CheckOnce determines whether one URL is healthy using the fewest requests
// that still catch disguised failures: HEAD first, then GET whenever the
// HEAD failed or the resource is HTML and needs body inspection.
func (c *Client) CheckOnce(ctx context.Context, probeURL string) Verdict {
	head := c.fetch(ctx, probeURL, http.MethodHead)
	headVerdict := Evaluate(head)
	if headVerdict.OK && !IsHTML(head.ContentType) {
		return headVerdict
	}

	get := c.fetch(ctx, probeURL, http.MethodGet)
	getVerdict := Evaluate(get)
	if headVerdict.OK {
		// The GET exists only to run the soft-404 heuristic on the body.
		getVerdict.Method = "GET (verify-html)"
	} else if getVerdict.Method == http.MethodGet {
		getVerdict.Method = "GET (fallback)"
	}

	// A concrete HTTP error from the HEAD is more actionable than an
	// unrelated transport failure from the GET.
	if !getVerdict.OK && head.StatusCode >= 400 && get.StatusCode == 0 {
		return headVerdict
	}

	if !getVerdict.OK && c.cfg.StoreResponse && get.Body != "" {
		getVerdict.StoredPath = c.storeCapture(probeURL, get, getVerdict)
	}

	return getVerdict
}

// storeCapture writes the broken response body to disk for triage and
// returns the path, or "" when storing failed.
func (c *Client) storeCapture(probeURL string, get Attempt, verdict Verdict) string {
	u, err := url.Parse(probeURL)
	if err != nil {
		return ""
	}
	data := storage.FormatCapture(probeURL, verdict.Detail, get.FinalURL, get.Body)
	path, err := storage.StoreCapture(c.cfg.StoreResponseDir, u, http.MethodGet, data)
	if err != nil {
		c.cfg.Logger.Warn("failed to store response capture",
			"url", probeURL,
			"error", err,
		)
		return ""
	}
	return path
}

// decodeBody decodes raw bytes using the charset declared in the
// Content-Type header, falling back to UTF-8 and then Latin-1.
func decodeBody(raw []byte, contentType string) string {
	if len(raw) == 0 {
		return ""
	}
	if _, params, err := mime.ParseMediaType(contentType); err == nil {
		if label := params["charset"]; label != "" {
			if enc, _ := charset.Lookup(label); enc != nil {
				if decoded, err := enc.NewDecoder().Bytes(raw); err == nil {
					return string(decoded)
				}
			}
		}
	}
	if utf8.Valid(raw) {
		return string(raw)
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}

// errDescription unwraps url.Error so the report shows the transport cause
// instead of repeating the method and URL.
func errDescription(err error) string {
	if ue, ok := err.(*url.Error); ok {
		return ue.Err.Error()
	}
	return err.Error()
}
