package probe

import (
	"regexp"
	"strings"
)

var (
	titleRe      = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	tagRe        = regexp.MustCompile(`<[^>]+>`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	notFoundH1Re = regexp.MustCompile(`(?i)<h1[^>]*>\s*(?:404(?:\s+not\s+found)?|page\s+not\s+found|not\s+found)\s*</h1>`)
)

func normalizeSpaces(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// SoftNotFound reports why an HTML body looks like a disguised "not found"
// page served with a success status (common with single-page apps and CDNs),
// or "" when it doesn't. Checks are restricted to <title> and <h1>; generic
// fallback strings buried in script bundles must not fire the heuristic.
func SoftNotFound(html string) string {
	if html == "" {
		return ""
	}
	if m := titleRe.FindStringSubmatch(html); m != nil {
		title := strings.ToLower(normalizeSpaces(tagRe.ReplaceAllString(m[1], " ")))
		if strings.Contains(title, "404") && strings.Contains(title, "not found") {
			return "HTML title indicates 404"
		}
		if strings.Contains(title, "page not found") {
			return "HTML title indicates missing page"
		}
	}
	// The h1 must match one of the known phrases exactly; a sentence that
	// merely contains "page not found" stays healthy.
	if notFoundH1Re.MatchString(html) {
		return "HTML h1 indicates missing page"
	}
	return ""
}
