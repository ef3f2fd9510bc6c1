// Package extract collects evidence source URLs from a ruleset and validates
// them before any network activity happens.
package extract

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"linkvet/internal/rules"
)

// Invalid is a diagnostic for a dataset entry that can never be probed.
type Invalid struct {
	RuleID  string
	Message string
}

func (d Invalid) String() string {
	return d.RuleID + ": " + d.Message
}

// SourceURLs walks the ruleset and returns the unique, syntactically valid
// evidence URLs plus diagnostics for every invalid entry. Both lists are
// sorted and deduplicated so the report order is deterministic. URLs cited by
// several rules appear once.
func SourceURLs(rs *rules.Ruleset) ([]string, []Invalid) {
	urlSet := make(map[string]struct{})
	invalidSet := make(map[Invalid]struct{})

	for _, rule := range rs.Rules {
		ruleID := rule.ID
		if ruleID == "" {
			ruleID = "<unknown>"
		}
		if rule.Evidence == nil {
			continue
		}
		for _, raw := range rule.Evidence.SourceURLs {
			s, ok := raw.(string)
			if !ok {
				invalidSet[Invalid{ruleID, "non-string URL entry"}] = struct{}{}
				continue
			}
			u := strings.TrimSpace(s)
			if u == "" {
				invalidSet[Invalid{ruleID, "empty URL entry"}] = struct{}{}
				continue
			}
			parsed, err := url.Parse(u)
			if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
				invalidSet[Invalid{ruleID, fmt.Sprintf("invalid URL '%s'", u)}] = struct{}{}
				continue
			}
			urlSet[u] = struct{}{}
		}
	}

	urls := make([]string, 0, len(urlSet))
	for u := range urlSet {
		urls = append(urls, u)
	}
	sort.Strings(urls)

	invalid := make([]Invalid, 0, len(invalidSet))
	for d := range invalidSet {
		invalid = append(invalid, d)
	}
	sort.Slice(invalid, func(i, j int) bool {
		return invalid[i].String() < invalid[j].String()
	})

	return urls, invalid
}
