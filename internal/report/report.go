// Package report turns check outcomes into the line-oriented report and the
// process exit signal. It owns the ok/broken counters: workers never touch
// shared totals, they hand finished outcomes to a single Reporter.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"linkvet/internal/extract"
	"linkvet/internal/hash"
	"linkvet/internal/probe"
)

// Reporter aggregates per-entity results into a deterministic report.
// It is not safe for concurrent use; feed it from one goroutine.
type Reporter struct {
	w      io.Writer
	json   bool
	ok     int
	broken int
}

// New creates a Reporter writing to w, as text lines or JSON objects.
func New(w io.Writer, jsonOutput bool) *Reporter {
	return &Reporter{w: w, json: jsonOutput}
}

type jsonEntry struct {
	Status     string     `json:"status"`
	Rule       string     `json:"rule,omitempty"`
	URL        string     `json:"url,omitempty"`
	Method     string     `json:"method,omitempty"`
	StatusCode int        `json:"status_code,omitempty"`
	Detail     string     `json:"detail,omitempty"`
	Attempts   int        `json:"attempts,omitempty"`
	FinalURL   string     `json:"final_url,omitempty"`
	Hash       *hash.Hash `json:"hash,omitempty"`
	StoredPath string     `json:"stored_response_path,omitempty"`
}

func (r *Reporter) emit(e jsonEntry) {
	data, err := json.Marshal(e)
	if err != nil {
		return
	}
	fmt.Fprintln(r.w, string(data))
}

// Invalid reports a dataset entry rejected at extraction time. Invalid
// entries count as broken; they never reached the network.
func (r *Reporter) Invalid(d extract.Invalid) {
	r.broken++
	if r.json {
		r.emit(jsonEntry{Status: "broken", Rule: d.RuleID, Detail: d.Message})
		return
	}
	fmt.Fprintf(r.w, "BROKEN [-] parse %s\n", d)
}

// Outcome reports the terminal result for one URL.
func (r *Reporter) Outcome(o probe.Outcome) {
	v := o.Verdict

	if r.json {
		entry := jsonEntry{
			URL:        o.URL,
			Method:     v.Method,
			StatusCode: v.StatusCode,
			Detail:     v.Detail,
			Attempts:   o.Attempts,
			StoredPath: v.StoredPath,
		}
		if v.FinalURL != "" && v.FinalURL != o.URL {
			entry.FinalURL = v.FinalURL
		}
		if v.Hash.BodyMMH3 != "" {
			h := v.Hash
			entry.Hash = &h
		}
		if v.OK {
			r.ok++
			entry.Status = "ok"
		} else {
			r.broken++
			entry.Status = "broken"
		}
		r.emit(entry)
		return
	}

	status := "-"
	if v.StatusCode != 0 {
		status = strconv.Itoa(v.StatusCode)
	}
	redirect := ""
	if v.FinalURL != "" && v.FinalURL != o.URL {
		redirect = " -> " + v.FinalURL
	}
	if v.OK {
		r.ok++
		fmt.Fprintf(r.w, "OK     [%s] %s %s%s\n", status, v.Method, o.URL, redirect)
	} else {
		r.broken++
		fmt.Fprintf(r.w, "BROKEN [%s] %s %s (%s; attempts=%d)%s\n", status, v.Method, o.URL, v.Detail, o.Attempts, redirect)
	}
}

// Summary writes the trailing summary line. Total is everything checked:
// valid URLs plus invalid dataset entries.
func (r *Reporter) Summary() {
	fmt.Fprintf(r.w, "Summary: checked=%d ok=%d broken=%d\n", r.ok+r.broken, r.ok, r.broken)
}

// OK returns the healthy count.
func (r *Reporter) OK() int { return r.ok }

// Broken returns the broken count (invalid entries included).
func (r *Reporter) Broken() int { return r.broken }

// ExitCode returns the process exit signal: 1 when anything is broken.
func (r *Reporter) ExitCode() int {
	if r.broken > 0 {
		return 1
	}
	return 0
}
