// Package citation defines the shared types produced by the metadata clients:
// the citation formats a user can request and the raw result of one upstream call.
package citation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Source identifies which upstream service produced a Result.
type Source string

const (
	// SourceCitoid is Wikipedia's hosted citation service.
	SourceCitoid Source = "citoid"

	// SourceTranslator is a self-hosted Zotero translation server.
	SourceTranslator Source = "translator"
)

// Format is a citation format accepted by the Citoid API.
// The value doubles as the path segment in the request URL.
type Format string

const (
	FormatZotero         Format = "zotero"
	FormatMediaWiki      Format = "mediawiki"
	FormatMediaWikiBasic Format = "mediawiki-basefields"
	FormatBibTeX         Format = "bibtex"
)

// Formats lists all supported formats in display order.
var Formats = []Format{FormatZotero, FormatMediaWiki, FormatMediaWikiBasic, FormatBibTeX}

// ParseFormat parses a user-supplied format name.
// Accepts "basefields" as a shorthand for mediawiki-basefields.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "zotero":
		return FormatZotero, nil
	case "mediawiki":
		return FormatMediaWiki, nil
	case "mediawiki-basefields", "basefields":
		return FormatMediaWikiBasic, nil
	case "bibtex":
		return FormatBibTeX, nil
	}
	return "", fmt.Errorf("unknown citation format: %s (valid: %s)", s, FormatNames())
}

// FormatNames returns the supported format names as a comma-separated string.
func FormatNames() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// IsJSON reports whether responses in this format are JSON documents.
// BibTeX is plain text; every other format returns a JSON array.
func (f Format) IsJSON() bool {
	return f != FormatBibTeX
}

// Ext returns the file extension used when exporting a result body.
func (f Format) Ext() string {
	if f == FormatBibTeX {
		return ".bib"
	}
	return ".json"
}

// Result holds one upstream response, attributable to exactly one source
// and one query. The body is kept byte-identical to the wire; export must
// never re-serialize it.
type Result struct {
	Source      Source `json:"source"`
	StatusCode  int    `json:"status_code"`
	Body        []byte `json:"-"`
	ContentType string `json:"content_type"`
	RequestURL  string `json:"request_url"`
}

// OK reports whether the upstream answered with a 2xx status.
func (r *Result) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// PrettyBody returns the body indented for on-screen display when it is
// valid JSON, and the raw body text otherwise. The Result itself is
// never modified.
func (r *Result) PrettyBody() string {
	trimmed := bytes.TrimSpace(r.Body)
	if len(trimmed) == 0 {
		return ""
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		var buf bytes.Buffer
		if err := json.Indent(&buf, trimmed, "", "  "); err == nil {
			return buf.String()
		}
	}
	return string(r.Body)
}
