// Package pdf locates a DOI inside a local PDF so it can be handed to the
// citation services. No citation data is extracted locally.
package pdf

import (
	"strings"

	"github.com/ledongthuc/pdf"
)

// doiSearchPages caps how many leading pages are scanned. The DOI almost
// always appears on the first page.
const doiSearchPages = 3

// ExtractDOI scans the first pages of a PDF for a DOI. An empty string
// with a nil error means no DOI was found.
func ExtractDOI(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	pages := doiSearchPages
	if r.NumPage() < pages {
		pages = r.NumPage()
	}

	for i := 1; i <= pages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if doi := FindDOI(text); doi != "" {
			return doi, nil
		}
	}

	return "", nil
}

// FindDOI returns the first plausible DOI in the given text, or "".
// Candidates are located by scanning for the "10." registrant marker and
// taking the run of DOI-legal characters that follows.
func FindDOI(text string) string {
	for offset := 0; offset < len(text); {
		idx := strings.Index(text[offset:], "10.")
		if idx < 0 {
			return ""
		}
		start := offset + idx

		end := start
		for end < len(text) && isDOIChar(text[end]) {
			end++
		}

		candidate := strings.TrimRight(text[start:end], ".,;:)")
		if plausibleDOI(candidate) {
			return candidate
		}
		offset = start + 3
	}
	return ""
}

// isDOIChar reports whether c may appear in a DOI. Whitespace and the
// characters DOIs never contain terminate a candidate.
func isDOIChar(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '<', '>', '"', '{', '}', '|', '\\', '^', '~', '[', ']', '`':
		return false
	}
	return c > 32 && c < 127
}

// plausibleDOI checks the candidate has the 10.NNNN/suffix shape with a
// registrant code of 4-9 digits.
func plausibleDOI(candidate string) bool {
	rest, ok := strings.CutPrefix(candidate, "10.")
	if !ok {
		return false
	}

	slash := strings.IndexByte(rest, '/')
	if slash < 4 || slash > 9 || slash == len(rest)-1 {
		return false
	}
	for i := 0; i < slash; i++ {
		if rest[i] < '0' || rest[i] > '9' {
			return false
		}
	}
	return true
}
