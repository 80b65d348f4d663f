// Package classify decides how free-form user input is routed upstream:
// DOI-shaped strings go to the identifier endpoint, everything else is
// treated as a URL. The check is a shape heuristic, not validation;
// malformed input is forwarded as-is and rejected by the upstream service.
package classify

import (
	"errors"
	"regexp"
	"strings"
)

// Kind tags a routing decision.
type Kind string

const (
	// KindDOI routes to the identifier ("search") endpoint.
	KindDOI Kind = "doi"

	// KindURL routes to the URL-keyed ("web") endpoint.
	KindURL Kind = "url"
)

// Decision is the routing decision for one query. Value carries the
// trimmed input, with DOI prefixes (doi:, doi.org URLs) stripped so the
// bare identifier is what gets sent upstream.
type Decision struct {
	Kind  Kind   `json:"kind"`
	Value string `json:"value"`
}

// ErrEmptyInput is returned for empty or whitespace-only input, which is
// rejected locally and never produces an outbound call.
var ErrEmptyInput = errors.New("empty input")

// doiShape matches the common DOI prefix form: 10. followed by a 4-9
// digit registrant code, a slash, and a non-empty suffix.
var doiShape = regexp.MustCompile(`^10\.\d{4,9}/\S+$`)

// doiURLPrefixes are URL and scheme prefixes behind which a bare DOI may hide.
var doiURLPrefixes = []string{
	"https://doi.org/",
	"http://doi.org/",
	"https://dx.doi.org/",
	"http://dx.doi.org/",
	"doi.org/",
	"doi:",
}

// Classify inspects raw input and returns a routing decision.
func Classify(raw string) (Decision, error) {
	input := strings.TrimSpace(raw)
	if input == "" {
		return Decision{}, ErrEmptyInput
	}

	if doi, ok := extractDOI(input); ok {
		return Decision{Kind: KindDOI, Value: doi}, nil
	}
	return Decision{Kind: KindURL, Value: input}, nil
}

// extractDOI returns the bare DOI and true when the input is DOI-shaped,
// optionally behind a doi: prefix or a doi.org URL.
func extractDOI(input string) (string, bool) {
	candidate := input
	for _, prefix := range doiURLPrefixes {
		if len(input) > len(prefix) && strings.EqualFold(input[:len(prefix)], prefix) {
			candidate = input[len(prefix):]
			break
		}
	}

	if doiShape.MatchString(candidate) {
		return candidate, true
	}
	return "", false
}
