package main

import (
	"errors"
	"testing"

	"github.com/cosmik-network/citefetch/internal/citation"
)

func TestSourceResult_LocalFailure(t *testing.T) {
	r := sourceResult(func() (*citation.Result, error) {
		return nil, errors.New("dial tcp: connection refused")
	}, citation.SourceTranslator)

	if r.Source != citation.SourceTranslator {
		t.Errorf("source = %s", r.Source)
	}
	if r.OK || r.Error == "" {
		t.Errorf("expected failed result, got %+v", r)
	}
}

func TestSourceResult_UpstreamResponse(t *testing.T) {
	r := sourceResult(func() (*citation.Result, error) {
		return &citation.Result{
			Source:      citation.SourceCitoid,
			StatusCode:  404,
			Body:        []byte(`{"title":"Not found"}`),
			ContentType: "application/json",
			RequestURL:  "https://en.wikipedia.org/api/rest_v1/data/citation/zotero/x",
		}, nil
	}, citation.SourceCitoid)

	if r.OK {
		t.Error("OK = true for 404")
	}
	if r.StatusCode != 404 || r.Error != "" {
		t.Errorf("result = %+v", r)
	}
	// Verbatim body retained for display and export.
	if string(r.raw) != `{"title":"Not found"}` {
		t.Errorf("raw = %q", r.raw)
	}
}

func TestFetchExitCode(t *testing.T) {
	tests := []struct {
		name    string
		results []SourceResult
		want    int
	}{
		{
			name:    "single success",
			results: []SourceResult{{OK: true, StatusCode: 200}},
			want:    ExitSuccess,
		},
		{
			name:    "upstream 404",
			results: []SourceResult{{StatusCode: 404}},
			want:    ExitUpstreamError,
		},
		{
			name:    "network failure",
			results: []SourceResult{{Error: "timeout"}},
			want:    ExitError,
		},
		{
			name:    "one source succeeds in comparison",
			results: []SourceResult{{OK: true, StatusCode: 200}, {Error: "refused"}},
			want:    ExitSuccess,
		},
		{
			name:    "failure then success still succeeds",
			results: []SourceResult{{Error: "refused"}, {OK: true, StatusCode: 200}},
			want:    ExitSuccess,
		},
		{
			name:    "both fail with one upstream status",
			results: []SourceResult{{StatusCode: 500}, {Error: "timeout"}},
			want:    ExitUpstreamError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fetchExitCode(tt.results); got != tt.want {
				t.Errorf("fetchExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
