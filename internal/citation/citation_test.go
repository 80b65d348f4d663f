package citation

import (
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"zotero", FormatZotero, false},
		{"mediawiki", FormatMediaWiki, false},
		{"mediawiki-basefields", FormatMediaWikiBasic, false},
		{"basefields", FormatMediaWikiBasic, false},
		{"bibtex", FormatBibTeX, false},
		{"BibTeX", FormatBibTeX, false},
		{" zotero ", FormatZotero, false},
		{"ris", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormat_Ext(t *testing.T) {
	if got := FormatBibTeX.Ext(); got != ".bib" {
		t.Errorf("bibtex ext = %s, want .bib", got)
	}
	for _, f := range []Format{FormatZotero, FormatMediaWiki, FormatMediaWikiBasic} {
		if got := f.Ext(); got != ".json" {
			t.Errorf("%s ext = %s, want .json", f, got)
		}
	}
}

func TestFormat_IsJSON(t *testing.T) {
	if FormatBibTeX.IsJSON() {
		t.Error("bibtex reported as JSON")
	}
	if !FormatZotero.IsJSON() {
		t.Error("zotero not reported as JSON")
	}
}

func TestResult_OK(t *testing.T) {
	for status, want := range map[int]bool{200: true, 201: true, 299: true, 301: false, 404: false, 500: false} {
		r := Result{StatusCode: status}
		if r.OK() != want {
			t.Errorf("OK() for %d = %v, want %v", status, r.OK(), want)
		}
	}
}

func TestResult_PrettyBody(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "json array indented",
			body: `[{"title":"T"}]`,
			want: "[\n  {\n    \"title\": \"T\"\n  }\n]",
		},
		{
			name: "bibtex passed through",
			body: "@article{Smith2024,\n  title = {T},\n}",
			want: "@article{Smith2024,\n  title = {T},\n}",
		},
		{
			name: "invalid json passed through",
			body: "{not json",
			want: "{not json",
		},
		{
			name: "empty body",
			body: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Result{Body: []byte(tt.body)}
			if got := r.PrettyBody(); got != tt.want {
				t.Errorf("PrettyBody() = %q, want %q", got, tt.want)
			}
			// Display must never mutate the stored body.
			if string(r.Body) != tt.body {
				t.Errorf("body mutated: %q", r.Body)
			}
		})
	}
}
