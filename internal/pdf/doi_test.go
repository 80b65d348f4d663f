package pdf

import "testing"

func TestFindDOI(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "bare doi",
			text: "doi: 10.1038/nature12373",
			want: "10.1038/nature12373",
		},
		{
			name: "doi in sentence with trailing period",
			text: "Available at https://doi.org/10.2307/4486062. Accessed 2024.",
			want: "10.2307/4486062",
		},
		{
			name: "doi with mixed suffix",
			text: "DOI 10.1093/molbev/msab120\nReceived: 1 Jan",
			want: "10.1093/molbev/msab120",
		},
		{
			name: "skips short registrant",
			text: "section 10.2/a but real DOI 10.48550/arXiv.2301.00001 later",
			want: "10.48550/arXiv.2301.00001",
		},
		{
			name: "no doi",
			text: "This page mentions version 10.04 of the software.",
			want: "",
		},
		{
			name: "registrant without suffix",
			text: "released in 10.2024 by the lab",
			want: "",
		},
		{
			name: "empty text",
			text: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FindDOI(tt.text); got != tt.want {
				t.Errorf("FindDOI(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestPlausibleDOI(t *testing.T) {
	valid := []string{"10.1038/nature12373", "10.123456789/x", "10.2307/4486062"}
	for _, doi := range valid {
		if !plausibleDOI(doi) {
			t.Errorf("plausibleDOI(%q) = false, want true", doi)
		}
	}

	invalid := []string{"", "10.1038/", "10.123/abc", "11.1038/x", "10.1a38/x", "nature12373"}
	for _, s := range invalid {
		if plausibleDOI(s) {
			t.Errorf("plausibleDOI(%q) = true, want false", s)
		}
	}
}
