package service

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "simple", input: "Getting Started", want: "getting-started"},
		{name: "already a slug", input: "getting-started", want: "getting-started"},
		{name: "punctuation collapses", input: "API: v2 (draft)", want: "api-v2-draft"},
		{name: "leading and trailing noise", input: "  --Hello--  ", want: "hello"},
		{name: "consecutive separators", input: "a  &  b", want: "a-b"},
		{name: "digits survive", input: "Release 2026", want: "release-2026"},
		{name: "unicode stripped", input: "Café Menü", want: "caf-men"},
		{name: "empty", input: "", want: ""},
		{name: "only symbols", input: "!!!", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateSlug(t *testing.T) {
	tests := []struct {
		slug    string
		wantErr bool
	}{
		{slug: "docs", wantErr: false},
		{slug: "getting-started", wantErr: false},
		{slug: "v2-api", wantErr: false},
		{slug: "", wantErr: true},
		{slug: "Docs", wantErr: true},
		{slug: "has space", wantErr: true},
		{slug: "-leading", wantErr: true},
		{slug: "trailing-", wantErr: true},
		{slug: "double--hyphen", wantErr: true},
		{slug: "under_score", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			err := validateSlug(tt.slug)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateSlug(%q) error = %v, wantErr %v", tt.slug, err, tt.wantErr)
			}
		})
	}
}
