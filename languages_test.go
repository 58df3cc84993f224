package gotlmem

import "testing"

func TestGetLanguageName(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"es", "Spanish"},
		{"ES", "Spanish"},
		{"pt_BR", "Portuguese"},
		{"pt-br", "Portuguese"},
		{"zh", "Chinese"},
		{"xx", "xx"},
	}
	for _, tt := range tests {
		if got := GetLanguageName(tt.code); got != tt.want {
			t.Errorf("GetLanguageName(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestGetNativeName(t *testing.T) {
	if got := GetNativeName("es"); got != "Español" {
		t.Errorf("GetNativeName(es) = %q, want Español", got)
	}
	if got := GetNativeName("xx"); got != "xx" {
		t.Errorf("GetNativeName(xx) = %q, want passthrough", got)
	}
}

func TestIsSupportedLanguage(t *testing.T) {
	if !IsSupportedLanguage("es") || !IsSupportedLanguage("pt_BR") {
		t.Error("known codes should be supported")
	}
	if IsSupportedLanguage("xx") {
		t.Error("unknown code should not be supported")
	}
}

func TestFormatLangLabel(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"code", "ES"},
		{"both", "ES - Español"},
		{"name", "Español"},
		{"bogus", "Español"},
	}
	for _, tt := range tests {
		if got := FormatLangLabel("es", "Español", tt.format); got != tt.want {
			t.Errorf("FormatLangLabel(es, %q) = %q, want %q", tt.format, got, tt.want)
		}
	}
}
