package extract

import "testing"

func TestIsTranslatable(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"hex color short", "#fff", false},
		{"hex color long", "#a1b2c3", false},
		{"rgba value", "rgba(0,0,0,.5)", false},
		{"rgb value", "rgb(255, 0, 0)", false},
		{"number with unit", "12px", false},
		{"bare number", "42", false},
		{"negative decimal", "-1.5em", false},
		{"layout token", "center", false},
		{"layout token uppercase", "FLEX", false},
		{"heading tag token", "h2", false},
		{"real text", "Buy Now", true},
		{"single char", "a", false},
		{"two chars", "ok", true},
		{"url", "https://example.com", false},
		{"email", "info@example.com", false},
		{"markup with url-like attribute", "<a href='x'>ok</a>", true},
		{"markup-only no text", "<br><hr>", false},
		{"markup with single visible char", "<b>x</b>", false},
		{"cyrillic", "Привет", true},
		{"cjk", "你好", true},
		{"arabic", "مرحبا", true},
		{"punctuation only", "---", false},
		{"empty", "", false},
		{"whitespace", "   ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTranslatable(tt.input); got != tt.want {
				t.Errorf("IsTranslatable(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestStripTags(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"<p>Hello</p>", "Hello"},
		{"plain", "plain"},
		{"<a href='x'>link text</a> tail", "link text tail"},
		{"<br>", ""},
	}

	for _, tt := range tests {
		if got := StripTags(tt.input); got != tt.want {
			t.Errorf("StripTags(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
