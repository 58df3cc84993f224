package web

import (
	"strings"
	"testing"

	"github.com/ZaguanLabs/gotlmem"
)

func TestSwitcherRender(t *testing.T) {
	sw := NewSwitcher("en", "es", gotlmem.DefaultSwitcherStyle())
	out := sw.Render("/about", "es")

	if !strings.HasPrefix(out, NoRewriteOpen) || !strings.HasSuffix(out, NoRewriteClose) {
		t.Errorf("switcher not wrapped in no-rewrite markers: %s", out)
	}
	if !strings.Contains(out, `href="/about"`) {
		t.Errorf("missing source link to /about: %s", out)
	}
	if !strings.Contains(out, `href="/es/about"`) {
		t.Errorf("missing target link to /es/about: %s", out)
	}
	if !strings.Contains(out, `hreflang="en"`) || !strings.Contains(out, `hreflang="es"`) {
		t.Errorf("missing hreflang attributes: %s", out)
	}

	// Active language carries the active class.
	esIdx := strings.Index(out, `hreflang="es"`)
	active := strings.LastIndex(out[:esIdx], "gt-active")
	if active < 0 {
		t.Errorf("target link should be active: %s", out)
	}
}

func TestSwitcherLabelFormats(t *testing.T) {
	style := gotlmem.DefaultSwitcherStyle()

	style.LabelFormat = "code"
	out := NewSwitcher("en", "es", style).Render("/", "en")
	if !strings.Contains(out, ">EN<") || !strings.Contains(out, ">ES<") {
		t.Errorf("code format labels missing: %s", out)
	}

	style.LabelFormat = "name"
	out = NewSwitcher("en", "es", style).Render("/", "en")
	if !strings.Contains(out, "English") || !strings.Contains(out, "Español") {
		t.Errorf("native name labels missing: %s", out)
	}
}

func TestSwitcherCSS(t *testing.T) {
	style := gotlmem.DefaultSwitcherStyle()
	style.Position = "bottom-right"
	css := NewSwitcher("en", "es", style).CSS()

	for _, want := range []string{
		"position:fixed", "bottom:20px;right:20px",
		"background:#ffffff", "box-shadow",
		".gt-switcher-link:hover", ".gt-switcher-link.gt-active",
	} {
		if !strings.Contains(css, want) {
			t.Errorf("css missing %q: %s", want, css)
		}
	}

	style.Position = "none"
	css = NewSwitcher("en", "es", style).CSS()
	if strings.Contains(css, "position:fixed") {
		t.Errorf("inline switcher should not be fixed: %s", css)
	}
}

func TestSwitcherSanitizesStyle(t *testing.T) {
	style := gotlmem.DefaultSwitcherStyle()
	style.BgColor = `");evil{`
	css := NewSwitcher("en", "es", style).CSS()

	if strings.Contains(css, "evil") {
		t.Errorf("unsanitized value reached css: %s", css)
	}
	if !strings.Contains(css, "background:#ffffff") {
		t.Errorf("invalid color should fall back to default: %s", css)
	}
}
