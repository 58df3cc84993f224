package web

import (
	"fmt"
	"html"
	"strings"

	"github.com/ZaguanLabs/gotlmem"
)

// Switcher renders the language switcher for a source/target pair.
type Switcher struct {
	source string
	target string
	style  gotlmem.SwitcherStyle
}

// NewSwitcher creates a Switcher with a sanitized style record.
func NewSwitcher(source, target string, style gotlmem.SwitcherStyle) *Switcher {
	return &Switcher{source: source, target: target, style: style.Sanitize()}
}

// Render returns the switcher markup for the current path and active
// language. The whole block is wrapped in the no-rewrite markers: its links
// already point at the right language variant and must not be prefixed
// again by the final pass.
func (s *Switcher) Render(currentPath, activeLang string) string {
	if currentPath == "" || !strings.HasPrefix(currentPath, "/") {
		currentPath = "/"
	}

	var b strings.Builder
	b.WriteString(NoRewriteOpen)
	b.WriteString(`<nav class="gt-switcher" aria-label="Language">`)
	s.writeLink(&b, s.source, currentPath, activeLang)
	s.writeLink(&b, s.target, PrefixURL(currentPath, s.target), activeLang)
	b.WriteString(`</nav>`)
	b.WriteString(NoRewriteClose)
	return b.String()
}

func (s *Switcher) writeLink(b *strings.Builder, lang, href, activeLang string) {
	class := "gt-switcher-link"
	if lang == activeLang {
		class += " gt-active"
	}
	label := gotlmem.FormatLangLabel(lang, gotlmem.GetNativeName(lang), s.style.LabelFormat)
	fmt.Fprintf(b, `<a class=%q href=%q hreflang=%q>%s</a>`,
		class, href, lang, html.EscapeString(label))
}

// CSS generates the switcher stylesheet from the style record. Every value
// has been through Sanitize, so interpolation is safe.
func (s *Switcher) CSS() string {
	st := s.style

	var b strings.Builder
	fmt.Fprintf(&b, `.gt-switcher{display:inline-flex;gap:%dpx;font-family:%s;font-size:%dpx;`,
		st.Gap, st.FontFamily, st.FontSize)
	if st.Position != "none" {
		b.WriteString("position:fixed;z-index:9999;")
		switch st.Position {
		case "bottom-right":
			b.WriteString("bottom:20px;right:20px;")
		case "bottom-left":
			b.WriteString("bottom:20px;left:20px;")
		case "top-right":
			b.WriteString("top:20px;right:20px;")
		case "top-left":
			b.WriteString("top:20px;left:20px;")
		}
	}
	if st.Shadow {
		b.WriteString("box-shadow:0 2px 8px rgba(0,0,0,.15);")
	}
	b.WriteString("}")

	fmt.Fprintf(&b,
		".gt-switcher-link{background:%s;color:%s;border:%dpx solid %s;border-radius:%dpx;padding:%dpx %dpx;text-decoration:none;}",
		st.BgColor, st.TextColor, st.BorderWidth, st.BorderColor,
		st.BorderRadius, st.PaddingV, st.PaddingH)
	fmt.Fprintf(&b, ".gt-switcher-link:hover{background:%s;color:%s;}",
		st.HoverBgColor, st.HoverTextColor)
	fmt.Fprintf(&b, ".gt-switcher-link.gt-active{background:%s;color:%s;}",
		st.ActiveBgColor, st.ActiveTextColor)

	return b.String()
}
