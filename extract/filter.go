// Package extract finds translatable strings in structured content.
package extract

import (
	"net/mail"
	"net/url"
	"regexp"
	"strings"
)

// skipValues are setting tokens that look like text but are layout/style
// configuration, never user-visible copy. Matched case-insensitively.
var skipValues = map[string]bool{
	"yes": true, "no": true, "none": true, "top": true, "bottom": true,
	"left": true, "right": true, "center": true, "middle": true,
	"start": true, "end": true, "flex-start": true, "flex-end": true,
	"space-between": true, "space-around": true, "stretch": true,
	"inherit": true, "initial": true, "default": true, "custom": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"div": true, "span": true, "p": true,
	"px": true, "em": true, "rem": true, "%": true, "vh": true, "vw": true,
	"normal": true, "bold": true, "italic": true,
	"solid": true, "dashed": true, "dotted": true, "double": true,
	"groove": true, "ridge": true,
	"inline": true, "block": true, "inline-block": true, "flex": true, "grid": true,
	"absolute": true, "relative": true, "fixed": true, "sticky": true,
	"row": true, "column": true, "row-reverse": true, "column-reverse": true,
	"cover": true, "contain": true, "auto": true, "repeat": true, "no-repeat": true,
	"uppercase": true, "lowercase": true, "capitalize": true,
	"full_width": true, "boxed": true,
}

var (
	hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{3,8}$`)
	rgbRe      = regexp.MustCompile(`(?i)^rgba?\s*\(`)
	numberRe   = regexp.MustCompile(`^-?[\d.]+(px|em|rem|%|vh|vw|s|ms)?$`)
	tagRe      = regexp.MustCompile(`<[^>]*>`)

	// letterRe covers Latin (incl. extended), Cyrillic, Arabic and CJK
	// ranges. A candidate with no letter in any of these is structural.
	letterRe = regexp.MustCompile(`[a-zA-Z\x{00C0}-\x{024F}\x{0400}-\x{04FF}\x{0600}-\x{06FF}\x{4E00}-\x{9FFF}]`)
)

// IsTranslatable reports whether value looks like human-readable copy
// rather than a structural or style token. It is pure and never panics;
// it is applied at extraction time and again defensively at store insert.
func IsTranslatable(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}

	if skipValues[strings.ToLower(value)] {
		return false
	}
	if hexColorRe.MatchString(value) {
		return false
	}
	if rgbRe.MatchString(value) {
		return false
	}
	if numberRe.MatchString(value) {
		return false
	}

	// Values carrying markup skip the URL/email rejection: an anchor's
	// visible text may legitimately be a bare word while the attribute
	// side looks like a URL.
	hasMarkup := tagRe.MatchString(value)
	if !hasMarkup {
		if isValidURL(value) || isValidEmail(value) {
			return false
		}
	}

	visible := strings.TrimSpace(StripTags(value))
	if !letterRe.MatchString(visible) {
		return false
	}
	if len([]rune(visible)) < 2 {
		return false
	}

	return true
}

// StripTags removes HTML markup, leaving the visible text.
func StripTags(value string) string {
	return tagRe.ReplaceAllString(value, "")
}

func isValidURL(value string) bool {
	u, err := url.Parse(value)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

func isValidEmail(value string) bool {
	addr, err := mail.ParseAddress(value)
	if err != nil {
		return false
	}
	// mail.ParseAddress accepts display-name forms; only a bare address
	// counts as an email here.
	return addr.Address == value
}
