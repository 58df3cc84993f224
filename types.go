package gotlmem

import (
	"regexp"
	"time"
)

// StringStatus is the lifecycle state of a translation memory row.
type StringStatus string

const (
	// StatusPending means no translation has been produced yet.
	StatusPending StringStatus = "pending"
	// StatusTranslated means the text was machine-translated and not reviewed.
	StatusTranslated StringStatus = "translated"
	// StatusEdited means a human overrode the translation. Edited rows are
	// never overwritten by the batch engine.
	StatusEdited StringStatus = "edited"
)

// Valid reports whether s is one of the known statuses.
func (s StringStatus) Valid() bool {
	switch s {
	case StatusPending, StatusTranslated, StatusEdited:
		return true
	}
	return false
}

// SourceKind identifies the category of content a string was extracted from.
type SourceKind string

const (
	// KindProduct marks strings extracted from product records.
	KindProduct SourceKind = "product"
	// KindPageBuilder marks strings extracted from page-builder JSON trees.
	KindPageBuilder SourceKind = "page-builder"
)

// Valid reports whether k is a known source kind.
func (k SourceKind) Valid() bool {
	return k == KindProduct || k == KindPageBuilder
}

// TranslatableString is one unique (content hash, target language) entry in
// the translation memory. Identical text appearing in many places shares a
// single row; the places are tracked as StringLocations.
type TranslatableString struct {
	ID         int64
	Original   string
	Hash       string // SHA-256 of the trimmed original
	Lang       string // target language code
	Context    string // semantic origin tag, e.g. "product_title"
	Status     StringStatus
	Translated string // empty until status leaves pending
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// StringLocation attaches a TranslatableString to one content item.
// Unique per (string, kind, source id); rescans never duplicate it.
type StringLocation struct {
	StringID   int64
	SourceKind SourceKind
	SourceID   int64
}

// SwitcherStyle is the presentation record for the language switcher. It is
// configuration owned by the admin layer; the routing code only reads it to
// render the switcher and decide label formatting.
type SwitcherStyle struct {
	BgColor         string `json:"bg_color"`
	TextColor       string `json:"text_color"`
	ActiveBgColor   string `json:"active_bg_color"`
	ActiveTextColor string `json:"active_text_color"`
	HoverBgColor    string `json:"hover_bg_color"`
	HoverTextColor  string `json:"hover_text_color"`
	BorderColor     string `json:"border_color"`
	BorderWidth     int    `json:"border_width"`
	BorderRadius    int    `json:"border_radius"`
	FontSize        int    `json:"font_size"`
	PaddingH        int    `json:"padding_h"`
	PaddingV        int    `json:"padding_v"`
	Gap             int    `json:"gap"`
	Position        string `json:"position"` // none, bottom-right, bottom-left, top-right, top-left
	Shadow          bool   `json:"shadow"`
	LabelFormat     string `json:"label_format"` // name, code, both
	FontFamily      string `json:"font_family"`
}

// DefaultSwitcherStyle returns the baseline switcher presentation.
func DefaultSwitcherStyle() SwitcherStyle {
	return SwitcherStyle{
		BgColor:         "#ffffff",
		TextColor:       "#333333",
		ActiveBgColor:   "#0073aa",
		ActiveTextColor: "#ffffff",
		HoverBgColor:    "#f0f0f0",
		HoverTextColor:  "#0073aa",
		BorderColor:     "#dddddd",
		BorderWidth:     1,
		BorderRadius:    6,
		FontSize:        14,
		PaddingH:        16,
		PaddingV:        8,
		Gap:             0,
		Position:        "none",
		Shadow:          true,
		LabelFormat:     "name",
		FontFamily:      "inherit",
	}
}

// AllowedPositions are the accepted values for SwitcherStyle.Position.
var AllowedPositions = []string{"none", "bottom-right", "bottom-left", "top-right", "top-left"}

// AllowedLabelFormats are the accepted values for SwitcherStyle.LabelFormat.
var AllowedLabelFormats = []string{"name", "code", "both"}

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{3,8}$`)

// Sanitize validates every field of s against its allow-list, falling back
// to the default for anything out of range.
func (s SwitcherStyle) Sanitize() SwitcherStyle {
	def := DefaultSwitcherStyle()
	clean := s

	colors := []struct {
		val *string
		def string
	}{
		{&clean.BgColor, def.BgColor},
		{&clean.TextColor, def.TextColor},
		{&clean.ActiveBgColor, def.ActiveBgColor},
		{&clean.ActiveTextColor, def.ActiveTextColor},
		{&clean.HoverBgColor, def.HoverBgColor},
		{&clean.HoverTextColor, def.HoverTextColor},
		{&clean.BorderColor, def.BorderColor},
	}
	for _, f := range colors {
		if !hexColorPattern.MatchString(*f.val) {
			*f.val = f.def
		}
	}

	dims := []*int{
		&clean.BorderWidth, &clean.BorderRadius, &clean.FontSize,
		&clean.PaddingH, &clean.PaddingV, &clean.Gap,
	}
	for _, f := range dims {
		if *f < 0 {
			*f = 0
		}
	}

	if !contains(AllowedPositions, clean.Position) {
		clean.Position = def.Position
	}
	if !contains(AllowedLabelFormats, clean.LabelFormat) {
		clean.LabelFormat = def.LabelFormat
	}
	if clean.FontFamily == "" {
		clean.FontFamily = def.FontFamily
	}

	return clean
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
