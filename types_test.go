package gotlmem

import "testing"

func TestStatusValid(t *testing.T) {
	for _, s := range []StringStatus{StatusPending, StatusTranslated, StatusEdited} {
		if !s.Valid() {
			t.Errorf("status %q should be valid", s)
		}
	}
	if StringStatus("deleted").Valid() {
		t.Error("unknown status should be invalid")
	}
}

func TestSourceKindValid(t *testing.T) {
	if !KindProduct.Valid() || !KindPageBuilder.Valid() {
		t.Error("known kinds should be valid")
	}
	if SourceKind("widget").Valid() {
		t.Error("unknown kind should be invalid")
	}
}

func TestSwitcherStyleSanitize(t *testing.T) {
	def := DefaultSwitcherStyle()

	s := def
	s.BgColor = "not-a-color"
	s.TextColor = "#abc"
	s.BorderWidth = -3
	s.FontSize = 18
	s.Position = "under-the-fold"
	s.LabelFormat = "emoji"
	s.FontFamily = ""

	clean := s.Sanitize()

	if clean.BgColor != def.BgColor {
		t.Errorf("invalid color kept: %q", clean.BgColor)
	}
	if clean.TextColor != "#abc" {
		t.Errorf("valid short hex rejected: %q", clean.TextColor)
	}
	if clean.BorderWidth != 0 {
		t.Errorf("negative dimension not clamped: %d", clean.BorderWidth)
	}
	if clean.FontSize != 18 {
		t.Errorf("valid dimension changed: %d", clean.FontSize)
	}
	if clean.Position != def.Position {
		t.Errorf("invalid position kept: %q", clean.Position)
	}
	if clean.LabelFormat != def.LabelFormat {
		t.Errorf("invalid label format kept: %q", clean.LabelFormat)
	}
	if clean.FontFamily != def.FontFamily {
		t.Errorf("empty font family kept: %q", clean.FontFamily)
	}
}

func TestSwitcherStyleSanitizeIsIdempotent(t *testing.T) {
	s := DefaultSwitcherStyle()
	s.Position = "bottom-left"
	s.LabelFormat = "both"

	once := s.Sanitize()
	if once != s {
		t.Errorf("valid style changed by Sanitize: %+v", once)
	}
}
