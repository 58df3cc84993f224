package extract

import (
	"encoding/json"
	"strings"
)

// Candidate is one translatable (text, context) pair emitted by an
// extractor. The context label records the semantic origin of the string,
// e.g. "builder_heading_title" or "product_title".
type Candidate struct {
	Text    string
	Context string
}

// contextPrefix tags page-builder candidates so the origin of a string is
// recoverable from its context label alone.
const contextPrefix = "builder"

// textKeys is the allow-list of node setting keys known to hold literal
// translatable text.
var textKeys = []string{
	"title", "title_text", "editor", "text", "description", "description_text",
	"content", "heading", "caption", "label", "button_text", "inner_text",
	"testimonial_content", "testimonial_name", "testimonial_job",
	"alert_title", "alert_description", "tab_title", "tab_content",
	"item_description", "prefix", "suffix", "before_text", "after_text",
	"highlighted_text", "rotating_text", "placeholder", "field_label",
	"button", "ribbon_title", "badge_text", "price", "sub_heading",
	"slide_heading", "slide_description", "slide_button_text",
}

// repeaterKeys is the allow-list of setting keys holding arrays of
// structured sub-items whose entries are scanned with the same text keys.
var repeaterKeys = []string{
	"tabs", "price_list", "slides", "icon_list", "social_icon_list",
	"items", "gallery", "carousel", "testimonials", "team_members",
	"features_list", "steps", "list", "form_fields",
}

// treeNode is the decoded shape of one page-builder element.
type treeNode struct {
	WidgetType string                     `json:"widgetType"`
	ElType     string                     `json:"elType"`
	Settings   map[string]json.RawMessage `json:"settings"`
	Elements   []treeNode                 `json:"elements"`
}

// ExtractTree walks a raw page-builder JSON document and returns all
// translatable candidates in document order. Invalid or empty input yields
// nil; extraction never fails. Documents that went through one or two
// rounds of backslash escaping (a common artifact of content migration
// tooling) are retried unescaped.
func ExtractTree(raw []byte) []Candidate {
	nodes := decodeTree(raw)
	if nodes == nil {
		return nil
	}

	var out []Candidate
	walkNodes(nodes, &out)
	return out
}

func decodeTree(raw []byte) []treeNode {
	raw = []byte(strings.TrimSpace(string(raw)))
	if len(raw) == 0 {
		return nil
	}

	var nodes []treeNode
	if err := json.Unmarshal(raw, &nodes); err == nil {
		return nodes
	}

	// Retry with one, then two rounds of unescaping.
	s := string(raw)
	for i := 0; i < 2; i++ {
		s = unescape(s)
		if err := json.Unmarshal([]byte(s), &nodes); err == nil {
			return nodes
		}
	}
	return nil
}

// unescape strips one level of backslash escaping.
func unescape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	escaped := false
	for _, r := range s {
		if escaped {
			b.WriteRune(r)
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		b.WriteRune(r)
	}
	if escaped {
		b.WriteRune('\\')
	}
	return b.String()
}

func walkNodes(nodes []treeNode, out *[]Candidate) {
	for _, node := range nodes {
		if node.Settings != nil {
			scanSettings(node.Settings, out)
		}
		if len(node.Elements) > 0 {
			walkNodes(node.Elements, out)
		}
	}
}

func scanSettings(settings map[string]json.RawMessage, out *[]Candidate) {
	for _, key := range textKeys {
		raw, ok := settings[key]
		if !ok {
			continue
		}
		val, ok := decodeString(raw)
		if !ok {
			continue
		}
		val = strings.TrimSpace(val)
		if val != "" && IsTranslatable(val) {
			*out = append(*out, Candidate{
				Text:    val,
				Context: contextPrefix + "_" + key,
			})
		}
	}

	for _, rkey := range repeaterKeys {
		raw, ok := settings[rkey]
		if !ok {
			continue
		}
		var items []map[string]json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			continue
		}
		for _, item := range items {
			for _, key := range textKeys {
				raw, ok := item[key]
				if !ok {
					continue
				}
				val, ok := decodeString(raw)
				if !ok {
					continue
				}
				val = strings.TrimSpace(val)
				if val != "" && IsTranslatable(val) {
					*out = append(*out, Candidate{
						Text:    val,
						Context: contextPrefix + "_" + rkey + "_" + key,
					})
				}
			}
		}
	}
}

func decodeString(raw json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// ExtractRecord emits candidates for a flat content record's fields. Empty
// fields are skipped; admissibility is checked the same way as for tree
// content.
func ExtractRecord(title, body, summary string) []Candidate {
	var out []Candidate
	fields := []struct {
		text    string
		context string
	}{
		{title, "product_title"},
		{body, "product_description"},
		{summary, "product_short_description"},
	}
	for _, f := range fields {
		text := strings.TrimSpace(f.text)
		if text != "" && IsTranslatable(text) {
			out = append(out, Candidate{Text: text, Context: f.context})
		}
	}
	return out
}
