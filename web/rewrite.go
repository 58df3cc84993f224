package web

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Marker pair protecting a region from link rewriting. The switcher emits
// these around itself so its alternate-language links survive the final
// pass.
const (
	NoRewriteOpen  = "<!-- gt-no-rewrite -->"
	NoRewriteClose = "<!-- /gt-no-rewrite -->"
)

var rewriteAttrs = map[string]bool{
	"href":   true,
	"src":    true,
	"action": true,
}

// scriptURLRe matches root-relative URL literals inside script text,
// including JSON-escaped slashes ("\/about\/team").
var scriptURLRe = regexp.MustCompile(`(["'])((?:\\?/)[a-zA-Z0-9_\-./]*)`)

// RewriteHTML runs the final pass over a rendered document, prefixing
// internal link attributes and root-relative URLs embedded in script text
// with the language prefix. Regions wrapped in the no-rewrite marker pair
// are carved out first and restored verbatim. The pass is idempotent:
// already-prefixed URLs are left alone.
func RewriteHTML(doc, lang string) (string, error) {
	if lang == "" {
		return doc, nil
	}

	segments, protected := carveProtected(doc)

	out, err := rewriteDocument(segments, lang)
	if err != nil {
		return "", err
	}

	for i, region := range protected {
		out = strings.Replace(out, placeholder(i), region, 1)
	}
	return out, nil
}

// carveProtected replaces each marked region with a comment placeholder
// that survives parsing and serialization.
func carveProtected(doc string) (string, []string) {
	var protected []string
	for {
		start := strings.Index(doc, NoRewriteOpen)
		if start < 0 {
			break
		}
		end := strings.Index(doc[start:], NoRewriteClose)
		if end < 0 {
			break
		}
		end += start + len(NoRewriteClose)

		protected = append(protected, doc[start:end])
		doc = doc[:start] + placeholder(len(protected)-1) + doc[end:]
	}
	return doc, protected
}

func placeholder(i int) string {
	return fmt.Sprintf("<!--gt:keep:%d-->", i)
}

func rewriteDocument(doc, lang string) (string, error) {
	gq, err := goquery.NewDocumentFromReader(strings.NewReader(doc))
	if err != nil {
		return "", fmt.Errorf("parsing document: %w", err)
	}

	gq.Find("*").Each(func(_ int, sel *goquery.Selection) {
		node := sel.Get(0)
		if node.Type != html.ElementNode {
			return
		}
		if node.Data == "script" {
			rewriteScript(node, lang)
			return
		}
		for i, attr := range node.Attr {
			if rewriteAttrs[attr.Key] || strings.HasPrefix(attr.Key, "data-") {
				node.Attr[i].Val = PrefixURL(attr.Val, lang)
			}
		}
	})

	return gq.Html()
}

// rewriteScript prefixes root-relative URL string literals in inline
// scripts, where page builders embed JSON with internal links.
func rewriteScript(node *html.Node, lang string) {
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != html.TextNode {
			continue
		}
		child.Data = scriptURLRe.ReplaceAllStringFunc(child.Data, func(match string) string {
			quote := match[:1]
			raw := match[1:]

			escaped := strings.Contains(raw, `\/`)
			path := strings.ReplaceAll(raw, `\/`, "/")

			prefixed := PrefixURL(path, lang)
			if prefixed == path {
				return match
			}
			if escaped {
				prefixed = strings.ReplaceAll(prefixed, "/", `\/`)
			}
			return quote + prefixed
		})
	}
}
