package web

import (
	"strings"
	"testing"
)

func TestRewriteHTMLAttributes(t *testing.T) {
	doc := `<!DOCTYPE html><html><head></head><body>
<a href="/about">About</a>
<a href="https://other.example/page">External</a>
<img src="/uploads/logo.png">
<form action="/contact"></form>
<div data-url="/shop"></div>
</body></html>`

	out, err := RewriteHTML(doc, "es")
	if err != nil {
		t.Fatalf("RewriteHTML: %v", err)
	}

	checks := []struct {
		want string
		desc string
	}{
		{`href="/es/about"`, "internal anchor prefixed"},
		{`href="https://other.example/page"`, "external anchor untouched"},
		{`src="/uploads/logo.png"`, "excluded upload path untouched"},
		{`action="/es/contact"`, "form action prefixed"},
		{`data-url="/es/shop"`, "data attribute prefixed"},
	}
	for _, c := range checks {
		if !strings.Contains(out, c.want) {
			t.Errorf("%s: output missing %q\n%s", c.desc, c.want, out)
		}
	}
}

func TestRewriteHTMLIdempotent(t *testing.T) {
	doc := `<html><head></head><body><a href="/about">About</a><a href="/es/shop">Shop</a></body></html>`

	once, err := RewriteHTML(doc, "es")
	if err != nil {
		t.Fatalf("RewriteHTML: %v", err)
	}
	twice, err := RewriteHTML(once, "es")
	if err != nil {
		t.Fatalf("RewriteHTML second pass: %v", err)
	}
	if once != twice {
		t.Errorf("not idempotent:\nfirst:  %s\nsecond: %s", once, twice)
	}
	if strings.Contains(twice, "/es/es/") {
		t.Errorf("double prefix in output: %s", twice)
	}
}

func TestRewriteHTMLHonoursMarkers(t *testing.T) {
	doc := `<html><head></head><body>
<a href="/outside">Outside</a>
` + NoRewriteOpen + `<a href="/protected">Keep</a>` + NoRewriteClose + `
</body></html>`

	out, err := RewriteHTML(doc, "es")
	if err != nil {
		t.Fatalf("RewriteHTML: %v", err)
	}

	if !strings.Contains(out, `href="/es/outside"`) {
		t.Errorf("unprotected link not rewritten: %s", out)
	}
	if !strings.Contains(out, `href="/protected"`) {
		t.Errorf("protected link was rewritten: %s", out)
	}
	if !strings.Contains(out, NoRewriteOpen) || !strings.Contains(out, NoRewriteClose) {
		t.Errorf("markers dropped from output: %s", out)
	}
}

func TestRewriteHTMLMultipleMarkedRegions(t *testing.T) {
	doc := `<html><head></head><body>` +
		NoRewriteOpen + `<a href="/one">1</a>` + NoRewriteClose +
		`<a href="/middle">m</a>` +
		NoRewriteOpen + `<a href="/two">2</a>` + NoRewriteClose +
		`</body></html>`

	out, err := RewriteHTML(doc, "es")
	if err != nil {
		t.Fatalf("RewriteHTML: %v", err)
	}
	if !strings.Contains(out, `href="/one"`) || !strings.Contains(out, `href="/two"`) {
		t.Errorf("protected regions rewritten: %s", out)
	}
	if !strings.Contains(out, `href="/es/middle"`) {
		t.Errorf("region between markers not rewritten: %s", out)
	}
}

func TestRewriteHTMLScriptJSON(t *testing.T) {
	doc := `<html><head></head><body>
<script>var cfg = {"url":"\/shop\/cart","plain":"/about","ext":"https:\/\/other.example\/x"};</script>
</body></html>`

	out, err := RewriteHTML(doc, "es")
	if err != nil {
		t.Fatalf("RewriteHTML: %v", err)
	}

	if !strings.Contains(out, `"url":"\/es\/shop\/cart"`) {
		t.Errorf("escaped JSON URL not prefixed: %s", out)
	}
	if !strings.Contains(out, `"plain":"/es/about"`) {
		t.Errorf("plain script URL not prefixed: %s", out)
	}
	if !strings.Contains(out, `https:\/\/other.example\/x`) {
		t.Errorf("external script URL modified: %s", out)
	}
}

func TestRewriteHTMLEmptyLang(t *testing.T) {
	doc := `<a href="/about">About</a>`
	out, err := RewriteHTML(doc, "")
	if err != nil {
		t.Fatalf("RewriteHTML: %v", err)
	}
	if out != doc {
		t.Errorf("empty language should be a no-op, got %s", out)
	}
}
