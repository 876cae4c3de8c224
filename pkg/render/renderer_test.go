package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/vango-dev/reactor/pkg/dom"
)

func build(doc *dom.MemoryDocument, parent dom.Node, tag string, attrs ...string) dom.Node {
	n := doc.CreateElement(tag)
	for i := 0; i+1 < len(attrs); i += 2 {
		doc.SetAttribute(n, attrs[i], attrs[i+1])
	}
	doc.AppendChild(parent, n)
	return n
}

func TestRenderText(t *testing.T) {
	doc := dom.NewMemoryDocument()
	doc.AppendChild(doc.Root(), doc.CreateText("<script>alert('x')</script>"))

	got := InnerHTML(doc.Root())
	want := "&lt;script&gt;alert(&#39;x&#39;)&lt;/script&gt;"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderElement(t *testing.T) {
	doc := dom.NewMemoryDocument()
	div := build(doc, doc.Root(), "div", "class", "container", "id", "main")
	h1 := build(doc, div, "h1")
	doc.AppendChild(h1, doc.CreateText("Title"))

	got := HTML(doc.Root())
	want := `<body><div class="container" id="main"><h1>Title</h1></div></body>`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderAttributeOrderAndEscaping(t *testing.T) {
	doc := dom.NewMemoryDocument()
	a := build(doc, doc.Root(), "a", "title", "say \"hi\"\n", "class", "x")
	doc.SetAttribute(a, "title", "a&b")

	got := InnerHTML(doc.Root())
	want := `<a title="a&amp;b" class="x"></a>`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderBooleanAndVoid(t *testing.T) {
	doc := dom.NewMemoryDocument()
	build(doc, doc.Root(), "input", "type", "checkbox", "checked", "", "disabled", "false")
	build(doc, doc.Root(), "br")

	got := InnerHTML(doc.Root())
	want := `<input type="checkbox" checked><br>`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderPretty(t *testing.T) {
	doc := dom.NewMemoryDocument()
	table := build(doc, doc.Root(), "table")
	tr := build(doc, table, "tr")
	td := build(doc, tr, "td")
	a := build(doc, td, "a")
	doc.AppendChild(a, doc.CreateText("row"))

	r := NewRenderer(RendererConfig{Pretty: true})
	got, err := r.RenderToString(table.(*dom.MemNode))
	if err != nil {
		t.Fatal(err)
	}
	want := "<table>\n  <tr>\n    <td><a>row</a></td>\n  </tr>\n</table>"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderMarkers(t *testing.T) {
	doc := dom.NewMemoryDocument()
	btn := build(doc, doc.Root(), "button")
	doc.AddEventListener(btn, "click", dom.HandlerFunc(func(*dom.Event) {}))

	r := NewRenderer(RendererConfig{NodeIDs: true, Listeners: true})
	got, _ := r.RenderToString(btn.(*dom.MemNode))
	if !strings.Contains(got, `data-nid="`) || !strings.Contains(got, `data-on-click="true"`) {
		t.Errorf("missing markers: %q", got)
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("write failed") }

func TestRenderWriteError(t *testing.T) {
	doc := dom.NewMemoryDocument()
	build(doc, doc.Root(), "div")
	r := NewRenderer(RendererConfig{})
	if err := r.RenderToWriter(failWriter{}, doc.Root()); err == nil {
		t.Error("expected write error")
	}
}

func TestRenderPage(t *testing.T) {
	r := NewRenderer(RendererConfig{})
	var buf bytes.Buffer
	err := r.RenderPage(&buf, PageData{
		Title:       "Reactor <bench>",
		StyleSheets: []string{"/css/bootstrap.min.css"},
	})
	if err != nil {
		t.Fatal(err)
	}
	html := buf.String()
	for _, want := range []string{
		"<!DOCTYPE html>",
		`<html lang="en">`,
		"<title>Reactor &lt;bench&gt;</title>",
		`<link rel="stylesheet" href="/css/bootstrap.min.css">`,
		`<div id="main"></div>`,
		`<script src="/client.js" data-socket="/ws" data-container="main" defer></script>`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q", want)
		}
	}
}
