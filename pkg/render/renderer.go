package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/vango-dev/reactor/pkg/dom"
)

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty enables indented output. Inline elements and text stay on
	// their parent's line.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces.
	Indent string

	// NodeIDs adds a data-nid attribute carrying each element's document id.
	NodeIDs bool

	// Listeners adds data-on-<event> markers for elements with handlers.
	Listeners bool
}

// Renderer writes MemNode trees as HTML.
type Renderer struct {
	config RendererConfig
}

// NewRenderer creates a Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// HTML renders n with the default configuration.
func HTML(n *dom.MemNode) string {
	s, _ := NewRenderer(RendererConfig{}).RenderToString(n)
	return s
}

// InnerHTML renders the children of n with the default configuration.
func InnerHTML(n *dom.MemNode) string {
	r := NewRenderer(RendererConfig{})
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		_ = r.renderNode(&buf, c, 0)
	}
	return buf.String()
}

// RenderToString renders n and its descendants to a string.
func (r *Renderer) RenderToString(n *dom.MemNode) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams n and its descendants to w.
func (r *Renderer) RenderToWriter(w io.Writer, n *dom.MemNode) error {
	if n == nil {
		return nil
	}
	ew := &errWriter{w: w}
	err := r.renderNode(ew, n, 0)
	if ew.err != nil {
		return ew.err
	}
	return err
}

func (r *Renderer) renderNode(w io.Writer, n *dom.MemNode, depth int) error {
	switch n.Kind() {
	case dom.TextNode:
		_, err := io.WriteString(w, escapeHTML(n.Text()))
		return err
	case dom.ElementNode:
		return r.renderElement(w, n, depth)
	default:
		return fmt.Errorf("render: unknown node kind %d", n.Kind())
	}
}

func (r *Renderer) renderElement(w io.Writer, n *dom.MemNode, depth int) error {
	tag := n.Tag()
	fmt.Fprintf(w, "<%s", tag)
	r.renderAttributes(w, n)
	io.WriteString(w, ">")

	if isVoidElement(tag) {
		return nil
	}

	block := r.config.Pretty && hasBlockChild(n)
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if block {
			io.WriteString(w, "\n")
			r.writeIndent(w, depth+1)
		}
		if err := r.renderNode(w, c, depth+1); err != nil {
			return err
		}
	}
	if block {
		io.WriteString(w, "\n")
		r.writeIndent(w, depth)
	}
	_, err := fmt.Fprintf(w, "</%s>", tag)
	return err
}

func (r *Renderer) renderAttributes(w io.Writer, n *dom.MemNode) {
	for _, a := range n.Attrs() {
		if isBooleanAttr(a.Name) {
			switch a.Value {
			case "false":
				continue
			case "", "true", a.Name:
				fmt.Fprintf(w, " %s", a.Name)
				continue
			}
		}
		fmt.Fprintf(w, ` %s="%s"`, a.Name, escapeAttr(a.Value))
	}
	if r.config.NodeIDs {
		fmt.Fprintf(w, ` data-nid="%d"`, n.NodeID())
	}
	if r.config.Listeners {
		for _, event := range n.Events() {
			fmt.Fprintf(w, ` data-on-%s="true"`, event)
		}
	}
}

// hasBlockChild reports whether any child is a non-inline element.
func hasBlockChild(n *dom.MemNode) bool {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if c.Kind() == dom.ElementNode && !isInlineElement(c.Tag()) {
			return true
		}
	}
	return false
}

func (r *Renderer) writeIndent(w io.Writer, depth int) {
	for i := 0; i < depth; i++ {
		io.WriteString(w, r.config.Indent)
	}
}

// errWriter remembers the first write error and drops later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}
