package render

import (
	"fmt"
	"io"

	"github.com/vango-dev/reactor/pkg/dom"
)

// PageData contains everything needed to render the page shell.
type PageData struct {
	// Title is the page title.
	Title string

	// Lang is the html lang attribute. Defaults to "en".
	Lang string

	// StyleSheets are paths of external stylesheets.
	StyleSheets []string

	// ContainerID is the id of the element the client mounts into.
	// Defaults to "main".
	ContainerID string

	// Body, when set, is rendered inside the container as initial content.
	Body *dom.MemNode

	// ClientScript is the path of the client script. Defaults to "/client.js".
	ClientScript string

	// SocketPath is the WebSocket endpoint handed to the client.
	// Defaults to "/ws".
	SocketPath string
}

// RenderPage renders a complete HTML document to w.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	if page.Lang == "" {
		page.Lang = "en"
	}
	if page.ContainerID == "" {
		page.ContainerID = "main"
	}
	if page.ClientScript == "" {
		page.ClientScript = "/client.js"
	}
	if page.SocketPath == "" {
		page.SocketPath = "/ws"
	}

	ew := &errWriter{w: w}
	fmt.Fprintf(ew, "<!DOCTYPE html>\n<html lang=\"%s\">\n<head>\n", escapeAttr(page.Lang))
	io.WriteString(ew, "  <meta charset=\"utf-8\">\n")
	io.WriteString(ew, "  <meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
	if page.Title != "" {
		fmt.Fprintf(ew, "  <title>%s</title>\n", escapeHTML(page.Title))
	}
	for _, href := range page.StyleSheets {
		fmt.Fprintf(ew, "  <link rel=\"stylesheet\" href=\"%s\">\n", escapeAttr(href))
	}
	io.WriteString(ew, "</head>\n<body>\n")

	fmt.Fprintf(ew, "<div id=\"%s\">", escapeAttr(page.ContainerID))
	if page.Body != nil {
		if err := r.renderNode(ew, page.Body, 0); err != nil {
			return err
		}
	}
	io.WriteString(ew, "</div>\n")

	fmt.Fprintf(ew, "<script src=\"%s\" data-socket=\"%s\" data-container=\"%s\" defer></script>\n",
		escapeAttr(page.ClientScript), escapeAttr(page.SocketPath), escapeAttr(page.ContainerID))
	io.WriteString(ew, "</body>\n</html>\n")
	return ew.err
}
