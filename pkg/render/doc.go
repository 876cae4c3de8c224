// Package render serialises in-memory document trees to HTML.
//
// It renders the *dom.MemNode trees produced by dom.MemoryDocument: the
// reactive view is built once into the document and render turns the
// resulting tree, in its current state, into markup. It is used by the
// render command and by golden tests; the live host never sends HTML after
// the page shell.
//
// # Basic Usage
//
//	r := render.NewRenderer(render.RendererConfig{})
//	html, err := r.RenderToString(doc.Root())
//
// # Full Page Rendering
//
//	err := r.RenderPage(w, render.PageData{
//	    Title:        "reactor",
//	    ContainerID:  "main",
//	    ClientScript: "/client.js",
//	})
//
// # Security
//
// Text and attribute values are always escaped.
package render
