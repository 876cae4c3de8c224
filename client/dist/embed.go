// Package clientdist embeds the browser client served by the live host.
package clientdist

import _ "embed"

// ClientJS applies op frames to the page and forwards DOM events.
//
// It is served by the live host at "/client.js".
//
//go:embed client.js
var ClientJS []byte
