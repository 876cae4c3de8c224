// Package protocol implements the binary wire format between a live host
// and a browser client.
//
// Every message is a frame:
//
//	┌────────────┬────────────┬──────────────────────────────┐
//	│ Frame Type │ Flags      │ Payload Length               │
//	│ (1 byte)   │ (1 byte)   │ (4 bytes, big-endian)        │
//	└────────────┴────────────┴──────────────────────────────┘
//	│ Payload (variable length)                               │
//	└─────────────────────────────────────────────────────────┘
//
// The server sends FrameHello once, then FrameOps carrying batches of
// tree-construction operations. The client sends FrameEvent for each DOM
// event it forwards. FrameError reports a failure, and a fatal error is
// followed by the connection closing.
//
// Integers inside payloads are unsigned varints. Strings are a varint
// length followed by UTF-8 bytes. Node ids are the server document's ids;
// id 0 means "none" (for example, append instead of insert-before).
package protocol
