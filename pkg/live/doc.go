// Package live hosts the benchmark app for browsers over WebSocket.
//
// Every connection gets a Session with its own reactive runtime and a
// Recorder document. The recorder keeps a server-side mirror of the tree
// and logs every tree-construction call as a protocol.Op. After the app is
// mounted the session sends the recorded ops as one initial frame; after
// every forwarded event it sends the ops the event produced.
//
// Routes:
//
//	GET /           page shell
//	GET /client.js  browser client
//	GET /ws         WebSocket endpoint
//	GET /metrics    Prometheus metrics
//	GET /healthz    liveness probe
package live
