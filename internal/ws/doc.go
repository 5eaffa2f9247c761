// Package ws provides the live-update channel for word walls.
//
// The package implements:
//   - Hub: the ordered set of open connections and best-effort broadcast
//   - Client: one connection with its queued outbound frames
//   - Handler: upgrades HTTP requests, greets the client, and runs the pumps
//
// The channel is output-only. Inbound frames are read and discarded so that
// close frames and pongs are processed; when the peer goes away the client
// is unregistered.
package ws
