// Package http is the REST and websocket face of the sync server: device
// auth, batch push, the change feed, project membership and live
// collaboration sessions.
package http
