// Package server runs the HTTP and gRPC listeners of the sync server next
// to the collaboration housekeeping workers and stops all of them together
// on SIGINT or SIGTERM.
package server
