package server

// Server is one listener of the sync server. RunServer blocks until the
// listener stops; Shutdown drains it.
type Server interface {
	RunServer()
	Shutdown()
}
