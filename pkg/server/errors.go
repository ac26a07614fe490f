package server

import "errors"

// Sentinel errors for session and server conditions.
var (
	// ErrSessionClosed is returned when writing to a closed session.
	ErrSessionClosed = errors.New("server: session closed")

	// ErrNoConnection is returned when a session has no connection.
	ErrNoConnection = errors.New("server: no connection")

	// ErrServerClosed is returned by Run after Shutdown.
	ErrServerClosed = errors.New("server: closed")
)
