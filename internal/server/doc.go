// Package server runs the reference sync server: startup, signal handling
// and graceful shutdown of the HTTP listener.
package server
