// Package server holds configuration for the HTTP status server.
package server
