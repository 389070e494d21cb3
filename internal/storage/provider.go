// Package storage defines the workspace file-system abstraction used to read
// exports and persisted state and to write package artifacts.
package storage

import "github.com/starford/deckbuild/internal/models"

// Provider is the interface for workspace file operations.
type Provider interface {
	// ListExports returns the export files directly inside dir (relative to
	// the workspace root), sorted by name.
	ListExports(dir string) ([]models.ExportFile, error)
	// Read returns the raw bytes of the file at path (relative to the workspace root).
	Read(path string) ([]byte, error)
	// Write atomically writes content to path (relative to the workspace root).
	Write(path string, content []byte) error
}
