// Package models defines the domain types for deckbuild.
package models

import (
	"path/filepath"
	"strings"
)

// DefaultNotetype is used when a row does not name its notetype.
const DefaultNotetype = "Basique"

// Flavor identifies how an export file is parsed.
type Flavor string

const (
	// FlavorText is a text export with optional "#key:value" header directives.
	FlavorText Flavor = "text"
	// FlavorSimple is a plain "front<TAB>back<TAB>tags" file.
	FlavorSimple Flavor = "simple"
)

// FlavorFor returns the flavor implied by a file name, or false when the
// file is not an export.
func FlavorFor(name string) (Flavor, bool) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt":
		return FlavorText, true
	case ".tsv", ".tab":
		return FlavorSimple, true
	default:
		return "", false
	}
}

// Card is one extracted record, ready to become a note.
type Card struct {
	Notetype string   `json:"notetype"`
	Deck     string   `json:"deck"` // relative to the root deck; "" is the root
	Front    string   `json:"front"`
	Back     string   `json:"back"`
	Tags     []string `json:"tags,omitempty"`
	Source   string   `json:"source"`
	HTML     bool     `json:"html"`
}

// ExportFile describes one input file found in the export directory.
type ExportFile struct {
	Path     string `json:"path"`
	Flavor   Flavor `json:"flavor"`
	Checksum string `json:"checksum"`
}

// SplitTags splits a comma-joined tag string into trimmed, non-empty,
// de-duplicated tokens in first-seen order.
func SplitTags(raw string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, t := range strings.Split(raw, ",") {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
