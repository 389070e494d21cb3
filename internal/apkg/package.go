package apkg

import (
	"strings"
	"time"
)

// Template is one card template of a Model.
type Template struct {
	Name string
	QFmt string
	AFmt string
}

// Model is a note type: its field names, card templates, and styling.
type Model struct {
	ID        int64
	Name      string
	Fields    []string
	Templates []Template
	CSS       string
}

// Note is one flashcard's content. Fields are ordered as Model.Fields.
type Note struct {
	Model  *Model
	Fields []string
	Tags   []string
	GUID   string
}

// Deck is a named group of notes. "::" in Name separates sub-decks.
type Deck struct {
	ID          int64
	Name        string
	Description string
	Notes       []*Note
}

// AddNote appends n to the deck.
func (d *Deck) AddNote(n *Note) {
	d.Notes = append(d.Notes, n)
}

// Package is the set of decks written into one archive.
type Package struct {
	Decks []*Deck
	// Now supplies the timestamps and the seed for note and card row ids.
	Now func() time.Time
}

// NewPackage returns a package holding decks, in order.
func NewPackage(decks ...*Deck) *Package {
	return &Package{Decks: decks, Now: time.Now}
}

// NoteCount returns the number of notes across all decks.
func (p *Package) NoteCount() int {
	n := 0
	for _, d := range p.Decks {
		n += len(d.Notes)
	}
	return n
}

// models returns the distinct models referenced by the package's notes,
// in first-seen order.
func (p *Package) models() []*Model {
	seen := make(map[int64]struct{})
	var out []*Model
	for _, d := range p.Decks {
		for _, n := range d.Notes {
			if _, ok := seen[n.Model.ID]; ok {
				continue
			}
			seen[n.Model.ID] = struct{}{}
			out = append(out, n.Model)
		}
	}
	return out
}

// normalizeTags replaces whitespace inside tags, which the collection
// format uses as the tag separator.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.Join(strings.Fields(t), "_")
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// joinTags renders tags in the collection's " a b " form.
func joinTags(tags []string) string {
	tags = normalizeTags(tags)
	if len(tags) == 0 {
		return ""
	}
	return " " + strings.Join(tags, " ") + " "
}
