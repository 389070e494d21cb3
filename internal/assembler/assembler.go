// Package assembler groups extracted cards into notes, decks, and note
// types, and hands the result to the package writer.
package assembler

import (
	"html"
	"strings"

	"github.com/starford/deckbuild/internal/apkg"
	"github.com/starford/deckbuild/internal/apperr"
	"github.com/starford/deckbuild/internal/checksum"
	"github.com/starford/deckbuild/internal/models"
)

// deckSeparator joins deck path segments.
const deckSeparator = "::"

// Option is a functional option for configuring an Assembler.
type Option func(*Assembler)

// WithPlainTextEscaping renders cards parsed with html disabled as escaped
// text, newlines becoming <br>.
func WithPlainTextEscaping(enabled bool) Option {
	return func(a *Assembler) {
		a.escapePlain = enabled
	}
}

// Assembler owns the per-run model and deck caches. It is not safe for
// concurrent use.
type Assembler struct {
	rootDeck    string
	escapePlain bool

	models     map[string]*apkg.Model
	modelOrder []*apkg.Model
	decks      map[string]*apkg.Deck
	deckOrder  []*apkg.Deck
	count      int
}

// New returns an Assembler that places decks under rootDeck.
func New(rootDeck string, opts ...Option) *Assembler {
	a := &Assembler{
		rootDeck: rootDeck,
		models:   make(map[string]*apkg.Model),
		decks:    make(map[string]*apkg.Deck),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Add turns c into a note and attaches it to its deck.
func (a *Assembler) Add(c models.Card) *apkg.Note {
	deck := a.deck(c.Deck)
	front, back := c.Front, c.Back
	if a.escapePlain && !c.HTML {
		front, back = escapePlainText(front), escapePlainText(back)
	}
	note := &apkg.Note{
		Model:  a.model(c.Notetype),
		Fields: []string{front, back, c.Source},
		Tags:   c.Tags,
		GUID:   checksum.GUID(c.Front, c.Back),
	}
	deck.AddNote(note)
	a.count++
	return note
}

// Count returns the number of notes added.
func (a *Assembler) Count() int {
	return a.count
}

// Decks returns the decks in first-use order.
func (a *Assembler) Decks() []*apkg.Deck {
	return a.deckOrder
}

// Models returns the note types in first-use order.
func (a *Assembler) Models() []*apkg.Model {
	return a.modelOrder
}

// Package returns a package holding every deck, or apperr.ErrNoCards when
// nothing was added.
func (a *Assembler) Package() (*apkg.Package, error) {
	if a.count == 0 {
		return nil, apperr.ErrNoCards
	}
	return apkg.NewPackage(a.deckOrder...), nil
}

// FullDeckName returns the hierarchical name for a deck path relative to
// the root deck.
func (a *Assembler) FullDeckName(path string) string {
	path = strings.Trim(strings.TrimSpace(path), ":")
	if path == "" {
		return a.rootDeck
	}
	return a.rootDeck + deckSeparator + path
}

func (a *Assembler) model(notetype string) *apkg.Model {
	if m, ok := a.models[notetype]; ok {
		return m
	}
	m := newModel(notetype)
	a.models[notetype] = m
	a.modelOrder = append(a.modelOrder, m)
	return m
}

func (a *Assembler) deck(path string) *apkg.Deck {
	name := a.FullDeckName(path)
	if d, ok := a.decks[name]; ok {
		return d
	}
	d := &apkg.Deck{ID: checksum.DeckID(name), Name: name}
	a.decks[name] = d
	a.deckOrder = append(a.deckOrder, d)
	return d
}

func escapePlainText(s string) string {
	s = html.EscapeString(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\n", "<br>")
}
