package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/starford/deckbuild/internal/models"
)

const byteOrderMark = "\ufeff"

// TextExport decodes a text export with optional header directives. Each
// range over the returned sequence decodes data from the start. Rows
// without usable front and back text are dropped. Decoding stops at the
// first read error, which is yielded once.
func TextExport(source string, data []byte) iter.Seq2[models.Card, error] {
	return func(yield func(models.Card, error) bool) {
		text := strings.TrimPrefix(string(data), byteOrderMark)
		lines := strings.SplitAfter(text, "\n")
		cfg, start := ParseDirectives(lines)

		r := newReader(strings.Join(lines[start:], ""), cfg.Separator)
		for {
			cols, err := r.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(models.Card{}, fmt.Errorf("parser: %s: %w", source, err))
				return
			}
			card, ok := cardFromRow(cfg, cols, source)
			if !ok {
				continue
			}
			if !yield(card, nil) {
				return
			}
		}
	}
}

func cardFromRow(cfg Config, cols []string, source string) (models.Card, bool) {
	if len(cols) == 0 {
		return models.Card{}, false
	}
	fi, bi, ok := ResolveColumns(cfg, len(cols))
	if !ok {
		return models.Card{}, false
	}

	front := strings.TrimSpace(cols[fi])
	back := strings.TrimSpace(cols[bi])
	if front == "" || back == "" {
		return models.Card{}, false
	}

	notetype := cell(cols, cfg.Notetype)
	if notetype == "" {
		notetype = models.DefaultNotetype
	}
	return models.Card{
		Notetype: notetype,
		Deck:     cell(cols, cfg.Deck),
		Front:    front,
		Back:     back,
		Tags:     models.SplitTags(cell(cols, tagsColumn(cfg, bi))),
		Source:   source,
		HTML:     cfg.HTML,
	}, true
}

// tagsColumn returns the declared tags column. In the notetype/deck layout
// without a declared tags column, the cell after back holds the tags.
func tagsColumn(cfg Config, back int) Column {
	if _, ok := cfg.Tags.Index(); ok {
		return cfg.Tags
	}
	nt, ntSet := cfg.Notetype.Index()
	deck, deckSet := cfg.Deck.Index()
	if ntSet && deckSet && back == max(nt, deck)+2 {
		return At(back + 1)
	}
	return Column{}
}

// cell returns the trimmed value of column c, or "" when c is unset or
// outside the row.
func cell(cols []string, c Column) string {
	if !c.within(len(cols)) {
		return ""
	}
	return strings.TrimSpace(cols[c.index])
}

// newReader returns a lenient delimited-text reader: double-quote quoting
// with doubled-quote escapes, bare quotes kept literally, and rows of any
// width.
func newReader(data string, sep rune) *csv.Reader {
	r := csv.NewReader(strings.NewReader(data))
	r.Comma = sep
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	return r
}
