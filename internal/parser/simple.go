package parser

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/starford/deckbuild/internal/models"
)

// SimpleExport decodes a "front<TAB>back<TAB>tags" file. The tags column is
// optional and rows whose first cell starts with "#" are comments. Every
// card gets the default notetype and the root deck.
func SimpleExport(source string, data []byte) iter.Seq2[models.Card, error] {
	return func(yield func(models.Card, error) bool) {
		text := strings.TrimPrefix(string(data), byteOrderMark)
		r := newReader(text, '\t')
		for {
			row, err := r.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(models.Card{}, fmt.Errorf("parser: %s: %w", source, err))
				return
			}
			if len(row) == 0 || strings.HasPrefix(strings.TrimSpace(row[0]), commentPrefix) {
				continue
			}
			for len(row) < 3 {
				row = append(row, "")
			}
			front := strings.TrimSpace(row[0])
			back := strings.TrimSpace(row[1])
			if front == "" || back == "" {
				continue
			}
			card := models.Card{
				Notetype: models.DefaultNotetype,
				Front:    front,
				Back:     back,
				Tags:     models.SplitTags(row[2]),
				Source:   source,
			}
			if !yield(card, nil) {
				return
			}
		}
	}
}

// Export dispatches to the decoder for flavor.
func Export(flavor models.Flavor, source string, data []byte) (iter.Seq2[models.Card, error], error) {
	switch flavor {
	case models.FlavorText:
		return TextExport(source, data), nil
	case models.FlavorSimple:
		return SimpleExport(source, data), nil
	default:
		return nil, fmt.Errorf("parser: unknown flavor %q", flavor)
	}
}
