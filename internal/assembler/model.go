package assembler

import (
	"github.com/starford/deckbuild/internal/apkg"
	"github.com/starford/deckbuild/internal/checksum"
)

const modelCSS = `
.card { font-family: Inter, Segoe UI, Arial; font-size: 18px; line-height: 1.35; }
.front { font-weight: 600; }
.src { color: #777; font-size: 0.9em; }
`

// newModel builds the Front/Back/Source note type for a notetype name.
func newModel(notetype string) *apkg.Model {
	return &apkg.Model{
		ID:     checksum.ModelID(notetype),
		Name:   notetype + " – Basic (Front/Back)",
		Fields: []string{"Front", "Back", "Source"},
		Templates: []apkg.Template{{
			Name: "Card 1",
			QFmt: "<div class='front'>{{Front}}</div>",
			AFmt: "{{FrontSide}}<hr id='answer'><div class='back'>{{Back}}</div>" +
				"<div class='src'>{{#Source}}<hr><em>{{Source}}{{/Source}}</em></div>",
		}},
		CSS: modelCSS,
	}
}
