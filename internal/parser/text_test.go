package parser

import (
	"slices"
	"testing"

	"github.com/starford/deckbuild/internal/models"
)

func collect(t *testing.T, seq func(func(models.Card, error) bool)) []models.Card {
	t.Helper()
	var out []models.Card
	for c, err := range seq {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		out = append(out, c)
	}
	return out
}

func TestTextExport_DirectiveScenario(t *testing.T) {
	data := []byte("#separator:tab\n#notetype column:1\n#deck column:2\n" +
		"Basic\tOS::Scheduling\tWhat is a mutex?\tA locking primitive\tsync,os\n")
	cards := collect(t, TextExport("OS.txt", data))
	if len(cards) != 1 {
		t.Fatalf("len(cards) = %d, want 1", len(cards))
	}
	c := cards[0]
	if c.Notetype != "Basic" || c.Deck != "OS::Scheduling" {
		t.Errorf("notetype/deck = %q/%q", c.Notetype, c.Deck)
	}
	if c.Front != "What is a mutex?" || c.Back != "A locking primitive" {
		t.Errorf("front/back = %q/%q", c.Front, c.Back)
	}
	if !slices.Equal(c.Tags, []string{"sync", "os"}) {
		t.Errorf("tags = %v, want [sync os]", c.Tags)
	}
	if c.Source != "OS.txt" {
		t.Errorf("source = %q", c.Source)
	}
}

func TestTextExport_TagsColumn(t *testing.T) {
	data := []byte("#separator:tab\n#notetype column:2\n#deck column:3\n#tags column:1\n" +
		"sync, os\tBasic\tOS::Scheduling\tWhat is a mutex?\tA locking primitive\tignored\n")
	cards := collect(t, TextExport("OS.txt", data))
	if len(cards) != 1 {
		t.Fatalf("len(cards) = %d, want 1", len(cards))
	}
	if cards[0].Front != "What is a mutex?" || cards[0].Back != "A locking primitive" {
		t.Errorf("front/back = %q/%q", cards[0].Front, cards[0].Back)
	}
	if !slices.Equal(cards[0].Tags, []string{"sync", "os"}) {
		t.Errorf("tags = %v, want [sync os]", cards[0].Tags)
	}
}

func TestTextExport_QuotedMultilineField(t *testing.T) {
	data := []byte("#separator:comma\n#html:true\n" +
		"\"Line one\nLine two, with comma\",\"Answer \"\"quoted\"\"\"\n" +
		"Q2,A2\n")
	cards := collect(t, TextExport("multi.txt", data))
	if len(cards) != 2 {
		t.Fatalf("len(cards) = %d, want 2", len(cards))
	}
	if cards[0].Front != "Line one\nLine two, with comma" {
		t.Errorf("front = %q", cards[0].Front)
	}
	if cards[0].Back != `Answer "quoted"` {
		t.Errorf("back = %q", cards[0].Back)
	}
	if !cards[0].HTML {
		t.Error("html flag should be carried on the card")
	}
}

func TestTextExport_QuotedTabInTabSeparated(t *testing.T) {
	data := []byte("\"front\twith tab\"\tback\n")
	cards := collect(t, TextExport("t.txt", data))
	if len(cards) != 1 || cards[0].Front != "front\twith tab" || cards[0].Back != "back" {
		t.Errorf("cards = %+v", cards)
	}
}

// A closing quote followed by more text is kept as a literal quote and the
// field stays open, so the rest of the file folds into one cell.
func TestTextExport_TextAfterClosingQuoteRunsOn(t *testing.T) {
	data := []byte("Q1\tA1\n\"abc\"d\tback\nQ2\tA2\n")
	cards := collect(t, TextExport("t.txt", data))
	if len(cards) != 1 {
		t.Fatalf("len(cards) = %d, want 1: %+v", len(cards), cards)
	}
	if cards[0].Front != "Q1" || cards[0].Back != "A1" {
		t.Errorf("front/back = %q/%q", cards[0].Front, cards[0].Back)
	}
}

func TestTextExport_TrimKeepsInternalNewlines(t *testing.T) {
	data := []byte("\"  <b>Q</b>\n<br>  \"\t\"\n A\nB \"\n")
	cards := collect(t, TextExport("t.txt", data))
	if len(cards) != 1 {
		t.Fatalf("len(cards) = %d, want 1", len(cards))
	}
	if cards[0].Front != "<b>Q</b>\n<br>" || cards[0].Back != "A\nB" {
		t.Errorf("front/back = %q/%q", cards[0].Front, cards[0].Back)
	}
}

func TestTextExport_DropsEmptyFrontOrBack(t *testing.T) {
	data := []byte("Q1\t   \nQ2\tA2\n\t\tA3\n  \tA4\n")
	cards := collect(t, TextExport("t.txt", data))
	if len(cards) != 1 {
		t.Fatalf("len(cards) = %d, want 1: %+v", len(cards), cards)
	}
	if cards[0].Front != "Q2" || cards[0].Back != "A2" {
		t.Errorf("card = %+v, want Q2/A2", cards[0])
	}
}

func TestTextExport_FallbackDefaults(t *testing.T) {
	data := []byte("#tags column:1\nt1, t2\tQ\tA\n")
	cards := collect(t, TextExport("t.txt", data))
	if len(cards) != 1 {
		t.Fatalf("len(cards) = %d, want 1", len(cards))
	}
	c := cards[0]
	if c.Notetype != models.DefaultNotetype || c.Deck != "" {
		t.Errorf("notetype/deck = %q/%q, want defaults", c.Notetype, c.Deck)
	}
	if c.Front != "Q" || c.Back != "A" {
		t.Errorf("front/back = %q/%q", c.Front, c.Back)
	}
	if !slices.Equal(c.Tags, []string{"t1", "t2"}) {
		t.Errorf("tags = %v", c.Tags)
	}
}

func TestTextExport_SkipsNarrowRows(t *testing.T) {
	data := []byte("onlyone\n\nQ\tA\n")
	cards := collect(t, TextExport("t.txt", data))
	if len(cards) != 1 || cards[0].Front != "Q" {
		t.Errorf("cards = %+v", cards)
	}
}

func TestTextExport_Restartable(t *testing.T) {
	seq := TextExport("t.txt", []byte("Q1\tA1\nQ2\tA2\n"))
	first := collect(t, seq)
	second := collect(t, seq)
	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("lens = %d, %d; want 2, 2", len(first), len(second))
	}
	if first[1].Front != second[1].Front {
		t.Error("second pass diverged")
	}
}

func TestTextExport_EarlyStop(t *testing.T) {
	n := 0
	for range TextExport("t.txt", []byte("Q1\tA1\nQ2\tA2\nQ3\tA3\n")) {
		n++
		if n == 1 {
			break
		}
	}
	if n != 1 {
		t.Errorf("n = %d, want 1", n)
	}
}

func TestTextExport_ByteOrderMark(t *testing.T) {
	data := []byte("\ufeff#separator:comma\nQ,A\n")
	cards := collect(t, TextExport("bom.txt", data))
	if len(cards) != 1 || cards[0].Front != "Q" {
		t.Errorf("cards = %+v", cards)
	}
}

func TestTextExport_CRLF(t *testing.T) {
	data := []byte("#separator:comma\r\n#html:true\r\nQ,A\r\n")
	cards := collect(t, TextExport("crlf.txt", data))
	if len(cards) != 1 || cards[0].Back != "A" || !cards[0].HTML {
		t.Errorf("cards = %+v", cards)
	}
}
