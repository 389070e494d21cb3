// Package parser extracts flashcard records from text exports: header
// directives, delimited rows with quoted multi-line fields, and the
// front/back column resolution.
package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// commentPrefix marks directive lines in text exports and comment rows in
// simple exports.
const commentPrefix = "#"

var (
	keyValueRe = regexp.MustCompile(`^#\s*([A-Za-z_-]+)\s*:\s*(.*)\s*$`)
	notetypeRe = regexp.MustCompile(`(?i)^#\s*notetype\s+column\s*:\s*(\d+)\s*$`)
	deckRe     = regexp.MustCompile(`(?i)^#\s*deck\s+column\s*:\s*(\d+)\s*$`)
	tagsRe     = regexp.MustCompile(`(?i)^#\s*tags\s+column\s*:\s*(\d+)\s*$`)
)

// Column is an optional zero-based column index.
type Column struct {
	index int
	set   bool
}

// At returns a Column set to the zero-based index i.
func At(i int) Column {
	return Column{index: i, set: true}
}

// Index returns the zero-based index and whether the column is set.
func (c Column) Index() (int, bool) {
	return c.index, c.set
}

// within reports whether the column is set and falls inside a row of width cells.
func (c Column) within(width int) bool {
	return c.set && c.index < width
}

// Config is the parse configuration resolved from a file's header directives.
type Config struct {
	Separator rune
	HTML      bool
	Notetype  Column
	Deck      Column
	Tags      Column
}

// DefaultConfig returns the configuration used when a file has no directives.
func DefaultConfig() Config {
	return Config{Separator: '\t'}
}

// ParseDirectives reads the leading "#" lines and returns the resolved
// configuration with the index of the first data line. Unrecognized
// directives are skipped. A repeated directive overrides the earlier one.
func ParseDirectives(lines []string) (Config, int) {
	cfg := DefaultConfig()
	idx := 0
	for ; idx < len(lines); idx++ {
		line := strings.TrimRight(lines[idx], "\r\n")
		if !strings.HasPrefix(line, commentPrefix) {
			break
		}

		if col, ok := columnDirective(notetypeRe, line); ok {
			cfg.Notetype = col
			continue
		}
		if col, ok := columnDirective(deckRe, line); ok {
			cfg.Deck = col
			continue
		}
		if col, ok := columnDirective(tagsRe, line); ok {
			cfg.Tags = col
			continue
		}

		m := keyValueRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(m[1]))
		val := strings.ToLower(strings.TrimSpace(m[2]))
		switch key {
		case "separator":
			switch {
			case strings.HasPrefix(val, "tab"):
				cfg.Separator = '\t'
			case strings.HasPrefix(val, "comma"):
				cfg.Separator = ','
			}
		case "html":
			cfg.HTML = val == "true"
		}
	}
	return cfg, idx
}

// columnDirective matches a "<name> column:N" line and converts N to a
// zero-based Column. N below 1 is not a valid column.
func columnDirective(re *regexp.Regexp, line string) (Column, bool) {
	m := re.FindStringSubmatch(line)
	if m == nil {
		return Column{}, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 {
		return Column{}, false
	}
	return At(n - 1), true
}
