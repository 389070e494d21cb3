package apkg

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/starford/deckbuild/internal/checksum"
)

const (
	collectionEntry = "collection.anki2"
	mediaEntry      = "media"
	fieldSeparator  = "\x1f"
)

var htmlTagRe = regexp.MustCompile(`<[^>]*>`)

// Bytes renders the package archive.
func (p *Package) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := p.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteTo writes the package archive to w.
func (p *Package) WriteTo(w io.Writer) error {
	dir, err := os.MkdirTemp("", "deckbuild-apkg-*")
	if err != nil {
		return fmt.Errorf("apkg: create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	dbPath := filepath.Join(dir, collectionEntry)
	if err := p.writeCollection(dbPath); err != nil {
		return err
	}
	db, err := os.ReadFile(dbPath)
	if err != nil {
		return fmt.Errorf("apkg: read collection: %w", err)
	}

	zw := zip.NewWriter(w)
	for _, e := range []struct {
		name string
		data []byte
	}{
		{collectionEntry, db},
		{mediaEntry, []byte("{}")},
	} {
		f, err := zw.Create(e.name)
		if err != nil {
			return fmt.Errorf("apkg: zip %s: %w", e.name, err)
		}
		if _, err := f.Write(e.data); err != nil {
			return fmt.Errorf("apkg: zip %s: %w", e.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("apkg: close zip: %w", err)
	}
	return nil
}

func (p *Package) writeCollection(path string) error {
	conn, err := openCollection(path)
	if err != nil {
		return err
	}
	defer conn.Close()

	now := time.Now()
	if p.Now != nil {
		now = p.Now()
	}
	modSec := now.Unix()
	modMS := now.UnixMilli()

	cj, err := buildCollectionJSON(p.Decks, p.models(), modSec)
	if err != nil {
		return fmt.Errorf("apkg: encode collection: %w", err)
	}

	tx, err := conn.Begin()
	if err != nil {
		return fmt.Errorf("apkg: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	_, err = tx.Exec(`
		INSERT INTO col (id, crt, mod, scm, ver, dty, usn, ls, conf, models, decks, dconf, tags)
		VALUES (1, ?, ?, ?, ?, 0, 0, 0, ?, ?, ?, ?, ?)
	`, modSec, modMS, modMS, schemaVersion, cj.Conf, cj.Models, cj.Decks, cj.DConf, cj.Tags)
	if err != nil {
		return fmt.Errorf("apkg: insert col: %w", err)
	}

	noteStmt, err := tx.Prepare(`
		INSERT INTO notes (id, guid, mid, mod, usn, tags, flds, sfld, csum, flags, data)
		VALUES (?, ?, ?, ?, -1, ?, ?, ?, ?, 0, '')
	`)
	if err != nil {
		return fmt.Errorf("apkg: prepare note insert: %w", err)
	}
	defer noteStmt.Close()

	cardStmt, err := tx.Prepare(`
		INSERT INTO cards (id, nid, did, ord, mod, usn, type, queue, due, ivl, factor, reps, lapses, left, odue, odid, flags, data)
		VALUES (?, ?, ?, ?, ?, -1, 0, 0, ?, 0, 0, 0, 0, 0, 0, 0, 0, '')
	`)
	if err != nil {
		return fmt.Errorf("apkg: prepare card insert: %w", err)
	}
	defer cardStmt.Close()

	// Row ids only need to be unique within the collection.
	nextID := modMS
	due := 0
	for _, d := range p.Decks {
		for _, n := range d.Notes {
			if err := validateNote(n); err != nil {
				return err
			}
			nextID++
			noteID := nextID
			sortField := htmlTagRe.ReplaceAllString(n.Fields[0], "")
			_, err := noteStmt.Exec(noteID, n.GUID, n.Model.ID, modSec, joinTags(n.Tags),
				strings.Join(n.Fields, fieldSeparator), sortField, checksum.FieldChecksum(sortField))
			if err != nil {
				return fmt.Errorf("apkg: insert note: %w", err)
			}
			due++
			for ord := range n.Model.Templates {
				nextID++
				if _, err := cardStmt.Exec(nextID, noteID, d.ID, ord, modSec, due); err != nil {
					return fmt.Errorf("apkg: insert card: %w", err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("apkg: commit: %w", err)
	}
	return nil
}

func validateNote(n *Note) error {
	if n.Model == nil {
		return fmt.Errorf("apkg: note %s has no model", n.GUID)
	}
	if len(n.Fields) != len(n.Model.Fields) {
		return fmt.Errorf("apkg: note %s has %d fields, model %q wants %d",
			n.GUID, len(n.Fields), n.Model.Name, len(n.Model.Fields))
	}
	return nil
}
