package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"testing"
)

func TestSum(t *testing.T) {
	// SHA-256 of the empty string.
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if got := Sum(nil); got != want {
		t.Errorf("Sum(nil) = %q, want %q", got, want)
	}
}

func TestStableID_MatchesHexPrefix(t *testing.T) {
	seed := "deck::OS Theory (202.1)::v1"
	h := sha256.Sum256([]byte(seed))
	prefix, err := strconv.ParseUint(hex.EncodeToString(h[:])[:16], 16, 64)
	if err != nil {
		t.Fatal(err)
	}
	want := int64(prefix & 0x7FFFFFFF)
	if got := StableID(seed); got != want {
		t.Errorf("StableID = %d, want %d", got, want)
	}
}

func TestStableID_Deterministic(t *testing.T) {
	a := ModelID("Basic")
	b := ModelID("Basic")
	if a != b {
		t.Errorf("ModelID not deterministic: %d vs %d", a, b)
	}
	if a <= 0 || a > 0x7FFFFFFF {
		t.Errorf("ModelID out of range: %d", a)
	}
	if ModelID("Basic") == ModelID("Cloze") {
		t.Error("different notetypes should get different ids")
	}
	if ModelID("x") == DeckID("x") {
		t.Error("model and deck seeds should not collide")
	}
}

func TestGUID(t *testing.T) {
	g := GUID("What is a mutex?", "A locking primitive")
	if len(g) != 32 {
		t.Errorf("len(GUID) = %d, want 32", len(g))
	}
	if g != GUID("What is a mutex?", "A locking primitive") {
		t.Error("GUID not deterministic")
	}
	if g == GUID("What is a mutex?", "A lock") {
		t.Error("different back should change GUID")
	}
	// The separator prevents ("ab","c") and ("a","bc") from colliding.
	if GUID("ab", "c") == GUID("a", "bc") {
		t.Error("field boundary should be part of the GUID")
	}
}

func TestFieldChecksum(t *testing.T) {
	if got := FieldChecksum("Q1"); got < 0 || got > 0xFFFFFFFF {
		t.Errorf("FieldChecksum out of range: %d", got)
	}
	if FieldChecksum("Q1") == FieldChecksum("Q2") {
		t.Error("different fields should differ")
	}
}
