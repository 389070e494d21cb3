// Package checksum derives content digests and the deterministic identifiers
// that keep models, decks, and notes stable across rebuilds.
package checksum

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"strconv"
)

// idMask keeps identifiers inside the positive 32-bit signed range.
const idMask = 0x7FFFFFFF

// guidSeparator joins front and back before hashing (U+241F SYMBOL FOR UNIT SEPARATOR).
const guidSeparator = "␟"

// Sum returns the hex-encoded SHA-256 digest of data.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// StableID maps a semantic seed such as "model::Basic::v1" to a positive id.
// It takes the first 64 bits of SHA-256(seed) and masks them to 31 bits.
func StableID(seed string) int64 {
	h := sha256.Sum256([]byte(seed))
	return int64(binary.BigEndian.Uint64(h[:8]) & idMask)
}

// ModelID returns the stable id of the model for a notetype.
func ModelID(notetype string) int64 {
	return StableID("model::" + notetype + "::v1")
}

// DeckID returns the stable id of a deck by its full hierarchical name.
func DeckID(fullName string) int64 {
	return StableID("deck::" + fullName + "::v1")
}

// GUID returns the content-derived note identity for a front/back pair.
func GUID(front, back string) string {
	h := md5.Sum([]byte(front + guidSeparator + back))
	return hex.EncodeToString(h[:])
}

// FieldChecksum is the duplicate-detection checksum Anki stores for a
// note's first field: the first 8 hex digits of its SHA-1 as an integer.
func FieldChecksum(field string) int64 {
	h := sha1.Sum([]byte(field))
	v, _ := strconv.ParseInt(hex.EncodeToString(h[:4]), 16, 64)
	return v
}
