package dsl

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// DomainLiteral prefixes every literal fingerprint. The version suffix allows
// the encoding to change without colliding with older fingerprints.
const DomainLiteral = "litcol/literal/v1"

// Fingerprint returns a content-addressed identity for v: the hex SHA-256 of
// DomainLiteral, a 0x00 separator and the literal's JSON encoding.
// Utf8 text is NFC-normalized first, so canonically equivalent strings share
// a fingerprint.
func Fingerprint(v LiteralValue) (string, error) {
	if s, ok := v.(Utf8); ok && utf8.ValidString(string(s)) {
		v = Utf8(norm.NFC.String(string(s)))
	}

	data, err := MarshalLiteral(v)
	if err != nil {
		return "", fmt.Errorf("fingerprint: %w", err)
	}

	h := sha256.New()
	h.Write([]byte(DomainLiteral))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil)), nil
}
