package identifier

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Length is the fixed length of every generated identifier.
const Length = 12

// Alphabet is the URL-safe alphabet identifiers are drawn from.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_-"

// New generates a compact 12-character identifier. It is used as the
// primary key for users, events, agendas and agenda items.
func New() string {
	return gonanoid.MustGenerate(Alphabet, Length)
}

// Valid reports whether s has the shape of a generated identifier.
func Valid(s string) bool {
	if len(s) != Length {
		return false
	}
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '_' || c == '-':
		default:
			return false
		}
	}
	return true
}
