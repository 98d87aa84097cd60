// Where: internal/domain/asset/identifier.go
// What: Deterministic path -> Go identifier derivation and collision checks.
// Why: Identifiers must be decidable before any code is emitted.
package asset

import (
	"fmt"
	"go/token"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// identifierPrefix is prepended when a derived identifier would start with a digit.
const identifierPrefix = "Asset"

type runeKind int

const (
	kindSeparator runeKind = iota
	kindLower
	kindUpper
	kindDigit
)

// Identifier derives the variant identifier for a relative path.
//
// Accents are stripped (café -> cafe), every rune outside [A-Za-z0-9] separates
// words, and words also break on lower->upper, acronym->word and letter<->digit
// transitions. Words are Pascal-cased and joined: "ui/user-icon.png" -> "UiUserIconPng".
// A leading digit gets the "Asset" prefix: "1icon.png" -> "Asset1IconPng".
func Identifier(rel string) (string, error) {
	words := splitWords(stripMarks(rel))
	var b strings.Builder
	for _, word := range words {
		b.WriteString(pascal(word))
	}
	id := b.String()
	if id == "" {
		return "", fmt.Errorf("%w: %q contains no letters or digits", ErrInvalidIdentifier, rel)
	}
	if kindOf(rune(id[0])) == kindDigit {
		id = identifierPrefix + id
	}
	return id, nil
}

// FoldKey returns the key two identifiers are compared by. Identifiers that
// differ only in case collide: case-insensitive filesystems and tools would
// treat them as the same name.
func FoldKey(id string) string {
	return cases.Fold().String(id)
}

// CheckUnique fails with ErrDuplicateIdentifier when two entries share an
// identifier under FoldKey. The first colliding pair in entry order is reported.
func CheckUnique(entries []Entry) error {
	seen := make(map[string]Entry, len(entries))
	for _, entry := range entries {
		key := FoldKey(entry.Identifier)
		if first, ok := seen[key]; ok {
			return fmt.Errorf(
				"%w: %q and %q both map to %s",
				ErrDuplicateIdentifier,
				first.Path,
				entry.Path,
				entry.Identifier,
			)
		}
		seen[key] = entry
	}
	return nil
}

// ValidateName checks that name can be used as a Go type or package name.
func ValidateName(kind, name string) error {
	if !token.IsIdentifier(name) {
		return fmt.Errorf("%w: %s %q is not a Go identifier", ErrInvalidIdentifier, kind, name)
	}
	return nil
}

func stripMarks(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func splitWords(s string) []string {
	rs := []rune(s)
	words := make([]string, 0, 4)
	start := -1
	flush := func(end int) {
		if start >= 0 && end > start {
			words = append(words, string(rs[start:end]))
		}
		start = -1
	}

	for i, r := range rs {
		kind := kindOf(r)
		if kind == kindSeparator {
			flush(i)
			continue
		}
		if start < 0 {
			start = i
			continue
		}
		prev := kindOf(rs[i-1])
		switch {
		case prev == kindLower && kind == kindUpper:
			flush(i)
			start = i
		case prev == kindUpper && kind == kindUpper && i+1 < len(rs) && kindOf(rs[i+1]) == kindLower:
			// "HTTPServer": the last capital starts the next word.
			flush(i)
			start = i
		case (prev == kindDigit) != (kind == kindDigit):
			flush(i)
			start = i
		}
	}
	flush(len(rs))
	return words
}

func kindOf(r rune) runeKind {
	switch {
	case r >= 'a' && r <= 'z':
		return kindLower
	case r >= 'A' && r <= 'Z':
		return kindUpper
	case r >= '0' && r <= '9':
		return kindDigit
	default:
		return kindSeparator
	}
}

func pascal(word string) string {
	return strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
}
