// Where: internal/infra/render/mode.go
// What: Content embedding modes of the generated table.
// Why: Let callers pick literals (self-contained) or //go:embed (smaller source files).
package render

import (
	"errors"
	"fmt"
	"strings"
)

// Mode selects how file contents land in the generated source.
type Mode string

const (
	// ModeLiteral writes contents as quoted Go string literals.
	ModeLiteral Mode = "literal"
	// ModeEmbed emits a //go:embed string variable per file. The collection
	// root must live under the generated file's directory.
	ModeEmbed Mode = "embed"
)

var errUnknownMode = errors.New("unknown mode")

// ParseMode accepts "literal" or "embed"; an empty value means literal.
func ParseMode(value string) (Mode, error) {
	mode := Mode(strings.ToLower(strings.TrimSpace(value)))
	if mode == "" {
		return ModeLiteral, nil
	}
	if err := mode.Validate(); err != nil {
		return "", err
	}
	return mode, nil
}

// Validate rejects unknown modes.
func (m Mode) Validate() error {
	switch m {
	case ModeLiteral, ModeEmbed:
		return nil
	}
	return fmt.Errorf("%w %q (use %s or %s)", errUnknownMode, string(m), ModeLiteral, ModeEmbed)
}
