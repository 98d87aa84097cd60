// Where: internal/infra/ui/console.go
// What: Console output helpers for generator runs.
// Why: Keep status lines, verbose detail, and summaries uniform across commands.
package ui

import (
	"fmt"
	"io"
	"strings"
)

// Console writes formatted lines to Out.
type Console struct {
	Out          io.Writer
	EmojiEnabled bool
	Verbose      bool
}

// New creates a Console with emoji enabled and verbose output off.
func New(out io.Writer) *Console {
	return &Console{Out: out, EmojiEnabled: true}
}

// Header prints a title line, prefixed with emoji when enabled.
func (c *Console) Header(emoji, title string) {
	fmt.Fprintf(c.Out, "%s%s\n", c.prefix(emoji, ""), title)
}

// Item prints an aligned key/value row.
// Example:    entries:      12.
func (c *Console) Item(key string, value any) {
	fmt.Fprintf(c.Out, "   %-12s %v\n", key+":", value)
}

func (c *Console) Info(msg string) {
	fmt.Fprintln(c.Out, msg)
}

// Detail prints msg only in verbose mode.
func (c *Console) Detail(msg string) {
	if !c.Verbose {
		return
	}
	fmt.Fprintf(c.Out, "   %s\n", msg)
}

func (c *Console) Success(msg string) {
	fmt.Fprintf(c.Out, "%s%s\n", c.prefix("✅", "[ok] "), msg)
}

func (c *Console) Warn(msg string) {
	fmt.Fprintf(c.Out, "%s%s\n", c.prefix("⚠️", "[warn] "), msg)
}

func (c *Console) prefix(emoji, fallback string) string {
	if !c.EmojiEnabled || strings.TrimSpace(emoji) == "" {
		return fallback
	}
	return emoji + " "
}
