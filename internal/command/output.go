// Where: internal/command/output.go
// What: Output helpers for command adapters.
// Why: Centralize UserInterface construction and run summaries.
package command

import (
	"fmt"
	"io"

	"github.com/poruru-code/assetenum/internal/infra/ui"
	"github.com/poruru-code/assetenum/internal/usecase/generate"
)

func newUI(out io.Writer, emoji bool) ui.UserInterface {
	return ui.NewUI(out, ui.Options{Emoji: emoji})
}

func newVerboseUI(out io.Writer, emoji, verbose bool) ui.UserInterface {
	return ui.NewUI(out, ui.Options{Emoji: emoji, Verbose: verbose})
}

// reportResult prints one line per collection.
func reportResult(u ui.UserInterface, result generate.Result, check bool) {
	switch {
	case check:
		u.Success(fmt.Sprintf("%s is up to date (%d entries)", result.Output, result.Entries))
	case result.Changed:
		u.Success(fmt.Sprintf("wrote %s (%d entries)", result.Output, result.Entries))
	default:
		u.Info(fmt.Sprintf("%s unchanged (%d entries)", result.Output, result.Entries))
	}
	u.Detail(fmt.Sprintf("digest %s", result.Digest))
}
