// Where: internal/command/error_helpers.go
// What: Shared CLI error output.
// Why: Print every failure as one "✗" line and map it to exit code 1.
package command

import (
	"fmt"
	"io"
)

// exitWithError prints err and returns exit code 1.
func exitWithError(out io.Writer, err error) int {
	newUI(out, false).Info(fmt.Sprintf("✗ %v", err))
	return 1
}
