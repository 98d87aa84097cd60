// Where: internal/command/branding.go
// What: CLI naming.
// Why: Keep usage output consistent with the installed binary name.
package command

import (
	"os"
	"strings"

	"github.com/poruru-code/assetenum/internal/meta"
)

const configFileName = meta.ConfigFile

func cliName() string {
	name := strings.TrimSpace(os.Getenv("CLI_CMD"))
	if name == "" {
		name = meta.AppName
	}
	return name
}
