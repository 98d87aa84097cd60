// Package envutil provides helper functions for environment variable handling.
package envutil

import (
	"os"
	"strings"

	"github.com/poruru-code/assetenum/internal/meta"
)

// Suffixes of tool-level environment variables.
const (
	SuffixConfig  = "CONFIG"
	SuffixPackage = "PACKAGE"
	SuffixMode    = "MODE"
	SuffixNoEmoji = "NO_EMOJI"
)

// HostEnvKey prefixes suffix with the tool's env prefix.
// Example: HostEnvKey("CONFIG") returns "ASSETENUM_CONFIG".
func HostEnvKey(suffix string) string {
	return meta.EnvPrefix + "_" + suffix
}

// GetHostEnv returns the trimmed value of a tool-level variable.
func GetHostEnv(suffix string) string {
	return strings.TrimSpace(os.Getenv(HostEnvKey(suffix)))
}

// HostEnvBool reports whether a tool-level variable is set to a truthy value.
func HostEnvBool(suffix string) bool {
	switch strings.ToLower(GetHostEnv(suffix)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// GoGenerate holds the variables `go generate` exports to directives.
type GoGenerate struct {
	Package string
	File    string
}

// GoGenerateEnv reads GOPACKAGE and GOFILE. Both are empty outside go generate.
func GoGenerateEnv() GoGenerate {
	return GoGenerate{
		Package: strings.TrimSpace(os.Getenv("GOPACKAGE")),
		File:    strings.TrimSpace(os.Getenv("GOFILE")),
	}
}

// Active reports whether the process runs under go generate.
func (g GoGenerate) Active() bool {
	return g.Package != "" && g.File != ""
}
