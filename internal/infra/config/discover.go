// Where: internal/infra/config/discover.go
// What: Project config discovery.
// Why: Let go:generate directives in nested packages find the module's assetenum.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/poruru-code/assetenum/internal/infra/envutil"
	"github.com/poruru-code/assetenum/internal/meta"
)

var errConfigNotFound = errors.New("project config not found")

// FindProjectConfig locates the config file.
// Priority order.
// 1. ASSETENUM_CONFIG environment variable (must point at an existing file).
// 2. Upward search for assetenum.yaml from startDir, stopping at the first go.mod.
func FindProjectConfig(startDir string) (string, error) {
	if path := envutil.GetHostEnv(envutil.SuffixConfig); path != "" {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			return "", fmt.Errorf("%w: %s=%s", errConfigNotFound, envutil.HostEnvKey(envutil.SuffixConfig), path)
		}
		return path, nil
	}

	if path, ok := findUpward(startDir); ok {
		return path, nil
	}
	return "", fmt.Errorf("%w: no %s above %s (set %s)",
		errConfigNotFound, meta.ConfigFile, startDir, envutil.HostEnvKey(envutil.SuffixConfig))
}

// findUpward walks parents of path. The module root (go.mod) bounds the search.
func findUpward(path string) (string, bool) {
	dir, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}
	for {
		candidate := filepath.Join(dir, meta.ConfigFile)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return "", false
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
