// Where: internal/architecture/layering_test.go
// What: Layer dependency guard tests for internal packages.
// Why: Keep domain pure and stop infra or use cases from reaching into the CLI.
package architecture

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

const modulePath = "github.com/poruru-code/assetenum/"

// forbiddenExternal lists third-party imports a layer must not use directly.
var forbiddenExternal = map[string][]string{
	"domain": {
		"github.com/alecthomas/kong",
		"github.com/fsnotify/fsnotify",
		"github.com/go-git/go-billy",
		"gopkg.in/yaml.v3",
		"sigs.k8s.io/yaml",
	},
	"usecase": {
		"github.com/alecthomas/kong",
		"github.com/joho/godotenv",
	},
}

func TestLayeringRules(t *testing.T) {
	t.Parallel()

	root := resolveModuleRoot(t)
	violations := scanImports(t, root, func(rel, importPath string) bool {
		source := layerOf(rel)
		if source == "" {
			return false
		}
		if strings.HasPrefix(importPath, modulePath) {
			return violatesRule(source, layerOf(strings.TrimPrefix(importPath, modulePath)))
		}
		for _, prefix := range forbiddenExternal[layerName(source)] {
			if strings.HasPrefix(importPath, prefix) {
				return true
			}
		}
		return false
	})

	if len(violations) > 0 {
		t.Fatalf("layering rule violations:\n%s", strings.Join(violations, "\n"))
	}
}

func TestPublicPackagesStayOutsideInternal(t *testing.T) {
	t.Parallel()

	root := resolveModuleRoot(t)
	violations := scanImports(t, root, func(rel, importPath string) bool {
		return strings.HasPrefix(filepath.ToSlash(rel), "pkg/") &&
			strings.HasPrefix(importPath, modulePath+"internal/")
	})
	if len(violations) > 0 {
		t.Fatalf("pkg must not depend on internal packages:\n%s", strings.Join(violations, "\n"))
	}
}

// scanImports reports "file -> import" for every non-test import matched by bad.
func scanImports(t *testing.T, root string, bad func(rel, importPath string) bool) []string {
	t.Helper()
	fset := token.NewFileSet()
	violations := []string{}

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if name := d.Name(); path != root && (strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".go") || strings.HasSuffix(d.Name(), "_test.go") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		file, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			return err
		}
		for _, imp := range file.Imports {
			importPath := strings.Trim(imp.Path.Value, "\"")
			if bad(rel, importPath) {
				violations = append(violations, filepath.ToSlash(rel)+" -> "+importPath)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("scan packages: %v", err)
	}
	sort.Strings(violations)
	return violations
}

func resolveModuleRoot(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}

// layerOf maps "internal/<layer>/..." to "internal/<layer>".
func layerOf(rel string) string {
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) < 2 || parts[0] != "internal" {
		return ""
	}
	return parts[0] + "/" + parts[1]
}

func layerName(layer string) string {
	return strings.TrimPrefix(layer, "internal/")
}

func violatesRule(sourceLayer, importLayer string) bool {
	if importLayer == "" {
		return false
	}
	switch layerName(sourceLayer) {
	case "domain":
		return layerName(importLayer) != "domain"
	case "infra":
		return layerName(importLayer) == "usecase" || layerName(importLayer) == "command"
	case "usecase":
		return layerName(importLayer) == "command"
	default:
		return false
	}
}
