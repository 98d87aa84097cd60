// Where: internal/meta/meta.go
// What: Tool metadata constants.
// Why: Keep names that leak into generated files and env vars in one place.
package meta

const (
	// Tool Identity
	AppName   = "assetenum"
	EnvPrefix = "ASSETENUM"

	// Project Layout
	ConfigFile       = "assetenum.yaml"
	DefaultOutput    = "assets_gen.go"
	DefaultPackage   = "assets"
	ManifestSuffix   = ".manifest.yaml"
	GeneratedFileExt = ".go"
)
