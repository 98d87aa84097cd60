// Where: internal/infra/manifest/validator.go
// What: JSON Schema and version validation for manifests.
// Why: Reject malformed or incompatible manifests before touching the filesystem.
package manifest

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"sigs.k8s.io/yaml"

	"github.com/poruru-code/assetenum/internal/domain/asset"
)

const (
	schemaURL = "https://assetenum.local/manifest.schema.json"

	// supportedVersions accepts every 1.x manifest.
	supportedVersions = "^1"
)

//go:embed schema/manifest.schema.json
var schemaDocument []byte

var (
	schemaOnce     sync.Once
	schemaErr      error
	compiledSchema *jsonschema.Schema
)

func validateManifest(content []byte) ([]byte, error) {
	sch, err := loadSchema()
	if err != nil {
		return nil, err
	}

	jsonData, err := yaml.YAMLToJSON(content)
	if err != nil {
		return nil, fmt.Errorf("%w: convert yaml to json: %v", asset.ErrInvalidManifest, err)
	}

	var document any
	if err := json.Unmarshal(jsonData, &document); err != nil {
		return nil, fmt.Errorf("%w: %v", asset.ErrInvalidManifest, err)
	}
	if err := sch.Validate(document); err != nil {
		return nil, fmt.Errorf("%w: %v", asset.ErrInvalidManifest, err)
	}
	return jsonData, nil
}

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaDocument)); err != nil {
			schemaErr = fmt.Errorf("load manifest schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}

func checkSchemaVersion(raw string) error {
	version, err := semver.NewVersion(raw)
	if err != nil {
		return fmt.Errorf("%w: schema_version %q: %v", asset.ErrInvalidManifest, raw, err)
	}
	constraint, err := semver.NewConstraint(supportedVersions)
	if err != nil {
		return fmt.Errorf("schema constraint: %w", err)
	}
	if !constraint.Check(version) {
		return fmt.Errorf("%w: schema_version %s is not supported (want %s)",
			asset.ErrInvalidManifest, raw, supportedVersions)
	}
	return nil
}

func marshalJSON(m Manifest) ([]byte, error) {
	payload, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	return append(payload, '\n'), nil
}
