// Where: internal/usecase/generate/project.go
// What: Requests built from the project config.
// Why: Run every configured collection with paths resolved against the config file.
package generate

import (
	"github.com/poruru-code/assetenum/internal/infra/config"
	"github.com/poruru-code/assetenum/internal/meta"
)

const toolName = meta.AppName

// Overrides are command-line values applied on top of each configured collection.
type Overrides struct {
	Package string
	Mode    string
	DryRun  bool
	Check   bool
	Verbose bool
}

// RequestsFromConfig returns one request per selected collection in config order.
func RequestsFromConfig(cfg config.ProjectConfig, names []string, o Overrides) ([]Request, error) {
	selected, err := cfg.Select(names)
	if err != nil {
		return nil, err
	}
	requests := make([]Request, 0, len(selected))
	for _, c := range selected {
		pkg := cfg.PackageFor(c)
		if pkg == "" {
			pkg = o.Package
		}
		if pkg == "" {
			pkg = meta.DefaultPackage
		}
		mode := c.Mode
		if o.Mode != "" {
			mode = o.Mode
		}
		requests = append(requests, Request{
			Collection:  c.Name,
			Dir:         cfg.Resolve(c.Dir),
			Filter:      c.Filter(),
			Output:      cfg.Resolve(c.OutputName()),
			Package:     pkg,
			Mode:        mode,
			ConstPrefix: c.ConstPrefix,
			NoPrefix:    c.NoPrefix,
			ForbidEmpty: c.ForbidEmpty,
			ManifestOut: cfg.Resolve(c.Manifest),
			DryRun:      o.DryRun,
			Check:       o.Check,
			Verbose:     o.Verbose,
		})
	}
	return requests, nil
}

// RunAll runs requests in order and stops at the first failure.
func (w Workflow) RunAll(requests []Request) ([]Result, error) {
	results := make([]Result, 0, len(requests))
	for _, req := range requests {
		result, err := w.Run(req)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}
	return results, nil
}
