// Where: internal/command/generate.go
// What: generate and scan command adapters.
// Why: Resolve flags, env, and project config into generate requests.
package command

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/poruru-code/assetenum/internal/domain/asset"
	"github.com/poruru-code/assetenum/internal/infra/config"
	"github.com/poruru-code/assetenum/internal/infra/envutil"
	"github.com/poruru-code/assetenum/internal/infra/manifest"
	"github.com/poruru-code/assetenum/internal/meta"
	"github.com/poruru-code/assetenum/internal/usecase/generate"
)

var errAmbiguousGenerate = errors.New("pass both NAME and DIR, a --manifest, or use a project config")

func runGenerate(cli CLI, deps Dependencies) int {
	cmd := cli.Generate
	u := newVerboseUI(deps.Out, !cli.NoEmoji, cmd.Verbose)

	requests, err := generateRequests(cmd, deps)
	if err != nil {
		return exitWithError(deps.ErrOut, err)
	}

	workflow := generate.NewWorkflow(u)
	for _, req := range requests {
		result, err := workflow.Run(req)
		if err != nil {
			return exitWithError(deps.ErrOut, err)
		}
		if req.DryRun {
			if _, err := deps.Out.Write(result.Source); err != nil {
				return exitWithError(deps.ErrOut, err)
			}
			continue
		}
		reportResult(u, result, req.Check)
	}
	return 0
}

// generateRequests picks the ad-hoc form (NAME DIR or --manifest) or the
// project config form.
func generateRequests(cmd GenerateCmd, deps Dependencies) ([]generate.Request, error) {
	if cmd.Manifest != "" || (cmd.Name != "" && cmd.Dir != "") {
		req, err := adHocRequest(cmd)
		if err != nil {
			return nil, err
		}
		return []generate.Request{req}, nil
	}
	if cmd.Dir != "" {
		return nil, errAmbiguousGenerate
	}

	cfg, err := loadConfig(cmd.Config, deps)
	if err != nil {
		if cmd.Name == "" && cmd.Config == "" {
			return nil, fmt.Errorf("%w: %v", errAmbiguousGenerate, err)
		}
		return nil, err
	}
	var names []string
	if cmd.Name != "" {
		names = []string{cmd.Name}
	}
	return generate.RequestsFromConfig(cfg, names, generate.Overrides{
		Package: cmd.Package,
		Mode:    cmd.Mode,
		DryRun:  cmd.DryRun,
		Check:   cmd.Check,
		Verbose: cmd.Verbose,
	})
}

func adHocRequest(cmd GenerateCmd) (generate.Request, error) {
	output := cmd.Output
	if output == "" {
		name := cmd.Name
		if name == "" && cmd.Manifest != "" {
			m, err := manifest.Read(cmd.Manifest)
			if err != nil {
				return generate.Request{}, err
			}
			name = m.Collection
		}
		output = defaultOutput(name)
	}
	pkg := cmd.Package
	if pkg == "" {
		pkg = meta.DefaultPackage
	}
	return generate.Request{
		Collection:  cmd.Name,
		Dir:         cmd.Dir,
		Filter:      asset.FilterSpec{Include: cmd.Include, Exclude: cmd.Exclude},
		Output:      output,
		Package:     pkg,
		Mode:        cmd.Mode,
		ConstPrefix: cmd.ConstPrefix,
		NoPrefix:    cmd.NoPrefix,
		ForbidEmpty: cmd.ForbidEmpty,
		ManifestIn:  cmd.Manifest,
		ManifestOut: cmd.WriteManifest,
		DryRun:      cmd.DryRun,
		Check:       cmd.Check,
		Verbose:     cmd.Verbose,
	}, nil
}

// defaultOutput names the file after the collection, next to the go:generate
// directive when run under go generate.
func defaultOutput(name string) string {
	file := config.CollectionConfig{Name: name}.OutputName()
	if env := envutil.GoGenerateEnv(); env.Active() {
		return filepath.Join(filepath.Dir(env.File), file)
	}
	return file
}

func loadConfig(path string, deps Dependencies) (config.ProjectConfig, error) {
	if path == "" {
		wd, err := deps.Getwd()
		if err != nil {
			return config.ProjectConfig{}, err
		}
		path, err = config.FindProjectConfig(wd)
		if err != nil {
			return config.ProjectConfig{}, err
		}
	}
	return config.LoadProjectConfig(path)
}

func runScan(cli CLI, deps Dependencies) int {
	cmd := cli.Scan
	u := newVerboseUI(deps.ErrOut, !cli.NoEmoji, cmd.Verbose)

	format := manifest.Format(strings.ToLower(cmd.Format))
	if cmd.Output != "" {
		format = ""
	}
	result, err := generate.NewWorkflow(u).Scan(generate.ScanRequest{
		Request: generate.Request{
			Collection: cmd.Name,
			Dir:        cmd.Dir,
			Filter:     asset.FilterSpec{Include: cmd.Include, Exclude: cmd.Exclude},
			Output:     cmd.Output,
			Verbose:    cmd.Verbose,
		},
		Format: format,
	})
	if err != nil {
		return exitWithError(deps.ErrOut, err)
	}

	if cmd.Output == "" {
		if _, err := deps.Out.Write(result.Payload); err != nil {
			return exitWithError(deps.ErrOut, err)
		}
		return 0
	}
	status := newUI(deps.Out, !cli.NoEmoji)
	if result.Changed {
		status.Success(fmt.Sprintf("wrote %s (%d entries)", cmd.Output, len(result.Manifest.Entries)))
	} else {
		status.Info(fmt.Sprintf("%s unchanged (%d entries)", cmd.Output, len(result.Manifest.Entries)))
	}
	return 0
}

func runInit(cli CLI, deps Dependencies) int {
	cmd := cli.Init
	path := cmd.Config
	if !filepath.IsAbs(path) {
		wd, err := deps.Getwd()
		if err != nil {
			return exitWithError(deps.ErrOut, err)
		}
		path = filepath.Join(wd, path)
	}
	if _, err := os.Stat(path); err == nil && !cmd.Force {
		return exitWithError(deps.ErrOut, fmt.Errorf("%s already exists (use --force to overwrite)", cmd.Config))
	}
	if err := config.SaveProjectConfig(path, config.DefaultProjectConfig()); err != nil {
		return exitWithError(deps.ErrOut, err)
	}
	u := newUI(deps.Out, !cli.NoEmoji)
	u.Success(fmt.Sprintf("created %s", cmd.Config))
	u.Info(fmt.Sprintf("Add //go:generate %s generate -c %s to a Go file of the package.", cliName(), cmd.Config))
	return 0
}
