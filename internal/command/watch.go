// Where: internal/command/watch.go
// What: watch command adapter.
// Why: Regenerate configured collections until interrupted.
package command

import (
	"path/filepath"

	"github.com/poruru-code/assetenum/internal/usecase/generate"
	"github.com/poruru-code/assetenum/internal/usecase/watch"
)

func runWatch(cli CLI, deps Dependencies) int {
	cmd := cli.Watch
	u := newVerboseUI(deps.Out, !cli.NoEmoji, cmd.Verbose)

	cfg, err := loadConfig(cmd.Config, deps)
	if err != nil {
		return exitWithError(deps.ErrOut, err)
	}
	requests, err := generate.RequestsFromConfig(cfg, cmd.Names, generate.Overrides{
		Package: cmd.Package,
		Verbose: cmd.Verbose,
	})
	if err != nil {
		return exitWithError(deps.ErrOut, err)
	}

	roots := make([]string, 0, len(requests))
	generated := map[string]bool{}
	for _, req := range requests {
		roots = append(roots, req.Dir)
		for _, path := range []string{req.Output, req.ManifestOut} {
			if path != "" {
				generated[cleanAbs(path)] = true
			}
		}
	}

	workflow := generate.NewWorkflow(u)
	watcher := watch.Watcher{
		UI:    u,
		Roots: roots,
		Regenerate: func() error {
			results, err := workflow.RunAll(requests)
			for _, result := range results {
				if result.Changed {
					reportResult(u, result, false)
				}
			}
			return err
		},
		Ignore: func(path string) bool { return generated[cleanAbs(path)] },
	}

	ctx, cancel := deps.WatchContext()
	defer cancel()
	u.Info("watching for changes (Ctrl+C to stop)")
	if err := watcher.Run(ctx); err != nil {
		return exitWithError(deps.ErrOut, err)
	}
	return 0
}

func cleanAbs(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
