// Where: internal/command/app.go
// What: CLI entrypoint logic.
// Why: Provide a testable command dispatcher.
package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/poruru-code/assetenum/internal/infra/envutil"
	"github.com/poruru-code/assetenum/internal/version"
)

// Dependencies holds the injected process surface of a run.
type Dependencies struct {
	Out    io.Writer
	ErrOut io.Writer
	Getwd  func() (string, error)
	// WatchContext returns the context that stops `watch`.
	WatchContext func() (context.Context, context.CancelFunc)
}

// CLI defines the command-line interface structure parsed by Kong.
type CLI struct {
	EnvFile  string      `name:"env-file" help:"Path to .env file loaded before flags are resolved"`
	NoEmoji  bool        `name:"no-emoji" env:"ASSETENUM_NO_EMOJI" help:"Disable emoji output"`
	Generate GenerateCmd `cmd:"" help:"Generate a Go enum for an asset directory"`
	Scan     ScanCmd     `cmd:"" help:"Write the manifest of an asset directory"`
	Watch    WatchCmd    `cmd:"" help:"Regenerate configured collections when files change"`
	Init     InitCmd     `cmd:"" help:"Create a project config"`
	Version  VersionCmd  `cmd:"" help:"Show version information"`
}

type (
	// FilterFlags are shared by commands that scan a directory.
	FilterFlags struct {
		Include string `short:"i" help:"Regex a relative path must match (empty admits all)"`
		Exclude string `short:"x" aliases:"ignore" help:"Regex that drops matching relative paths"`
	}

	// GenerateCmd defines the generate command flags.
	GenerateCmd struct {
		Name string `arg:"" optional:"" help:"Type name of the collection (or a configured collection)"`
		Dir  string `arg:"" optional:"" help:"Asset directory"`
		FilterFlags `embed:""`
		Output        string `short:"o" help:"Generated file (default <name>_gen.go)"`
		Package       string `env:"ASSETENUM_PACKAGE,GOPACKAGE" help:"Go package of the generated file"`
		Mode          string `env:"ASSETENUM_MODE" help:"Content mode (literal/embed)"`
		ConstPrefix   string `name:"const-prefix" help:"Prefix of variant constants (default: type name)"`
		NoPrefix      bool   `name:"no-prefix" help:"Name variant constants by identifier only"`
		ForbidEmpty   bool   `name:"forbid-empty" help:"Fail when no file is admitted"`
		Manifest      string `help:"Generate from this manifest instead of scanning"`
		WriteManifest string `name:"write-manifest" help:"Also write the collection manifest"`
		Config        string `short:"c" env:"ASSETENUM_CONFIG" help:"Project config (default: search upward for assetenum.yaml)"`
		Check         bool   `help:"Fail if generated files are out of date; write nothing"`
		DryRun        bool   `name:"dry-run" help:"Print generated source instead of writing"`
		Verbose       bool   `short:"v" help:"Verbose output"`
	}

	// ScanCmd defines the scan command flags.
	ScanCmd struct {
		Name string `arg:"" help:"Type name of the collection"`
		Dir  string `arg:"" help:"Asset directory"`
		FilterFlags `embed:""`
		Output  string `short:"o" help:"Manifest file (default: stdout)"`
		Format  string `enum:"yaml,json" default:"yaml" help:"Manifest format when printing (yaml/json)"`
		Verbose bool   `short:"v" help:"Verbose output"`
	}

	// WatchCmd defines the watch command flags.
	WatchCmd struct {
		Names   []string `arg:"" optional:"" help:"Configured collections to watch (default: all)"`
		Config  string   `short:"c" env:"ASSETENUM_CONFIG" help:"Project config"`
		Package string   `env:"ASSETENUM_PACKAGE,GOPACKAGE" help:"Fallback Go package"`
		Verbose bool     `short:"v" help:"Verbose output"`
	}

	// InitCmd defines the init command flags.
	InitCmd struct {
		Config string `short:"c" help:"Config file to create" default:"assetenum.yaml"`
		Force  bool   `help:"Overwrite an existing config"`
	}

	VersionCmd struct{}
)

// Run is the main entry point for CLI command execution.
// It parses the command-line arguments, identifies the requested command,
// and dispatches to the appropriate handler. Returns 0 on success, 1 on error.
func Run(args []string, deps Dependencies) int {
	deps = withDefaults(deps)
	out := deps.Out

	if len(args) == 0 {
		return runNoArgs(out)
	}

	loadEnvFile(args, deps.ErrOut)

	cli := CLI{}
	exited, exitCode := false, 0
	parser, err := kong.New(&cli,
		kong.Name(cliName()),
		kong.Description("Generate closed Go enums over embedded asset files."),
		kong.Writers(out, deps.ErrOut),
		kong.Exit(func(code int) { exited, exitCode = true, code }),
	)
	if err != nil {
		return exitWithError(deps.ErrOut, err)
	}

	ctx, err := parser.Parse(args)
	if exited {
		return exitCode
	}
	if err != nil {
		return exitWithError(deps.ErrOut, err)
	}

	command := commandName(ctx.Command())
	if exitCode, handled := dispatchCommand(command, cli, deps); handled {
		return exitCode
	}

	return exitWithError(deps.ErrOut, fmt.Errorf("unknown command %q", command))
}

func withDefaults(deps Dependencies) Dependencies {
	if deps.Out == nil {
		deps.Out = os.Stdout
	}
	if deps.ErrOut == nil {
		deps.ErrOut = os.Stderr
	}
	if deps.Getwd == nil {
		deps.Getwd = os.Getwd
	}
	if deps.WatchContext == nil {
		deps.WatchContext = func() (context.Context, context.CancelFunc) {
			return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		}
	}
	return deps
}

type commandHandler func(CLI, Dependencies) int

func dispatchCommand(command string, cli CLI, deps Dependencies) (int, bool) {
	handlers := map[string]commandHandler{
		"generate": runGenerate,
		"scan":     runScan,
		"watch":    runWatch,
		"init":     runInit,
		"version":  runVersion,
	}
	if handler, ok := handlers[command]; ok {
		return handler(cli, deps), true
	}
	return 1, false
}

// commandName returns the subcommand of a kong command path such as
// "generate <name> <dir>".
func commandName(path string) string {
	fields := strings.Fields(path)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// loadEnvFile runs before parsing so .env values feed kong env defaults.
// An explicit --env-file must load; a missing default .env is ignored.
func loadEnvFile(args []string, errOut io.Writer) {
	if path := envFileArg(args); path != "" {
		if err := godotenv.Load(path); err != nil {
			newUI(errOut, false).Warn(fmt.Sprintf("failed to load env file %s: %v", path, err))
		}
		return
	}
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			newUI(errOut, false).Warn(fmt.Sprintf("failed to load .env: %v", err))
		}
	}
}

func envFileArg(args []string) string {
	for i, arg := range args {
		if arg == "--" {
			return ""
		}
		if value, ok := strings.CutPrefix(arg, "--env-file="); ok {
			return value
		}
		if arg == "--env-file" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

// runVersion prints the version information of the CLI.
func runVersion(cli CLI, deps Dependencies) int {
	newUI(deps.Out, !cli.NoEmoji).Info(version.GetVersion())
	return 0
}

// runNoArgs prints a short usage summary.
func runNoArgs(out io.Writer) int {
	u := newUI(out, !envutil.HostEnvBool(envutil.SuffixNoEmoji))
	cmd := cliName()
	u.Info("Usage:")
	u.Info(fmt.Sprintf("  %s generate <Name> <dir> [-i include] [-x exclude] [-o output]", cmd))
	u.Info(fmt.Sprintf("  %s generate -c %s", cmd, configFileName))
	u.Info(fmt.Sprintf("  %s scan <Name> <dir> [-o manifest]", cmd))
	u.Info(fmt.Sprintf("  %s watch", cmd))
	u.Info("")
	u.Info(fmt.Sprintf("Try: %s --help", cmd))
	return 0
}
