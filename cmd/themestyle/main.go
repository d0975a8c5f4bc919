package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"themestyle/build"
	"themestyle/config"
	"themestyle/misc"
	"themestyle/state"
)

// initializeAppContext prepares application context before command execution but
// after command line has been parsed
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error

	if cmd.NArg() == 0 {
		// nothing to do, just return
		return ctx, nil
	}

	env := state.EnvFromContext(ctx)

	configFile := cmd.String("config")
	if env.Cfg, err = config.LoadConfiguration(configFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if cmd.Bool("debug") {
		if env.Rpt, err = env.Cfg.Reporting.Prepare(); err != nil {
			return ctx, fmt.Errorf("unable to prepare debug reporter: %w", err)
		}
		// save complete processed configuration if external configuration was provided
		if len(configFile) > 0 {
			if data, err := config.Dump(env.Cfg); err == nil {
				env.Rpt.StoreData(fmt.Sprintf("config/%s", filepath.Base(configFile)), data)
			}
		}
	}
	if env.Log, err = env.Cfg.Logging.Prepare(env.Rpt); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.RedirectStdLog()

	env.Log.Debug("Program started", zap.Strings("args", os.Args), zap.String("ver", misc.GetVersion()), zap.String("runtime", runtime.Version()), zap.String("hash", misc.GetGitHash()))

	if env.Rpt != nil {
		env.Log.Info("Creating debug report", zap.String("location", env.Rpt.Name()))
	}
	if len(configFile) == 0 {
		env.Log.Info("Using defaults (no configuration file)")
	}
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Debug("Program ended", zap.Duration("elapsed", env.Uptime()), zap.Strings("parsed args", cmd.Args().Slice()))
	}

	// close logging
	env.RestoreStdLog()

	// log is synced now and result can be used in report if necessary, errors
	// must be reported directly to stderr from now on
	if env.Rpt != nil {
		if er := env.Rpt.Close(); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close debug report: %w", er))
		}
	}
	// reporting is closed now - remove empty panic file if any
	if env.Cfg != nil && len(env.Cfg.Logging.FileLogger.Destination) > 0 {
		debug.SetCrashOutput(nil, debug.CrashOptions{})
		fname := filepath.Join(filepath.Dir(env.Cfg.Logging.FileLogger.Destination), misc.GetAppName()+"-panic.log")
		if fi, er := os.Stat(fname); er == nil && fi.Size() == 0 {
			if er := os.Remove(fname); er != nil {
				err = multierr.Append(err, fmt.Errorf("unable to remove empty panic log file '%s': %w", fname, er))
			}
		}
	}
	return
}

// Errors from subcommands are regular errors, cli.Exit() is not used.
var errWasHandled bool

// this is called before appContext is destroyed, so we have a chance to
// properly log any error from subcommand
func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {

	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		for _, e := range multierr.Errors(err) {
			env.Log.Error("Program ended with error", zap.Error(e))
		}
		errWasHandled = true
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	// do nothing special, error is reported either by exitErrHandler or on
	// exit directly to stderr.
	return err
}

func subcommandNotFoundHandler(ctx context.Context, _ *cli.Command, name string) {
	if log := state.EnvFromContext(ctx).Log; log != nil {
		log.Warn("Unknown command, nothing to do", zap.String("command", name))
		return
	}
	fmt.Fprintf(os.Stderr, "Unknown command %q, nothing to do\n", name)
}

const sourceHelp = `
SOURCE:
    theme configuration document(s), following forms are supported:
        path to a file: "[path_to_file]theme.json" - JSON document
        path to a file: "[path_to_file]styles.yaml" - the same structure written as YAML (.yaml or .yml)
        path to a directory: "[path_to_directory]directory" - theme.json inside directory
        path to archive: "[path_to_archive]theme.zip" - theme.json at archive root or inside single top level directory

    When several sources are given they are merged in order: first one is the
    theme, the rest are user customizations overriding it. Built-in core
    defaults are merged underneath unless --no-defaults is specified.
`

func main() {

	// allow graceful shutdown on interrupt, watch relies on it
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	app := &cli.Command{
		Name:            misc.GetAppName(),
		Usage:           "turns theme.json style configuration into CSS",
		Version:         misc.GetVersion() + " (" + runtime.Version() + ") : " + misc.GetGitHash(),
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		CommandNotFound: subcommandNotFoundHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, DefaultText: "", Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "changes program behavior to help troubleshooting, produces report archive"},
		},
		Commands: []*cli.Command{
			{
				Name:         "build",
				Usage:        "Builds stylesheet out of theme configuration",
				OnUsageError: usageErrorHandler,
				Action:       build.Run,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "write stylesheet to `FILE` instead of STDOUT"},
					&cli.BoolFlag{Name: "minify", Aliases: []string{"m"}, Usage: "produce minified stylesheet without comments"},
					&cli.BoolFlag{Name: "no-classes", Usage: "do not generate preset utility classes"},
					&cli.BoolFlag{Name: "no-defaults", Aliases: []string{"nd"}, Usage: "do not merge built-in core presets underneath sources"},
					&cli.BoolFlag{Name: "overwrite", Aliases: []string{"ow"}, Usage: "replace output file if it exists"},
					&cli.BoolFlag{Name: "strict", Usage: "fail on document shape violations instead of ignoring offending keys"},
				},
				ArgsUsage:          "SOURCE [SOURCE...]",
				CustomHelpTemplate: cli.CommandHelpTemplate + sourceHelp,
			},
			{
				Name:               "validate",
				Usage:              "Checks every source for shape violations and malformed presets",
				OnUsageError:       usageErrorHandler,
				Action:             build.Validate,
				ArgsUsage:          "SOURCE [SOURCE...]",
				CustomHelpTemplate: cli.CommandHelpTemplate + sourceHelp,
			},
			{
				Name:         "inspect",
				Usage:        "Prints resolved presets, their origins and custom variables",
				OnUsageError: usageErrorHandler,
				Action:       build.Inspect,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "no-defaults", Aliases: []string{"nd"}, Usage: "do not merge built-in core presets underneath sources"},
					&cli.BoolFlag{Name: "sort", Usage: "list presets in natural slug order instead of output order"},
				},
				ArgsUsage:          "SOURCE [SOURCE...]",
				CustomHelpTemplate: cli.CommandHelpTemplate + sourceHelp,
			},
			{
				Name:         "watch",
				Usage:        "Rebuilds stylesheet every time sources change",
				OnUsageError: usageErrorHandler,
				Action:       build.Watch,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "write stylesheet to `FILE` (required)"},
					&cli.BoolFlag{Name: "minify", Aliases: []string{"m"}, Usage: "produce minified stylesheet without comments"},
					&cli.BoolFlag{Name: "no-classes", Usage: "do not generate preset utility classes"},
					&cli.BoolFlag{Name: "no-defaults", Aliases: []string{"nd"}, Usage: "do not merge built-in core presets underneath sources"},
					&cli.BoolFlag{Name: "strict", Usage: "fail on document shape violations instead of ignoring offending keys"},
					&cli.DurationFlag{Name: "debounce", Usage: "wait `DURATION` after last change before rebuilding (overrides configuration)"},
				},
				ArgsUsage: "SOURCE [SOURCE...]",
				CustomHelpTemplate: cli.CommandHelpTemplate + sourceHelp + `
Output file is replaced atomically. When rebuild fails previous stylesheet is
kept and error is logged. Interrupt (Ctrl+C) to stop.
`,
			},
			{
				Name:  "dumpconfig",
				Usage: "Dumps either default or actual configuration (YAML)",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
				},
				OnUsageError: usageErrorHandler,
				Action:       outputConfiguration,
				ArgsUsage:    "DESTINATION",
				CustomHelpTemplate: fmt.Sprintf(`%s

DESTINATION:
    file name to write configuration to, if absent - STDOUT

Produces file with actual "active" configuration values which is composition of
default values and values specified in configuration file. To see default
configuration embedded into the program use --default flag.
`, cli.CommandHelpTemplate),
			},
		},
	}

	var err error
	// NOTE: os.Exit is called at the end of main to set exit code, make sure
	// there are no other deferred functions after that
	defer func() {
		stop()
		if err != nil {
			// It may happen that log is either not set yet (argument parsing) or already closed,
			// report errors to stderr directly
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = app.Run(ctx, os.Args)
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) error {

	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	fname := cmd.Args().Get(0)

	var (
		err   error
		data  []byte
		state string
	)

	out := os.Stdout
	if len(fname) > 0 {
		out, err = os.Create(fname)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer out.Close()
	}

	if cmd.Bool("default") {
		state = "default"
		data, err = config.Prepare()
	} else {
		state = "actual"
		data, err = config.Dump(env.Cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	if len(fname) == 0 {
		fname = "STDOUT"
	}
	env.Log.Info("Outputting configuration", zap.String("state", state), zap.String("file", fname))

	if _, err = out.Write(data); err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}
