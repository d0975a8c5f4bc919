package build

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"themestyle/state"
	"themestyle/stylesheet"
)

// Run builds single stylesheet out of all sources given on command line.
func Run(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("build")

	sources, err := sourceArgs(cmd.Args().Slice())
	if err != nil {
		return err
	}
	env.NoDefaults, env.Overwrite = cmd.Bool("no-defaults"), cmd.Bool("overwrite")

	opts := commandOptions(env, cmd, sources)
	minify := env.Cfg.Output.Minify || cmd.Bool("minify")
	dst := cmd.String("out")

	log.Info("Processing starting", zap.Strings("sources", sources), zap.String("destination", destinationName(dst)))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	data, err := produce(env, sources, opts, minify, log)
	if err != nil {
		return err
	}
	return writeOutput(dst, data, env.Overwrite)
}

// commandOptions applies command flags on top of configured output options.
func commandOptions(env *state.LocalEnv, cmd *cli.Command, sources []string) stylesheet.Options {
	opts := env.StylesheetOptions(sources)
	if cmd.Bool("no-classes") {
		opts.UtilityClasses = false
	}
	if cmd.Bool("strict") {
		opts.Strict = true
	}
	return opts
}

// produce loads and merges sources and returns CSS text.
func produce(env *state.LocalEnv, sources []string, opts stylesheet.Options, minify bool, log *zap.Logger) ([]byte, error) {
	tree, err := loadSources(env, sources, log)
	if err != nil {
		return nil, err
	}
	res, err := env.Compiler().Compile(tree, opts)
	if err != nil {
		return nil, fmt.Errorf("unable to build stylesheet: %w", err)
	}

	data := res.Bytes(minify)
	log.Info("Stylesheet ready",
		zap.Int("presets", res.Stats.Presets),
		zap.Int("malformed", res.Stats.Malformed),
		zap.Int("violations", len(res.Validation.Violations)),
		zap.Int("rules", res.Stats.Rules),
		zap.Int("bytes", len(data)))
	env.Rpt.StoreData("output.css", data)
	return data, nil
}

func destinationName(dst string) string {
	if dst == "" || dst == "-" {
		return "STDOUT"
	}
	return dst
}

// writeOutput writes data to STDOUT or replaces destination file atomically
// so watchers of the output never see partial stylesheet.
func writeOutput(dst string, data []byte, overwrite bool) error {
	if dst == "" || dst == "-" {
		if _, err := os.Stdout.Write(data); err != nil {
			return fmt.Errorf("unable to write stylesheet: %w", err)
		}
		return nil
	}

	if !overwrite {
		if _, err := os.Stat(dst); err == nil {
			return fmt.Errorf("output file already exists (%s), use --overwrite", dst)
		}
	}

	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(dst)+".*.tmp")
	if err != nil {
		return fmt.Errorf("unable to create output file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("unable to write stylesheet: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("unable to write stylesheet: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return fmt.Errorf("unable to replace output file: %w", err)
	}
	return nil
}
