package build

import (
	"context"
	"fmt"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"themestyle/state"
	"themestyle/themejson"
)

// Validate checks every source on its own and reports all problems found.
// Any shape violation or malformed preset makes the command fail.
func Validate(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("validate")

	sources, err := sourceArgs(cmd.Args().Slice())
	if err != nil {
		return err
	}

	var errs error
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return err
		}
		errs = multierr.Append(errs, checkSource(src, log))
	}
	return errs
}

func checkSource(src string, log *zap.Logger) error {
	tree, err := themejson.LoadFile(src)
	if err != nil {
		return fmt.Errorf("unable to load %q: %w", src, err)
	}

	shape := themejson.ValidateShape(tree)
	for _, v := range shape.Violations {
		log.Warn("Shape violation", zap.String("source", src), zap.String("path", v.Path), zap.String("reason", v.Reason))
	}
	set := themejson.ResolvePresets(tree, themejson.PresetCategories)
	for _, m := range set.Malformed {
		log.Warn("Malformed preset", zap.String("source", src), zap.Stringer("preset", m))
	}

	if !shape.Valid() || len(set.Malformed) > 0 {
		return fmt.Errorf("%s: %d shape violation(s), %d malformed preset(s)", src, len(shape.Violations), len(set.Malformed))
	}
	log.Info("Document is valid", zap.String("source", src), zap.Int("presets", set.Len()))
	return nil
}
