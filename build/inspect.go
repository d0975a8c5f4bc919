package build

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"themestyle/state"
	"themestyle/themejson"
	"themestyle/utils/debug"
)

// Inspect prints what resolver made of merged sources: presets per category
// with their origins, malformed presets, shape violations and custom
// variables.
func Inspect(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("inspect")

	sources, err := sourceArgs(cmd.Args().Slice())
	if err != nil {
		return err
	}
	env.NoDefaults = cmd.Bool("no-defaults")

	tree, err := loadSources(env, sources, log)
	if err != nil {
		return err
	}

	tw := describe(tree, cmd.Bool("sort"))
	env.Rpt.StoreData("inspect.txt", []byte(tw.String()))
	if _, err := tw.WriteTo(os.Stdout); err != nil {
		return fmt.Errorf("unable to write report: %w", err)
	}
	log.Debug("Inspection completed", zap.Strings("sources", sources))
	return nil
}

// describe renders outline of resolved tree. With sorted presets are listed
// in natural slug order instead of resolution order.
func describe(tree themejson.Tree, sorted bool) *debug.TreeWriter {
	set := themejson.ResolvePresets(tree, themejson.PresetCategories)
	tw := debug.NewTreeWriter()

	tw.Section(0, "presets", set.Len())
	for _, cp := range set.Categories {
		if len(cp.Presets) == 0 {
			continue
		}
		presets := cp.Presets
		if sorted {
			presets = slices.Clone(presets)
			slices.SortStableFunc(presets, func(a, b themejson.ResolvedPreset) int {
				switch {
				case natural.Less(a.Slug, b.Slug):
					return -1
				case natural.Less(b.Slug, a.Slug):
					return 1
				}
				return 0
			})
		}

		if cp.Dropped > 0 {
			tw.Line(1, "%s (%d, %d shadowed)", cp.Category.Name, len(presets), cp.Dropped)
		} else {
			tw.Section(1, cp.Category.Name, len(presets))
		}
		for _, p := range presets {
			tw.TextBlock(2, fmt.Sprintf("%s [%s] %s", p.Slug, p.Origin, cp.Category.VarName(p.Slug)), p.Value)
		}
	}

	if len(set.Malformed) > 0 {
		tw.Section(0, "malformed", len(set.Malformed))
		for _, m := range set.Malformed {
			tw.Line(1, "%s", m)
		}
	}

	if shape := themejson.ValidateShape(tree); !shape.Valid() {
		tw.Section(0, "violations", len(shape.Violations))
		for _, v := range shape.Violations {
			tw.TextBlock(1, v.Path, v.Reason)
		}
	}

	if vars := themejson.CustomVariables(tree); len(vars) > 0 {
		tw.Section(0, "custom", len(vars))
		for _, d := range vars {
			tw.TextBlock(1, d.Property, d.Value)
		}
	}
	return tw
}
