// Package build implements program commands: building stylesheets out of
// theme documents, checking and inspecting them, rebuilding on change.
package build

import (
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"themestyle/config"
	"themestyle/state"
	"themestyle/themejson"
)

// sourceArgs returns absolute paths of command sources.
func sourceArgs(args []string) ([]string, error) {
	if len(args) == 0 {
		return nil, errors.New("no input source has been specified")
	}
	sources := make([]string, 0, len(args))
	for _, a := range args {
		abs, err := filepath.Abs(a)
		if err != nil {
			return nil, err
		}
		sources = append(sources, abs)
	}
	return sources, nil
}

// loadSources reads every source, reporting all failures at once, and
// merges them on top of built-in layers. First source is the theme, the rest
// are user customizations.
func loadSources(env *state.LocalEnv, sources []string, log *zap.Logger) (themejson.Tree, error) {
	layers, first := env.Layers()

	var errs error
	for _, src := range sources {
		tree, err := themejson.LoadFile(src)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("unable to load %q: %w", src, err))
			continue
		}
		log.Debug("Source loaded", zap.String("source", src), zap.Int("keys", len(tree)))
		if err := env.Rpt.StoreCopy("sources/"+config.CleanFileName(filepath.Base(src)), src); err != nil {
			log.Warn("Unable to store source in debug report", zap.String("source", src), zap.Error(err))
		}
		layers = append(layers, tree)
	}
	if errs != nil {
		return nil, errs
	}

	tree, err := themejson.MergeOrigins(first, layers...)
	if err != nil {
		return nil, fmt.Errorf("unable to merge sources: %w", err)
	}
	return tree, nil
}
