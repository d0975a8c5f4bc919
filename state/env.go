// Package state defines shared program state.
package state

import (
	"context"
	"time"

	"go.uber.org/zap"

	"themestyle/config"
	"themestyle/stylesheet"
	"themestyle/themejson"
)

type envKey struct{}

// LocalEnv keeps everything program needs in a single place.
type LocalEnv struct {
	Cfg *config.Config
	Rpt *config.Report
	Log *zap.Logger

	// Compiler is created on first use from cache configuration.
	compiler *stylesheet.Compiler

	// used by build and watch subcommands
	NoDefaults      bool
	Overwrite       bool
	DefaultDocument themejson.Tree

	start         time.Time
	restoreStdLog func()
}

func EnvFromContext(ctx context.Context) *LocalEnv {
	if env, ok := ctx.Value(envKey{}).(*LocalEnv); ok {
		return env
	}
	// this should never happen
	panic("localenv not found in context")
}

func ContextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, newLocalEnv())
}

func (e *LocalEnv) Uptime() time.Duration {
	return time.Since(e.start)
}

// Compiler returns memoizing stylesheet compiler configured from Cfg.
func (e *LocalEnv) Compiler() *stylesheet.Compiler {
	if e.compiler == nil {
		var ttl, cleanup time.Duration
		if e.Cfg != nil {
			ttl, cleanup = e.Cfg.Cache.TTL, e.Cfg.Cache.Cleanup
		}
		e.compiler = stylesheet.NewCompiler(ttl, cleanup, e.Log)
	}
	return e.compiler
}

// StylesheetOptions converts output configuration to build options.
func (e *LocalEnv) StylesheetOptions(sources []string) stylesheet.Options {
	if e.Cfg == nil {
		opts := stylesheet.DefaultOptions()
		opts.Sources = sources
		return opts
	}
	out := e.Cfg.Output
	return stylesheet.Options{
		RootSelector:   out.RootSelector,
		UtilityClasses: out.UtilityClasses,
		CustomCSS:      out.CustomCSS,
		Strict:         out.Strict,
		Banner:         out.Banner,
		Sources:        sources,
	}
}

// Layers returns documents to merge before the ones given on command line
// and the origin the first of them gets.
func (e *LocalEnv) Layers() ([]themejson.Tree, themejson.Origin) {
	if e.NoDefaults || e.DefaultDocument == nil {
		return nil, themejson.OriginTheme
	}
	return []themejson.Tree{e.DefaultDocument}, themejson.OriginDefault
}

func (e *LocalEnv) RedirectStdLog() {
	if e.Log == nil {
		return
	}
	e.restoreStdLog = zap.RedirectStdLog(e.Log)
}

func (e *LocalEnv) RestoreStdLog() {
	if e.Log != nil {
		_ = e.Log.Sync()
	}
	if e.restoreStdLog != nil {
		e.restoreStdLog()
	}
}
