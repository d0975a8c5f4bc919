package build

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"themestyle/state"
	"themestyle/themejson"
)

// Watch builds stylesheet and rebuilds it every time one of the sources
// changes, until interrupted. Failed rebuilds are logged and previous output
// is kept.
func Watch(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("watch")

	sources, err := sourceArgs(cmd.Args().Slice())
	if err != nil {
		return err
	}
	dst := cmd.String("out")
	if dst == "" || dst == "-" {
		return errors.New("watch requires output file, use --out")
	}
	env.NoDefaults = cmd.Bool("no-defaults")

	opts := commandOptions(env, cmd, sources)
	minify := env.Cfg.Output.Minify || cmd.Bool("minify")
	debounce := env.Cfg.Watch.Debounce
	if cmd.IsSet("debounce") {
		debounce = cmd.Duration("debounce")
	}

	w, err := newWatcher(sources, debounce, log)
	if err != nil {
		return err
	}

	var last []byte
	rebuild := func() {
		data, err := produce(env, sources, opts, minify, log)
		if err != nil {
			log.Error("Rebuild failed, keeping previous output", zap.Error(err))
			return
		}
		if last != nil && bytes.Equal(data, last) {
			log.Debug("Stylesheet unchanged")
			return
		}
		if err := writeOutput(dst, data, true); err != nil {
			log.Error("Unable to update stylesheet", zap.Error(err))
			return
		}
		last = data
		log.Info("Stylesheet updated", zap.String("destination", dst))
	}

	rebuild()
	log.Info("Watching for changes, interrupt to stop", zap.Strings("sources", sources), zap.Duration("debounce", debounce))
	return w.run(ctx, rebuild)
}

// watcher reports changes of source files after a quiet period.
type watcher struct {
	fs       *fsnotify.Watcher
	files    map[string]bool
	debounce time.Duration
	log      *zap.Logger
}

// newWatcher watches directories holding sources rather than files
// themselves: editors often replace files by renaming and file watch would be
// lost.
func newWatcher(sources []string, debounce time.Duration, log *zap.Logger) (*watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("unable to create file watcher: %w", err)
	}
	w := &watcher{
		fs:       fsw,
		files:    make(map[string]bool, len(sources)),
		debounce: debounce,
		log:      log,
	}

	dirs := make(map[string]bool)
	for _, src := range sources {
		file := filepath.Clean(src)
		if fi, err := os.Stat(file); err == nil && fi.IsDir() {
			file = filepath.Join(file, themejson.DocumentName)
		}
		w.files[file] = true
		dir := filepath.Dir(file)
		if dirs[dir] {
			continue
		}
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("unable to watch directory %s: %w", dir, err)
		}
		dirs[dir] = true
	}
	return w, nil
}

func (w *watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	return w.files[filepath.Clean(event.Name)]
}

// run calls rebuild once after every burst of relevant events. It returns
// when context is canceled.
func (w *watcher) run(ctx context.Context, rebuild func()) error {
	defer w.fs.Close()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.log.Debug("Change detected", zap.String("file", event.Name), zap.Stringer("op", event.Op))
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			rebuild()

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("File watcher error", zap.Error(err))
		}
	}
}
