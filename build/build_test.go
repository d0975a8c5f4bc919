package build

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"themestyle/config"
	"themestyle/state"
	"themestyle/stylesheet"
	"themestyle/themejson"
)

const themeDoc = `{
	"version": 3,
	"settings": {
		"color": {
			"palette": [
				{"slug": "white", "name": "Paper", "color": "#fafafa"},
				{"slug": "accent", "name": "Accent", "color": "#c00"}
			]
		}
	},
	"styles": {"color": {"background": "var:preset|color|white"}}
}`

const userDoc = `settings:
  color:
    palette:
      - slug: accent
        name: Accent
        color: "#00c"
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newEnv(t *testing.T) *state.LocalEnv {
	t.Helper()
	env := state.EnvFromContext(state.ContextWithEnv(context.Background()))
	env.Log = zaptest.NewLogger(t)
	return env
}

func TestSourceArgs(t *testing.T) {
	if _, err := sourceArgs(nil); err == nil {
		t.Error("sourceArgs(nil) expected error")
	}
	got, err := sourceArgs([]string{"theme.json"})
	if err != nil {
		t.Fatalf("sourceArgs() error = %v", err)
	}
	if !filepath.IsAbs(got[0]) {
		t.Errorf("sourceArgs() = %v, want absolute path", got)
	}
}

func TestLoadSources(t *testing.T) {
	dir := t.TempDir()
	theme := writeFile(t, dir, "theme.json", themeDoc)
	user := writeFile(t, dir, "user.yaml", userDoc)

	env := newEnv(t)
	tree, err := loadSources(env, []string{theme, user}, zap.NewNop())
	if err != nil {
		t.Fatalf("loadSources() error = %v", err)
	}

	colors, _ := themejson.ResolvePresets(tree, themejson.PresetCategories).Category("color")
	values := map[string]string{}
	origins := map[string]themejson.Origin{}
	for _, p := range colors.Presets {
		values[p.Slug] = p.Value
		origins[p.Slug] = p.Origin
	}
	if values["white"] != "#fafafa" || origins["white"] != themejson.OriginTheme {
		t.Errorf("white = %s [%s], theme should override core default", values["white"], origins["white"])
	}
	if values["accent"] != "#00c" || origins["accent"] != themejson.OriginCustom {
		t.Errorf("accent = %s [%s], user should override theme", values["accent"], origins["accent"])
	}
	if values["black"] != "#000000" {
		t.Error("core default presets are missing")
	}

	env.NoDefaults = true
	tree, err = loadSources(env, []string{theme}, zap.NewNop())
	if err != nil {
		t.Fatalf("loadSources() error = %v", err)
	}
	colors, _ = themejson.ResolvePresets(tree, themejson.PresetCategories).Category("color")
	if len(colors.Presets) != 2 {
		t.Errorf("without defaults got %d presets, want 2", len(colors.Presets))
	}
}

func TestLoadSources_ReportsAllFailures(t *testing.T) {
	dir := t.TempDir()
	broken := writeFile(t, dir, "broken.json", `{"version": `)

	_, err := loadSources(newEnv(t), []string{filepath.Join(dir, "missing.json"), broken}, zap.NewNop())
	if err == nil {
		t.Fatal("loadSources() expected error")
	}
	if n := len(multierr.Errors(err)); n != 2 {
		t.Errorf("got %d errors, want 2: %v", n, err)
	}
}

func TestProduce(t *testing.T) {
	dir := t.TempDir()
	theme := writeFile(t, dir, "theme.json", themeDoc)

	env := newEnv(t)
	env.NoDefaults = true
	opts := stylesheet.DefaultOptions()
	opts.UtilityClasses = false

	data, err := produce(env, []string{theme}, opts, true, zap.NewNop())
	if err != nil {
		t.Fatalf("produce() error = %v", err)
	}
	want := ":root{--wp--preset--color--white:#fafafa;--wp--preset--color--accent:#c00}" +
		"body{background-color:var(--wp--preset--color--white)}"
	if string(data) != want {
		t.Errorf("produce() = %q, want %q", data, want)
	}

	// second run is served from cache
	if _, err := produce(env, []string{theme}, opts, true, zap.NewNop()); err != nil {
		t.Fatal(err)
	}
	if hits, _ := env.Compiler().Stats(); hits != 1 {
		t.Errorf("cache hits = %d, want 1", hits)
	}
}

func TestProduce_Golden(t *testing.T) {
	sources, err := sourceArgs([]string{filepath.Join("testdata", "theme.json")})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		golden string
		minify bool
	}{
		{"theme.css", false},
		{"theme.min.css", true},
	}
	for _, tt := range tests {
		t.Run(tt.golden, func(t *testing.T) {
			env := newEnv(t)
			env.NoDefaults = true

			got, err := produce(env, sources, env.StylesheetOptions(sources), tt.minify, zap.NewNop())
			if err != nil {
				t.Fatalf("produce() error = %v", err)
			}
			want, err := os.ReadFile(filepath.Join("testdata", tt.golden))
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != string(want) {
				t.Errorf("produce() mismatch\ngot:\n%s\nwant:\n%s", got, want)
			}
		})
	}
}

func newBuildCommand() *cli.Command {
	return &cli.Command{
		Name: "build",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}},
			&cli.BoolFlag{Name: "minify", Aliases: []string{"m"}},
			&cli.BoolFlag{Name: "no-classes"},
			&cli.BoolFlag{Name: "no-defaults", Aliases: []string{"nd"}},
			&cli.BoolFlag{Name: "overwrite", Aliases: []string{"ow"}},
			&cli.BoolFlag{Name: "strict"},
		},
		Action: Run,
	}
}

func TestRun_Minify(t *testing.T) {
	ctx := state.ContextWithEnv(context.Background())
	env := state.EnvFromContext(ctx)
	env.Log = zaptest.NewLogger(t)
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	env.Cfg = cfg

	dst := filepath.Join(t.TempDir(), "style.min.css")
	args := []string{"build", "--no-defaults", "--minify", "--out", dst, filepath.Join("testdata", "theme.json")}
	if err := newBuildCommand().Run(ctx, args); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	want, err := os.ReadFile(filepath.Join("testdata", "theme.min.css"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(want) {
		t.Errorf("build --minify mismatch\ngot:  %s\nwant: %s", got, want)
	}

	// second run without --overwrite must keep existing output
	if err := newBuildCommand().Run(ctx, args); err == nil {
		t.Error("Run() should refuse to replace existing output")
	}
}

func TestProduce_Strict(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "theme.json", `{"bogus": 1}`)

	env := newEnv(t)
	opts := stylesheet.DefaultOptions()
	opts.Strict = true
	if _, err := produce(env, []string{bad}, opts, false, zap.NewNop()); err == nil {
		t.Error("produce() expected error in strict mode")
	}
}

func TestWriteOutput(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "out", "style.css")

	if err := writeOutput(dst, []byte("a{}"), false); err != nil {
		t.Fatalf("writeOutput() error = %v", err)
	}
	if err := writeOutput(dst, []byte("b{}"), false); err == nil {
		t.Error("writeOutput() should refuse to overwrite")
	}
	if err := writeOutput(dst, []byte("b{}"), true); err != nil {
		t.Fatalf("writeOutput() overwrite error = %v", err)
	}
	data, _ := os.ReadFile(dst)
	if string(data) != "b{}" {
		t.Errorf("output = %q", data)
	}

	entries, _ := os.ReadDir(filepath.Dir(dst))
	if len(entries) != 1 {
		t.Errorf("temporary files left behind: %v", entries)
	}
}

func TestCheckSource(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.json", themeDoc)
	bad := writeFile(t, dir, "bad.json", `{
		"settings": {"color": {"palette": [{"slug": "No Good", "name": "x", "color": "#000"}]}},
		"styles": {"colour": {}}
	}`)

	if err := checkSource(good, zap.NewNop()); err != nil {
		t.Errorf("checkSource(good) error = %v", err)
	}
	err := checkSource(bad, zap.NewNop())
	if err == nil || !strings.Contains(err.Error(), "1 shape violation(s), 1 malformed preset(s)") {
		t.Errorf("checkSource(bad) error = %v", err)
	}
}

func TestDescribe(t *testing.T) {
	tree, err := themejson.Decode([]byte(`{
		"settings": {
			"color": {"palette": [
				{"slug": "c10", "name": "C10", "color": "#010"},
				{"slug": "c9", "name": "C9", "color": "#009"},
				{"slug": "bad slug", "name": "Bad", "color": "#000"}
			]},
			"custom": {"gap": "1rem"}
		}
	}`), themejson.FormatJSON)
	if err != nil {
		t.Fatal(err)
	}

	out := describe(tree, false).String()
	for _, want := range []string{
		"presets (2)\n",
		"  color (2)\n",
		`    c10 [theme] --wp--preset--color--c10: "#010"`,
		"malformed (1)\n",
		"custom (1)\n",
		`  --wp--custom--gap: "1rem"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("describe() missing %q in:\n%s", want, out)
		}
	}
	if strings.Index(out, "c10 [") > strings.Index(out, "c9 [") {
		t.Error("unsorted output should keep resolution order")
	}

	sorted := describe(tree, true).String()
	if strings.Index(sorted, "c9 [") > strings.Index(sorted, "c10 [") {
		t.Errorf("sorted output should use natural order:\n%s", sorted)
	}
}

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "theme.json", themeDoc)

	w, err := newWatcher([]string{dir}, 10*time.Millisecond, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("newWatcher() error = %v", err)
	}
	if !w.files[src] {
		t.Fatalf("directory source should resolve to %s, got %v", src, w.files)
	}

	ctx, cancel := context.WithCancel(context.Background())
	rebuilt := make(chan struct{}, 8)
	done := make(chan error, 1)
	go func() {
		done <- w.run(ctx, func() { rebuilt <- struct{}{} })
	}()

	// unrelated files are ignored
	writeFile(t, dir, "notes.txt", "x")
	for range 3 {
		writeFile(t, dir, "theme.json", themeDoc)
	}

	select {
	case <-rebuilt:
	case <-time.After(5 * time.Second):
		t.Fatal("no rebuild after source change")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("run() did not stop on cancel")
	}
}
