package stylesheet

import (
	"fmt"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"themestyle/misc"
	"themestyle/themejson"
)

// bannerData is available to banner template.
type bannerData struct {
	App     string
	Version string
	Title   string
	Sources []string
	Presets int
}

func newBannerData(tree themejson.Tree, opts Options, presets int) bannerData {
	title, _ := tree["title"].(string)
	return bannerData{
		App:     misc.GetAppName(),
		Version: misc.GetVersion(),
		Title:   title,
		Sources: opts.Sources,
		Presets: presets,
	}
}

func renderBanner(text string, data bannerData) (string, error) {
	tmpl, err := template.New("banner").Funcs(sprig.FuncMap()).Parse(text)
	if err != nil {
		return "", fmt.Errorf("unable to parse banner template: %w", err)
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("unable to expand banner template: %w", err)
	}
	return strings.TrimSpace(sb.String()), nil
}
