// Package stylesheet assembles CSS out of resolved theme configuration.
package stylesheet

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"go.uber.org/zap"

	"themestyle/css"
	"themestyle/themejson"
)

// Options control what goes into generated stylesheet.
type Options struct {
	RootSelector   string   // selector holding variables, ":root" when empty
	UtilityClasses bool     // emit preset classes
	CustomCSS      bool     // append free-form styles.css of the document
	Strict         bool     // refuse documents with shape violations
	Banner         string   // text/template of leading comment, empty to skip
	Sources        []string // documents merged into the tree, for the banner
}

// DefaultOptions returns options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		RootSelector:   ":root",
		UtilityClasses: true,
		CustomCSS:      true,
	}
}

// Stats counts what went into the stylesheet.
type Stats struct {
	Presets   int
	Malformed int
	Dropped   int
	Variables int
	Classes   int
	Rules     int
}

// Result of a build. Results may be shared by Compiler between callers and
// must not be modified.
type Result struct {
	Sheet      *css.Stylesheet
	Presets    themejson.PresetSet
	Validation themejson.ValidationResult
	Stats      Stats
}

// Bytes returns CSS text of the stylesheet.
func (r *Result) Bytes(minify bool) []byte {
	if minify {
		return []byte(r.Sheet.Minified())
	}
	return []byte(r.Sheet.String())
}

// ShapeError is returned in strict mode for documents with shape violations.
type ShapeError struct {
	Validation themejson.ValidationResult
}

func (e *ShapeError) Error() string {
	v := e.Validation.Violations
	if len(v) == 1 {
		return fmt.Sprintf("document shape violation: %s", v[0])
	}
	return fmt.Sprintf("%d document shape violations, first: %s", len(v), v[0])
}

// elementOrder is the order element styles are written in, generic heading
// goes before specific levels so those win.
var elementOrder = []string{"link", "heading", "h1", "h2", "h3", "h4", "h5", "h6", "button", "caption"}

// Build turns configuration tree into stylesheet: preset and custom variables
// under the root selector, utility classes, style declarations for body,
// elements and blocks and finally free-form CSS of the document.
func Build(tree themejson.Tree, opts Options, log *zap.Logger) (*Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("stylesheet")

	res := &Result{
		Sheet:      &css.Stylesheet{},
		Validation: themejson.ValidateShape(tree),
	}
	if !res.Validation.Valid() {
		if opts.Strict {
			return nil, &ShapeError{Validation: res.Validation}
		}
		for _, v := range res.Validation.Violations {
			log.Warn("Ignoring document shape violation", zap.String("path", v.Path), zap.String("reason", v.Reason))
		}
	}

	res.Presets = themejson.ResolvePresets(tree, themejson.PresetCategories)
	for _, m := range res.Presets.Malformed {
		log.Warn("Skipping malformed preset", zap.Stringer("preset", m))
	}
	res.Stats.Presets = res.Presets.Len()
	res.Stats.Malformed = len(res.Presets.Malformed)
	for _, cp := range res.Presets.Categories {
		if cp.Dropped > 0 {
			log.Debug("Presets shadowed by earlier origin", zap.String("category", cp.Category.Name), zap.Int("count", cp.Dropped))
		}
		res.Stats.Dropped += cp.Dropped
	}

	if opts.Banner != "" {
		text, err := renderBanner(opts.Banner, newBannerData(tree, opts, res.Stats.Presets))
		if err != nil {
			return nil, err
		}
		if text != "" {
			res.Sheet.AddComment(text)
		}
	}

	vars := append(toCSS(themejson.CustomProperties(res.Presets)), toCSS(themejson.CustomVariables(tree))...)
	if len(vars) > 0 {
		selector := opts.RootSelector
		if selector == "" {
			selector = ":root"
		}
		res.Sheet.AddRule(selector, vars...)
	}
	res.Stats.Variables = len(vars)

	if opts.UtilityClasses {
		for _, uc := range themejson.UtilityClasses(res.Presets) {
			res.Sheet.AddRule(uc.Selector, toCSS(uc.Declarations)...)
			res.Stats.Classes++
		}
	}

	styles := tree.Section(themejson.StylesKey)
	addNode(res.Sheet, "body", styles)
	addElements(res.Sheet, "", styles)
	addBlocks(res.Sheet, styles)

	if opts.CustomCSS {
		if text, ok := styles[themejson.StylesCSSKey].(string); ok && strings.TrimSpace(text) != "" {
			custom := css.NewParser(log).Parse([]byte(text), "styles.css")
			for _, w := range custom.Warnings {
				log.Warn("Custom CSS was not fully understood", zap.String("warning", w))
			}
			res.Sheet.Append(custom)
		}
	}

	res.Stats.Rules = res.Sheet.RuleCount()
	log.Debug("Stylesheet assembled",
		zap.Int("presets", res.Stats.Presets),
		zap.Int("variables", res.Stats.Variables),
		zap.Int("classes", res.Stats.Classes),
		zap.Int("rules", res.Stats.Rules))
	return res, nil
}

// BlockSelector returns class selector block styles are emitted under:
// "core/paragraph" becomes ".wp-block-paragraph", "acme/card" becomes
// ".wp-block-acme-card".
func BlockSelector(name string) string {
	name = strings.TrimPrefix(name, "core/")
	return ".wp-block-" + strings.ReplaceAll(name, "/", "-")
}

// scopeSelector prefixes every selector of the list with scope.
func scopeSelector(scope, list string) string {
	if scope == "" {
		return list
	}
	parts := strings.Split(list, ",")
	for i, p := range parts {
		parts[i] = scope + " " + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}

// addNode adds rule for style node unless it produces no declarations.
func addNode(sheet *css.Stylesheet, selector string, node map[string]any) {
	if decls := toCSS(themejson.StyleDeclarations(node)); len(decls) > 0 {
		sheet.AddRule(selector, decls...)
	}
}

func addElements(sheet *css.Stylesheet, scope string, node map[string]any) {
	elements, _ := node[themejson.StylesElementsKey].(map[string]any)
	for _, name := range elementOrder {
		el, ok := elements[name].(map[string]any)
		if !ok {
			continue
		}
		addNode(sheet, scopeSelector(scope, themejson.ElementSelectors[name]), el)
	}
}

func addBlocks(sheet *css.Stylesheet, styles map[string]any) {
	blocks, _ := styles[themejson.StylesBlocksKey].(map[string]any)
	for _, name := range slices.Sorted(maps.Keys(blocks)) {
		block, ok := blocks[name].(map[string]any)
		if !ok {
			continue
		}
		selector := BlockSelector(name)
		addNode(sheet, selector, block)
		addElements(sheet, selector, block)
	}
}

func toCSS(decls []themejson.Declaration) []css.Declaration {
	out := make([]css.Declaration, 0, len(decls))
	for _, d := range decls {
		out = append(out, css.Declaration{Property: d.Property, Value: d.Value})
	}
	return out
}
