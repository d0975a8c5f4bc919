package themejson

import (
	"errors"
	"fmt"
	"strings"
)

// SlugPlaceholder is replaced by preset slug in CSS templates.
const SlugPlaceholder = "$slug"

// ValueFunc identifies one of the pure value transforms in valueFuncs.
type ValueFunc string

const (
	ValueFuncDuotoneFilter ValueFunc = "duotone-filter"
)

// ValueExtractor selects how a preset value is computed: either a field read
// directly from the preset record or a named function applied to it.
type ValueExtractor struct {
	Field string
	Func  ValueFunc
}

// Field reads the named preset field.
func Field(name string) ValueExtractor {
	return ValueExtractor{Field: name}
}

// Func applies named transform to the whole preset.
func Func(id ValueFunc) ValueExtractor {
	return ValueExtractor{Func: id}
}

func (v ValueExtractor) String() string {
	if v.Func != "" {
		return "func:" + string(v.Func)
	}
	return "field:" + v.Field
}

// OverridePolicy says whether a later origin may replace an earlier preset
// with the same slug. Either a literal or a path under settings holding a
// boolean.
type OverridePolicy struct {
	Path    []string
	Literal bool
}

// OverrideAt reads the policy from settings at path, absent means allowed.
func OverrideAt(path ...string) OverridePolicy {
	return OverridePolicy{Path: path}
}

// OverrideAlways is the literal policy.
func OverrideAlways(allowed bool) OverridePolicy {
	return OverridePolicy{Literal: allowed}
}

// Allowed evaluates the policy against settings section of the tree.
func (p OverridePolicy) Allowed(settings map[string]any) bool {
	if len(p.Path) == 0 {
		return p.Literal
	}
	v, ok := lookup(settings, p.Path)
	if !ok {
		return true
	}
	b, ok := v.(bool)
	if !ok {
		return true
	}
	return b
}

// ClassRule maps utility class template to CSS property it sets.
type ClassRule struct {
	Template string
	Property string
}

// PresetCategory is static description of one preset family.
type PresetCategory struct {
	Name            string
	Path            []string // under settings
	Override        OverridePolicy
	UseDefaultNames bool
	Value           ValueExtractor
	CSSVar          string
	Classes         []ClassRule
	Properties      []string // allowed CSS properties, used by sanitizers
}

// VarName returns custom property name for slug.
func (c *PresetCategory) VarName(slug string) string {
	return substituteSlug(c.CSSVar, slug)
}

// VarRef returns var() reference to the custom property for slug.
func (c *PresetCategory) VarRef(slug string) string {
	return "var(" + c.VarName(slug) + ")"
}

// Validate checks the category description itself. Problems here are
// programming mistakes, not document errors.
func (c *PresetCategory) Validate() error {
	var errs []error
	if c.Name == "" {
		errs = append(errs, errors.New("category name is empty"))
	}
	if len(c.Path) == 0 {
		errs = append(errs, errors.New("configuration path is empty"))
	}
	switch {
	case c.Value.Field == "" && c.Value.Func == "":
		errs = append(errs, errors.New("neither value field nor value function is set"))
	case c.Value.Field != "" && c.Value.Func != "":
		errs = append(errs, errors.New("both value field and value function are set"))
	case c.Value.Func != "":
		if _, ok := valueFuncs[c.Value.Func]; !ok {
			errs = append(errs, fmt.Errorf("unknown value function %q", c.Value.Func))
		}
	}
	if !strings.Contains(c.CSSVar, SlugPlaceholder) || !strings.HasPrefix(c.CSSVar, "--") {
		errs = append(errs, fmt.Errorf("css variable template %q must start with -- and contain %s", c.CSSVar, SlugPlaceholder))
	}
	for _, cr := range c.Classes {
		if !strings.Contains(cr.Template, SlugPlaceholder) || cr.Property == "" {
			errs = append(errs, fmt.Errorf("class rule %q -> %q is incomplete", cr.Template, cr.Property))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("preset category %q: %w", c.Name, errors.Join(errs...))
	}
	return nil
}

func substituteSlug(template, slug string) string {
	return strings.ReplaceAll(template, SlugPlaceholder, slug)
}

// PresetCategories is the process-wide table of preset families in output order.
var PresetCategories = mustValidate([]PresetCategory{
	{
		Name:     "color",
		Path:     []string{"color", "palette"},
		Override: OverrideAt("color", "defaultPalette"),
		Value:    Field("color"),
		CSSVar:   "--wp--preset--color--$slug",
		Classes: []ClassRule{
			{".has-$slug-color", "color"},
			{".has-$slug-background-color", "background-color"},
			{".has-$slug-background", "background"},
			{".has-$slug-border-color", "border-color"},
			{".has-$slug-border-block-color", "border-block-color"},
			{".has-$slug-border-inline-color", "border-inline-color"},
		},
		Properties: []string{"color", "background-color", "background", "border-color", "border-block-color", "border-inline-color"},
	},
	{
		Name:     "gradient",
		Path:     []string{"color", "gradients"},
		Override: OverrideAt("color", "defaultGradients"),
		Value:    Field("gradient"),
		CSSVar:   "--wp--preset--gradient--$slug",
		Classes: []ClassRule{
			{".has-$slug-gradient-background", "background"},
		},
		Properties: []string{"background"},
	},
	{
		Name:       "duotone",
		Path:       []string{"color", "duotone"},
		Override:   OverrideAt("color", "defaultDuotone"),
		Value:      Func(ValueFuncDuotoneFilter),
		CSSVar:     "--wp--preset--duotone--$slug",
		Properties: []string{"filter"},
	},
	{
		Name:            "font-size",
		Path:            []string{"typography", "fontSizes"},
		Override:        OverrideAlways(true),
		UseDefaultNames: true,
		Value:           Field("size"),
		CSSVar:          "--wp--preset--font-size--$slug",
		Classes: []ClassRule{
			{".has-$slug-font-size", "font-size"},
		},
		Properties: []string{"font-size"},
	},
	{
		Name:     "font-family",
		Path:     []string{"typography", "fontFamilies"},
		Override: OverrideAlways(true),
		Value:    Field("fontFamily"),
		CSSVar:   "--wp--preset--font-family--$slug",
		Classes: []ClassRule{
			{".has-$slug-font-family", "font-family"},
		},
		Properties: []string{"font-family"},
	},
	{
		Name:       "spacing",
		Path:       []string{"spacing", "spacingSizes"},
		// spacing scales are numbered ("20", "50") by core and most themes
		Override:   OverrideAt("spacing", "defaultSpacingSizes"),
		Value:      Field("size"),
		CSSVar:     "--wp--preset--spacing--$slug",
		Properties: []string{"padding", "margin", "gap"},
	},
	{
		Name:       "shadow",
		Path:       []string{"shadow", "presets"},
		Override:   OverrideAt("shadow", "defaultPresets"),
		Value:      Field("shadow"),
		CSSVar:     "--wp--preset--shadow--$slug",
		Properties: []string{"box-shadow"},
	},
})

// CategoryByName returns static category with given name.
func CategoryByName(name string) (*PresetCategory, bool) {
	for i := range PresetCategories {
		if PresetCategories[i].Name == name {
			return &PresetCategories[i], true
		}
	}
	return nil, false
}

func mustValidate(categories []PresetCategory) []PresetCategory {
	seen := make(map[string]bool, len(categories))
	for i := range categories {
		if err := categories[i].Validate(); err != nil {
			panic(err)
		}
		if seen[categories[i].Name] {
			panic(fmt.Sprintf("preset category %q is declared twice", categories[i].Name))
		}
		seen[categories[i].Name] = true
	}
	return categories
}
