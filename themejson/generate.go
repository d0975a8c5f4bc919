package themejson

import (
	"strings"
	"unicode"

	"github.com/gosimple/slug"
)

// Declaration is a single CSS "property: value" pair.
type Declaration struct {
	Property string
	Value    string
}

func (d Declaration) String() string {
	return d.Property + ": " + d.Value
}

// UtilityClass is a class rule generated from a preset.
type UtilityClass struct {
	Selector     string
	Declarations []Declaration
}

// CustomProperties produces custom property declaration for every resolved
// preset, in category then preset order.
func CustomProperties(set PresetSet) []Declaration {
	decls := make([]Declaration, 0, set.Len())
	for _, cp := range set.Categories {
		for _, p := range cp.Presets {
			decls = append(decls, Declaration{
				Property: cp.Category.VarName(p.Slug),
				Value:    p.Value,
			})
		}
	}
	return decls
}

// UtilityClasses produces class rules for categories which declare them. Each
// rule references preset custom property rather than the literal value so it
// can be overridden further down the cascade.
func UtilityClasses(set PresetSet) []UtilityClass {
	var classes []UtilityClass
	for _, cp := range set.Categories {
		for _, cr := range cp.Category.Classes {
			for _, p := range cp.Presets {
				classes = append(classes, UtilityClass{
					Selector: substituteSlug(cr.Template, p.Slug),
					Declarations: []Declaration{
						{Property: cr.Property, Value: cp.Category.VarRef(p.Slug)},
					},
				})
			}
		}
	}
	return classes
}

// CustomPrefix starts every variable produced from settings.custom.
const CustomPrefix = "--wp--custom--"

// CustomVariables flattens settings.custom into custom properties. Nested
// keys are joined with "--" after conversion to kebab case, so
// {"lineHeight": {"body": 1.7}} becomes --wp--custom--line-height--body.
func CustomVariables(tree Tree) []Declaration {
	custom, ok := asObject(tree.Section(SettingsKey)["custom"])
	if !ok {
		return nil
	}
	var decls []Declaration
	var walk func(prefix string, node map[string]any)
	walk = func(prefix string, node map[string]any) {
		for _, key := range sortedKeys(node) {
			name := KebabCase(key)
			if name == "" {
				continue
			}
			if child, ok := asObject(node[key]); ok {
				walk(prefix+name+"--", child)
				continue
			}
			if value, ok := scalarString(node[key]); ok {
				decls = append(decls, Declaration{Property: prefix + name, Value: value})
			}
		}
	}
	walk(CustomPrefix, custom)
	return decls
}

// KebabCase converts document key ("lineHeight", "font_size", "h1") to the
// form used in CSS names ("line-height", "font-size", "h1").
func KebabCase(key string) string {
	var sb strings.Builder
	runes := []rune(key)
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				sb.WriteByte('-')
			}
		}
		if r == '_' {
			r = '-'
		}
		sb.WriteRune(r)
	}
	// lowercases, transliterates and collapses separators
	return slug.Make(sb.String())
}
