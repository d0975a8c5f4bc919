package themejson

import "strings"

// ResolveStyleValue returns value configured for CSS property in the styles
// section. Unknown properties, missing paths and non-scalar values are
// reported as absent.
func ResolveStyleValue(tree Tree, property string) (any, bool) {
	return styleValue(tree.Section(StylesKey), property)
}

func styleValue(node map[string]any, property string) (any, bool) {
	path, ok := StylePath(property)
	if !ok || node == nil {
		return nil, false
	}
	v, ok := lookup(node, path)
	if !ok {
		return nil, false
	}
	if _, scalar := scalarString(v); !scalar {
		return nil, false
	}
	return v, true
}

// StyleDeclarations builds declaration block for a single style node (root
// styles, an element or a block) following StyleProperties order.
func StyleDeclarations(node map[string]any) []Declaration {
	var decls []Declaration
	for _, sp := range StyleProperties {
		v, ok := styleValue(node, sp.Property)
		if !ok {
			continue
		}
		s, _ := scalarString(v)
		if s = strings.TrimSpace(s); s == "" {
			continue
		}
		decls = append(decls, Declaration{Property: sp.Property, Value: PresetReference(s)})
	}
	return decls
}

const presetRefPrefix = "var:"

// PresetReference expands shorthand preset reference "var:preset|color|pale-pink"
// into "var(--wp--preset--color--pale-pink)". Other values are returned as is.
func PresetReference(value string) string {
	ref, ok := strings.CutPrefix(value, presetRefPrefix)
	if !ok {
		return value
	}
	parts := strings.Split(ref, "|")
	for _, p := range parts {
		if p == "" {
			return value
		}
	}
	return "var(--wp--" + strings.Join(parts, "--") + ")"
}
