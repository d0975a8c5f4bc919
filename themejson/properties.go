package themejson

import "fmt"

// StyleProperty maps CSS property to its location inside a style node.
type StyleProperty struct {
	Property string
	Path     []string
}

// StyleProperties is the static CSS property table in declaration output
// order. Shorthands come before their longhands so the later win in the
// cascade.
var StyleProperties = []StyleProperty{
	{"background", []string{"color", "gradient"}},
	{"background-color", []string{"color", "background"}},
	{"color", []string{"color", "text"}},

	{"border-radius", []string{"border", "radius"}},
	{"border-top-left-radius", []string{"border", "radius", "topLeft"}},
	{"border-top-right-radius", []string{"border", "radius", "topRight"}},
	{"border-bottom-left-radius", []string{"border", "radius", "bottomLeft"}},
	{"border-bottom-right-radius", []string{"border", "radius", "bottomRight"}},
	{"border-color", []string{"border", "color"}},
	{"border-width", []string{"border", "width"}},
	{"border-style", []string{"border", "style"}},
	{"border-top-color", []string{"border", "top", "color"}},
	{"border-top-width", []string{"border", "top", "width"}},
	{"border-top-style", []string{"border", "top", "style"}},
	{"border-right-color", []string{"border", "right", "color"}},
	{"border-right-width", []string{"border", "right", "width"}},
	{"border-right-style", []string{"border", "right", "style"}},
	{"border-bottom-color", []string{"border", "bottom", "color"}},
	{"border-bottom-width", []string{"border", "bottom", "width"}},
	{"border-bottom-style", []string{"border", "bottom", "style"}},
	{"border-left-color", []string{"border", "left", "color"}},
	{"border-left-width", []string{"border", "left", "width"}},
	{"border-left-style", []string{"border", "left", "style"}},

	{"filter", []string{"filter", "duotone"}},
	{"box-shadow", []string{"shadow"}},

	{"font-family", []string{"typography", "fontFamily"}},
	{"font-size", []string{"typography", "fontSize"}},
	{"font-style", []string{"typography", "fontStyle"}},
	{"font-weight", []string{"typography", "fontWeight"}},
	{"letter-spacing", []string{"typography", "letterSpacing"}},
	{"line-height", []string{"typography", "lineHeight"}},
	{"text-decoration", []string{"typography", "textDecoration"}},
	{"text-transform", []string{"typography", "textTransform"}},

	{"margin", []string{"spacing", "margin"}},
	{"margin-top", []string{"spacing", "margin", "top"}},
	{"margin-right", []string{"spacing", "margin", "right"}},
	{"margin-bottom", []string{"spacing", "margin", "bottom"}},
	{"margin-left", []string{"spacing", "margin", "left"}},
	{"padding", []string{"spacing", "padding"}},
	{"padding-top", []string{"spacing", "padding", "top"}},
	{"padding-right", []string{"spacing", "padding", "right"}},
	{"padding-bottom", []string{"spacing", "padding", "bottom"}},
	{"padding-left", []string{"spacing", "padding", "left"}},
	{"--wp--style--block-gap", []string{"spacing", "blockGap"}},
}

var stylePropertyIndex = indexStyleProperties(StyleProperties)

func indexStyleProperties(props []StyleProperty) map[string][]string {
	idx := make(map[string][]string, len(props))
	for _, sp := range props {
		if _, dup := idx[sp.Property]; dup {
			panic(fmt.Sprintf("style property %q is declared twice", sp.Property))
		}
		if len(sp.Path) == 0 {
			panic(fmt.Sprintf("style property %q has empty path", sp.Property))
		}
		idx[sp.Property] = sp.Path
	}
	return idx
}

// StylePath returns configuration path for CSS property.
func StylePath(property string) ([]string, bool) {
	p, ok := stylePropertyIndex[property]
	return p, ok
}
