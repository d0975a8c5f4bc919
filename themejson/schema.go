package themejson

// ValidTopLevelKeys lists keys allowed at document root.
var ValidTopLevelKeys = map[string]bool{
	"$schema":         true,
	"version":         true,
	"title":           true,
	"description":     true,
	SettingsKey:       true,
	StylesKey:         true,
	"customTemplates": true,
	"templateParts":   true,
	"patterns":        true,
}

// Shape describes allowed keys of a style node. A nil value accepts anything
// below that key; a string value accepts only a child with that name; a
// nested Shape is checked recursively.
type Shape map[string]any

// ValidStyleShape is the allowed shape of a single style node.
var ValidStyleShape = Shape{
	"border": Shape{
		"color":  nil,
		"radius": nil,
		"style":  nil,
		"width":  nil,
		"top":    nil,
		"right":  nil,
		"bottom": nil,
		"left":   nil,
	},
	"color": Shape{
		"background": nil,
		"gradient":   nil,
		"text":       nil,
	},
	"filter": Shape{
		"duotone": nil,
	},
	"shadow": nil,
	"spacing": Shape{
		"margin":   nil,
		"padding":  nil,
		"blockGap": "top",
	},
	"typography": Shape{
		"fontFamily":     nil,
		"fontSize":       nil,
		"fontStyle":      nil,
		"fontWeight":     nil,
		"letterSpacing":  nil,
		"lineHeight":     nil,
		"textDecoration": nil,
		"textTransform":  nil,
	},
}

// Structural keys of the styles section besides style properties.
const (
	StylesCSSKey      = "css"
	StylesElementsKey = "elements"
	StylesBlocksKey   = "blocks"
)

// ElementSelectors maps styleable elements to the selectors their styles are
// emitted under.
var ElementSelectors = map[string]string{
	"link":    "a",
	"heading": "h1, h2, h3, h4, h5, h6",
	"h1":      "h1",
	"h2":      "h2",
	"h3":      "h3",
	"h4":      "h4",
	"h5":      "h5",
	"h6":      "h6",
	"button":  ".wp-element-button, .wp-block-button__link",
	"caption": ".wp-element-caption",
}
