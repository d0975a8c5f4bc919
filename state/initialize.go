package state

import (
	"time"

	"themestyle/themejson"
)

// defaultDocument is the core layer placed under every theme: presets
// available to all themes unless disabled by defaultPalette and similar
// switches.
const defaultDocument = `{
	"version": 3,
	"settings": {
		"color": {
			"palette": [
				{"slug": "black", "name": "Black", "color": "#000000"},
				{"slug": "cyan-bluish-gray", "name": "Cyan bluish gray", "color": "#abb8c3"},
				{"slug": "white", "name": "White", "color": "#ffffff"},
				{"slug": "pale-pink", "name": "Pale pink", "color": "#f78da7"},
				{"slug": "vivid-red", "name": "Vivid red", "color": "#cf2e2e"},
				{"slug": "luminous-vivid-orange", "name": "Luminous vivid orange", "color": "#ff6900"},
				{"slug": "luminous-vivid-amber", "name": "Luminous vivid amber", "color": "#fcb900"},
				{"slug": "light-green-cyan", "name": "Light green cyan", "color": "#7bdcb5"},
				{"slug": "vivid-green-cyan", "name": "Vivid green cyan", "color": "#00d084"},
				{"slug": "pale-cyan-blue", "name": "Pale cyan blue", "color": "#8ed1fc"},
				{"slug": "vivid-cyan-blue", "name": "Vivid cyan blue", "color": "#0693e3"},
				{"slug": "vivid-purple", "name": "Vivid purple", "color": "#9b51e0"}
			],
			"gradients": [
				{"slug": "vivid-cyan-blue-to-vivid-purple", "name": "Vivid cyan blue to vivid purple",
				 "gradient": "linear-gradient(135deg,rgba(6,147,227,1) 0%,rgb(155,81,224) 100%)"},
				{"slug": "luminous-dusk", "name": "Luminous dusk",
				 "gradient": "linear-gradient(135deg,rgb(255,203,112) 0%,rgb(199,81,192) 50%,rgb(65,88,208) 100%)"}
			],
			"duotone": [
				{"slug": "dark-grayscale", "name": "Dark grayscale", "colors": ["#000000", "#7f7f7f"]},
				{"slug": "grayscale", "name": "Grayscale", "colors": ["#000000", "#ffffff"]}
			]
		},
		"typography": {
			"fontSizes": [
				{"slug": "small", "name": "Small", "size": "13px"},
				{"slug": "medium", "name": "Medium", "size": "20px"},
				{"slug": "large", "name": "Large", "size": "36px"},
				{"slug": "x-large", "name": "Extra Large", "size": "42px"}
			]
		},
		"spacing": {
			"spacingSizes": [
				{"slug": "20", "name": "2X-Small", "size": "0.44rem"},
				{"slug": "30", "name": "X-Small", "size": "0.67rem"},
				{"slug": "40", "name": "Small", "size": "1rem"},
				{"slug": "50", "name": "Medium", "size": "1.5rem"},
				{"slug": "60", "name": "Large", "size": "2.25rem"},
				{"slug": "70", "name": "X-Large", "size": "3.38rem"},
				{"slug": "80", "name": "2X-Large", "size": "5.06rem"}
			]
		},
		"shadow": {
			"presets": [
				{"slug": "natural", "name": "Natural", "shadow": "6px 6px 9px rgba(0, 0, 0, 0.2)"},
				{"slug": "sharp", "name": "Sharp", "shadow": "6px 6px 0px rgba(0, 0, 0, 0.2)"}
			]
		}
	}
}`

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	tree, err := themejson.Decode([]byte(defaultDocument), themejson.FormatJSON)
	if err != nil {
		panic("bad built-in document: " + err.Error())
	}
	return &LocalEnv{
		start:           time.Now(),
		DefaultDocument: tree,
	}
}
