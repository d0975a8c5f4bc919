// Package themejson resolves declarative theme configuration (theme.json
// documents) into CSS building blocks.
//
// Presets found under settings are merged across origins (default, theme,
// custom), validated and turned into custom properties and utility classes.
// Style values under styles are looked up through a static CSS property table.
// The schema check reports every violation instead of failing on the first.
//
// Everything here is a pure transform over an immutable Tree and the static
// tables, so the functions are safe for concurrent use.
package themejson
