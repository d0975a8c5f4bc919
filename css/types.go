package css

import (
	"fmt"
	"io"
	"strings"
)

// cssEscapeDoubleQuoted escapes a string for use inside CSS double quotes.
// Backslashes and double quotes are escaped per CSS syntax: \" and \\.
func cssEscapeDoubleQuoted(s string) string {
	// Fast path: nothing to escape.
	if !strings.ContainsAny(s, `"\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Declaration is a single "property: value" pair.
type Declaration struct {
	Property string
	Value    string
}

// IsCustomProperty returns true for --name declarations.
func (d Declaration) IsCustomProperty() bool {
	return strings.HasPrefix(d.Property, "--")
}

// Rule is a selector with declarations. Declaration order is kept as is:
// custom properties may reference each other and later longhands must win
// over earlier shorthands.
type Rule struct {
	Selector     string
	Declarations []Declaration
}

// Get returns value of the last declaration of property.
func (r *Rule) Get(property string) (string, bool) {
	for i := len(r.Declarations) - 1; i >= 0; i-- {
		if r.Declarations[i].Property == property {
			return r.Declarations[i].Value, true
		}
	}
	return "", false
}

// Add appends declaration.
func (r *Rule) Add(property, value string) {
	r.Declarations = append(r.Declarations, Declaration{Property: property, Value: value})
}

// MediaBlock is a conditional group at-rule (@media, @supports) holding
// nested rules.
type MediaBlock struct {
	Name  string // at-rule name without @, "media" when empty
	Query string
	Rules []Rule
}

func (mb *MediaBlock) keyword() string {
	if mb.Name == "" {
		return "@media"
	}
	return "@" + mb.Name
}

// FontFace is an @font-face block.
type FontFace struct {
	Declarations []Declaration
}

// Family returns unquoted font-family of the face.
func (ff *FontFace) Family() string {
	for _, d := range ff.Declarations {
		if d.Property == "font-family" {
			return unquote(d.Value)
		}
	}
	return ""
}

// StylesheetItem is a single top-level item in a stylesheet.
// Exactly one of the fields is non-nil.
type StylesheetItem struct {
	Rule       *Rule
	MediaBlock *MediaBlock
	FontFace   *FontFace
	Import     *string
	Comment    *string
}

// Stylesheet is an ordered list of top-level items.
type Stylesheet struct {
	Items    []StylesheetItem // All top-level items in source order
	Warnings []string         // Warnings for unsupported features
}

// AddRule appends a new rule and returns it for further filling. Rules
// without declarations are still written, callers are expected to skip them.
func (s *Stylesheet) AddRule(selector string, decls ...Declaration) *Rule {
	rule := &Rule{Selector: selector, Declarations: decls}
	s.Items = append(s.Items, StylesheetItem{Rule: rule})
	return rule
}

// AddComment appends a comment, "*/" inside text is neutralized.
func (s *Stylesheet) AddComment(text string) {
	text = strings.ReplaceAll(text, "*/", "* /")
	s.Items = append(s.Items, StylesheetItem{Comment: &text})
}

// Append moves all items and warnings of other to the end of s.
func (s *Stylesheet) Append(other *Stylesheet) {
	if other == nil {
		return
	}
	s.Items = append(s.Items, other.Items...)
	s.Warnings = append(s.Warnings, other.Warnings...)
}

// Imports returns all @import URLs from the stylesheet in source order.
func (s *Stylesheet) Imports() []string {
	var urls []string
	for _, item := range s.Items {
		if item.Import != nil {
			urls = append(urls, *item.Import)
		}
	}
	return urls
}

// FontFaces returns all @font-face blocks with non-empty family in source order.
func (s *Stylesheet) FontFaces() []FontFace {
	var faces []FontFace
	for _, item := range s.Items {
		if item.FontFace != nil && item.FontFace.Family() != "" {
			faces = append(faces, *item.FontFace)
		}
	}
	return faces
}

// RulesBySelector returns all top-level rules matching the given selector string.
func (s *Stylesheet) RulesBySelector(selector string) []Rule {
	var matches []Rule
	for _, item := range s.Items {
		if item.Rule != nil && item.Rule.Selector == selector {
			matches = append(matches, *item.Rule)
		}
	}
	return matches
}

// RuleCount returns number of rules including ones nested in media blocks.
func (s *Stylesheet) RuleCount() int {
	var n int
	for _, item := range s.Items {
		switch {
		case item.Rule != nil:
			n++
		case item.MediaBlock != nil:
			n += len(item.MediaBlock.Rules)
		}
	}
	return n
}

// format selects between readable and minified output.
type format struct {
	indent  string
	nl      string
	sep     string // between property and value
	between string // between top-level items
}

var (
	pretty   = format{indent: "  ", nl: "\n", sep: ": ", between: "\n"}
	minified = format{sep: ":"}
)

// WriteTo writes the stylesheet to w in source order, implementing io.WriterTo.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	return s.write(w, pretty)
}

// WriteMinifiedTo writes the stylesheet without comments and insignificant
// whitespace.
func (s *Stylesheet) WriteMinifiedTo(w io.Writer) (int64, error) {
	return s.write(w, minified)
}

// String returns the CSS text of the stylesheet.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

// Minified returns the minified CSS text of the stylesheet.
func (s *Stylesheet) Minified() string {
	var sb strings.Builder
	s.WriteMinifiedTo(&sb) //nolint:errcheck
	return sb.String()
}

// counter accumulates bytes written and keeps the first error, so write
// functions can be sequenced without checking every call.
type counter struct {
	w   io.Writer
	n   int64
	err error
}

func (c *counter) printf(format string, args ...any) {
	if c.err != nil {
		return
	}
	n, err := fmt.Fprintf(c.w, format, args...)
	c.n += int64(n)
	c.err = err
}

func (s *Stylesheet) write(w io.Writer, f format) (int64, error) {
	c := &counter{w: w}
	first := true
	for _, item := range s.Items {
		if item.Comment != nil && f.nl == "" {
			continue
		}
		if !first {
			c.printf("%s", f.between)
		}
		first = false

		switch {
		case item.Comment != nil:
			c.printf("/* %s */%s", *item.Comment, f.nl)
		case item.Import != nil:
			c.printf("@import url(\"%s\");%s", cssEscapeDoubleQuoted(*item.Import), f.nl)
		case item.FontFace != nil:
			writeBlock(c, f, "", "@font-face", item.FontFace.Declarations)
		case item.MediaBlock != nil:
			writeMediaBlock(c, f, item.MediaBlock)
		case item.Rule != nil:
			writeBlock(c, f, "", item.Rule.Selector, item.Rule.Declarations)
		}
		if c.err != nil {
			break
		}
	}
	return c.n, c.err
}

// writeBlock writes "selector { declarations }" with given outer indentation.
func writeBlock(c *counter, f format, indent, selector string, decls []Declaration) {
	open := " {"
	if f.nl == "" {
		open = "{"
	}
	c.printf("%s%s%s%s", indent, selector, open, f.nl)
	for i, d := range decls {
		term := ";"
		if f.nl == "" && i == len(decls)-1 {
			term = ""
		}
		c.printf("%s%s%s%s%s%s", indent+f.indent, d.Property, f.sep, d.Value, term, f.nl)
	}
	c.printf("%s}%s", indent, f.nl)
}

func writeMediaBlock(c *counter, f format, mb *MediaBlock) {
	open := " {"
	if f.nl == "" {
		open = "{"
	}
	c.printf("%s %s%s%s", mb.keyword(), mb.Query, open, f.nl)
	for i, rule := range mb.Rules {
		if i > 0 {
			c.printf("%s", f.between)
		}
		writeBlock(c, f, f.indent, rule.Selector, rule.Declarations)
	}
	c.printf("}%s", f.nl)
}
