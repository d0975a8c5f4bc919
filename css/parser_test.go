package css_test

import (
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"themestyle/css"
)

// allRules collects all top-level rules from a stylesheet's Items.
// It does NOT flatten @media blocks.
func allRules(sheet *css.Stylesheet) []css.Rule {
	var rules []css.Rule
	for _, item := range sheet.Items {
		if item.Rule != nil {
			rules = append(rules, *item.Rule)
		}
	}
	return rules
}

func TestParser_SimpleRule(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	sheet := p.Parse([]byte(`p { text-indent: 1em; margin: 0 auto }`))

	rules := allRules(sheet)
	if len(rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(rules))
	}
	rule := rules[0]
	if rule.Selector != "p" {
		t.Errorf("selector = %q, want p", rule.Selector)
	}
	if len(rule.Declarations) != 2 {
		t.Fatalf("got %d declarations, want 2", len(rule.Declarations))
	}
	if v, ok := rule.Get("text-indent"); !ok || v != "1em" {
		t.Errorf("text-indent = %q (%v)", v, ok)
	}
	if v, _ := rule.Get("margin"); v != "0 auto" {
		t.Errorf("margin = %q, want %q", v, "0 auto")
	}
	if len(sheet.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", sheet.Warnings)
	}
}

func TestParser_SelectorList(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	sheet := p.Parse([]byte(`h1,h2,  h3 { font-weight: bold }`))

	rules := sheet.RulesBySelector("h1, h2, h3")
	if len(rules) != 1 {
		t.Fatalf("expected rule for normalized selector list, got items %+v", sheet.Items)
	}
}

func TestParser_DeclarationOrder(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	sheet := p.Parse([]byte(`:root {
		--wp--preset--color--pale-pink: #f5e0e0;
		--gap:  calc(1px + 2px) ;
		color: var(--wp--preset--color--pale-pink);
		border-color: red;
		border-top-color: blue;
	}`))

	rules := sheet.RulesBySelector(":root")
	if len(rules) != 1 {
		t.Fatalf("expected :root rule, got %d", len(rules))
	}

	want := []css.Declaration{
		{Property: "--wp--preset--color--pale-pink", Value: "#f5e0e0"},
		{Property: "--gap", Value: "calc(1px + 2px)"},
		{Property: "color", Value: "var(--wp--preset--color--pale-pink)"},
		{Property: "border-color", Value: "red"},
		{Property: "border-top-color", Value: "blue"},
	}
	got := rules[0].Declarations
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("declaration %d = %+v, want %+v", i, got[i], want[i])
		}
	}
	if !got[0].IsCustomProperty() || got[2].IsCustomProperty() {
		t.Error("IsCustomProperty() misclassified declarations")
	}
}

func TestParser_Imports(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	sheet := p.Parse([]byte(`@import url("fonts.css");
@import "print.css";
@charset "utf-8";
body { margin: 0 }`))

	imports := sheet.Imports()
	if strings.Join(imports, ",") != "fonts.css,print.css" {
		t.Errorf("imports = %v", imports)
	}
	if len(sheet.Warnings) != 1 || !strings.Contains(sheet.Warnings[0], "@charset") {
		t.Errorf("warnings = %v, want one about @charset", sheet.Warnings)
	}
	if len(sheet.RulesBySelector("body")) != 1 {
		t.Error("rule after at-rules was lost")
	}
}

func TestParser_MediaBlock(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	sheet := p.Parse([]byte(`
.a { color: red }
@media (max-width: 600px) {
	.a { color: blue }
	.b { display: none }
}
.c { color: green }`))

	if len(sheet.Items) != 3 {
		t.Fatalf("got %d items, want 3", len(sheet.Items))
	}
	mb := sheet.Items[1].MediaBlock
	if mb == nil {
		t.Fatal("second item is not a media block")
	}
	if mb.Name != "media" || !strings.Contains(mb.Query, "max-width") {
		t.Errorf("media block = %q %q", mb.Name, mb.Query)
	}
	if len(mb.Rules) != 2 || mb.Rules[1].Selector != ".b" {
		t.Errorf("media rules = %+v", mb.Rules)
	}
	if sheet.RuleCount() != 4 {
		t.Errorf("RuleCount() = %d, want 4", sheet.RuleCount())
	}
}

func TestParser_SkipsUnsupportedBlocks(t *testing.T) {
	p := css.NewParser(zaptest.NewLogger(t))

	sheet := p.Parse([]byte(`
@keyframes spin { from { opacity: 0 } to { opacity: 1 } }
.after { color: red }`))

	rules := allRules(sheet)
	if len(rules) != 1 || rules[0].Selector != ".after" {
		t.Errorf("rules = %+v, want only .after", rules)
	}
	if len(sheet.Warnings) != 1 || !strings.Contains(sheet.Warnings[0], "@keyframes") {
		t.Errorf("warnings = %v", sheet.Warnings)
	}
}

func TestParser_FontFace(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	sheet := p.Parse([]byte(`@font-face {
		font-family: "Inter";
		src: url(inter.woff2) format("woff2");
		font-weight: 400;
	}`))

	faces := sheet.FontFaces()
	if len(faces) != 1 {
		t.Fatalf("got %d font faces, want 1", len(faces))
	}
	if faces[0].Family() != "Inter" {
		t.Errorf("family = %q", faces[0].Family())
	}
	if len(faces[0].Declarations) != 3 {
		t.Errorf("declarations = %+v", faces[0].Declarations)
	}
}

func TestParser_Comments(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	sheet := p.Parse([]byte(`/* Theme Name: Sample */
body { /* inner */ color: red }`))

	if len(sheet.Items) != 2 || sheet.Items[0].Comment == nil {
		t.Fatalf("items = %+v, want comment then rule", sheet.Items)
	}
	if *sheet.Items[0].Comment != "Theme Name: Sample" {
		t.Errorf("comment = %q", *sheet.Items[0].Comment)
	}
	if v, _ := sheet.Items[1].Rule.Get("color"); v != "red" {
		t.Errorf("color = %q", v)
	}
}

func TestParser_Empty(t *testing.T) {
	p := css.NewParser(nil)

	sheet := p.Parse(nil, "empty.css")
	if len(sheet.Items) != 0 || len(sheet.Warnings) != 0 {
		t.Errorf("sheet = %+v, want empty", sheet)
	}
}

func TestParser_RoundTrip(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	src := `:root {
  --a: 1px;
  --b: var(--a);
}

.x, .y {
  color: red;
}
`
	sheet := p.Parse([]byte(src))
	if got := sheet.String(); got != src {
		t.Errorf("round trip mismatch:\n%s\nwant:\n%s", got, src)
	}
}
