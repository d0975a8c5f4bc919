package themejson

import (
	"encoding/json"
	"strconv"
	"strings"
	"testing"
)

func mustTree(t *testing.T, doc string) Tree {
	t.Helper()
	tree, err := Decode([]byte(doc), FormatJSON)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	return tree
}

func category(t *testing.T, set PresetSet, name string) CategoryPresets {
	t.Helper()
	cp, ok := set.Category(name)
	if !ok {
		t.Fatalf("category %q missing from result", name)
	}
	return cp
}

func slugsOf(cp CategoryPresets) []string {
	out := make([]string, 0, len(cp.Presets))
	for _, p := range cp.Presets {
		out = append(out, p.Slug)
	}
	return out
}

func TestResolvePresets_PlainList(t *testing.T) {
	tree := mustTree(t, `{
		"settings": {
			"color": {
				"palette": [
					{"slug": "pale-pink", "name": "Pale pink", "color": "#f5e0e0"},
					{"slug": "vivid-red", "name": "Vivid red", "color": "#cf2e2e"}
				]
			},
			"typography": {
				"fontSizes": [
					{"slug": "small", "name": "Small", "size": 13},
					{"slug": "large", "name": "Large", "size": "2.25rem"}
				]
			}
		}
	}`)

	set := ResolvePresets(tree, PresetCategories)

	if len(set.Categories) != len(PresetCategories) {
		t.Fatalf("got %d categories, want %d", len(set.Categories), len(PresetCategories))
	}
	if len(set.Malformed) != 0 {
		t.Errorf("unexpected malformed presets: %v", set.Malformed)
	}

	colors := category(t, set, "color")
	if got := strings.Join(slugsOf(colors), ","); got != "pale-pink,vivid-red" {
		t.Errorf("color slugs = %s", got)
	}
	if colors.Presets[0].Value != "#f5e0e0" {
		t.Errorf("pale-pink value = %q", colors.Presets[0].Value)
	}
	if colors.Presets[0].Origin != OriginTheme {
		t.Errorf("plain list origin = %s, want theme", colors.Presets[0].Origin)
	}

	sizes := category(t, set, "font-size")
	if sizes.Presets[0].Value != "13" {
		t.Errorf("numeric size formatted as %q, want 13", sizes.Presets[0].Value)
	}
	if sizes.Presets[1].Value != "2.25rem" {
		t.Errorf("string size = %q", sizes.Presets[1].Value)
	}

	if gradients := category(t, set, "gradient"); len(gradients.Presets) != 0 {
		t.Errorf("absent list produced %d presets", len(gradients.Presets))
	}
}

func TestResolvePresets_OriginPrecedence(t *testing.T) {
	doc := `{
		"settings": {
			"color": {
				%s
				"palette": {
					"custom":  [{"slug": "primary", "name": "Primary", "color": "#000003"}],
					"default": [
						{"slug": "black", "name": "Black", "color": "#000000"},
						{"slug": "primary", "name": "Primary", "color": "#000001"}
					],
					"theme":   [
						{"slug": "primary", "name": "Primary", "color": "#000002"},
						{"slug": "accent", "name": "Accent", "color": "#abcdef"}
					]
				}
			}
		}
	}`

	tests := []struct {
		name        string
		policy      string
		wantPrimary string
		wantOrigin  Origin
		wantDropped int
	}{
		{"override by default", "", "#000003", OriginCustom, 0},
		{"override enabled", `"defaultPalette": true,`, "#000003", OriginCustom, 0},
		{"override disabled", `"defaultPalette": false,`, "#000001", OriginDefault, 2},
		{"non boolean policy", `"defaultPalette": "no",`, "#000003", OriginCustom, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := mustTree(t, strings.Replace(doc, "%s", tt.policy, 1))
			colors := category(t, ResolvePresets(tree, PresetCategories), "color")

			if got := strings.Join(slugsOf(colors), ","); got != "black,primary,accent" {
				t.Errorf("slugs = %s, want insertion order black,primary,accent", got)
			}
			primary := colors.Presets[1]
			if primary.Value != tt.wantPrimary {
				t.Errorf("primary = %s, want %s", primary.Value, tt.wantPrimary)
			}
			if primary.Origin != tt.wantOrigin {
				t.Errorf("primary origin = %s, want %s", primary.Origin, tt.wantOrigin)
			}
			if colors.Dropped != tt.wantDropped {
				t.Errorf("dropped = %d, want %d", colors.Dropped, tt.wantDropped)
			}
		})
	}
}

func TestResolvePresets_LiteralOverridePolicy(t *testing.T) {
	cats := []PresetCategory{{
		Name:     "size",
		Path:     []string{"sizes"},
		Override: OverrideAlways(false),
		Value:    Field("size"),
		CSSVar:   "--size--$slug",
	}}
	tree := mustTree(t, `{"settings": {"sizes": {
		"default": [{"slug": "m", "name": "M", "size": "1rem"}],
		"theme":   [{"slug": "m", "name": "M", "size": "2rem"}]
	}}}`)

	cp := category(t, ResolvePresets(tree, cats), "size")
	if len(cp.Presets) != 1 || cp.Presets[0].Value != "1rem" {
		t.Errorf("presets = %+v, want only default 1rem", cp.Presets)
	}
}

func TestResolvePresets_Malformed(t *testing.T) {
	tree := mustTree(t, `{
		"settings": {
			"color": {
				"palette": [
					{"slug": "ok", "name": "Ok", "color": "#fff"},
					{"name": "No slug", "color": "#000"},
					{"slug": "no-name", "color": "#111"},
					{"slug": "Bad Slug", "name": "Bad", "color": "#222"},
					{"slug": "double--dash", "name": "Bad", "color": "#222"},
					{"slug": "under_score", "name": "Bad", "color": "#222"},
					{"slug": "no-value", "name": "No value"},
					"not an object"
				],
				"duotone": [
					{"slug": "one-color", "name": "One", "colors": ["#000"]},
					{"slug": "grayscale", "name": "Grayscale", "colors": ["#000", "#fff"]}
				]
			},
			"typography": {
				"fontSizes": [
					{"slug": "1", "name": "Numeric", "size": "1rem"},
					{"slug": "x-large", "name": "Extra large", "size": "2rem"}
				],
				"fontFamilies": [
					{"slug": "2", "name": "Numeric slug allowed", "fontFamily": "serif"}
				]
			}
		}
	}`)

	set := ResolvePresets(tree, PresetCategories)

	wantReasons := map[string]string{
		"color#1":     "missing slug",
		"color#2":     "missing name",
		"color#3":     "slug must contain",
		"color#4":     "slug must contain",
		"color#5":     "slug must contain",
		"color#6":     "missing value field",
		"color#7":     "must be an object",
		"duotone#0":   "at least 2 colors",
		"font-size#0": "numeric slug",
	}
	if len(set.Malformed) != len(wantReasons) {
		t.Fatalf("got %d malformed presets, want %d: %v", len(set.Malformed), len(wantReasons), set.Malformed)
	}
	for _, m := range set.Malformed {
		key := m.Category + "#" + strconv.Itoa(m.Index)
		want, ok := wantReasons[key]
		if !ok {
			t.Errorf("unexpected malformed preset %s", m)
			continue
		}
		if !strings.Contains(m.Reason, want) {
			t.Errorf("%s reason = %q, want it to contain %q", key, m.Reason, want)
		}
	}

	if got := slugsOf(category(t, set, "color")); len(got) != 1 || got[0] != "ok" {
		t.Errorf("color slugs = %v, want [ok]", got)
	}
	duotone := category(t, set, "duotone")
	if len(duotone.Presets) != 1 || duotone.Presets[0].Value != "url('#wp-duotone-grayscale')" {
		t.Errorf("duotone presets = %+v", duotone.Presets)
	}
	if got := slugsOf(category(t, set, "font-family")); len(got) != 1 || got[0] != "2" {
		t.Errorf("font-family slugs = %v, numeric slug must pass outside default naming", got)
	}
}

func TestResolvePresets_NumericSpacingSlugs(t *testing.T) {
	tree := mustTree(t, `{
		"settings": {"spacing": {"spacingSizes": [
			{"slug": "50", "name": "Medium", "size": "1.5rem"},
			{"slug": "60", "name": "Large", "size": "2.25rem"}
		]}},
		"styles": {"spacing": {"padding": "var:preset|spacing|50"}}
	}`)

	set := ResolvePresets(tree, PresetCategories)
	if len(set.Malformed) != 0 {
		t.Fatalf("numeric spacing slugs reported malformed: %v", set.Malformed)
	}
	spacing := category(t, set, "spacing")
	if got := slugsOf(spacing); len(got) != 2 || got[0] != "50" || got[1] != "60" {
		t.Fatalf("spacing slugs = %v, want [50 60]", got)
	}

	// the reference emitted for styles must point at a declared variable
	var declared bool
	for _, d := range CustomProperties(set) {
		if d.Property == "--wp--preset--spacing--50" && d.Value == "1.5rem" {
			declared = true
		}
	}
	if !declared {
		t.Error("--wp--preset--spacing--50 is not declared")
	}
	decls := StyleDeclarations(tree.Section(StylesKey))
	if len(decls) != 1 || decls[0].Value != "var(--wp--preset--spacing--50)" {
		t.Errorf("StyleDeclarations() = %v", decls)
	}
}

func TestResolvePresets_DoesNotMutateTree(t *testing.T) {
	doc := `{"settings": {"color": {"palette": {
		"default": [{"slug": "a", "name": "A", "color": "#000"}],
		"theme":   [{"slug": "a", "name": "A", "color": "#fff"}]
	}}}}`
	tree := mustTree(t, doc)
	before, _ := json.Marshal(tree)

	ResolvePresets(tree, PresetCategories)

	after, _ := json.Marshal(tree)
	if string(before) != string(after) {
		t.Errorf("tree changed during resolution:\nbefore %s\nafter  %s", before, after)
	}
}

func TestValidSlug(t *testing.T) {
	tests := []struct {
		slug string
		want bool
	}{
		{"pale-pink", true},
		{"x-large", true},
		{"h1", true},
		{"42", true},
		{"", false},
		{"-lead", false},
		{"trail-", false},
		{"double--dash", false},
		{"Upper", false},
		{"with space", false},
		{"snake_case", false},
		{"ünïcode", false},
	}
	for _, tt := range tests {
		if got := ValidSlug(tt.slug); got != tt.want {
			t.Errorf("ValidSlug(%q) = %v, want %v", tt.slug, got, tt.want)
		}
	}
}
