package themejson

import (
	"strings"
	"testing"
)

func TestValidateShape_UnknownTopLevelKey(t *testing.T) {
	tree := mustTree(t, `{"version": 2, "settings": {}, "unknownKey": 1}`)

	res := ValidateShape(tree)
	if res.Valid() {
		t.Fatal("expected violations")
	}
	if len(res.Violations) != 1 {
		t.Fatalf("got %d violations, want 1: %v", len(res.Violations), res)
	}
	if v := res.Violations[0]; v.Path != "unknownKey" || v.Reason != reasonUnknownKey {
		t.Errorf("violation = %v", v)
	}
}

func TestValidateShape_Valid(t *testing.T) {
	tree := mustTree(t, `{
		"$schema": "https://schemas.wp.org/trunk/theme.json",
		"version": 2,
		"title": "Sample",
		"settings": {"anything": {"goes": "here"}},
		"styles": {
			"css": "body { margin: 0 }",
			"color": {"text": "#000"},
			"shadow": {"whatever": {"deep": true}},
			"spacing": {"blockGap": {"top": "1rem"}, "padding": {"top": "1px"}},
			"elements": {"link": {"color": {"text": "red"}}, "h1": {"typography": {"fontSize": "2rem"}}},
			"blocks": {
				"core/button": {
					"border": {"radius": "4px"},
					"elements": {"link": {"color": {"text": "blue"}}}
				}
			}
		},
		"templateParts": [],
		"patterns": ["a"]
	}`)

	if res := ValidateShape(tree); !res.Valid() {
		t.Errorf("unexpected violations:\n%s", res)
	}
}

func TestValidateShape_BlockGap(t *testing.T) {
	tests := []struct {
		name      string
		blockGap  string
		wantPaths []string
	}{
		{"scalar", `"1rem"`, nil},
		{"top only", `{"top": "1rem"}`, nil},
		{"left rejected", `{"top": "1rem", "left": "2rem"}`, []string{"styles.spacing.blockGap.left"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := mustTree(t, `{"styles": {"spacing": {"blockGap": `+tt.blockGap+`}}}`)
			res := ValidateShape(tree)
			if got := strings.Join(res.Paths(), ","); got != strings.Join(tt.wantPaths, ",") {
				t.Errorf("paths = %q, want %q", got, tt.wantPaths)
			}
			for _, v := range res.Violations {
				if !strings.Contains(v.Reason, `"top"`) {
					t.Errorf("reason = %q, want it to name the allowed key", v.Reason)
				}
			}
		})
	}
}

func TestValidateShape_CollectsAll(t *testing.T) {
	tree := mustTree(t, `{
		"extra": true,
		"styles": {
			"color": {"text": "#000", "hue": 10},
			"outline": {},
			"css": 42,
			"elements": {"marquee": {}, "link": {"blocks": {}}, "button": "red"},
			"blocks": {
				"core/group": {"blocks": {}, "typography": {"fontSize": "1rem", "kerning": 1}},
				"core/quote": []
			}
		}
	}`)

	res := ValidateShape(tree)
	want := []string{
		"extra",
		"styles.blocks.core/group.blocks",
		"styles.blocks.core/group.typography.kerning",
		"styles.blocks.core/quote",
		"styles.color.hue",
		"styles.css",
		"styles.elements.button",
		"styles.elements.link.blocks",
		"styles.elements.marquee",
		"styles.outline",
	}
	if got := res.Paths(); strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("paths:\n%s\nwant:\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}

func TestValidateShape_StylesNotObject(t *testing.T) {
	res := ValidateShape(Tree{"styles": []any{}})
	if len(res.Violations) != 1 || res.Violations[0].Path != "styles" || res.Violations[0].Reason != reasonNotAnObject {
		t.Errorf("violations = %v", res.Violations)
	}
}

func TestValidateShape_NaturalOrder(t *testing.T) {
	res := ValidateShape(Tree{"key10": 1, "key9": 1, "key1": 1})
	if got := strings.Join(res.Paths(), ","); got != "key1,key9,key10" {
		t.Errorf("paths = %s, want natural order", got)
	}
}
