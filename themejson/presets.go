package themejson

import (
	"fmt"
	"strings"

	"github.com/gosimple/slug"
)

// Preset is a single entry of a preset list as found in the document.
type Preset struct {
	Slug   string
	Name   string
	Record map[string]any
}

// ResolvedPreset is a preset which survived merging and validation.
type ResolvedPreset struct {
	Preset
	Value  string
	Origin Origin
}

// Malformed describes a preset excluded from output. Callers decide whether to
// log, count or reject.
type Malformed struct {
	Category string
	Origin   Origin
	Index    int
	Slug     string
	Reason   string
}

func (m Malformed) String() string {
	return fmt.Sprintf("%s preset #%d (%s origin, slug %q): %s", m.Category, m.Index, m.Origin, m.Slug, m.Reason)
}

// CategoryPresets holds resolved presets of one category in output order.
type CategoryPresets struct {
	Category *PresetCategory
	Presets  []ResolvedPreset
	// Dropped counts presets which lost a slug collision because override
	// was disabled.
	Dropped int
}

// PresetSet is result of preset resolution, categories in table order.
type PresetSet struct {
	Categories []CategoryPresets
	Malformed  []Malformed
}

// Len returns total number of resolved presets.
func (s PresetSet) Len() int {
	var n int
	for _, c := range s.Categories {
		n += len(c.Presets)
	}
	return n
}

// Category returns presets resolved for category with given name.
func (s PresetSet) Category(name string) (CategoryPresets, bool) {
	for _, c := range s.Categories {
		if c.Category.Name == name {
			return c, true
		}
	}
	return CategoryPresets{}, false
}

// ResolvePresets merges and validates preset lists of every category found in
// the settings section of the tree. It never fails: absent lists produce
// empty categories and bad records are reported in Malformed.
func ResolvePresets(tree Tree, categories []PresetCategory) PresetSet {
	settings := tree.Section(SettingsKey)

	set := PresetSet{Categories: make([]CategoryPresets, 0, len(categories))}
	for i := range categories {
		cat := &categories[i]
		resolved, malformed := resolveCategory(settings, cat)
		set.Categories = append(set.Categories, resolved)
		set.Malformed = append(set.Malformed, malformed...)
	}
	return set
}

// originList is a raw preset list tagged with its origin.
type originList struct {
	origin Origin
	items  []any
}

// presetLists reads lists at category path. A plain list belongs to the theme
// origin, an object holds lists keyed by origin name.
func presetLists(settings map[string]any, path []string) []originList {
	raw, ok := lookup(settings, path)
	if !ok || raw == nil {
		return nil
	}
	if items, ok := raw.([]any); ok {
		return []originList{{origin: OriginTheme, items: items}}
	}
	byOrigin, ok := asObject(raw)
	if !ok {
		return nil
	}
	var lists []originList
	for _, o := range Origins {
		if items, ok := byOrigin[o.String()].([]any); ok {
			lists = append(lists, originList{origin: o, items: items})
		}
	}
	return lists
}

func resolveCategory(settings map[string]any, cat *PresetCategory) (CategoryPresets, []Malformed) {
	out := CategoryPresets{Category: cat}

	// override policy is decided before anything is merged
	override := cat.Override.Allowed(settings)

	var malformed []Malformed
	index := make(map[string]int)
	for _, list := range presetLists(settings, cat.Path) {
		for i, item := range list.items {
			rp, reason := resolvePreset(item, cat, list.origin)
			if reason != "" {
				malformed = append(malformed, Malformed{
					Category: cat.Name,
					Origin:   list.origin,
					Index:    i,
					Slug:     rp.Slug,
					Reason:   reason,
				})
				continue
			}
			if pos, exists := index[rp.Slug]; exists {
				if override {
					out.Presets[pos] = rp
				} else {
					out.Dropped++
				}
				continue
			}
			index[rp.Slug] = len(out.Presets)
			out.Presets = append(out.Presets, rp)
		}
	}
	return out, malformed
}

func resolvePreset(item any, cat *PresetCategory, origin Origin) (ResolvedPreset, string) {
	p, reason := parsePreset(item, cat)
	rp := ResolvedPreset{Preset: p, Origin: origin}
	if reason != "" {
		return rp, reason
	}
	value, err := cat.Value.extract(p)
	if err != nil {
		return rp, err.Error()
	}
	rp.Value = value
	return rp, ""
}

// parsePreset extracts identity of a preset record. Non-empty reason means
// the record is malformed.
func parsePreset(item any, cat *PresetCategory) (Preset, string) {
	record, ok := asObject(item)
	if !ok {
		return Preset{}, fmt.Sprintf("preset must be an object, got %T", item)
	}
	p := Preset{Record: record}
	p.Slug, _ = record["slug"].(string)
	p.Name, _ = record["name"].(string)

	switch {
	case p.Slug == "":
		return p, "missing slug"
	case !ValidSlug(p.Slug):
		return p, "slug must contain only lowercase letters, digits and single hyphens"
	case cat.UseDefaultNames && isNumeric(p.Slug):
		return p, "numeric slug is reserved for generated names"
	case strings.TrimSpace(p.Name) == "":
		return p, "missing name"
	}
	return p, ""
}

// ValidSlug reports whether s is usable as preset identifier in CSS names:
// lowercase ASCII letters, digits and hyphens, never leading, trailing or doubled.
func ValidSlug(s string) bool {
	// slug.IsSlug also allows underscores
	return slug.IsSlug(s) && !strings.ContainsAny(s, "_") && !strings.Contains(s, "--")
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
