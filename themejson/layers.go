package themejson

// AssignOrigin returns copy of tree with every plain preset list of given
// categories moved under origin key, {"palette": [...]} becomes
// {"palette": {"theme": [...]}}. Layers prepared this way keep their lists
// side by side when merged and origin precedence decides between them later.
// Lists already keyed by origin are left alone.
func AssignOrigin(tree Tree, origin Origin, categories []PresetCategory) Tree {
	out := tree.Clone()
	settings, ok := asObject(out[SettingsKey])
	if !ok {
		return out
	}
	for i := range categories {
		path := categories[i].Path
		if len(path) == 0 {
			continue
		}
		raw, ok := lookup(settings, path[:len(path)-1])
		if !ok {
			continue
		}
		parent, ok := asObject(raw)
		if !ok {
			continue
		}
		last := path[len(path)-1]
		if items, ok := parent[last].([]any); ok {
			parent[last] = map[string]any{origin.String(): items}
		}
	}
	return out
}

// MergeOrigins assigns origins to layers by position starting from first:
// with OriginDefault the layers are core defaults, theme, then user
// customizations. Everything past the last origin is a customization too.
// Layers are then merged in order.
func MergeOrigins(first Origin, layers ...Tree) (Tree, error) {
	tagged := make([]Tree, 0, len(layers))
	for i, layer := range layers {
		origin := min(first+Origin(i), OriginCustom)
		tagged = append(tagged, AssignOrigin(layer, origin, PresetCategories))
	}
	return Merge(tagged...)
}
