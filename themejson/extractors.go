package themejson

import (
	"errors"
	"fmt"
)

// valueFuncs is the closed set of transforms a category may select instead of
// reading a single field. Every function must be pure.
var valueFuncs = map[ValueFunc]func(Preset) (string, error){
	ValueFuncDuotoneFilter: duotoneFilter,
}

// duotoneFilter references SVG filter rendered elsewhere for this preset.
// The preset must carry at least two colors for the filter to exist.
func duotoneFilter(p Preset) (string, error) {
	raw, ok := p.Record["colors"]
	if !ok {
		return "", errors.New("duotone preset has no colors")
	}
	colors, ok := raw.([]any)
	if !ok {
		return "", fmt.Errorf("duotone colors must be a list, got %T", raw)
	}
	if len(colors) < 2 {
		return "", fmt.Errorf("duotone needs at least 2 colors, got %d", len(colors))
	}
	for i, c := range colors {
		if s, ok := c.(string); !ok || s == "" {
			return "", fmt.Errorf("duotone color %d is not a string", i)
		}
	}
	return "url('#wp-duotone-" + p.Slug + "')", nil
}

// extract computes CSS value of the preset according to category extractor.
func (v ValueExtractor) extract(p Preset) (string, error) {
	if v.Func != "" {
		fn, ok := valueFuncs[v.Func]
		if !ok {
			// tables are validated on start, this should never happen
			return "", fmt.Errorf("unknown value function %q", v.Func)
		}
		return fn(p)
	}
	raw, ok := p.Record[v.Field]
	if !ok || raw == nil {
		return "", fmt.Errorf("missing value field %q", v.Field)
	}
	s, ok := scalarString(raw)
	if !ok || s == "" {
		return "", fmt.Errorf("value field %q is not a scalar", v.Field)
	}
	return s, nil
}
