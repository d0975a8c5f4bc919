package themejson

import (
	"fmt"

	"dario.cat/mergo"
)

// Merge deep-merges document layers in order, later layers win. Objects are
// merged key by key, lists and scalars are replaced. Layers are not modified.
func Merge(layers ...Tree) (Tree, error) {
	out := Tree{}
	for i, layer := range layers {
		if len(layer) == 0 {
			continue
		}
		if err := mergo.Merge(&out, layer.Clone(), mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("unable to merge layer %d: %w", i, err)
		}
	}
	return out, nil
}
