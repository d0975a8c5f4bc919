package themejson

import (
	"fmt"
	"sort"
	"strings"

	"github.com/maruel/natural"
)

// Violation is a single schema problem found in the document.
type Violation struct {
	Path   string
	Reason string
}

func (v Violation) String() string {
	return v.Path + ": " + v.Reason
}

// ValidationResult collects all violations. Validation never stops on the
// first problem, rejecting the document is caller's policy.
type ValidationResult struct {
	Violations []Violation
}

// Valid reports whether no violations were found.
func (r ValidationResult) Valid() bool {
	return len(r.Violations) == 0
}

// Paths returns offending paths in report order.
func (r ValidationResult) Paths() []string {
	paths := make([]string, 0, len(r.Violations))
	for _, v := range r.Violations {
		paths = append(paths, v.Path)
	}
	return paths
}

func (r ValidationResult) String() string {
	lines := make([]string, 0, len(r.Violations))
	for _, v := range r.Violations {
		lines = append(lines, v.String())
	}
	return strings.Join(lines, "\n")
}

const (
	reasonUnknownKey   = "unknown key"
	reasonNotAnObject  = "must be an object"
	reasonOnlyChildKey = "only %q is allowed here"
)

type validator struct {
	violations []Violation
}

func (v *validator) report(path []string, reason string) {
	v.violations = append(v.violations, Violation{Path: joinPath(path), Reason: reason})
}

// ValidateShape checks top level keys and the shape of the styles section.
// Violations are sorted by path for stable reports.
func ValidateShape(tree Tree) ValidationResult {
	v := &validator{}
	for _, key := range sortedKeys(tree) {
		if !ValidTopLevelKeys[key] {
			v.report([]string{key}, reasonUnknownKey)
		}
	}
	if raw, ok := tree[StylesKey]; ok && raw != nil {
		if styles, ok := asObject(raw); ok {
			v.styleNode([]string{StylesKey}, styles, true)
		} else {
			v.report([]string{StylesKey}, reasonNotAnObject)
		}
	}

	sort.SliceStable(v.violations, func(i, j int) bool {
		return natural.Less(v.violations[i].Path, v.violations[j].Path)
	})
	return ValidationResult{Violations: v.violations}
}

// styleNode validates one style node. Root node and block nodes may carry
// elements, only root node may carry blocks and free-form css.
func (v *validator) styleNode(path []string, node map[string]any, root bool) {
	for _, key := range sortedKeys(node) {
		child := append(path[:len(path):len(path)], key)
		switch {
		case key == StylesElementsKey:
			v.elements(child, node[key])
		case key == StylesBlocksKey && root:
			v.blocks(child, node[key])
		case key == StylesCSSKey:
			if _, ok := node[key].(string); !ok {
				v.report(child, "must be a string")
			}
		default:
			shape, known := ValidStyleShape[key]
			if !known {
				v.report(child, reasonUnknownKey)
				continue
			}
			v.shape(child, node[key], shape)
		}
	}
}

func (v *validator) elements(path []string, raw any) {
	elements, ok := asObject(raw)
	if !ok {
		v.report(path, reasonNotAnObject)
		return
	}
	for _, name := range sortedKeys(elements) {
		child := append(path[:len(path):len(path)], name)
		if _, known := ElementSelectors[name]; !known {
			v.report(child, reasonUnknownKey)
			continue
		}
		node, ok := asObject(elements[name])
		if !ok {
			v.report(child, reasonNotAnObject)
			continue
		}
		v.leafNode(child, node)
	}
}

func (v *validator) blocks(path []string, raw any) {
	blocks, ok := asObject(raw)
	if !ok {
		v.report(path, reasonNotAnObject)
		return
	}
	for _, name := range sortedKeys(blocks) {
		child := append(path[:len(path):len(path)], name)
		node, ok := asObject(blocks[name])
		if !ok {
			v.report(child, reasonNotAnObject)
			continue
		}
		v.styleNode(child, node, false)
	}
}

// leafNode validates element style which may not nest anything structural.
func (v *validator) leafNode(path []string, node map[string]any) {
	for _, key := range sortedKeys(node) {
		child := append(path[:len(path):len(path)], key)
		shape, known := ValidStyleShape[key]
		if !known {
			v.report(child, reasonUnknownKey)
			continue
		}
		v.shape(child, node[key], shape)
	}
}

// shape checks value against shape entry: nil accepts anything, a string
// accepts only that single child key, nested Shape recurses.
func (v *validator) shape(path []string, value any, shape any) {
	switch s := shape.(type) {
	case nil:
		return
	case string:
		obj, ok := asObject(value)
		if !ok {
			// scalar value is allowed, only structure is restricted
			return
		}
		for _, key := range sortedKeys(obj) {
			if key != s {
				v.report(append(path[:len(path):len(path)], key), fmt.Sprintf(reasonOnlyChildKey, s))
			}
		}
	case Shape:
		obj, ok := asObject(value)
		if !ok {
			return
		}
		for _, key := range sortedKeys(obj) {
			child := append(path[:len(path):len(path)], key)
			sub, known := s[key]
			if !known {
				v.report(child, reasonUnknownKey)
				continue
			}
			v.shape(child, obj[key], sub)
		}
	}
}
