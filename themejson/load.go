package themejson

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	yaml "gopkg.in/yaml.v3"

	"themestyle/archive"
)

// DocumentName is what theme packages call their configuration file.
const DocumentName = "theme.json"

// Format of serialized document.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatFromPath guesses document format by file extension.
func FormatFromPath(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode parses serialized document. Top level must be an object.
func Decode(data []byte, format Format) (Tree, error) {
	var raw any
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("unable to decode yaml document: %w", err)
		}
		raw = normalizeYAML(raw)
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("unable to decode json document: %w", err)
		}
	}
	if raw == nil {
		return Tree{}, nil
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("document must be an object, got %T", raw)
	}
	return Tree(obj), nil
}

// normalizeYAML converts map[any]any which yaml produces for non-string keys
// so the rest of the package only deals with map[string]any.
func normalizeYAML(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, item := range val {
			val[k] = normalizeYAML(item)
		}
		return val
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprint(k)] = normalizeYAML(item)
		}
		return out
	case []any:
		for i, item := range val {
			val[i] = normalizeYAML(item)
		}
		return val
	default:
		return v
	}
}

// LoadFile reads document from a file. Zip archives are searched for
// theme.json, a directory is expected to contain one.
func LoadFile(path string) (Tree, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if fi.IsDir() {
		path = filepath.Join(path, DocumentName)
	}

	var data []byte
	name := path
	if strings.EqualFold(filepath.Ext(path), ".zip") {
		var entry string
		if entry, data, err = archive.Find(path, DocumentName); err != nil {
			return nil, err
		}
		name = entry
	} else if data, err = os.ReadFile(path); err != nil {
		return nil, err
	}

	tree, err := Decode(data, FormatFromPath(name))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tree, nil
}

// LoadLayers reads all paths and merges them in order.
func LoadLayers(paths ...string) (Tree, error) {
	if len(paths) == 0 {
		return nil, errors.New("no documents to load")
	}
	layers := make([]Tree, 0, len(paths))
	for _, p := range paths {
		tree, err := LoadFile(p)
		if err != nil {
			return nil, fmt.Errorf("unable to load %q: %w", p, err)
		}
		layers = append(layers, tree)
	}
	return Merge(layers...)
}
