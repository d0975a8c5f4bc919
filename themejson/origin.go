package themejson

import "fmt"

// Origin is provenance tier of a preset list. Later origins take precedence.
type Origin int

const (
	OriginDefault Origin = iota
	OriginTheme
	OriginCustom
)

// Origins lists all tiers in merge order (lowest precedence first).
var Origins = []Origin{OriginDefault, OriginTheme, OriginCustom}

var originNames = map[Origin]string{
	OriginDefault: "default",
	OriginTheme:   "theme",
	OriginCustom:  "custom",
}

func (o Origin) String() string {
	if name, ok := originNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Origin(%d)", int(o))
}

// ParseOrigin converts origin key as it appears in the document.
func ParseOrigin(name string) (Origin, error) {
	for o, n := range originNames {
		if n == name {
			return o, nil
		}
	}
	return 0, fmt.Errorf("%s is not a valid origin", name)
}

// MarshalText makes Origin usable as map key and in encoded output.
func (o Origin) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}
