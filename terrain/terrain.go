package terrain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Terrain is a single terrain entry of a map: the texture it renders with
// plus the gameplay attributes pathing uses.
type Terrain struct {
	Texture string  `yaml:"texture,omitempty"`
	Type    string  `yaml:"type"`
	Cost    Numeric `yaml:"cost"`
	Mask    Numeric `yaml:"mask"`

	// Extra holds any other keys of the entry. They are never edited here
	// and are written back unchanged.
	Extra map[string]any `yaml:",inline"`
}

// WithDefaults fills unset fields: empty texture and type stay empty, empty
// cost and mask become "0".
func (t Terrain) WithDefaults() Terrain {
	out := t.Clone()
	if out.Cost == "" {
		out.Cost = "0"
	}
	if out.Mask == "" {
		out.Mask = "0"
	}
	return out
}

// Clone returns a copy that shares no maps or slices with t, including
// those nested in Extra.
func (t Terrain) Clone() Terrain {
	out := t
	if t.Extra != nil {
		out.Extra = cloneMap(t.Extra)
	}
	return out
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

// cloneValue copies the container shapes yaml.v3 decodes into.
func cloneValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		return cloneMap(v)
	case map[any]any:
		out := make(map[any]any, len(v))
		for k, e := range v {
			out[k] = cloneValue(e)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

// Merge overlays the four edited attributes on a copy of original.
func Merge(original Terrain, edits EditState) Terrain {
	out := original.Clone()
	out.Texture = edits.Texture
	out.Type = edits.Type
	out.Cost = edits.Cost
	out.Mask = edits.Mask
	return out
}

// NormalizeType turns free text into a terrain type identifier: every
// whitespace rune and every hyphen becomes an underscore, then the result
// is upper-cased with full case mapping ("ß" becomes "SS").
//
//	NormalizeType("grass hill-top") == "GRASS_HILL_TOP"
func NormalizeType(s string) string {
	return cases.Upper(language.Und).String(typeSeparators.ReplaceAllString(s, "_"))
}

var typeSeparators = regexp.MustCompile(`[\s\x0B\p{Zs}\x{2028}\x{2029}\x{FEFF}-]`)

// Numeric is a cost or mask value kept as the text it was entered as.
// Input fields store whatever the user typed; consumers that need a number
// call Int or Float and decide what to do with malformed values.
type Numeric string

// NumericInt formats n as a Numeric.
func NumericInt(n int) Numeric {
	return Numeric(strconv.Itoa(n))
}

func (n Numeric) String() string { return string(n) }

// IsNumber reports whether the text is a plain decimal number.
func (n Numeric) IsNumber() bool {
	return numberPattern.MatchString(string(n))
}

func (n Numeric) Int() (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(string(n)))
	if err != nil {
		return 0, fmt.Errorf("terrain: %q is not an integer: %w", string(n), err)
	}
	return v, nil
}

func (n Numeric) Float() (float64, error) {
	if !numberPattern.MatchString(strings.TrimSpace(string(n))) {
		return 0, fmt.Errorf("terrain: %q is not a number", string(n))
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(string(n)), 64)
	if err != nil {
		return 0, fmt.Errorf("terrain: %q is not a number: %w", string(n), err)
	}
	return v, nil
}

var (
	numberPattern  = regexp.MustCompile(`^[-+]?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?$`)
	integerPattern = regexp.MustCompile(`^[-+]?\d+$`)
)

// MarshalYAML writes numbers as YAML numbers with their original spelling
// and anything else as a string.
func (n Numeric) MarshalYAML() (any, error) {
	s := string(n)
	switch {
	case integerPattern.MatchString(s):
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: s}, nil
	case numberPattern.MatchString(s):
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: s}, nil
	default:
		return s, nil
	}
}

func (n *Numeric) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("terrain: line %d: expected a scalar, got %s", value.Line, kindName(value.Kind))
	}
	if value.Tag == "!!null" {
		*n = ""
		return nil
	}
	*n = Numeric(value.Value)
	return nil
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.AliasNode:
		return "alias"
	default:
		return "scalar"
	}
}

// MarshalTerrain encodes a single entry, the format the editor puts on the
// clipboard.
func MarshalTerrain(t Terrain) ([]byte, error) {
	data, err := yaml.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("terrain: marshal %s: %w", t.Type, err)
	}
	return data, nil
}

// ParseTerrain decodes a single entry. The type is normalized.
func ParseTerrain(data []byte) (Terrain, error) {
	var t Terrain
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Terrain{}, fmt.Errorf("terrain: unmarshal entry: %w", err)
	}
	t.Type = NormalizeType(t.Type)
	return t, nil
}
