package orgchart

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/orgchart/pkg/dot"
	"github.com/matzehuels/orgchart/pkg/errors"
)

// Style holds the default attributes of a chart. Methods never modify the
// receiver; a Style can be shared freely.
type Style struct {
	Graph dot.Attrs // graph [...]
	Node  dot.Attrs // node [...], applies to unit boxes
	Joint dot.Attrs // attributes of each joint node
	Edge  dot.Attrs // edge [...]
}

// DefaultStyle returns the standard chart style: orthogonal edges without
// arrow heads between fixed-size boxes.
func DefaultStyle() Style {
	return Style{
		Graph: dot.Attrs{
			{Key: "ranksep", Value: "0.3"},
			{Key: "splines", Value: "ortho"},
			{Key: "mode", Value: "hier"},
		},
		Node: dot.Attrs{
			{Key: "shape", Value: "box"},
			{Key: "width", Value: "4.3"},
			{Key: "height", Value: "0.6"},
			{Key: "fontname", Value: "Arial"},
		},
		Joint: dot.Attrs{
			{Key: "shape", Value: "none"},
			{Key: "width", Value: "0"},
			{Key: "height", Value: "0"},
			{Key: "label", Value: ""},
		},
		Edge: dot.Attrs{
			{Key: "dir", Value: "none"},
		},
	}
}

// Overrides are attribute values layered on top of a Style.
type Overrides struct {
	Graph map[string]string
	Node  map[string]string
	Joint map[string]string
	Edge  map[string]string
}

// Merge returns s with o applied. Existing keys keep their position; new
// keys are appended in sorted order so the result is deterministic.
func (s Style) Merge(o Overrides) Style {
	return Style{
		Graph: mergeAttrs(s.Graph, o.Graph),
		Node:  mergeAttrs(s.Node, o.Node),
		Joint: mergeAttrs(s.Joint, o.Joint),
		Edge:  mergeAttrs(s.Edge, o.Edge),
	}
}

func mergeAttrs(base dot.Attrs, over map[string]string) dot.Attrs {
	out := base.Clone()
	keys := make([]string, 0, len(over))
	for k := range over {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		out = out.Set(k, over[k])
	}
	return out
}

// styleFile is the TOML layout of a style file:
//
//	[graph]
//	ranksep = 0.5
//
//	[node]
//	fontname = "Helvetica"
type styleFile struct {
	Graph map[string]any `toml:"graph"`
	Node  map[string]any `toml:"node"`
	Joint map[string]any `toml:"joint"`
	Edge  map[string]any `toml:"edge"`
}

// ParseOverrides decodes TOML style overrides. Values must be strings,
// numbers or booleans; unknown sections are rejected.
func ParseOverrides(data []byte) (Overrides, error) {
	var f styleFile
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return Overrides{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode style")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Overrides{}, errors.New(errors.ErrCodeInvalidConfig, "unknown style keys: %s", strings.Join(keys, ", "))
	}

	var o Overrides
	sections := []struct {
		name string
		in   map[string]any
		out  *map[string]string
	}{
		{"graph", f.Graph, &o.Graph},
		{"node", f.Node, &o.Node},
		{"joint", f.Joint, &o.Joint},
		{"edge", f.Edge, &o.Edge},
	}
	for _, s := range sections {
		m, err := scalarMap(s.name, s.in)
		if err != nil {
			return Overrides{}, err
		}
		*s.out = m
	}
	return o, nil
}

func scalarMap(section string, in map[string]any) (map[string]string, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		switch v := v.(type) {
		case string:
			out[k] = v
		case int64:
			out[k] = strconv.FormatInt(v, 10)
		case float64:
			out[k] = strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			out[k] = strconv.FormatBool(v)
		default:
			return nil, errors.New(errors.ErrCodeInvalidConfig, "%s.%s: unsupported value type %T", section, k, v)
		}
	}
	return out, nil
}

// LoadStyle reads TOML overrides from path and applies them to
// [DefaultStyle].
func LoadStyle(path string) (Style, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Style{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "style %s", path)
		}
		return Style{}, fmt.Errorf("read style %s: %w", path, err)
	}
	o, err := ParseOverrides(data)
	if err != nil {
		return Style{}, fmt.Errorf("%s: %w", path, err)
	}
	return DefaultStyle().Merge(o), nil
}
