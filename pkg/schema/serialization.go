package schema

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Entry is one parameter of a serialized schema.
type Entry struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// Kinds lists the schema entries sorted by parameter name.
func (s Schema) Kinds() ([]Entry, error) {
	out := make([]Entry, 0, len(s))
	for name, typ := range s {
		if typ == nil {
			return nil, fmt.Errorf("parameter %s: no type", name)
		}
		out = append(out, Entry{Name: name, Kind: typ.Name()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// MarshalJSON writes the schema as its sorted Kinds.
func (s Schema) MarshalJSON() ([]byte, error) {
	kinds, err := s.Kinds()
	if err != nil {
		return nil, err
	}
	return json.Marshal(kinds)
}
