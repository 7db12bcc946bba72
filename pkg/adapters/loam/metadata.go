package loam

// GraphMetadata is the front matter of a graph document.
// Nodes is kept generic and decoded by pkg/codec, so front matter and
// stored documents share one record schema.
type GraphMetadata struct {
	Name    string `json:"name" mapstructure:"name"`
	Version int    `json:"version" mapstructure:"version"`
	Nodes   []any  `json:"nodes" mapstructure:"nodes"`
}
