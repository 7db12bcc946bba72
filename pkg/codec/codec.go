// Package codec reads and writes persisted graph documents.
//
// Documents are YAML or JSON. Decoding goes through a generic map so that
// documents embedded in other sources (front matter, HTTP bodies) share the
// same rules: numbers are normalised and YAML's map[any]any is accepted.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/aretw0/nodegraph/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Format identifies an on-disk encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the format from a file extension. Unknown extensions are YAML.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Ext returns the file extension of the format, dot included.
func (f Format) Ext() string {
	if f == FormatJSON {
		return ".json"
	}
	return ".yaml"
}

// Marshal encodes doc.
func Marshal(doc *domain.Document, format Format) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("marshal: nil document")
	}
	switch format {
	case FormatJSON:
		return json.MarshalIndent(doc, "", "  ")
	case FormatYAML, "":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("failed to encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("unknown format %q", format)
}

// Unmarshal decodes a document.
func Unmarshal(data []byte, format Format) (*domain.Document, error) {
	var raw map[string]any
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("failed to parse json document: %w", err)
		}
	case FormatYAML, "":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse yaml document: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
	if raw == nil {
		return nil, fmt.Errorf("empty document")
	}
	return DecodeDocument(raw)
}

// DecodeDocument converts a generic map into a document.
func DecodeDocument(raw map[string]any) (*domain.Document, error) {
	var doc domain.Document
	if err := decode(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	if doc.Version > domain.DocumentVersion {
		return nil, fmt.Errorf("document version %d is newer than supported version %d", doc.Version, domain.DocumentVersion)
	}
	for i, rec := range doc.Nodes {
		if err := normaliseRecord(rec); err != nil {
			return nil, fmt.Errorf("nodes[%d]: %w", i, err)
		}
	}
	return &doc, nil
}

// DecodeRecords converts a generic list, as found in front matter, into records.
func DecodeRecords(raw []any) ([]*domain.Record, error) {
	var records []*domain.Record
	if err := decode(raw, &records); err != nil {
		return nil, fmt.Errorf("failed to decode records: %w", err)
	}
	for i, rec := range records {
		if err := normaliseRecord(rec); err != nil {
			return nil, fmt.Errorf("nodes[%d]: %w", i, err)
		}
	}
	return records, nil
}

func decode(input, output any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.ComposeDecodeHookFunc(stringKeysHook, numberHook),
		WeaklyTypedInput: true,
		ErrorUnused:      false,
		Result:           output,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

// stringKeysHook accepts the map[any]any produced by some YAML decoders.
func stringKeysHook(from, to reflect.Type, data any) (any, error) {
	if m, ok := data.(map[any]any); ok {
		return stringKeys(m), nil
	}
	return data, nil
}

// numberHook turns json.Number into int or float64 for typed targets.
func numberHook(from, to reflect.Type, data any) (any, error) {
	n, ok := data.(json.Number)
	if !ok {
		return data, nil
	}
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return n.Int64()
	case reflect.Float32, reflect.Float64:
		return n.Float64()
	}
	return normaliseValue(n), nil
}

func normaliseRecord(rec *domain.Record) error {
	if rec == nil {
		return fmt.Errorf("null record")
	}
	if rec.PluginID == "" {
		return fmt.Errorf("record %q has no plugin_id", rec.ScriptName)
	}
	for k, v := range rec.Params {
		rec.Params[k] = normaliseValue(v)
	}
	for i, child := range rec.Children {
		if err := normaliseRecord(child); err != nil {
			return fmt.Errorf("%s.children[%d]: %w", rec.ScriptName, i, err)
		}
	}
	return nil
}

// normaliseValue makes parameter values independent of the source encoding:
// integral numbers become int, other numbers float64.
func normaliseValue(v any) any {
	switch x := v.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return int(i)
		}
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	case int64:
		return int(x)
	case map[any]any:
		return stringKeys(x)
	case map[string]any:
		for k, sub := range x {
			x[k] = normaliseValue(sub)
		}
		return x
	case []any:
		for i, sub := range x {
			x[i] = normaliseValue(sub)
		}
		return x
	}
	return v
}

func stringKeys(m map[any]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[fmt.Sprint(k)] = normaliseValue(v)
	}
	return out
}
