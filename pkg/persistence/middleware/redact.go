package middleware

import (
	"context"
	"regexp"

	"github.com/aretw0/nodegraph/pkg/domain"
	"github.com/aretw0/nodegraph/pkg/ports"
)

// Masked replaces redacted parameter values.
const Masked = "***"

type redactMiddleware struct {
	ports.GraphStore
	patterns []*regexp.Regexp
}

// NewRedactMiddleware creates a middleware that masks, on save, the values of
// parameters (and nested map keys, such as environment variables) whose name
// matches one of the patterns. The in-memory graph is left untouched.
func NewRedactMiddleware(patternStrings []string) Middleware {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		patterns[i] = regexp.MustCompile(p)
	}
	return func(next ports.GraphStore) ports.GraphStore {
		return &redactMiddleware{GraphStore: next, patterns: patterns}
	}
}

func (m *redactMiddleware) SaveGraph(ctx context.Context, name string, doc *domain.Document) error {
	cloned := doc.Clone()
	m.maskRecords(cloned.Nodes)
	return m.GraphStore.SaveGraph(ctx, name, cloned)
}

func (m *redactMiddleware) maskRecords(recs []*domain.Record) {
	for _, rec := range recs {
		if rec == nil {
			continue
		}
		rec.Params = deepCopyMap(rec.Params)
		maskMap(rec.Params, m.patterns)
		m.maskRecords(rec.Children)
	}
}

// Helpers

func deepCopyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		if subMap, ok := v.(map[string]any); ok {
			out[k] = deepCopyMap(subMap)
		} else {
			out[k] = v
		}
	}
	return out
}

func maskMap(m map[string]any, patterns []*regexp.Regexp) {
	for k, v := range m {
		masked := false
		for _, p := range patterns {
			if p.MatchString(k) {
				m[k] = Masked
				masked = true
				break
			}
		}
		if subMap, ok := v.(map[string]any); ok && !masked {
			maskMap(subMap, patterns)
		}
	}
}
