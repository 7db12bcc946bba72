package ports_test

import (
	"context"
	"sync"
	"testing"

	"github.com/aretw0/nodegraph/pkg/domain"
	"github.com/aretw0/nodegraph/pkg/ports"
)

// MockStore is an in-memory implementation of GraphStore for testing purposes.
type MockStore struct {
	mu   sync.Mutex
	data map[string]domain.Document
}

func NewMockStore() *MockStore {
	return &MockStore{
		data: make(map[string]domain.Document),
	}
}

func (m *MockStore) SaveGraph(ctx context.Context, name string, doc *domain.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[name] = *doc
	return nil
}

func (m *MockStore) LoadGraph(ctx context.Context, name string) (*domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.data[name]
	if !ok {
		return nil, domain.ErrGraphNotFound
	}
	return &doc, nil
}

func (m *MockStore) DeleteGraph(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, name)
	return nil
}

func (m *MockStore) ListGraphs(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.data))
	for name := range m.data {
		names = append(names, name)
	}
	return names, nil
}

func TestGraphStore_Contract(t *testing.T) {
	ports.RunGraphStoreContract(t, NewMockStore())
}

func TestFuncAdapters(t *testing.T) {
	var got string
	var reporter ports.StatusReporter = ports.StatusReporterFunc(func(msg string) { got = msg })
	reporter.ReportStatus("loading")
	if got != "loading" {
		t.Errorf("expected status to be forwarded, got %q", got)
	}

	var resolver ports.PathResolver = ports.PathResolverFunc(func(token, newPath, path string) (string, bool) {
		return newPath + path[len(token):], true
	})
	fixed, ok := resolver.FixFilePath("[Project]", "/shots", "[Project]/a.exr")
	if !ok || fixed != "/shots/a.exr" {
		t.Errorf("unexpected rewrite %q %v", fixed, ok)
	}
}
