package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/nodegraph/pkg/codec"
	"github.com/aretw0/nodegraph/pkg/domain"
)

// Store implements ports.GraphStore using the local filesystem.
// It stores one document per graph in a configured directory.
type Store struct {
	BasePath string
	Format   codec.Format
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".nodegraph/graphs".
func New(basePath string, format codec.Format) *Store {
	if basePath == "" {
		basePath = filepath.Join(".nodegraph", "graphs")
	}
	if format == "" {
		format = codec.FormatYAML
	}
	return &Store{BasePath: basePath, Format: format}
}

func (s *Store) path(name string) string {
	return filepath.Join(s.BasePath, name+s.Format.Ext())
}

func validName(name string) error {
	if name == "" {
		return fmt.Errorf("graph name cannot be empty")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("invalid graph name %q", name)
	}
	return nil
}

// SaveGraph persists the document atomically.
// It writes to a temporary file first, syncs via fsync, and then renames it to the destination.
func (s *Store) SaveGraph(ctx context.Context, name string, doc *domain.Document) error {
	if err := validName(name); err != nil {
		return err
	}

	// Ensure directory exists
	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure graph directory: %w", err)
	}

	data, err := codec.Marshal(doc, s.Format)
	if err != nil {
		return fmt.Errorf("failed to marshal graph: %w", err)
	}

	// Same directory, so the rename stays on one filesystem.
	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-"+name+"-*"+s.Format.Ext())
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath) // no-op once renamed
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Cannot rename an open file on Windows.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	destPath := s.path(name)
	// On Windows, os.Rename fails if dest exists.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing graph file for overwrite: %w", err)
		}
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file to graph file: %w", err)
	}
	return nil
}

// LoadGraph reads and decodes the graph file.
func (s *Store) LoadGraph(ctx context.Context, name string) (*domain.Document, error) {
	if err := validName(name); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrGraphNotFound, name)
		}
		return nil, fmt.Errorf("failed to read graph file: %w", err)
	}

	doc, err := codec.Unmarshal(data, s.Format)
	if err != nil {
		return nil, fmt.Errorf("graph %s: %w", name, err)
	}
	if doc.Name == "" {
		doc.Name = name
	}
	return doc, nil
}

// DeleteGraph removes the graph file.
func (s *Store) DeleteGraph(ctx context.Context, name string) error {
	if err := validName(name); err != nil {
		return err
	}
	err := os.Remove(s.path(name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete graph file: %w", err)
	}
	return nil
}

// ListGraphs returns the names of every graph file of the store's format.
func (s *Store) ListGraphs(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list graphs: %w", err)
	}

	ext := s.Format.Ext()
	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ext || strings.HasPrefix(name, "tmp-") {
			continue
		}
		names = append(names, strings.TrimSuffix(name, ext))
	}
	sort.Strings(names)
	return names, nil
}
