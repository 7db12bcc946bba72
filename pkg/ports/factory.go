package ports

import (
	"context"

	"github.com/aretw0/nodegraph/pkg/domain"
)

// NodeFactory instantiates nodes on behalf of the graph core.
type NodeFactory interface {
	// CreateNode creates a node of rec's plugin, names it inside coll and adds it.
	// A plugin the factory does not know yields a pass-through node whose
	// plugin id is domain.PluginIDStub, not an error.
	CreateNode(ctx context.Context, coll domain.Collection, rec *domain.Record) (domain.Node, error)
}

// StatusReporter receives user-facing progress messages.
type StatusReporter interface {
	ReportStatus(msg string)
}

// StatusReporterFunc adapts a function to StatusReporter.
type StatusReporterFunc func(msg string)

func (f StatusReporterFunc) ReportStatus(msg string) { f(msg) }

// PathResolver substitutes project path tokens in file paths.
type PathResolver interface {
	// FixFilePath rewrites path, which may start with token, so that it is
	// expressed relative to newPath. ok is false when path was left unchanged.
	FixFilePath(token, newPath, path string) (fixed string, ok bool)
}

// PathResolverFunc adapts a function to PathResolver.
type PathResolverFunc func(token, newPath, path string) (string, bool)

func (f PathResolverFunc) FixFilePath(token, newPath, path string) (string, bool) {
	return f(token, newPath, path)
}
