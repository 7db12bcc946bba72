package nodegraph

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/aretw0/loam"
	"github.com/aretw0/nodegraph/internal/logging"
	loamAdapter "github.com/aretw0/nodegraph/pkg/adapters/loam"
	"github.com/aretw0/nodegraph/pkg/collection"
	"github.com/aretw0/nodegraph/pkg/domain"
	"github.com/aretw0/nodegraph/pkg/effect"
	"github.com/aretw0/nodegraph/pkg/group"
	"github.com/aretw0/nodegraph/pkg/observability"
	"github.com/aretw0/nodegraph/pkg/persistence/middleware"
	"github.com/aretw0/nodegraph/pkg/ports"
	"github.com/aretw0/nodegraph/pkg/project"
	"github.com/aretw0/nodegraph/pkg/registry"
	"github.com/aretw0/nodegraph/pkg/restore"
)

// ErrReadOnly is returned when saving without a GraphStore.
var ErrReadOnly = errors.New("project has no graph store")

// Project is the high-level entry point of the library. It owns the
// top-level collection and wires the factory, the restorer and the storage
// adapters around it.
type Project struct {
	Name string

	root     *collection.Collection
	plugins  *registry.Registry
	factory  *effect.Factory
	restorer *restore.Restorer

	loader  ports.GraphLoader
	store   ports.GraphStore
	manager *project.Manager
	locker  ports.DistributedLocker

	hooks    domain.GraphHooks
	metrics  *observability.Metrics
	reporter ports.StatusReporter
	paths    ports.PathResolver
	logger   *slog.Logger

	pluginFiles   []string
	middlewares   []middleware.Middleware
	closer        io.Closer
	loaderIsStore bool

	mu      sync.Mutex
	current string
}

// Option defines a functional option for configuring the Project.
type Option func(*Project)

// WithLoader injects a custom GraphLoader, bypassing the default Loam initialization.
func WithLoader(l ports.GraphLoader) Option {
	return func(p *Project) {
		p.loader = l
	}
}

// WithStore sets the store graphs are saved to. It also serves as the loader
// unless WithLoader is given.
func WithStore(s ports.GraphStore) Option {
	return func(p *Project) {
		p.store = s
	}
}

// WithStoreMiddleware wraps the store given to WithStore, first middleware
// outermost.
func WithStoreMiddleware(mws ...middleware.Middleware) Option {
	return func(p *Project) {
		p.middlewares = append(p.middlewares, mws...)
	}
}

// WithLocker enables distributed locking of saves.
func WithLocker(l ports.DistributedLocker) Option {
	return func(p *Project) {
		p.locker = l
	}
}

// WithRegistry replaces the plugin registry. Built-in plugins are not added.
func WithRegistry(r *registry.Registry) Option {
	return func(p *Project) {
		p.plugins = r
	}
}

// WithPluginFile registers the plugins of a YAML or JSON catalogue.
func WithPluginFile(path string) Option {
	return func(p *Project) {
		p.pluginFiles = append(p.pluginFiles, path)
	}
}

// WithGraphHooks registers structural-change callbacks for every level.
func WithGraphHooks(hooks domain.GraphHooks) Option {
	return func(p *Project) {
		p.hooks = hooks
	}
}

// WithMetrics binds Prometheus collectors to the graph and to restoration.
func WithMetrics(m *observability.Metrics) Option {
	return func(p *Project) {
		p.metrics = m
	}
}

// WithStatusReporter sets the channel receiving load progress messages.
func WithStatusReporter(r ports.StatusReporter) Option {
	return func(p *Project) {
		p.reporter = r
	}
}

// WithPathResolver sets how project path tokens are rewritten.
func WithPathResolver(r ports.PathResolver) Option {
	return func(p *Project) {
		p.paths = r
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Project) {
		p.logger = logger
	}
}

// New initializes a Project.
// By default graphs are read from a Loam repository at repoPath. When a
// loader or a store is injected, repoPath is only used as the project name.
func New(repoPath string, opts ...Option) (*Project, error) {
	p := &Project{}
	for _, opt := range opts {
		opt(p)
	}

	if p.store != nil {
		p.closer, _ = p.store.(io.Closer)
		p.store = middleware.Chain(p.store, p.middlewares...)
	}

	if p.loader == nil && p.store != nil {
		p.loader = p.store
		p.loaderIsStore = true
	}

	if p.loader == nil {
		if repoPath == "" {
			return nil, fmt.Errorf("repoPath is required when no custom loader is provided")
		}

		absPath, err := filepath.Abs(repoPath)
		if err != nil {
			return nil, fmt.Errorf("invalid path: %w", err)
		}
		p.Name = filepath.Base(absPath)

		// Strict mode makes every adapter return json.Number; read-only keeps
		// Loam from sandboxing the repository.
		repo, err := loam.Init(absPath,
			loam.WithStrict(true),
			loam.WithReadOnly(true),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize loam: %w", err)
		}
		p.loader = loamAdapter.New(loam.NewTypedRepository[loamAdapter.GraphMetadata](repo))
	} else if repoPath != "" {
		p.Name = filepath.Base(repoPath)
	}

	if p.logger == nil {
		p.logger = logging.NewNop()
	}
	if p.Name != "" {
		p.logger = p.logger.With("project", p.Name)
	}

	if p.plugins == nil {
		p.plugins = registry.NewWithBuiltins()
	}
	for _, path := range p.pluginFiles {
		n, err := p.plugins.LoadFile(path)
		if err != nil {
			return nil, err
		}
		p.logger.Debug("plugins loaded", "file", path, "count", n)
	}

	hooks := p.hooks
	restoreOpts := []restore.Option{restore.WithLogger(p.logger)}
	if p.metrics != nil {
		hooks = hooks.Merge(p.metrics.Hooks())
		restoreOpts = append(restoreOpts, restore.WithAnomalyObserver(p.metrics.ObserveAnomaly))
	}
	if p.reporter != nil {
		restoreOpts = append(restoreOpts, restore.WithStatusReporter(p.reporter))
	}

	p.root = collection.New(collection.WithHooks(hooks), collection.WithLogger(p.logger))
	p.factory = effect.NewFactory(p.plugins, effect.WithHooks(hooks), effect.WithLogger(p.logger))
	p.restorer = restore.New(p.factory, restoreOpts...)

	if p.store != nil {
		managerOpts := []project.Option{project.WithLogger(p.logger)}
		if p.locker != nil {
			managerOpts = append(managerOpts, project.WithLocker(p.locker))
		}
		p.manager = project.NewManager(p.store, managerOpts...)
	}

	return p, nil
}

// Root returns the top-level collection.
func (p *Project) Root() *collection.Collection {
	return p.root
}

// Plugins returns the plugin registry.
func (p *Project) Plugins() *registry.Registry {
	return p.plugins
}

// Factory returns the node factory.
func (p *Project) Factory() ports.NodeFactory {
	return p.factory
}

// Loader returns the GraphLoader graphs are read from.
func (p *Project) Loader() ports.GraphLoader {
	return p.loader
}

// Logger returns the project logger.
func (p *Project) Logger() *slog.Logger {
	return p.logger
}

// Metrics returns the bound collectors, or nil.
func (p *Project) Metrics() *observability.Metrics {
	return p.metrics
}

// Current returns the name of the graph last loaded or saved.
func (p *Project) Current() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

func (p *Project) setCurrent(name string) {
	p.mu.Lock()
	p.current = name
	p.mu.Unlock()
}

// CreateNode adds a node of pluginID to the top level. New groups get an
// input and an output terminal. When selected is not nil the new node is
// auto-connected to it.
func (p *Project) CreateNode(ctx context.Context, pluginID string, selected domain.Node) (domain.Node, error) {
	node, err := p.factory.CreateNode(ctx, p.root, &domain.Record{PluginID: pluginID})
	if err != nil {
		return nil, err
	}
	if g, ok := node.(*group.Group); ok {
		if err := g.SetupInitialSubGraph(ctx, p.factory); err != nil {
			return node, err
		}
	}
	if selected != nil && !group.AutoConnect(selected, node) {
		p.logger.Debug("auto-connect skipped", "selected", selected.ScriptName(), "created", node.ScriptName())
	}
	p.root.SetEditedByUser(true)
	return node, nil
}

// readGraph fetches a document through the lock manager when there is one.
func (p *Project) readGraph(ctx context.Context, name string) (*domain.Document, error) {
	if p.loaderIsStore {
		return p.manager.Load(ctx, name)
	}
	return p.loader.LoadGraph(ctx, name)
}

// Load replaces the top level with the graph stored as name.
// Anomalies do not fail the load; they are reported in the Result.
func (p *Project) Load(ctx context.Context, name string) (*restore.Result, error) {
	doc, err := p.readGraph(ctx, name)
	if err != nil {
		return nil, err
	}

	p.root.ClearNodes(true)
	res, err := p.restore(ctx, doc.Nodes, restore.FlagNone)
	if err != nil {
		return res, err
	}
	p.root.SetEditedByUser(false)
	p.setCurrent(name)
	return res, nil
}

// Import adds the nodes of the graph stored as name to the top level.
// Names are suffixed on collision and inputs may refer to nodes already
// present.
func (p *Project) Import(ctx context.Context, name string) (*restore.Result, error) {
	doc, err := p.readGraph(ctx, name)
	if err != nil {
		return nil, err
	}
	res, err := p.restore(ctx, doc.Nodes, restore.FlagConnectToExternalNodes)
	if err == nil {
		p.root.SetEditedByUser(true)
	}
	return res, err
}

func (p *Project) restore(ctx context.Context, records []*domain.Record, flags restore.Flags) (*restore.Result, error) {
	start := time.Now()
	res, err := p.restorer.CreateNodesFromRecords(ctx, p.root, records, flags)
	if p.metrics != nil {
		p.metrics.ObserveRestore(res, err, start)
	}
	if err != nil {
		return res, err
	}
	p.logger.Info("graph restored", "nodes", res.Total, "anomalies", len(res.Anomalies))
	return res, nil
}

// Document captures the current top level as a document named name.
func (p *Project) Document(name string) *domain.Document {
	return restore.SerializeDocument(name, p.root)
}

// Save persists the top level as name.
func (p *Project) Save(ctx context.Context, name string) error {
	if p.manager == nil {
		return ErrReadOnly
	}
	if err := p.manager.Save(ctx, name, p.Document(name)); err != nil {
		return fmt.Errorf("failed to save graph %s: %w", name, err)
	}
	p.root.SetEditedByUser(false)
	p.setCurrent(name)
	return nil
}

// Diff compares the stored graph name with the current top level.
// It returns nil when they match.
func (p *Project) Diff(ctx context.Context, name string) (*domain.DocumentDiff, error) {
	stored, err := p.readGraph(ctx, name)
	if err != nil {
		return nil, err
	}
	return domain.Diff(stored, p.Document(name)), nil
}

// Graphs lists the graphs available to Load.
func (p *Project) Graphs(ctx context.Context) ([]string, error) {
	return p.loader.ListGraphs(ctx)
}

// FrameRange returns the union of the frame ranges of every reader, or
// first and last unchanged when there is none.
func (p *Project) FrameRange(first, last int) (int, int) {
	return p.root.RecomputeFrameRangeForAllReaders(first, last)
}

// RelocateProject rewrites file parameters starting with token so they are
// relative to newPath. It is a no-op without a PathResolver.
func (p *Project) RelocateProject(token, newPath string) {
	if p.paths == nil {
		return
	}
	p.root.FixRelativeFilePaths(token, newPath, p.paths)
}

// Watch returns a channel receiving the name of every graph that changed.
// Returns an error if the loader does not support watching.
func (p *Project) Watch(ctx context.Context) (<-chan string, error) {
	if w, ok := p.loader.(ports.Watchable); ok {
		return w.Watch(ctx)
	}
	return nil, fmt.Errorf("current loader does not support watching")
}

// Close tears the graph down, waiting for background work, and closes the
// store when it holds resources.
func (p *Project) Close() error {
	p.root.ClearNodes(true)
	if p.closer != nil {
		return p.closer.Close()
	}
	return nil
}
