package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/nodegraph/internal/logging"
	"github.com/aretw0/nodegraph/internal/presentation/graph"
	"github.com/aretw0/nodegraph/internal/validator"
	"github.com/aretw0/nodegraph/pkg/collection"
	"github.com/aretw0/nodegraph/pkg/domain"
	"github.com/aretw0/nodegraph/pkg/ports"
	"github.com/aretw0/nodegraph/pkg/registry"
	"github.com/aretw0/nodegraph/pkg/restore"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:generate go tool oapi-codegen -package http -generate types,chi-server,spec -o api.gen.go ../../../api/openapi.yaml

// Project defines what the server needs from a node graph project.
type Project interface {
	Root() *collection.Collection
	Current() string
	Loader() ports.GraphLoader
	Plugins() *registry.Registry
	Graphs(ctx context.Context) ([]string, error)
	Load(ctx context.Context, name string) (*restore.Result, error)
	Document(name string) *domain.Document
	Diff(ctx context.Context, name string) (*domain.DocumentDiff, error)
	Watch(ctx context.Context) (<-chan string, error)
}

// Server implements the generated ServerInterface over a project.
type Server struct {
	Project  Project
	gatherer prometheus.Gatherer
	version  string
	logger   *slog.Logger
}

var _ ServerInterface = (*Server)(nil)

// Option configures the Server.
type Option func(*Server)

// WithGatherer serves the collectors of gatherer on /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithVersion sets the version reported by /info.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.version = strings.TrimSpace(v)
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler creates the HTTP handler of project.
func NewHandler(project Project, opts ...Option) http.Handler {
	s := &Server{
		Project: project,
		version: "unknown",
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		spec, err := rawSpec()
		if err != nil {
			s.logger.Error("openapi spec unavailable", "err", err)
			http.Error(w, "Failed to load spec", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/yaml")
		_, _ = w.Write(spec)
	})
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	return enableCORS(HandlerFromMux(s, r))
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, domain.ErrGraphNotFound) {
		status = http.StatusNotFound
	}
	http.Error(w, err.Error(), status)
	if status >= 500 {
		s.logger.Error("request failed", "err", err)
	}
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if swagger, err := GetSwagger(); err == nil && swagger.Info != nil {
		apiVersion = swagger.Info.Version
	}
	s.writeJSON(w, http.StatusOK, InfoResponse{
		App:        "nodegraph-http",
		Version:    s.version,
		ApiVersion: apiVersion,
		Graph:      s.Project.Current(),
	})
}

// ListGraphs handles GET /graphs.
func (s *Server) ListGraphs(w http.ResponseWriter, r *http.Request) {
	names, err := s.Project.Graphs(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	s.writeJSON(w, http.StatusOK, names)
}

// LoadGraph handles POST /graphs/{name}/load. Anomalies are part of a
// successful response.
func (s *Server) LoadGraph(w http.ResponseWriter, r *http.Request, name string) {
	res, err := s.Project.Load(r.Context(), name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, LoadResult(name, res))
}

// DiffGraph handles GET /graphs/{name}/diff. An unchanged graph answers 204.
func (s *Server) DiffGraph(w http.ResponseWriter, r *http.Request, name string) {
	diff, err := s.Project.Diff(r.Context(), name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if diff == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	s.writeJSON(w, http.StatusOK, diff)
}

// ValidateGraph handles GET /graphs/{name}/validate, a check of the stored
// graph that leaves the current one in place.
func (s *Server) ValidateGraph(w http.ResponseWriter, r *http.Request, name string) {
	report, err := validator.ValidateGraph(r.Context(), s.Project.Loader(), s.Project.Plugins(), name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ValidationResult(report))
}

// ListPlugins handles GET /plugins.
func (s *Server) ListPlugins(w http.ResponseWriter, r *http.Request) {
	plugins := s.Project.Plugins().List()
	infos := make([]PluginInfo, 0, len(plugins))
	for _, p := range plugins {
		info, err := DescribePlugin(p)
		if err != nil {
			s.writeError(w, err)
			return
		}
		infos = append(infos, info)
	}
	s.writeJSON(w, http.StatusOK, infos)
}

// GetDocument handles GET /document, the serialized current graph.
func (s *Server) GetDocument(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Project.Document(s.Project.Current()))
}

// GetGraph handles GET /graph, a Mermaid flowchart. ?selected=Group1.Blur1
// highlights a node.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request, params GetGraphParams) {
	var overlay *graph.GraphOverlay
	if params.Selected != nil && *params.Selected != "" {
		overlay = &graph.GraphOverlay{Selected: *params.Selected}
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, graph.GenerateMermaid(s.Project.Root(), overlay))
}

// ListNodes handles GET /nodes. Groups are expanded in place; ?active=true
// skips inactive nodes and the contents of inactive groups.
func (s *Server) ListNodes(w http.ResponseWriter, r *http.Request, params ListNodesParams) {
	onlyActive := params.Active != nil && *params.Active
	s.writeJSON(w, http.StatusOK, CollectNodes(s.Project.Root(), onlyActive))
}

// GetNode handles GET /nodes/{path}, path being a fully specified name.
func (s *Server) GetNode(w http.ResponseWriter, r *http.Request, path string) {
	node := s.Project.Root().NodeByFullySpecifiedName(path)
	if node == nil {
		http.Error(w, fmt.Sprintf("node %q not found", path), http.StatusNotFound)
		return
	}
	s.writeJSON(w, http.StatusOK, DescribeNode(path, node))
}

// SubscribeEvents handles GET /events (SSE): the name of every graph that
// changed in the backing repository.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	events, err := s.Project.Watch(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Watch error: %v", err), http.StatusNotImplemented)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Debug("SSE client disconnected")
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", event)
			flusher.Flush()
		}
	}
}
