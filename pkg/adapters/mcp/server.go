package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/nodegraph"
	"github.com/aretw0/nodegraph/internal/logging"
	"github.com/aretw0/nodegraph/internal/presentation/graph"
	"github.com/aretw0/nodegraph/internal/validator"
	nghttp "github.com/aretw0/nodegraph/pkg/adapters/http"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	documentURI = "nodegraph://document"
	graphURI    = "nodegraph://graph"
)

// Project defines what the MCP server needs from a node graph project. It
// is the same surface the HTTP adapter serves.
type Project interface {
	nghttp.Project
}

// GraphList is the result of list_graphs.
type GraphList struct {
	Graphs  []string `json:"graphs" jsonschema_description:"Names of the stored graphs"`
	Current string   `json:"current" jsonschema_description:"Graph currently loaded, empty before the first load"`
}

// NodeList is the result of list_nodes.
type NodeList struct {
	Nodes []nghttp.NodeInfo `json:"nodes" jsonschema_description:"Nodes in traversal order, groups expanded in place"`
}

type graphArgs struct {
	Name string `json:"name"`
}

type nodesArgs struct {
	Active bool `json:"active"`
}

type nodeArgs struct {
	Path string `json:"path"`
}

// Server exposes a project as an MCP server.
type Server struct {
	project   Project
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger of the SSE transport.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP server over project.
func NewServer(project Project, opts ...Option) *Server {
	s := &Server{
		project:   project,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("nodegraph-mcp", strings.TrimSpace(nodegraph.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves on Stdin/Stdout until the input closes.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves on port using SSE until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_graphs",
		mcp.WithDescription("List the graphs stored in the project and the one currently loaded."),
		mcp.WithOutputSchema[GraphList](),
	), mcp.NewStructuredToolHandler(s.handleListGraphs))

	s.mcpServer.AddTool(mcp.NewTool("load_graph",
		mcp.WithDescription("Replace the current graph with a stored one. Anomalies are reported, not fatal."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Graph name")),
		mcp.WithOutputSchema[nghttp.LoadResponse](),
	), mcp.NewStructuredToolHandler(s.handleLoadGraph))

	s.mcpServer.AddTool(mcp.NewTool("list_nodes",
		mcp.WithDescription("List every node of the current graph, groups expanded in place."),
		mcp.WithBoolean("active", mcp.Description("Skip inactive nodes and the contents of inactive groups")),
		mcp.WithOutputSchema[NodeList](),
	), mcp.NewStructuredToolHandler(s.handleListNodes))

	s.mcpServer.AddTool(mcp.NewTool("get_node",
		mcp.WithDescription("Look a node up by its fully specified name, such as Group1.Blur2."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Fully specified node name")),
		mcp.WithOutputSchema[nghttp.NodeInfo](),
	), mcp.NewStructuredToolHandler(s.handleGetNode))

	s.mcpServer.AddTool(mcp.NewTool("validate_graph",
		mcp.WithDescription("Check a stored graph against the plugin registry without loading it."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Graph name")),
		mcp.WithOutputSchema[nghttp.ValidationReport](),
	), mcp.NewStructuredToolHandler(s.handleValidateGraph))
}

func (s *Server) handleListGraphs(ctx context.Context, _ mcp.CallToolRequest, _ struct{}) (GraphList, error) {
	names, err := s.project.Graphs(ctx)
	if err != nil {
		return GraphList{}, err
	}
	if names == nil {
		names = []string{}
	}
	return GraphList{Graphs: names, Current: s.project.Current()}, nil
}

func (s *Server) handleLoadGraph(ctx context.Context, _ mcp.CallToolRequest, args graphArgs) (nghttp.LoadResponse, error) {
	if args.Name == "" {
		return nghttp.LoadResponse{}, fmt.Errorf("name is required")
	}
	res, err := s.project.Load(ctx, args.Name)
	if err != nil {
		return nghttp.LoadResponse{}, err
	}
	return nghttp.LoadResult(args.Name, res), nil
}

func (s *Server) handleListNodes(_ context.Context, _ mcp.CallToolRequest, args nodesArgs) (NodeList, error) {
	return NodeList{Nodes: nghttp.CollectNodes(s.project.Root(), args.Active)}, nil
}

func (s *Server) handleGetNode(_ context.Context, _ mcp.CallToolRequest, args nodeArgs) (nghttp.NodeInfo, error) {
	node := s.project.Root().NodeByFullySpecifiedName(args.Path)
	if node == nil {
		return nghttp.NodeInfo{}, fmt.Errorf("node %q not found", args.Path)
	}
	return nghttp.DescribeNode(args.Path, node), nil
}

func (s *Server) handleValidateGraph(ctx context.Context, _ mcp.CallToolRequest, args graphArgs) (nghttp.ValidationReport, error) {
	report, err := validator.ValidateGraph(ctx, s.project.Loader(), s.project.Plugins(), args.Name)
	if err != nil {
		return nghttp.ValidationReport{}, err
	}
	return nghttp.ValidationResult(report), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(documentURI, "Current graph document",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		data, err := json.Marshal(s.project.Document(s.project.Current()))
		if err != nil {
			return nil, fmt.Errorf("failed to serialize graph: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      documentURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	})

	s.mcpServer.AddResource(mcp.NewResource(graphURI, "Current graph as a Mermaid flowchart",
		mcp.WithMIMEType("text/plain"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      graphURI,
				MIMEType: "text/plain",
				Text:     graph.GenerateMermaid(s.project.Root(), nil),
			},
		}, nil
	})
}
