package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"runtime"

	"github.com/charmbracelet/log"

	"github.com/ironsheep/imagekit/internal/store"
)

// JSON-RPC error codes.
const (
	codeParseError     = -32700
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeToolFailed     = -32000
)

// protocolVersion is the MCP revision the server speaks.
const protocolVersion = "2024-11-05"

// Server handles MCP protocol communication
type Server struct {
	name    string
	version string

	// images serves single-image tools and may be a cache; files backs
	// directory processing so that batch runs do not fill the cache.
	images store.Store
	files  store.Store
	cache  *store.Cache

	workers int
	suffix  string
	logger  *log.Logger
}

// Options configures a Server. The zero value is usable.
type Options struct {
	// Name and Version are reported during initialize.
	Name    string
	Version string

	// Store reads and writes image files. Defaults to a store.FileStore.
	Store store.Store

	// Cache places an in-memory cache in front of Store for single-image
	// tools.
	Cache bool

	// Workers and Suffix are the defaults for image_process_directory.
	Workers int
	Suffix  string

	// Logger receives diagnostics. It must not write to the protocol
	// stream. Nil discards.
	Logger *log.Logger
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// New creates a new MCP server instance
func New(opts Options) *Server {
	s := &Server{
		name:    opts.Name,
		version: opts.Version,
		files:   opts.Store,
		workers: opts.Workers,
		suffix:  opts.Suffix,
		logger:  opts.Logger,
	}
	if s.name == "" {
		s.name = "imagekit"
	}
	if s.version == "" {
		s.version = "dev"
	}
	if s.files == nil {
		s.files = store.NewFileStore()
	}
	if s.workers < 1 {
		s.workers = runtime.NumCPU()
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}

	s.images = s.files
	if opts.Cache {
		s.cache = store.NewCache(s.files)
		s.images = s.cache
	}
	return s
}

// Run serves requests read line by line from in and writes one response
// line per request to out. It returns nil at end of input and ctx.Err()
// when ctx is canceled first.
func (s *Server) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	lines := make(chan []byte)
	scanErr := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		// Increase buffer size for large requests
		buf := make([]byte, 0, 64*1024)
		scanner.Buffer(buf, 1024*1024)

		for scanner.Scan() {
			line := append([]byte(nil), scanner.Bytes()...)
			select {
			case lines <- line:
			case <-ctx.Done():
				scanErr <- ctx.Err()
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	encoder := json.NewEncoder(out)
	s.logger.Info("MCP server ready", "name", s.name, "version", s.version)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				err := <-scanErr
				if err == nil || err == ctx.Err() {
					return err
				}
				return fmt.Errorf("scanner error: %w", err)
			}
			if len(line) == 0 {
				continue
			}

			resp := s.handleLine(ctx, line)
			if resp == nil {
				continue
			}
			if err := encoder.Encode(resp); err != nil {
				return fmt.Errorf("failed to encode response: %w", err)
			}
		}
	}
}

// handleLine decodes one request line and dispatches it.
func (s *Server) handleLine(ctx context.Context, line []byte) *MCPResponse {
	var req MCPRequest
	if err := json.Unmarshal(line, &req); err != nil {
		s.logger.Warn("failed to parse request", "err", err)
		return s.errorResponse(nil, codeParseError, "Parse error", err.Error())
	}
	return s.handleRequest(ctx, &req)
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(ctx context.Context, req *MCPRequest) *MCPResponse {
	s.logger.Debug("request", "method", req.Method, "id", req.ID)

	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(ctx, req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &MCPError{
				Code:    codeMethodNotFound,
				Message: fmt.Sprintf("Method not found: %s", req.Method),
			},
		}
	}
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": protocolVersion,
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    s.name,
				"version": s.version,
			},
		},
	}
}
