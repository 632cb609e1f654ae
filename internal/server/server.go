package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"

	"github.com/pkg/errors"

	"github.com/ironsheep/page-segment-mcp/internal/config"
	"github.com/ironsheep/page-segment-mcp/internal/geometry"
	"github.com/ironsheep/page-segment-mcp/internal/imaging"
	"github.com/ironsheep/page-segment-mcp/internal/layout"
	"github.com/ironsheep/page-segment-mcp/internal/logging"
	"github.com/ironsheep/page-segment-mcp/internal/ocr"
)

// Name and Version identify the server in the initialize handshake.
const (
	Name    = "page-segment-mcp"
	Version = "0.1.0"
)

// maxRequestBytes bounds a single request line.
const maxRequestBytes = 1 << 20

// JSON-RPC error codes.
const (
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeToolFailed     = -32000
)

// lineRecognizer reads the text of line rectangles on a page.
type lineRecognizer func(img image.Image, lines []geometry.Rectangle, opts ocr.Options) ([]ocr.LineText, error)

// Server answers MCP requests for one client. Tool calls are handled one at
// a time in arrival order.
type Server struct {
	cfg       config.Config
	cache     *imaging.ImageCache
	engine    layout.Engine
	recognize lineRecognizer
}

// MCPRequest is one JSON-RPC request line.
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse carries either Result or Error.
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError is a JSON-RPC error object.
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// New creates a server using cfg for defaults and Tesseract as the layout
// engine for manual segmentation.
func New(cfg config.Config) *Server {
	return &Server{
		cfg:       cfg,
		cache:     imaging.NewImageCache(),
		engine:    ocr.NewTesseractEngine(cfg.OCROptions()),
		recognize: ocr.RecognizeLines,
	}
}

// Run serves requests from stdin until it is closed, writing responses to
// stdout.
func (s *Server) Run() error {
	return s.Serve(os.Stdin, os.Stdout)
}

// Serve reads one JSON-RPC request per line from r and writes responses to w.
func (s *Server) Serve(r io.Reader, w io.Writer) error {
	log := logging.Logger()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRequestBytes)
	enc := json.NewEncoder(w)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			log.Warn("failed to parse request", slog.Any("error", err))
			continue
		}
		log.Debug("request", slog.String("method", req.Method), slog.Any("id", req.ID))

		resp := s.handleRequest(&req)
		if resp == nil {
			continue
		}
		if err := enc.Encode(resp); err != nil {
			return errors.Wrap(err, "failed to write response")
		}
	}
	return errors.Wrap(scanner.Err(), "failed to read request")
}

// handleRequest returns nil for notifications.
func (s *Server) handleRequest(req *MCPRequest) *MCPResponse {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		return nil
	case "tools/list":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{"tools": GetToolDefinitions()},
		}
	case "tools/call":
		return s.handleToolsCall(req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return s.errorResponse(req.ID, codeMethodNotFound, fmt.Sprintf("Method not found: %s", req.Method), "")
	}
}

// handleInitialize answers the MCP handshake.
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    Name,
				"version": Version,
			},
		},
	}
}
