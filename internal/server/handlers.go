package server

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/ironsheep/page-segment-mcp/internal/geometry"
	"github.com/ironsheep/page-segment-mcp/internal/imaging"
	"github.com/ironsheep/page-segment-mcp/internal/layout"
	"github.com/ironsheep/page-segment-mcp/internal/ocr"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "page_segment").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_load":
		return s.handleImageLoad(args)

	// Segmentation
	case "page_segment":
		return s.handlePageSegment(args)
	case "page_segment_manual":
		return s.handlePageSegmentManual(args)
	case "page_blockout":
		return s.handlePageBlockout(args)

	// Inspection
	case "page_crop":
		return s.handlePageCrop(args)
	case "page_overlay":
		return s.handlePageOverlay(args)
	case "page_ocr_lines":
		return s.handlePageOCRLines(args)

	default:
		return nil, errors.Errorf("unknown tool: %s", name)
	}
}

func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// decodeArgs unmarshals tool arguments and insists on a path.
func decodeArgs(args json.RawMessage, v interface{ imagePath() string }) error {
	if len(args) == 0 {
		return errors.New("missing arguments")
	}
	if err := json.Unmarshal(args, v); err != nil {
		return errors.Wrap(err, "invalid arguments")
	}
	if v.imagePath() == "" {
		return errors.New("path is required")
	}
	return nil
}

// pageArgs are shared by every tool that reads a page.
type pageArgs struct {
	Path      string `json:"path"`
	Threshold *int   `json:"threshold,omitempty"`
}

func (a pageArgs) imagePath() string { return a.Path }

// segmentArgs carries the automatic segmentation parameters. Unset fields
// fall back to the server configuration.
type segmentArgs struct {
	pageArgs
	HeaderLines *int     `json:"header_lines,omitempty"`
	Columns     *int     `json:"columns,omitempty"`
	Highpass    *float64 `json:"highpass,omitempty"`
}

func (s *Server) params(a segmentArgs) (layout.Params, error) {
	p := s.cfg.Params
	if a.HeaderLines != nil {
		p.HeaderLines = *a.HeaderLines
	}
	if a.Columns != nil {
		p.TargetColumns = *a.Columns
	}
	if a.Highpass != nil {
		p.LineHighpass = *a.Highpass
	}
	return p, p.Validate()
}

// loadBitmap loads the page of a and binarizes it at the requested or
// configured threshold.
func (s *Server) loadBitmap(a pageArgs) (*imaging.Bitmap, error) {
	threshold := s.cfg.Threshold
	if a.Threshold != nil {
		if *a.Threshold < 0 || *a.Threshold > 255 {
			return nil, errors.Errorf("threshold must be between 0 and 255, got %d", *a.Threshold)
		}
		threshold = uint8(*a.Threshold)
	}
	return s.cache.LoadBitmap(a.Path, threshold)
}

// === Image Information ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (a imageLoadArgs) imagePath() string { return a.Path }

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

// === Segmentation ===

func (s *Server) segment(a segmentArgs) (*layout.Result, *imaging.Bitmap, error) {
	p, err := s.params(a)
	if err != nil {
		return nil, nil, err
	}
	bm, err := s.loadBitmap(a.pageArgs)
	if err != nil {
		return nil, nil, err
	}
	result, err := layout.Segment(bm, p)
	if err != nil {
		return nil, nil, err
	}
	return result, bm, nil
}

func (s *Server) handlePageSegment(args json.RawMessage) (interface{}, error) {
	var a segmentArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	result, _, err := s.segment(a)
	return result, err
}

type manualArgs struct {
	pageArgs
	Boxes string `json:"boxes"`
}

func (s *Server) handlePageSegmentManual(args json.RawMessage) (interface{}, error) {
	var a manualArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	bm, err := s.loadBitmap(a.pageArgs)
	if err != nil {
		return nil, err
	}
	return layout.NewManualSegmenter(s.engine).Segment(bm, a.Boxes)
}

func (s *Server) handlePageBlockout(args json.RawMessage) (interface{}, error) {
	var a manualArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	bm, err := s.loadBitmap(a.pageArgs)
	if err != nil {
		return nil, err
	}
	return imaging.EncodePNG(layout.BlockOut(bm, a.Boxes).Image())
}

// === Inspection ===

type pageCropArgs struct {
	Path  string  `json:"path"`
	X0    int     `json:"x0"`
	Y0    int     `json:"y0"`
	X1    int     `json:"x1"`
	Y1    int     `json:"y1"`
	Scale float64 `json:"scale,omitempty"`
}

func (a pageCropArgs) imagePath() string { return a.Path }

func (s *Server) handlePageCrop(args json.RawMessage) (interface{}, error) {
	var a pageCropArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	cropped, err := imaging.Crop(img, geometry.Rect(a.X0, a.Y0, a.X1, a.Y1), a.Scale)
	if err != nil {
		return nil, err
	}
	return imaging.EncodePNG(cropped)
}

type pageOverlayArgs struct {
	segmentArgs
	Boxes     string `json:"boxes,omitempty"`
	Thickness int    `json:"thickness,omitempty"`
}

// PageOverlayResult pairs a segmentation with its rendering.
type PageOverlayResult struct {
	Segmentation *layout.Result     `json:"segmentation"`
	Overlay      *imaging.PNGResult `json:"overlay"`
}

// OverlayLayers turns a result into drawable layers: columns, then lines,
// then paragraphs.
func OverlayLayers(r *layout.Result) []imaging.OverlayLayer {
	return []imaging.OverlayLayer{
		{Name: "columns", Rects: r.Columns},
		{Name: "lines", Rects: r.Lines},
		{Name: "paragraphs", Rects: r.Paragraphs},
	}
}

func (s *Server) handlePageOverlay(args json.RawMessage) (interface{}, error) {
	var a pageOverlayArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Thickness <= 0 {
		a.Thickness = 2
	}

	var (
		result *layout.Result
		err    error
	)
	if a.Boxes != "" {
		var bm *imaging.Bitmap
		bm, err = s.loadBitmap(a.pageArgs)
		if err != nil {
			return nil, err
		}
		result, err = layout.NewManualSegmenter(s.engine).Segment(bm, a.Boxes)
	} else {
		result, _, err = s.segment(a.segmentArgs)
	}
	if err != nil {
		return nil, err
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	png, err := imaging.EncodePNG(imaging.Overlay(img, OverlayLayers(result), a.Thickness))
	if err != nil {
		return nil, err
	}
	return &PageOverlayResult{Segmentation: result, Overlay: png}, nil
}

type pageOCRLinesArgs struct {
	segmentArgs
	Language string `json:"language,omitempty"`
}

// PageOCRLinesResult lists the text of every segmented line.
type PageOCRLinesResult struct {
	Lines []ocr.LineText `json:"lines"`
	Count int            `json:"count"`
}

func (s *Server) handlePageOCRLines(args json.RawMessage) (interface{}, error) {
	var a pageOCRLinesArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	result, bm, err := s.segment(a.segmentArgs)
	if err != nil {
		return nil, err
	}

	opts := s.cfg.OCROptions()
	if a.Language != "" {
		opts.Language = a.Language
	}

	// Recognize on the binarized page so the text matches what was segmented.
	lines, err := s.recognize(bm.Image(), result.Lines, opts)
	if err != nil {
		return nil, errors.Wrap(err, "line recognition failed")
	}
	return &PageOCRLinesResult{Lines: lines, Count: len(lines)}, nil
}
