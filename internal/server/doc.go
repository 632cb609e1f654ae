// Package server implements the MCP (Model Context Protocol) server for page
// segmentation tools.
//
// The server speaks JSON-RPC 2.0 over stdio, one request per line:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - image_load: Load a page and describe it
//   - page_segment: Automatic header, column and line segmentation
//   - page_segment_manual: Tesseract layout analysis over chosen regions
//   - page_blockout: Blank regions of the binarized page
//   - page_crop: Extract a rectangular region as PNG
//   - page_overlay: Draw a segmentation over the page
//   - page_ocr_lines: Read the text of every segmented line
//
// All rectangles, in and out, are [x0, y0, x1, y1] pixel coordinates with
// the origin at the top-left of the page.
//
// # Error Handling
//
// Malformed tools/call params get code -32602. Tool failures, including
// unknown tool names, get code -32000 with the Go error string as data.
//
// # Usage
//
//	srv := server.New(config.Default())
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
