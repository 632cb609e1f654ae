package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the page image",
	}
}

func thresholdProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": "Binarization level (0-255) for pages that are not already black and white. Pixels darker than this are ink. Defaults to the server setting.",
		"minimum":     0,
		"maximum":     255,
	}
}

func boxesProperty(desc string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": desc + " Format: \"x0,y0,x1,y1~x0,y0,x1,y1\" in pixels, top-left origin. A negative x1 or y1 means the page edge. Malformed groups are ignored.",
	}
}

// segmentProperties are the automatic segmentation parameters shared by
// several tools.
func segmentProperties() map[string]interface{} {
	return map[string]interface{}{
		"path": pathProperty(),
		"header_lines": map[string]interface{}{
			"type":        "integer",
			"description": "Number of title lines to take off the top of the page before finding columns. Default 0.",
			"minimum":     0,
		},
		"columns": map[string]interface{}{
			"type":        "integer",
			"description": "Maximum number of columns to find. Default 1.",
			"minimum":     1,
		},
		"highpass": map[string]interface{}{
			"type":        "number",
			"description": "Fraction of a column's densest row below which a row counts as blank when finding lines. Default 0.001.",
		},
		"threshold": thresholdProperty(),
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	overlayProps := segmentProperties()
	overlayProps["boxes"] = boxesProperty("If set, segment these regions with Tesseract instead of running automatic segmentation.")
	overlayProps["thickness"] = map[string]interface{}{
		"type":        "integer",
		"description": "Outline thickness in pixels. Default 2.",
		"default":     2,
	}

	ocrProps := segmentProperties()
	ocrProps["language"] = map[string]interface{}{
		"type":        "string",
		"description": "Tesseract language code. Defaults to the server setting.",
	}

	return []Tool{
		{
			Name:        "image_load",
			Description: "Load a page image and return its dimensions, format, file size and whether it is already two-level (black and white).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "page_segment",
			Description: "Find header lines, columns and text lines on a page. Returns {columns, lines, paragraphs} as [x0,y0,x1,y1] rectangles, top-left origin. Lines are listed header lines first, then each column top to bottom.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": segmentProperties(),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "page_segment_manual",
			Description: "Segment caller-chosen regions of a page with Tesseract's layout analysis and merge the results. Returns {columns, lines, paragraphs}; columns are the regions processed.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":      pathProperty(),
					"boxes":     boxesProperty("Regions to segment. Empty means the whole page."),
					"threshold": thresholdProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "page_blockout",
			Description: "Paint regions of the binarized page white, e.g. to remove stamps or marginalia before segmentation. Returns a base64 PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":      pathProperty(),
					"boxes":     boxesProperty("Regions to blank out."),
					"threshold": thresholdProperty(),
				},
				"required": []string{"path", "boxes"},
			},
		},
		{
			Name:        "page_crop",
			Description: "Crop a region of a page and return it as a base64 PNG. A negative x1 or y1 means the page edge.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"x0": map[string]interface{}{
						"type":        "integer",
						"description": "Left edge X coordinate (0-based)",
					},
					"y0": map[string]interface{}{
						"type":        "integer",
						"description": "Top edge Y coordinate (0-based)",
					},
					"x1": map[string]interface{}{
						"type":        "integer",
						"description": "Right edge X coordinate (exclusive), or -1 for the page edge",
					},
					"y1": map[string]interface{}{
						"type":        "integer",
						"description": "Bottom edge Y coordinate (exclusive), or -1 for the page edge",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor (e.g., 2.0 to double size). Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path", "x0", "y0", "x1", "y1"},
			},
		},
		{
			Name:        "page_overlay",
			Description: "Segment a page and draw the columns, lines and paragraphs over it in distinct colours. Returns the segmentation and a base64 PNG.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": overlayProps,
				"required":   []string{"path"},
			},
		},
		{
			Name:        "page_ocr_lines",
			Description: "Segment a page automatically and read the text of every line with Tesseract, in reading order.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": ocrProps,
				"required":   []string{"path"},
			},
		},
	}
}
