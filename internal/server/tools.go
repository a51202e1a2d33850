package server

import "github.com/ironsheep/subpixel-edges-mcp/internal/gradient"

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// pathProperty is the schema of the image path argument shared by all tools.
var pathProperty = map[string]interface{}{
	"type":        "string",
	"description": "Absolute path to the image file",
}

// detectionProperties returns the schema shared by the detection tools.
func detectionProperties() map[string]interface{} {
	return map[string]interface{}{
		"path": pathProperty,
		"sigma": map[string]interface{}{
			"type":        "number",
			"description": "Gaussian smoothing sigma in pixels; 0 disables smoothing. Default from server config (1.0)",
			"minimum":     0,
			"maximum":     gradient.MaxSigma,
		},
		"low": map[string]interface{}{
			"type":        "number",
			"description": "Hysteresis low threshold on gradient magnitude. Default from server config (10)",
			"minimum":     0,
		},
		"high": map[string]interface{}{
			"type":        "number",
			"description": "Hysteresis high threshold on gradient magnitude; must be >= low. Default from server config (40)",
			"minimum":     0,
		},
		"smoother": map[string]interface{}{
			"type":        "string",
			"description": "Smoothing backend",
			"enum":        []string{"imaging", "bild", "none"},
		},
		"luminance": map[string]interface{}{
			"type":        "string",
			"description": "Intensity conversion: BT.601 luma, bild grayscale, or CIE L* lightness",
			"enum":        []string{"luma", "bild", "lightness"},
		},
		"region": map[string]interface{}{
			"type":        "object",
			"description": "Optional region of interest; (x1,y1) inclusive, (x2,y2) exclusive. Results stay in full-image coordinates",
			"properties": map[string]interface{}{
				"x1": map[string]interface{}{"type": "integer"},
				"y1": map[string]interface{}{"type": "integer"},
				"x2": map[string]interface{}{"type": "integer"},
				"y2": map[string]interface{}{"type": "integer"},
			},
			"required": []string{"x1", "y1", "x2", "y2"},
		},
		"named_region": map[string]interface{}{
			"type":        "string",
			"description": "Optional named region of interest instead of region",
			"enum": []string{
				"top-left", "top-right", "bottom-left", "bottom-right",
				"top-half", "bottom-half", "left-half", "right-half", "center",
			},
		},
		"min_points": map[string]interface{}{
			"type":        "integer",
			"description": "Drop curves with fewer points. Default from server config (0)",
			"minimum":     0,
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	edgeProps := detectionProperties()
	edgeProps["include_directions"] = map[string]interface{}{
		"type":        "boolean",
		"description": "Include the unit gradient direction of every point",
		"default":     false,
	}

	return []Tool{
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and color depth. The decoded image is cached for later detections.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_subpixel_edges",
			Description: "Detect edges with sub-pixel accuracy and link them into curves. Returns each curve's ordered points (and optionally gradient directions) in full-image pixel coordinates. A curve whose first and last points coincide is closed.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": edgeProps,
				"required":   []string{"path"},
			},
		},
		{
			Name:        "image_edge_summary",
			Description: "Run sub-pixel edge detection and return per-curve statistics only: point count, closed flag, arc length, end points and mean gradient direction.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": detectionProperties(),
				"required":   []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
