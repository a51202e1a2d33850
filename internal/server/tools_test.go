package server

import (
	"testing"
)

var detectionTools = []string{"image_subpixel_edges", "image_edge_summary"}

func toolByName(t *testing.T, name string) Tool {
	t.Helper()
	for _, tool := range GetToolDefinitions() {
		if tool.Name == name {
			return tool
		}
	}
	t.Fatalf("tool %s not found", name)
	return Tool{}
}

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	expectedTools := []string{
		"image_load",
		"image_dimensions",
		"image_subpixel_edges",
		"image_edge_summary",
	}
	if len(tools) != len(expectedTools) {
		t.Fatalf("Tool count: got %d, want %d", len(tools), len(expectedTools))
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		toolMap[tool.Name] = tool
	}
	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema["type"] != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", tool.InputSchema["type"])
			}
			if _, ok := tool.InputSchema["properties"].(map[string]interface{}); !ok {
				t.Error("InputSchema properties should be a map")
			}

			required, ok := tool.InputSchema["required"].([]string)
			if !ok || len(required) != 1 || required[0] != "path" {
				t.Errorf("required: got %v, want [path]", tool.InputSchema["required"])
			}
		})
	}
}

func TestToolDefinitions_DetectionParameters(t *testing.T) {
	for _, name := range detectionTools {
		t.Run(name, func(t *testing.T) {
			props := toolByName(t, name).InputSchema["properties"].(map[string]interface{})
			for _, param := range []string{"sigma", "low", "high", "smoother", "luminance", "region", "named_region", "min_points"} {
				if _, ok := props[param].(map[string]interface{}); !ok {
					t.Errorf("%s: parameter %s missing", name, param)
				}
			}

			region := props["region"].(map[string]interface{})
			coords := region["properties"].(map[string]interface{})
			for _, c := range []string{"x1", "y1", "x2", "y2"} {
				if _, ok := coords[c]; !ok {
					t.Errorf("%s: region.%s missing", name, c)
				}
			}

			smoother := props["smoother"].(map[string]interface{})
			if enum, _ := smoother["enum"].([]string); len(enum) != 3 {
				t.Errorf("%s: smoother enum got %v", name, smoother["enum"])
			}
		})
	}
}

func TestToolDefinitions_IncludeDirections(t *testing.T) {
	edges := toolByName(t, "image_subpixel_edges").InputSchema["properties"].(map[string]interface{})
	param, ok := edges["include_directions"].(map[string]interface{})
	if !ok {
		t.Fatal("image_subpixel_edges.include_directions missing")
	}
	if param["default"] != false {
		t.Errorf("include_directions default: got %v, want false", param["default"])
	}

	summary := toolByName(t, "image_edge_summary").InputSchema["properties"].(map[string]interface{})
	if _, ok := summary["include_directions"]; ok {
		t.Error("image_edge_summary must not advertise include_directions")
	}
}

func TestHandleToolsList(t *testing.T) {
	s := New()
	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
	}

	resp := s.handleToolsList(req)

	if resp == nil {
		t.Fatal("handleToolsList returned nil")
	}
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}

	toolsList, ok := result["tools"].([]Tool)
	if !ok {
		t.Fatal("tools should be a slice of Tool")
	}
	if len(toolsList) != len(GetToolDefinitions()) {
		t.Errorf("Tool count: got %d, want %d", len(toolsList), len(GetToolDefinitions()))
	}
}
