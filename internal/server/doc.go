// Package server implements the MCP (Model Context Protocol) server that
// exposes sub-pixel edge detection as tools.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//   - image_subpixel_edges: Sub-pixel edge curves with points and directions
//   - image_edge_summary: Per-curve statistics for the same detection
//
// # Detection Parameters
//
// Detection tools accept sigma, low, high, smoother, luminance, region or
// named_region, and min_points. Omitted values come from the
// config.DetectionConfig given to New with WithConfig. Detection on a region
// returns coordinates in the full image, not the crop.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// An image without edges is not an error; it yields zero curves.
//
// # Usage
//
//	srv := server.New(server.WithConfig(cfg))
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
