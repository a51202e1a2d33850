package server

import (
	"encoding/json"
	"fmt"
	"image"
	"log"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/ironsheep/subpixel-edges-mcp/internal/gradient"
	"github.com/ironsheep/subpixel-edges-mcp/internal/imaging"
	"github.com/ironsheep/subpixel-edges-mcp/internal/subpix"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_subpixel_edges").
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
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.runTool(params.Name, params.Arguments)
	if err != nil {
		if s.debug {
			log.Printf("tool %s failed: %v", params.Name, err)
		}
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
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

// runTool executes a tool and converts a panic inside it into an error, so
// one bad call cannot stop the stdio loop.
func (s *Server) runTool(name string, args json.RawMessage) (result interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("tool %s panicked: %v", name, r)
			result, err = nil, fmt.Errorf("tool %s panicked: %v", name, r)
		}
	}()
	return s.executeTool(name, args)
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "image_subpixel_edges":
		return s.handleSubpixelEdges(args)
	case "image_edge_summary":
		return s.handleEdgeSummary(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
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

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Edge Detection Handlers ===

// edgeArgs are shared by the detection tools. Pointer fields fall back to
// the server's DetectionConfig when omitted.
type edgeArgs struct {
	Path              string          `json:"path"`
	Sigma             *float64        `json:"sigma"`
	Low               *float64        `json:"low"`
	High              *float64        `json:"high"`
	Smoother          *string         `json:"smoother"`
	Luminance         *string         `json:"luminance"`
	Region            *imaging.Region `json:"region"`
	NamedRegion       string          `json:"named_region"`
	MinPoints         *int            `json:"min_points"`
	IncludeDirections bool            `json:"include_directions"`
}

// DetectionParams echoes the effective parameters of a detection.
type DetectionParams struct {
	Sigma     float64 `json:"sigma"`
	Low       float64 `json:"low"`
	High      float64 `json:"high"`
	Smoother  string  `json:"smoother"`
	Luminance string  `json:"luminance"`
	MinPoints int     `json:"min_points"`
}

// Point is a sub-pixel position or a unit direction.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func toPoint(v r2.Vec) Point { return Point{X: v.X, Y: v.Y} }

// EdgeCurve is one detected curve in full-image coordinates.
type EdgeCurve struct {
	Closed     bool    `json:"closed"`
	Points     []Point `json:"points"`
	Directions []Point `json:"directions,omitempty"`
}

// SubpixelEdgesResult is returned by image_subpixel_edges.
type SubpixelEdgesResult struct {
	Width       int             `json:"width"`
	Height      int             `json:"height"`
	Region      imaging.Region  `json:"region"`
	Parameters  DetectionParams `json:"parameters"`
	CurveCount  int             `json:"curve_count"`
	ClosedCount int             `json:"closed_count"`
	PointCount  int             `json:"point_count"`
	Curves      []EdgeCurve     `json:"curves"`
}

// CurveSummary describes one curve without its points.
type CurveSummary struct {
	Index         int     `json:"index"`
	Points        int     `json:"points"`
	Closed        bool    `json:"closed"`
	Length        float64 `json:"length"`
	Start         Point   `json:"start"`
	End           Point   `json:"end"`
	MeanDirection Point   `json:"mean_direction"`
}

// EdgeSummaryResult is returned by image_edge_summary.
type EdgeSummaryResult struct {
	Width       int             `json:"width"`
	Height      int             `json:"height"`
	Region      imaging.Region  `json:"region"`
	Parameters  DetectionParams `json:"parameters"`
	CurveCount  int             `json:"curve_count"`
	ClosedCount int             `json:"closed_count"`
	PointCount  int             `json:"point_count"`
	TotalLength float64         `json:"total_length"`
	Curves      []CurveSummary  `json:"curves"`
}

// detection is the outcome of one pipeline run.
type detection struct {
	bounds image.Rectangle
	region imaging.Region
	params DetectionParams
	curves []subpix.Curve
}

// params merges the call arguments over the configured defaults.
func (s *Server) params(a *edgeArgs) DetectionParams {
	p := DetectionParams{
		Sigma:     s.cfg.GetSigma(),
		Low:       s.cfg.GetLow(),
		High:      s.cfg.GetHigh(),
		Smoother:  s.cfg.GetSmoother(),
		Luminance: s.cfg.GetLuminance(),
		MinPoints: s.cfg.GetMinCurvePoints(),
	}
	if a.Sigma != nil {
		p.Sigma = *a.Sigma
	}
	if a.Low != nil {
		p.Low = *a.Low
	}
	if a.High != nil {
		p.High = *a.High
	}
	if a.Smoother != nil {
		p.Smoother = *a.Smoother
	}
	if a.Luminance != nil {
		p.Luminance = *a.Luminance
	}
	if a.MinPoints != nil {
		p.MinPoints = *a.MinPoints
	}
	return p
}

// detect loads the image, crops the requested region, computes the gradient
// and runs the engine. Curves come back in full-image coordinates.
func (s *Server) detect(a *edgeArgs) (*detection, error) {
	p := s.params(a)
	th := subpix.Thresholds{High: p.High, Low: p.Low}
	if err := th.Validate(); err != nil {
		return nil, err
	}
	if p.MinPoints < 0 {
		return nil, fmt.Errorf("min_points must be non-negative, got %d", p.MinPoints)
	}
	opts := gradient.Options{Sigma: p.Sigma, Smoother: p.Smoother, Luminance: p.Luminance}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	region := imaging.FullRegion(img)
	switch {
	case a.Region != nil && a.NamedRegion != "":
		return nil, fmt.Errorf("region and named_region are mutually exclusive")
	case a.Region != nil:
		region = *a.Region
	case a.NamedRegion != "":
		if region, err = imaging.NamedRegion(img.Bounds(), a.NamedRegion); err != nil {
			return nil, err
		}
	}

	roi, origin, err := imaging.CropRegion(img, region)
	if err != nil {
		return nil, err
	}

	field, err := gradient.Compute(roi, opts)
	if err != nil {
		return nil, err
	}
	curves, err := subpix.Detect(field, th)
	if err != nil {
		return nil, err
	}
	curves = subpix.FilterShort(curves, p.MinPoints)
	if origin != (image.Point{}) {
		for i := range curves {
			curves[i] = curves[i].Translate(float64(origin.X), float64(origin.Y))
		}
	}

	if s.debug {
		log.Printf("detected %d curves in %s region %+v", len(curves), a.Path, region)
	}
	return &detection{bounds: img.Bounds(), region: region, params: p, curves: curves}, nil
}

func (s *Server) handleSubpixelEdges(args json.RawMessage) (interface{}, error) {
	var a edgeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	d, err := s.detect(&a)
	if err != nil {
		return nil, err
	}

	res := &SubpixelEdgesResult{
		Width:      d.bounds.Dx(),
		Height:     d.bounds.Dy(),
		Region:     d.region,
		Parameters: d.params,
		CurveCount: len(d.curves),
		Curves:     make([]EdgeCurve, 0, len(d.curves)),
	}
	for _, c := range d.curves {
		ec := EdgeCurve{Closed: c.Closed(), Points: make([]Point, len(c.Points))}
		for i, p := range c.Points {
			ec.Points[i] = toPoint(p)
		}
		if a.IncludeDirections {
			ec.Directions = make([]Point, len(c.Directions))
			for i, dir := range c.Directions {
				ec.Directions[i] = toPoint(dir)
			}
		}
		if ec.Closed {
			res.ClosedCount++
		}
		res.PointCount += c.Len()
		res.Curves = append(res.Curves, ec)
	}
	return res, nil
}

func (s *Server) handleEdgeSummary(args json.RawMessage) (interface{}, error) {
	var a edgeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	d, err := s.detect(&a)
	if err != nil {
		return nil, err
	}

	res := &EdgeSummaryResult{
		Width:      d.bounds.Dx(),
		Height:     d.bounds.Dy(),
		Region:     d.region,
		Parameters: d.params,
		CurveCount: len(d.curves),
		Curves:     make([]CurveSummary, 0, len(d.curves)),
	}
	for i, c := range d.curves {
		cs := CurveSummary{
			Index:         i,
			Points:        c.Len(),
			Closed:        c.Closed(),
			Length:        c.Length(),
			Start:         toPoint(c.Points[0]),
			End:           toPoint(c.Points[c.Len()-1]),
			MeanDirection: toPoint(meanDirection(c.Directions)),
		}
		if cs.Closed {
			res.ClosedCount++
		}
		res.PointCount += cs.Points
		res.TotalLength += cs.Length
		res.Curves = append(res.Curves, cs)
	}
	return res, nil
}

// meanDirection returns the normalised sum of dirs, or the zero vector when
// they cancel out.
func meanDirection(dirs []r2.Vec) r2.Vec {
	var sum r2.Vec
	for _, d := range dirs {
		sum = r2.Add(sum, d)
	}
	if r2.Norm(sum) < 1e-12 {
		return r2.Vec{}
	}
	return r2.Unit(sum)
}
