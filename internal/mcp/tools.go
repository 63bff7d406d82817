// ABOUTME: MCP tool definitions and handlers
// ABOUTME: Lists, adds, and deletes shapes, and searches addresses

package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/harper/mapdraw/internal/editor"
	"github.com/harper/mapdraw/internal/geocode"
	"github.com/harper/mapdraw/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const defaultSearchLimit = 5

func (s *Server) registerTools() {
	s.registerListShapesTool()
	s.registerAddLineTool()
	s.registerAddCircleTool()
	s.registerDeleteShapeTool()
	s.registerSearchAddressTool()
}

func textResult(v any) *mcp.CallToolResult {
	jsonBytes, _ := json.MarshalIndent(v, "", "  ") //nolint:errchkjson // output is always serializable
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(jsonBytes)}},
	}
}

// ShapeOutput describes one committed shape.
type ShapeOutput struct {
	Kind     models.Kind    `json:"kind"`
	Index    int            `json:"index"`
	RemoteID string         `json:"remote_id,omitempty"`
	Points   []models.Point `json:"points,omitempty"`
	Center   *models.Point  `json:"center,omitempty"`
	Radius   float64        `json:"radius_meters,omitempty"`
}

func shapeOutput(index int, s models.Shape) ShapeOutput {
	out := ShapeOutput{Kind: s.Kind, Index: index, RemoteID: s.RemoteID}
	if s.Kind == models.KindCircle {
		center := s.Center
		out.Center = &center
		out.Radius = s.Radius
	} else {
		out.Points = s.Points
	}
	return out
}

// ListShapesOutput defines output for list_shapes tool.
type ListShapesOutput struct {
	Lines   []ShapeOutput `json:"lines"`
	Circles []ShapeOutput `json:"circles"`
	Count   int           `json:"count"`
}

func listShapes(ed *editor.Editor) ListShapesOutput {
	out := ListShapesOutput{Lines: []ShapeOutput{}, Circles: []ShapeOutput{}}
	for i, l := range ed.Lines() {
		out.Lines = append(out.Lines, shapeOutput(i, l))
	}
	for i, c := range ed.Circles() {
		out.Circles = append(out.Circles, shapeOutput(i, c))
	}
	out.Count = len(out.Lines) + len(out.Circles)
	return out
}

// ListShapesInput is empty but required for type.
type ListShapesInput struct{}

func (s *Server) registerListShapesTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "list_shapes",
		Description: "List all drawn lines (closed polygons) and circles with their indices.",
		InputSchema: map[string]interface{}{
			"type": "object",
		},
	}, s.handleListShapes)
}

func (s *Server) handleListShapes(ctx context.Context, req *mcp.CallToolRequest, input ListShapesInput) (*mcp.CallToolResult, ListShapesOutput, error) {
	ed, err := s.load(ctx)
	if err != nil {
		return nil, ListShapesOutput{}, err
	}
	output := listShapes(ed)
	return textResult(output), output, nil
}

// PointInput is one coordinate pair.
type PointInput struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// AddLineInput defines input for add_line tool.
type AddLineInput struct {
	Points []PointInput `json:"points"`
}

func pointSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"latitude": map[string]interface{}{
				"type":        "number",
				"description": "Latitude coordinate (-90 to 90)",
			},
			"longitude": map[string]interface{}{
				"type":        "number",
				"description": "Longitude coordinate (-180 to 180)",
			},
		},
		"required": []string{"latitude", "longitude"},
	}
}

func (s *Server) registerAddLineTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "add_line",
		Description: "Add a closed polygon through the given points (at least 3). The last point connects back to the first.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"points": map[string]interface{}{
					"type":        "array",
					"description": "Polygon vertices in drawing order",
					"items":       pointSchema(),
					"minItems":    models.MinLinePoints,
				},
			},
			"required": []string{"points"},
		},
	}, s.handleAddLine)
}

func (s *Server) handleAddLine(ctx context.Context, req *mcp.CallToolRequest, input AddLineInput) (*mcp.CallToolResult, ShapeOutput, error) {
	points := make([]models.Point, len(input.Points))
	for i, p := range input.Points {
		points[i] = models.Point{Lat: p.Latitude, Lng: p.Longitude}
	}

	ed, err := s.edit(ctx, func(ed *editor.Editor) (editor.Change, error) {
		_, change, err := ed.AddLine(points)
		return change, err
	})
	if err != nil {
		return nil, ShapeOutput{}, err
	}

	lines := ed.Lines()
	output := shapeOutput(len(lines)-1, lines[len(lines)-1])
	return textResult(output), output, nil
}

// AddCircleInput defines input for add_circle tool.
type AddCircleInput struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Radius    float64 `json:"radius_meters"`
}

func (s *Server) registerAddCircleTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "add_circle",
		Description: "Add a circle around a center point with a radius in meters.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"latitude": map[string]interface{}{
					"type":        "number",
					"description": "Center latitude (-90 to 90)",
				},
				"longitude": map[string]interface{}{
					"type":        "number",
					"description": "Center longitude (-180 to 180)",
				},
				"radius_meters": map[string]interface{}{
					"type":        "number",
					"description": "Radius in meters, greater than zero",
				},
			},
			"required": []string{"latitude", "longitude", "radius_meters"},
		},
	}, s.handleAddCircle)
}

func (s *Server) handleAddCircle(ctx context.Context, req *mcp.CallToolRequest, input AddCircleInput) (*mcp.CallToolResult, ShapeOutput, error) {
	center := models.Point{Lat: input.Latitude, Lng: input.Longitude}
	ed, err := s.edit(ctx, func(ed *editor.Editor) (editor.Change, error) {
		_, change, err := ed.AddCircle(center, input.Radius)
		return change, err
	})
	if err != nil {
		return nil, ShapeOutput{}, err
	}

	circles := ed.Circles()
	output := shapeOutput(len(circles)-1, circles[len(circles)-1])
	return textResult(output), output, nil
}

// DeleteShapeInput defines input for delete_shape tool.
type DeleteShapeInput struct {
	Kind  string `json:"kind"`
	Index int    `json:"index"`
}

// DeleteShapeOutput defines output for delete_shape tool.
type DeleteShapeOutput struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (s *Server) registerDeleteShapeTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "delete_shape",
		Description: "Delete a line or circle by its index from list_shapes. Later shapes shift down by one. This cannot be undone.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"kind": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"line", "circle"},
					"description": "Which sequence the shape belongs to",
				},
				"index": map[string]interface{}{
					"type":        "integer",
					"description": "Zero-based index within that sequence",
				},
			},
			"required": []string{"kind", "index"},
		},
	}, s.handleDeleteShape)
}

func (s *Server) handleDeleteShape(ctx context.Context, req *mcp.CallToolRequest, input DeleteShapeInput) (*mcp.CallToolResult, DeleteShapeOutput, error) {
	kind, err := models.ParseKind(input.Kind)
	if err != nil {
		return nil, DeleteShapeOutput{}, err
	}

	_, err = s.edit(ctx, func(ed *editor.Editor) (editor.Change, error) {
		_, change, err := ed.Delete(kind, input.Index)
		return change, err
	})
	if err != nil {
		return nil, DeleteShapeOutput{}, err
	}

	output := DeleteShapeOutput{
		Success: true,
		Message: fmt.Sprintf("Deleted %s %d", kind, input.Index),
	}
	return textResult(output), output, nil
}

// SearchAddressInput defines input for search_address tool.
type SearchAddressInput struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

// AddressOutput is one geocoder match.
type AddressOutput struct {
	DisplayName string  `json:"display_name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// SearchAddressOutput defines output for search_address tool.
type SearchAddressOutput struct {
	Query   string          `json:"query"`
	Results []AddressOutput `json:"results"`
	Count   int             `json:"count"`
	Message string          `json:"message,omitempty"`
}

func (s *Server) registerSearchAddressTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "search_address",
		Description: "Look up an address or place name and return matching coordinates, best match first.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Free-text address (e.g., 'Cristo Redentor, Rio de Janeiro')",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of results (default 5)",
				},
			},
			"required": []string{"query"},
		},
	}, s.handleSearchAddress)
}

func (s *Server) handleSearchAddress(ctx context.Context, req *mcp.CallToolRequest, input SearchAddressInput) (*mcp.CallToolResult, SearchAddressOutput, error) {
	if s.geocoder == nil {
		return nil, SearchAddressOutput{}, errors.New("address search is not configured")
	}
	search := geocode.NewSearch(0)
	r, ok := search.Begin(input.Query)
	if !ok {
		return nil, SearchAddressOutput{}, errors.New("query is required")
	}

	results, err := s.geocoder.Search(ctx, r.Query)
	out := search.Resolve(r, results, err)
	if err != nil {
		s.logger.Error("address search failed", "query", r.Query, "err", err)
		return nil, SearchAddressOutput{}, fmt.Errorf("%s: %w", out.Notice, err)
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	output := SearchAddressOutput{Query: r.Query, Results: []AddressOutput{}, Message: out.Notice}
	for i, res := range results {
		if i == limit {
			break
		}
		output.Results = append(output.Results, AddressOutput{
			DisplayName: res.DisplayName,
			Latitude:    res.Lat,
			Longitude:   res.Lon,
		})
	}
	output.Count = len(output.Results)
	return textResult(output), output, nil
}
