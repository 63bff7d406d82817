// ABOUTME: MCP resource definitions
// ABOUTME: Read-only JSON and GeoJSON views of the drawn shapes

package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harper/mapdraw/internal/geojson"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	shapesURI  = "mapdraw://shapes"
	geojsonURI = "mapdraw://shapes.geojson"
)

func (s *Server) registerResources() {
	s.mcp.AddResource(&mcp.Resource{
		Name:        shapesURI,
		Description: "All drawn lines and circles",
		URI:         shapesURI,
		MIMEType:    "application/json",
	}, s.handleShapesResource)

	s.mcp.AddResource(&mcp.Resource{
		Name:        geojsonURI,
		Description: "All drawn shapes as a GeoJSON FeatureCollection",
		URI:         geojsonURI,
		MIMEType:    "application/geo+json",
	}, s.handleGeoJSONResource)
}

func (s *Server) handleShapesResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	ed, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	jsonBytes, _ := json.MarshalIndent(listShapes(ed), "", "  ") //nolint:errchkjson // output is always serializable

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      shapesURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		},
	}, nil
}

func (s *Server) handleGeoJSONResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	ed, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	data, err := geojson.Marshal(geojson.FromShapes(ed.Lines(), ed.Circles(), geojson.Options{}), true)
	if err != nil {
		return nil, fmt.Errorf("failed to encode geojson: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      geojsonURI,
				MIMEType: "application/geo+json",
				Text:     string(data),
			},
		},
	}, nil
}
