package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for Pileus resources.
	uriScheme = "pileus://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "history",
		Name:        "history",
		Description: "Onboarding attempts recorded by this machine, newest first",
		MIMEType:    "application/json",
	}, s.handleHistoryResource)

	if s.ports.Settings != nil {
		s.server.AddResource(&mcp.Resource{
			URI:         uriScheme + "settings",
			Name:        "settings",
			Description: "Current CLI settings (endpoints, account scope, defaults)",
			MIMEType:    "application/json",
		}, s.handleSettingsResource)
	}
}

// handleHistoryResource returns the full onboarding history.
func (s *Server) handleHistoryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	records, err := s.ports.Onboarding.History(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	return jsonResource(req.Params.URI, records)
}

// handleSettingsResource returns the current settings.
func (s *Server) handleSettingsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	settings, err := s.ports.Settings.Get()
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}
	return jsonResource(req.Params.URI, settings)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
