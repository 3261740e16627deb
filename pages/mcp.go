package pages

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/pageintel/pageintel/kit"
)

// RegisterMCP registers the insights tools on an MCP server: page lookup,
// filtered listing, and the post/people sub-listings. Lookup acquires on
// a store miss, same as the HTTP surface.
func (s *Service) RegisterMCP(srv *mcp.Server) {
	s.registerLookupTool(srv)
	s.registerListTool(srv)
	s.registerPostsTool(srv)
	s.registerPeopleTool(srv)
}

// inputSchema builds a JSON Schema object with type "object".
func inputSchema(properties map[string]any, required []string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// --- lookup ---

type lookupRequest struct {
	PageID  string `json:"page_id"`
	Refresh bool   `json:"refresh,omitempty"`
}

func (s *Service) registerLookupTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "pageintel_lookup",
		Description: "Look up a company page by identifier. Acquires from the source when the store has no record; set refresh to force re-acquisition.",
		InputSchema: inputSchema(map[string]any{
			"page_id": map[string]any{"type": "string", "description": "Company page identifier (URL slug)"},
			"refresh": map[string]any{"type": "boolean", "description": "Force re-acquisition even when stored"},
		}, []string{"page_id"}),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*lookupRequest)
		if r.Refresh {
			return s.Refresh(ctx, r.PageID)
		}
		return s.Resolve(ctx, r.PageID)
	}

	decode := func(req *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		var r lookupRequest
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			return nil, err
		}
		return &kit.MCPDecodeResult{Request: &r}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decode)
}

// --- list ---

type listRequest struct {
	Name        string `json:"name,omitempty"`
	Industry    string `json:"industry,omitempty"`
	FollowerMin *int64 `json:"follower_count_min,omitempty"`
	FollowerMax *int64 `json:"follower_count_max,omitempty"`
	Page        int    `json:"page,omitempty"`
	PageSize    int    `json:"page_size,omitempty"`
}

func (s *Service) registerListTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "pageintel_list",
		Description: "List stored company pages with optional name/industry substring filters and an inclusive follower-count range. Paginated, newest acquisition first.",
		InputSchema: inputSchema(map[string]any{
			"name":               map[string]any{"type": "string", "description": "Case-insensitive name substring"},
			"industry":           map[string]any{"type": "string", "description": "Case-insensitive industry substring"},
			"follower_count_min": map[string]any{"type": "integer", "description": "Minimum follower count (inclusive)"},
			"follower_count_max": map[string]any{"type": "integer", "description": "Maximum follower count (inclusive)"},
			"page":               map[string]any{"type": "integer", "description": "1-based page number"},
			"page_size":          map[string]any{"type": "integer", "description": "Items per page (max 100)"},
		}, nil),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*listRequest)
		return s.ListPages(ctx, ListOptions{
			Name:        r.Name,
			Industry:    r.Industry,
			FollowerMin: r.FollowerMin,
			FollowerMax: r.FollowerMax,
			Page:        r.Page,
			PageSize:    r.PageSize,
		})
	}

	decode := func(req *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		var r listRequest
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			return nil, err
		}
		return &kit.MCPDecodeResult{Request: &r}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decode)
}

// --- sub-listings ---

type subListRequest struct {
	PageID   string `json:"page_id"`
	Page     int    `json:"page,omitempty"`
	PageSize int    `json:"page_size,omitempty"`
}

func subListSchema() map[string]any {
	return inputSchema(map[string]any{
		"page_id":   map[string]any{"type": "string", "description": "Company page identifier"},
		"page":      map[string]any{"type": "integer", "description": "1-based page number"},
		"page_size": map[string]any{"type": "integer", "description": "Items per page (max 100)"},
	}, []string{"page_id"})
}

func decodeSubList(req *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
	var r subListRequest
	if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
		return nil, err
	}
	return &kit.MCPDecodeResult{Request: &r}, nil
}

func (s *Service) registerPostsTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "pageintel_posts",
		Description: "List the stored post window for a company page, in capture order.",
		InputSchema: subListSchema(),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*subListRequest)
		return s.ListPosts(ctx, r.PageID, r.Page, r.PageSize)
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decodeSubList)
}

func (s *Service) registerPeopleTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "pageintel_people",
		Description: "List the stored people sample for a company page.",
		InputSchema: subListSchema(),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*subListRequest)
		return s.ListPeople(ctx, r.PageID, r.Page, r.PageSize)
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decodeSubList)
}
