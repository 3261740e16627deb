package pages

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	_ "modernc.org/sqlite"
)

var testMCPImpl = &mcp.Implementation{Name: "pageintel-test", Version: "0.1.0"}

func mcpSession(t *testing.T, f Fetcher) *mcp.ClientSession {
	t.Helper()
	svc, _ := newService(t, f, nil)
	srv := mcp.NewServer(testMCPImpl, nil)
	svc.RegisterMCP(srv)

	serverT, clientT := mcp.NewInMemoryTransports()
	ctx := context.Background()
	go func() { _ = srv.Run(ctx, serverT) }()

	client := mcp.NewClient(testMCPImpl, nil)
	session, err := client.Connect(ctx, clientT, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	t.Cleanup(func() { session.Close() })
	return session
}

func mcpCallTool(t *testing.T, session *mcp.ClientSession, name string, args any) (string, bool) {
	t.Helper()
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		t.Fatalf("call %s: %v", name, err)
	}
	var text string
	for _, c := range result.Content {
		if tc, ok := c.(*mcp.TextContent); ok {
			text += tc.Text
		}
	}
	return text, result.IsError
}

func TestMCPLookup(t *testing.T) {
	session := mcpSession(t, &fakeFetcher{})

	text, isErr := mcpCallTool(t, session, "pageintel_lookup", map[string]any{"page_id": "acme"})
	if isErr {
		t.Fatalf("lookup returned tool error: %s", text)
	}

	var page Page
	if err := json.Unmarshal([]byte(text), &page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if page.PageID != "acme" || page.FollowerCount == nil {
		t.Errorf("page = %+v", page)
	}
}

func TestMCPLookup_InvalidID(t *testing.T) {
	session := mcpSession(t, &fakeFetcher{})

	text, isErr := mcpCallTool(t, session, "pageintel_lookup", map[string]any{"page_id": "a/b"})
	if !isErr {
		t.Fatal("expected tool error for invalid id")
	}
	if !strings.Contains(text, "invalid") {
		t.Errorf("error text = %q", text)
	}
}

func TestMCPList(t *testing.T) {
	f := &fakeFetcher{}
	session := mcpSession(t, f)

	if _, isErr := mcpCallTool(t, session, "pageintel_lookup", map[string]any{"page_id": "acme"}); isErr {
		t.Fatal("seed lookup failed")
	}

	text, isErr := mcpCallTool(t, session, "pageintel_list", map[string]any{"industry": "software"})
	if isErr {
		t.Fatalf("list returned tool error: %s", text)
	}

	var list PageList
	if err := json.Unmarshal([]byte(text), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if list.Total != 1 {
		t.Errorf("total = %d, want 1", list.Total)
	}
}

func TestMCPPosts(t *testing.T) {
	session := mcpSession(t, &fakeFetcher{})

	if _, isErr := mcpCallTool(t, session, "pageintel_lookup", map[string]any{"page_id": "acme"}); isErr {
		t.Fatal("seed lookup failed")
	}

	text, isErr := mcpCallTool(t, session, "pageintel_posts", map[string]any{"page_id": "acme"})
	if isErr {
		t.Fatalf("posts returned tool error: %s", text)
	}

	var list PostList
	if err := json.Unmarshal([]byte(text), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if list.Total != 1 {
		t.Errorf("total = %d, want 1", list.Total)
	}
}
