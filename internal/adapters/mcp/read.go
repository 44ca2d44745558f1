// Package mcp exposes the map over the Model Context Protocol so
// assistants can read and edit the same tree the TUI operates on.
package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"arbor/internal/application"
	"arbor/internal/domain"
	"arbor/internal/ports"
)

// RegisterReadTools adds all read-only map tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, svc *application.TreeService, searcher ports.Searcher) {
	s.AddTool(treeTool(), treeHandler(svc))
	s.AddTool(searchTool(), searchHandler(svc, searcher))
	s.AddTool(getTool(), getHandler(svc))
}

// --- map_tree ---

func treeTool() mcp.Tool {
	return mcp.NewTool("map_tree",
		mcp.WithDescription("Display the whole map as an indented tree. Each line shows the node id and content."),
	)
}

func treeHandler(svc *application.TreeService) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		nodes, err := svc.Store().All(ctx)
		if err != nil {
			return toolError(err)
		}
		root, ok := domain.FindRoot(nodes)
		if !ok {
			return mcp.NewToolResultText("The map is empty."), nil
		}
		var sb strings.Builder
		renderTree(&sb, nodes, root, 0)
		return mcp.NewToolResultText(sb.String()), nil
	}
}

func renderTree(sb *strings.Builder, nodes []domain.Node, node domain.Node, depth int) {
	fmt.Fprintf(sb, "%s%s  %s\n", strings.Repeat("  ", depth), node.ID, node.Content)
	for _, child := range domain.ChildrenOf(nodes, node.ID) {
		renderTree(sb, nodes, child, depth+1)
	}
}

// --- map_search ---

func searchTool() mcp.Tool {
	return mcp.NewTool("map_search",
		mcp.WithDescription("Fuzzy-search node contents. Returns matching nodes with their ids, best matches first."),
		mcp.WithString("query",
			mcp.Description("Search query"),
			mcp.Required(),
		),
	)
}

func searchHandler(svc *application.TreeService, searcher ports.Searcher) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")
		if query == "" {
			return toolError(fmt.Errorf("query is required"))
		}

		nodes, err := svc.Store().All(ctx)
		if err != nil {
			return toolError(err)
		}

		results := searcher.Search(query, nodes)
		if len(results) == 0 {
			return mcp.NewToolResultText("No results found."), nil
		}

		var sb strings.Builder
		for _, r := range results {
			fmt.Fprintf(&sb, "%s  %s\n", r.NodeID, r.Content)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- map_get ---

func getTool() mcp.Tool {
	return mcp.NewTool("map_get",
		mcp.WithDescription("Read a single node: its content, parent, and children."),
		mcp.WithString("id",
			mcp.Description("Node id"),
			mcp.Required(),
		),
	)
}

func getHandler(svc *application.TreeService) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := req.GetString("id", "")
		if id == "" {
			return toolError(fmt.Errorf("id is required"))
		}

		node, err := svc.Store().Get(ctx, id)
		if err != nil {
			return toolError(err)
		}
		if node == nil {
			return toolError(fmt.Errorf("node %s not found", id))
		}

		children, err := svc.Store().Children(ctx, id)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "id: %s\ncontent: %s\n", node.ID, node.Content)
		if node.IsRoot() {
			sb.WriteString("parent: (root)\n")
		} else {
			fmt.Fprintf(&sb, "parent: %s\n", node.ParentID)
		}
		fmt.Fprintf(&sb, "children: %d\n", len(children))
		for _, c := range children {
			fmt.Fprintf(&sb, "  %s  %s\n", c.ID, c.Content)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}
