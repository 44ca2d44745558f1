package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"arbor/internal/application"
	"arbor/internal/domain"
)

// saveFunc persists the tree after a successful mutation. The MCP
// surface shares the snapshot path with the TUI, so every write tool
// saves immediately.
type saveFunc func(ctx context.Context) error

// RegisterWriteTools adds all mutating map tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, svc *application.TreeService, save saveFunc) {
	s.AddTool(addTool(), addHandler(svc, save))
	s.AddTool(editTool(), editHandler(svc, save))
	s.AddTool(deleteTool(), deleteHandler(svc, save))
}

// --- map_add ---

func addTool() mcp.Tool {
	return mcp.NewTool("map_add",
		mcp.WithDescription("Add a node to the map. With a parent_id the node becomes its last child; without one it becomes the root of an empty map."),
		mcp.WithString("parent_id",
			mcp.Description("Parent node id. Omit to create the root."),
		),
		mcp.WithString("content",
			mcp.Description("Text content for the new node"),
			mcp.Required(),
		),
	)
}

func addHandler(svc *application.TreeService, save saveFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		parentID := req.GetString("parent_id", "")
		content := req.GetString("content", "")

		var (
			node *domain.Node
			err  error
		)
		if parentID == "" {
			node, err = svc.CreateRoot(ctx, content)
		} else {
			node, err = svc.CreateChild(ctx, parentID, content)
		}
		if err != nil {
			return toolError(err)
		}

		if err := save(ctx); err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("Created node %s", node.ID)), nil
	}
}

// --- map_edit ---

func editTool() mcp.Tool {
	return mcp.NewTool("map_edit",
		mcp.WithDescription("Replace a node's content. Identity, parent, and position are preserved."),
		mcp.WithString("id",
			mcp.Description("Node id"),
			mcp.Required(),
		),
		mcp.WithString("content",
			mcp.Description("New text content"),
			mcp.Required(),
		),
	)
}

func editHandler(svc *application.TreeService, save saveFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := req.GetString("id", "")
		content := req.GetString("content", "")
		if id == "" {
			return toolError(fmt.Errorf("id is required"))
		}

		if err := svc.UpdateContent(ctx, id, content); err != nil {
			return toolError(err)
		}
		if err := save(ctx); err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("Updated node %s", id)), nil
	}
}

// --- map_delete ---

func deleteTool() mcp.Tool {
	return mcp.NewTool("map_delete",
		mcp.WithDescription("Delete a node. A plain delete only removes childless non-root nodes; set subtree to true to remove a node together with all descendants."),
		mcp.WithString("id",
			mcp.Description("Node id"),
			mcp.Required(),
		),
		mcp.WithBoolean("subtree",
			mcp.Description("Delete the whole subtree rooted at id"),
		),
	)
}

func deleteHandler(svc *application.TreeService, save saveFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := req.GetString("id", "")
		if id == "" {
			return toolError(fmt.Errorf("id is required"))
		}
		subtree := req.GetBool("subtree", false)

		var err error
		if subtree {
			err = svc.DeleteSubtree(ctx, id)
		} else {
			err = svc.DeleteNode(ctx, id)
		}
		if err != nil {
			return toolError(err)
		}
		if err := save(ctx); err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("Deleted node %s", id)), nil
	}
}
