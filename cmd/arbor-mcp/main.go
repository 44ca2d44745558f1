package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"arbor/internal/adapters/filesystem"
	mcpadapter "arbor/internal/adapters/mcp"
	"arbor/internal/adapters/memory"
	"arbor/internal/adapters/sqlite"
	"arbor/internal/application"
	"arbor/internal/config"
	"arbor/internal/ports"
	"arbor/internal/search"
)

func main() {
	pathFlag := flag.String("path", config.SnapshotPath(), "path to the map snapshot")
	backendFlag := flag.String("backend", config.Backend(), "persistence backend: json or sqlite")
	flag.Parse()

	var (
		snapshots ports.SnapshotStore
		err       error
	)
	if *backendFlag == "sqlite" {
		snapshots, err = sqlite.Open(config.DBPath())
		if err != nil {
			log.Fatalf("arbor-mcp: %v", err)
		}
	} else {
		snapshots = filesystem.NewSnapshotStore(*pathFlag)
	}
	defer snapshots.Close()

	svc := application.NewTreeService(memory.NewStore())

	ctx := context.Background()
	nodes, err := snapshots.Load(ctx)
	if err != nil {
		log.Fatalf("arbor-mcp: loading snapshot: %v", err)
	}
	for _, n := range nodes {
		if err := svc.Store().Put(ctx, n); err != nil {
			log.Fatalf("arbor-mcp: %v", err)
		}
	}

	save := func(ctx context.Context) error {
		nodes, err := svc.Store().All(ctx)
		if err != nil {
			return err
		}
		return snapshots.Save(ctx, nodes)
	}

	mcpServer := server.NewMCPServer(
		"arbor-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check — returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, svc, search.NewFuzzy(false))
	mcpadapter.RegisterWriteTools(mcpServer, svc, save)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("arbor-mcp: %v", err)
	}
}
