package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"arbor/internal/adapters/filesystem"
	"arbor/internal/adapters/memory"
	"arbor/internal/adapters/sqlite"
	"arbor/internal/application"
	"arbor/internal/config"
	"arbor/internal/ports"
)

var (
	snapshotPath string
	backend      string

	snapshots ports.SnapshotStore
	svc       *application.TreeService
)

var rootCmd = &cobra.Command{
	Use:   "arbor-cli",
	Short: "CLI for inspecting and editing arbor maps",
	Long: `arbor-cli operates on the same map snapshot the arbor TUI uses.

It provides commands to print, add to, edit, delete from, search, and
export the map without opening the editor.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		var err error
		if backend == "sqlite" {
			snapshots, err = sqlite.Open(config.DBPath())
			if err != nil {
				return err
			}
		} else {
			snapshots = filesystem.NewSnapshotStore(snapshotPath)
		}

		svc = application.NewTreeService(memory.NewStore())
		ctx := cmd.Context()
		nodes, err := snapshots.Load(ctx)
		if err != nil {
			return err
		}
		for _, n := range nodes {
			if err := svc.Store().Put(ctx, n); err != nil {
				return err
			}
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if snapshots == nil {
			return nil
		}
		return snapshots.Close()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&snapshotPath, "path", "p", config.SnapshotPath(), "path to the map snapshot")
	rootCmd.PersistentFlags().StringVarP(&backend, "backend", "b", config.Backend(), "persistence backend: json or sqlite")
}

// GetService returns the initialized tree service
func GetService() *application.TreeService {
	return svc
}

// SaveTree persists the current tree back to the snapshot store.
func SaveTree(ctx context.Context) error {
	nodes, err := svc.Store().All(ctx)
	if err != nil {
		return err
	}
	return snapshots.Save(ctx, nodes)
}
