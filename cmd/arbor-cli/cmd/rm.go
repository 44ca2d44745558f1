package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rmSubtree bool

var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a node",
	Long: `Delete a node from the map.

A plain delete only removes childless non-root nodes. With --subtree
the node is removed together with all its descendants.

Examples:
  arbor-cli rm 3f2a...
  arbor-cli rm --subtree 3f2a...`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var err error
		if rmSubtree {
			err = GetService().DeleteSubtree(ctx, args[0])
		} else {
			err = GetService().DeleteNode(ctx, args[0])
		}
		if err != nil {
			return err
		}
		if err := SaveTree(ctx); err != nil {
			return err
		}
		fmt.Printf("Deleted node %s\n", args[0])
		return nil
	},
}

func init() {
	rmCmd.Flags().BoolVar(&rmSubtree, "subtree", false, "delete the node and all descendants")
	rootCmd.AddCommand(rmCmd)
}
