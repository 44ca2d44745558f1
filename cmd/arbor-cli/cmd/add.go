package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var addParent string

var addCmd = &cobra.Command{
	Use:   "add <content>",
	Short: "Add a node to the map",
	Long: `Add a node to the map.

With --parent the node becomes the last child of that node. Without it
the node becomes the root of an empty map.

Examples:
  arbor-cli add "My Project"
  arbor-cli add --parent 3f2a... "First idea"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content := args[0]
		ctx := cmd.Context()

		if addParent == "" {
			node, err := GetService().CreateRoot(ctx, content)
			if err != nil {
				return err
			}
			if err := SaveTree(ctx); err != nil {
				return err
			}
			fmt.Printf("Created root %s\n", node.ID)
			return nil
		}

		node, err := GetService().CreateChild(ctx, addParent, content)
		if err != nil {
			return err
		}
		if err := SaveTree(ctx); err != nil {
			return err
		}
		fmt.Printf("Created node %s\n", node.ID)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&addParent, "parent", "", "parent node id")
	rootCmd.AddCommand(addCmd)
}
