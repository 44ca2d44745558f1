package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <id> <content>",
	Short: "Replace a node's content",
	Long: `Replace a node's content. Identity, parent, and position are
preserved.

Examples:
  arbor-cli edit 3f2a... "Renamed idea"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := GetService().UpdateContent(ctx, args[0], args[1]); err != nil {
			return err
		}
		if err := SaveTree(ctx); err != nil {
			return err
		}
		fmt.Printf("Updated node %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
}
