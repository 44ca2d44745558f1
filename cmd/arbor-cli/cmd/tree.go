package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"arbor/internal/domain"
)

var showIDs bool

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the map as an indented tree",
	Long: `Print the whole map as an indented tree, one node per line.

Examples:
  arbor-cli tree
  arbor-cli tree --ids`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		nodes, err := GetService().Store().All(cmd.Context())
		if err != nil {
			return err
		}
		root, ok := domain.FindRoot(nodes)
		if !ok {
			fmt.Println("(empty map)")
			return nil
		}
		printTree(nodes, root, 0)
		return nil
	},
}

func printTree(nodes []domain.Node, node domain.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	if showIDs {
		fmt.Printf("%s%s  %s\n", indent, node.ID, node.Content)
	} else {
		fmt.Printf("%s%s\n", indent, node.Content)
	}
	for _, child := range domain.ChildrenOf(nodes, node.ID) {
		printTree(nodes, child, depth+1)
	}
}

func init() {
	treeCmd.Flags().BoolVar(&showIDs, "ids", false, "print node ids")
	rootCmd.AddCommand(treeCmd)
}
