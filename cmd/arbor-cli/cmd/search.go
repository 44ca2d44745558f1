package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"arbor/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Fuzzy-search node contents",
	Long: `Fuzzy-search node contents. Matching nodes are printed with
their ids, best matches first.

Examples:
  arbor-cli search "idea"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		nodes, err := GetService().Store().All(cmd.Context())
		if err != nil {
			return err
		}

		results := search.NewFuzzy(false).Search(args[0], nodes)
		if len(results) == 0 {
			fmt.Println("No results found.")
			return nil
		}
		for _, r := range results {
			fmt.Printf("%s  %s\n", r.NodeID, r.Content)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
