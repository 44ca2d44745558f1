package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"arbor/internal/adapters/svg"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the map as an SVG image",
	Long: `Render the map with the layout engine and write it as an SVG
document.

Examples:
  arbor-cli export
  arbor-cli export -o map.svg`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		nodes, err := GetService().Store().All(cmd.Context())
		if err != nil {
			return err
		}
		if err := svg.WriteFile(exportOut, nodes); err != nil {
			return err
		}
		fmt.Printf("Exported %s\n", exportOut)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "arbor.svg", "output file")
	rootCmd.AddCommand(exportCmd)
}
