package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the process menu",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for i, cat := range cfg.Categories {
			if i > 0 {
				fmt.Fprintln(out)
			}
			titleColor.Fprintf(out, "%s\n", cat.Name)
			for _, id := range cat.Processes {
				fmt.Fprintf(out, "  - %s\n", id)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
