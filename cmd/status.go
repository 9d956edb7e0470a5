package cmd

import (
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the server's landscape-sysinfo and running containers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		srv, err := newServer(cmd)
		if err != nil {
			return err
		}
		return srv.PrintStatus(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
