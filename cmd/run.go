package cmd

import (
	"epoca/internal/config"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <process-id>",
	Short: "Execute a single process without the menu",
	Long: `Execute one process by id, e.g. "epoca run push_api".

Processes that need input (database_restore, push_env) still prompt for it.
Run "epoca list" to see every process id.`,
	Args: cobra.ExactArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		return cfg.ProcessIDs(), cobra.ShellCompDirectiveNoFileComp
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		srv, err := newServer(cmd)
		if err != nil {
			return err
		}
		if err := srv.Execute(cmd.Context(), args[0]); err != nil {
			return err
		}
		cmdlog.Success("%s completed", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
