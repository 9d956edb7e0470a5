package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"epoca/internal/config"
	"epoca/internal/prompt"
	"epoca/internal/remote"
	"epoca/internal/server"

	"github.com/spf13/cobra"
)

var forceInit bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and create the epoca configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		data, err := config.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default configuration to a file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.DefaultPath()
		if cfgFile != "" {
			path = cfgFile
		}
		if len(args) == 1 {
			path = args[0]
		}

		if _, err := os.Stat(path); err == nil && !forceInit {
			return fmt.Errorf("%s already exists, use --force to overwrite it", path)
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to inspect %s: %w", path, err)
		}

		if err := config.Save(config.Default(), path); err != nil {
			return err
		}
		successColor.Fprintf(cmd.OutOrStdout(), "✅ Configuration written to %s\n", path)
		return nil
	},
}

var configCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the configuration and the ssh private key",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		srv := server.New(cfg,
			server.WithRunner(&remote.DryRunner{Out: io.Discard}),
			server.WithInput(prompt.NewCLIPrompter(cmd.InOrStdin(), cmd.OutOrStdout())),
		)
		if err := srv.Validate(); err != nil {
			return fmt.Errorf("invalid process menu:\n%w", err)
		}
		if err := config.CheckPrivateKey(cfg.SSHPrivateKeyPath); err != nil {
			return err
		}

		successColor.Fprintf(cmd.OutOrStdout(), "✅ Configuration is valid (%s, %d processes)\n", cfg.Address(), len(cfg.ProcessIDs()))
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite an existing file")

	configCmd.AddCommand(configShowCmd, configInitCmd, configCheckCmd)
	rootCmd.AddCommand(configCmd)
}
