/*
Copyright © 2025 Yussuf
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"epoca/internal/config"
	"epoca/internal/logger"
	"epoca/internal/prompt"
	"epoca/internal/remote"
	"epoca/internal/server"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	cmdlog = logger.PackageLogger("⚙️  CLI")

	titleColor   = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	warnColor    = color.New(color.FgYellow, color.Bold)

	// Global flags
	cfgFile  string
	dryRun   bool
	verbose  bool
	noStatus bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "epoca",
	Short: "Manage the EPOCA production server over SSH",
	Long: `epoca runs server management processes against the production server.

Without a subcommand it prints the server status and lets you pick a process
from the menu: reboot the server, drive the compose containers, back up or
restore the database, or push source code and the environment file.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logger.SetDefaults(logger.LevelDebug, cmd.ErrOrStderr())
		}
	},
	RunE: runInteractive,
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		errorColor.Fprintf(os.Stderr, "❌ Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./epoca.yaml or $XDG_CONFIG_HOME/epoca/epoca.yaml)")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Print the ssh/scp commands instead of running them")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noStatus, "no-status", false, "Skip the server status report")
}

func runInteractive(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if isTerminal(out) {
		// clear the screen and move the cursor home
		fmt.Fprint(out, "\033[H\033[2J")
	}
	titleColor.Fprintln(out, "EPOCA SERVER")
	fmt.Fprintln(out)

	srv, err := newServer(cmd)
	if err != nil {
		return err
	}
	return srv.Run(cmd.Context())
}

// loadConfig loads and validates the configuration named by --config.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration:\n%w", err)
	}
	return cfg, nil
}

// newServer builds a server wired to the command's stdio and flags.
func newServer(cmd *cobra.Command) (*server.ServerStruct, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	var runner remote.Runner
	if dryRun {
		warnColor.Fprintln(cmd.OutOrStdout(), "🚧 DRY RUN MODE: No commands will be executed 🚧")
		runner = &remote.DryRunner{Out: cmd.OutOrStdout()}
	} else {
		if err := config.CheckPrivateKey(cfg.SSHPrivateKeyPath); err != nil {
			cmdlog.Warn("%v", err)
		}
		runner = &remote.ExecRunner{
			Stdin:  cmd.InOrStdin(),
			Stdout: cmd.OutOrStdout(),
			Stderr: cmd.ErrOrStderr(),
		}
	}

	opts := []server.Server{
		server.WithRunner(runner),
		server.WithInput(prompt.NewCLIPrompter(cmd.InOrStdin(), cmd.OutOrStdout())),
		server.WithOutput(cmd.OutOrStdout()),
	}
	if noStatus {
		opts = append(opts, server.WithoutStatus())
	}

	srv := server.New(cfg, opts...)
	if err := srv.Validate(); err != nil {
		return nil, fmt.Errorf("invalid process menu:\n%w", err)
	}
	return srv, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
