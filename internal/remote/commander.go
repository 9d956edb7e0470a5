package remote

import (
	"context"
	"strconv"
	"strings"

	"epoca/internal/config"
)

// Commander builds the ssh/scp invocations executed on the production server.
type Commander struct {
	runner     Runner
	addr       string
	keyPath    string
	port       int
	composeDir string
}

// NewCommander wires a Commander to cfg's server, key and compose project.
func NewCommander(cfg *config.Config, runner Runner) *Commander {
	composeDir := config.ComposeProject
	if p, ok := cfg.Project(config.ComposeProject); ok {
		composeDir = p.DirName
	}
	return &Commander{
		runner:     runner,
		addr:       cfg.Address(),
		keyPath:    cfg.SSHPrivateKeyPath,
		port:       cfg.Server.Port,
		composeDir: composeDir,
	}
}

/* General */

// Status returns the landscape-sysinfo output followed by the running containers.
func (c *Commander) Status(ctx context.Context) (string, error) {
	out, err := c.runner.Run(ctx, "ssh", c.sshArgs(c.addr, "landscape-sysinfo", "&&", "docker", "ps"), Pipe)
	if err != nil {
		return "", err
	}
	status := "Landscape Sysinfo:\n" + out
	return strings.Replace(status, "CONTAINER ID", "\nRunning Containers:\nCONTAINER ID", 1), nil
}

/* Server */

// Connect opens an interactive ssh session.
func (c *Commander) Connect(ctx context.Context) error {
	return c.ssh(ctx, Inherit)
}

func (c *Commander) Reboot(ctx context.Context) error {
	return c.ssh(ctx, Inherit, "reboot")
}

func (c *Commander) Shutdown(ctx context.Context) error {
	return c.ssh(ctx, Inherit, "poweroff")
}

/* Compose */

// ComposeScript runs `npm run <script> [args...]` inside the compose directory.
func (c *Commander) ComposeScript(ctx context.Context, script string, args ...string) error {
	remote := append([]string{"cd", c.composeDir, "&&", "npm", "run", script}, args...)
	return c.ssh(ctx, Inherit, remote...)
}

func (c *Commander) UpProd(ctx context.Context) error {
	return c.ComposeScript(ctx, "up-prod")
}

func (c *Commander) BuildProd(ctx context.Context) error {
	return c.ComposeScript(ctx, "build-prod")
}

func (c *Commander) DebugModeProd(ctx context.Context) error {
	return c.ComposeScript(ctx, "debug-mode-prod")
}

func (c *Commander) RestoreModeProd(ctx context.Context) error {
	return c.ComposeScript(ctx, "restore-mode-prod")
}

func (c *Commander) Down(ctx context.Context) error {
	return c.ComposeScript(ctx, "down")
}

func (c *Commander) Restart(ctx context.Context) error {
	return c.ComposeScript(ctx, "restart")
}

func (c *Commander) Prune(ctx context.Context) error {
	return c.ComposeScript(ctx, "prune")
}

func (c *Commander) DatabaseBackup(ctx context.Context) error {
	return c.ComposeScript(ctx, "database-backup")
}

// DatabaseRestore downloads and restores the named backup.
func (c *Commander) DatabaseRestore(ctx context.Context, backupName string) error {
	return c.ComposeScript(ctx, "database-restore", backupName)
}

/* Server file system */

// PushFile copies a local file to dest on the server.
func (c *Commander) PushFile(ctx context.Context, origin, dest string) error {
	_, err := c.runner.Run(ctx, "scp", c.scpArgs(origin, c.addr+":"+dest), Inherit)
	return err
}

// PushDir copies a local directory tree to dest on the server.
func (c *Commander) PushDir(ctx context.Context, origin, dest string) error {
	_, err := c.runner.Run(ctx, "scp", c.scpArgs("-r", origin, c.addr+":"+dest), Inherit)
	return err
}

func (c *Commander) RemoveFile(ctx context.Context, path string) error {
	return c.ssh(ctx, Pipe, "rm", path)
}

func (c *Commander) RemoveDir(ctx context.Context, path string) error {
	return c.ssh(ctx, Pipe, "rm", "-r", path)
}

// MakeDir creates path on the server. Failures, usually an existing
// directory, are logged and dropped.
func (c *Commander) MakeDir(ctx context.Context, path string) {
	if err := c.ssh(ctx, Pipe, "mkdir", path); err != nil {
		rlog.Debug("mkdir %s: %v", path, err)
	}
}

// CleanDir removes path and creates it again empty.
func (c *Commander) CleanDir(ctx context.Context, path string) error {
	if err := c.RemoveDir(ctx, path); err != nil {
		return err
	}
	c.MakeDir(ctx, path)
	return nil
}

/* Helpers */

func (c *Commander) ssh(ctx context.Context, mode Mode, remote ...string) error {
	_, err := c.runner.Run(ctx, "ssh", c.sshArgs(append([]string{c.addr}, remote...)...), mode)
	return err
}

// sshArgs prepends the identity (and non-default port) to partial. Order matters.
func (c *Commander) sshArgs(partial ...string) []string {
	return c.baseArgs("-p", partial)
}

// scpArgs is sshArgs for scp, which spells the port flag -P.
func (c *Commander) scpArgs(partial ...string) []string {
	return c.baseArgs("-P", partial)
}

func (c *Commander) baseArgs(portFlag string, partial []string) []string {
	args := []string{"-i", c.keyPath}
	if c.port != 0 && c.port != config.DefaultPort {
		args = append(args, portFlag, strconv.Itoa(c.port))
	}
	return append(args, partial...)
}
