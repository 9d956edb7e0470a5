package remote

import (
	"context"
	"errors"
	"testing"

	"epoca/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	name string
	args []string
	mode Mode
}

type fakeRunner struct {
	calls  []call
	output string
	err    error
}

func (f *fakeRunner) Run(_ context.Context, name string, args []string, mode Mode) (string, error) {
	f.calls = append(f.calls, call{name: name, args: args, mode: mode})
	return f.output, f.err
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.SSHPrivateKeyPath = "/keys/id_rsa"
	return cfg
}

func TestStatusAddsHeadings(t *testing.T) {
	runner := &fakeRunner{output: "System load: 0.1\nCONTAINER ID   IMAGE\nabc   api\n"}
	c := NewCommander(testConfig(), runner)

	status, err := c.Status(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Landscape Sysinfo:\nSystem load: 0.1\n\nRunning Containers:\nCONTAINER ID   IMAGE\nabc   api\n", status)
	require.Len(t, runner.calls, 1)
	assert.Equal(t, call{
		name: "ssh",
		args: []string{"-i", "/keys/id_rsa", "root@139.59.15.146", "landscape-sysinfo", "&&", "docker", "ps"},
		mode: Pipe,
	}, runner.calls[0])
}

func TestStatusError(t *testing.T) {
	runner := &fakeRunner{err: &ExitError{Command: "ssh", Code: 255}}
	c := NewCommander(testConfig(), runner)

	_, err := c.Status(context.Background())
	assert.EqualError(t, err, "the ssh process exited with the error code: 255")
}

func TestCommandTemplates(t *testing.T) {
	const addr = "root@139.59.15.146"
	ssh := func(mode Mode, remote ...string) call {
		return call{name: "ssh", args: append([]string{"-i", "/keys/id_rsa", addr}, remote...), mode: mode}
	}
	compose := func(script ...string) call {
		return ssh(Inherit, append([]string{"cd", "compose", "&&", "npm", "run"}, script...)...)
	}

	tests := []struct {
		name string
		run  func(*Commander, context.Context) error
		want call
	}{
		{"connect", (*Commander).Connect, ssh(Inherit)},
		{"reboot", (*Commander).Reboot, ssh(Inherit, "reboot")},
		{"shutdown", (*Commander).Shutdown, ssh(Inherit, "poweroff")},
		{"up prod", (*Commander).UpProd, compose("up-prod")},
		{"build prod", (*Commander).BuildProd, compose("build-prod")},
		{"debug mode", (*Commander).DebugModeProd, compose("debug-mode-prod")},
		{"restore mode", (*Commander).RestoreModeProd, compose("restore-mode-prod")},
		{"down", (*Commander).Down, compose("down")},
		{"restart", (*Commander).Restart, compose("restart")},
		{"prune", (*Commander).Prune, compose("prune")},
		{"database backup", (*Commander).DatabaseBackup, compose("database-backup")},
		{"database restore", func(c *Commander, ctx context.Context) error {
			return c.DatabaseRestore(ctx, "1646678127337.dump")
		}, compose("database-restore", "1646678127337.dump")},
		{"push file", func(c *Commander, ctx context.Context) error {
			return c.PushFile(ctx, "/local/compose/package.json", "compose/package.json")
		}, call{name: "scp", args: []string{"-i", "/keys/id_rsa", "/local/compose/package.json", addr + ":compose/package.json"}, mode: Inherit}},
		{"push dir", func(c *Commander, ctx context.Context) error {
			return c.PushDir(ctx, "/local/compose/src", "compose/src")
		}, call{name: "scp", args: []string{"-i", "/keys/id_rsa", "-r", "/local/compose/src", addr + ":compose/src"}, mode: Inherit}},
		{"remove file", func(c *Commander, ctx context.Context) error {
			return c.RemoveFile(ctx, "compose/.env")
		}, ssh(Pipe, "rm", "compose/.env")},
		{"remove dir", func(c *Commander, ctx context.Context) error {
			return c.RemoveDir(ctx, "compose/src")
		}, ssh(Pipe, "rm", "-r", "compose/src")},
		{"make dir", func(c *Commander, ctx context.Context) error {
			c.MakeDir(ctx, "compose")
			return nil
		}, ssh(Pipe, "mkdir", "compose")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{}
			c := NewCommander(testConfig(), runner)
			require.NoError(t, tt.run(c, context.Background()))
			require.Len(t, runner.calls, 1)
			assert.Equal(t, tt.want, runner.calls[0])
		})
	}
}

func TestComposeDirFollowsConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Projects[0].DirName = "stack"
	runner := &fakeRunner{}

	require.NoError(t, NewCommander(cfg, runner).Down(context.Background()))
	assert.Equal(t, []string{"-i", "/keys/id_rsa", "root@139.59.15.146", "cd", "stack", "&&", "npm", "run", "down"}, runner.calls[0].args)
}

func TestNonDefaultPort(t *testing.T) {
	cfg := testConfig()
	cfg.Server.Port = 2222
	runner := &fakeRunner{}
	c := NewCommander(cfg, runner)

	require.NoError(t, c.Reboot(context.Background()))
	require.NoError(t, c.PushFile(context.Background(), "a", "b"))

	assert.Equal(t, []string{"-i", "/keys/id_rsa", "-p", "2222", "root@139.59.15.146", "reboot"}, runner.calls[0].args)
	assert.Equal(t, []string{"-i", "/keys/id_rsa", "-P", "2222", "a", "root@139.59.15.146:b"}, runner.calls[1].args)
}

func TestMakeDirSwallowsErrors(t *testing.T) {
	runner := &fakeRunner{err: errors.New("exists")}
	c := NewCommander(testConfig(), runner)

	c.MakeDir(context.Background(), "compose")
	assert.Len(t, runner.calls, 1)
}

func TestCleanDir(t *testing.T) {
	runner := &fakeRunner{}
	c := NewCommander(testConfig(), runner)

	require.NoError(t, c.CleanDir(context.Background(), "compose/src"))
	require.Len(t, runner.calls, 2)
	assert.Equal(t, []string{"rm", "-r", "compose/src"}, runner.calls[0].args[3:])
	assert.Equal(t, []string{"mkdir", "compose/src"}, runner.calls[1].args[3:])

	failing := &fakeRunner{err: &ExitError{Command: "ssh", Code: 1}}
	c = NewCommander(testConfig(), failing)
	assert.Error(t, c.CleanDir(context.Background(), "compose/src"))
	assert.Len(t, failing.calls, 1)
}
