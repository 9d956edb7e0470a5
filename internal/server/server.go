package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"epoca/internal/config"
	"epoca/internal/logger"
	"epoca/internal/prompt"
	"epoca/internal/remote"
)

var serverlogger = logger.PackageLogger("🖥️  SERVER")

// ErrUnknownProcess is returned for a process id with no handler.
var ErrUnknownProcess = errors.New("unknown process")

// Remote is the set of server-side commands the processes are built from.
type Remote interface {
	Status(ctx context.Context) (string, error)

	Connect(ctx context.Context) error
	Reboot(ctx context.Context) error
	Shutdown(ctx context.Context) error

	UpProd(ctx context.Context) error
	BuildProd(ctx context.Context) error
	DebugModeProd(ctx context.Context) error
	RestoreModeProd(ctx context.Context) error
	Down(ctx context.Context) error
	Restart(ctx context.Context) error
	Prune(ctx context.Context) error
	DatabaseBackup(ctx context.Context) error
	DatabaseRestore(ctx context.Context, backupName string) error

	PushFile(ctx context.Context, origin, dest string) error
	PushDir(ctx context.Context, origin, dest string) error
	RemoveFile(ctx context.Context, path string) error
	RemoveDir(ctx context.Context, path string) error
	MakeDir(ctx context.Context, path string)
}

// Input is the operator-facing side of the processes.
type Input interface {
	ProcessID(categories []config.Category) (string, error)
	DatabaseBackupName() (string, error)
	EnvironmentFilePath() (string, error)
}

type process func(ctx context.Context) error

// ServerStruct initializes all the requirements and runs any server process.
type ServerStruct struct {
	config    *config.Config
	input     Input
	remote    Remote
	out       io.Writer
	noStatus  bool
	processes map[string]process
}

type Server func(*ServerStruct)

// WithInput replaces the stdin prompter.
func WithInput(in Input) Server {
	return func(s *ServerStruct) {
		s.input = in
	}
}

// WithRemote replaces the exec backed commander.
func WithRemote(r Remote) Server {
	return func(s *ServerStruct) {
		s.remote = r
	}
}

// WithRunner keeps the default commander but runs its commands through r.
func WithRunner(r remote.Runner) Server {
	return func(s *ServerStruct) {
		s.remote = remote.NewCommander(s.config, r)
	}
}

// WithOutput redirects progress lines and the status report.
func WithOutput(w io.Writer) Server {
	return func(s *ServerStruct) {
		s.out = w
	}
}

// WithoutStatus makes Run skip the status report.
func WithoutStatus() Server {
	return func(s *ServerStruct) {
		s.noStatus = true
	}
}

func New(cfg *config.Config, opts ...Server) *ServerStruct {
	s := &ServerStruct{
		config: cfg,
		out:    os.Stdout,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.input == nil {
		s.input = prompt.NewStdPrompter()
	}
	if s.remote == nil {
		s.remote = remote.NewCommander(cfg, remote.NewExecRunner())
	}
	s.processes = s.registry()
	return s
}

func (s *ServerStruct) registry() map[string]process {
	processes := map[string]process{
		// Server
		"connect_to_server": s.remote.Connect,
		"reboot_server":     s.rebootServer,
		"shutdown_server":   s.shutdownServer,

		// Compose
		"up_prod":           s.remote.UpProd,
		"build_prod":        s.remote.BuildProd,
		"debug_mode_prod":   s.remote.DebugModeProd,
		"restore_mode_prod": s.remote.RestoreModeProd,
		"down":              s.remote.Down,
		"restart":           s.remote.Restart,
		"prune":             s.remote.Prune,
		"database_backup":   s.remote.DatabaseBackup,
		"database_restore":  s.databaseRestore,

		// Push
		"push_all_source_code": s.pushAllSourceCode,
		"push_env":             s.pushEnv,
	}

	// push_compose, push_api, push_gui, ... one per configured project
	for _, p := range s.config.Projects {
		id := "push_" + p.Name
		if _, taken := processes[id]; taken {
			serverlogger.Warn("Project %q shadows the %s process, skipping", p.Name, id)
			continue
		}
		processes[id] = s.pushProject(p.Name)
	}
	return processes
}

// Processes returns every process id that has a handler, sorted.
func (s *ServerStruct) Processes() []string {
	ids := make([]string, 0, len(s.processes))
	for id := range s.processes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Validate makes sure every process offered by the menu can be executed.
func (s *ServerStruct) Validate() error {
	var errs []error
	for _, cat := range s.config.Categories {
		for _, id := range cat.Processes {
			if _, ok := s.processes[id]; !ok {
				errs = append(errs, fmt.Errorf("category %q: %w %q", cat.Name, ErrUnknownProcess, id))
			}
		}
	}
	return errors.Join(errs...)
}

// Run prints the server status, asks for a process and executes it.
func (s *ServerStruct) Run(ctx context.Context) error {
	if !s.noStatus {
		if err := s.PrintStatus(ctx); err != nil {
			return err
		}
	}

	id, err := s.input.ProcessID(s.config.Categories)
	if err != nil {
		return err
	}
	return s.Execute(ctx, id)
}

// PrintStatus writes the landscape-sysinfo and docker ps report.
func (s *ServerStruct) PrintStatus(ctx context.Context) error {
	status, err := s.remote.Status(ctx)
	if err != nil {
		return fmt.Errorf("failed to retrieve server status: %w", err)
	}
	fmt.Fprintln(s.out, status)
	return nil
}

// Execute runs the process registered under id.
func (s *ServerStruct) Execute(ctx context.Context, id string) error {
	run, ok := s.processes[id]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownProcess, id)
	}
	serverlogger.Debug("Executing %s", id)
	if err := run(ctx); err != nil {
		return fmt.Errorf("%s: %w", id, err)
	}
	serverlogger.Debug("%s completed", id)
	return nil
}

/* Server */

func (s *ServerStruct) rebootServer(ctx context.Context) error {
	fmt.Fprintln(s.out, "Rebooting...")
	return s.remote.Reboot(ctx)
}

func (s *ServerStruct) shutdownServer(ctx context.Context) error {
	fmt.Fprintln(s.out, "Shutting down...")
	return s.remote.Shutdown(ctx)
}

/* Compose */

func (s *ServerStruct) databaseRestore(ctx context.Context) error {
	backupName, err := s.input.DatabaseBackupName()
	if err != nil {
		return err
	}
	return s.remote.DatabaseRestore(ctx, backupName)
}
