package server

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"epoca/internal/config"
)

// In a push the remote copy is removed first so the server always runs on
// the latest data.

// pushProject returns the process pushing the named project's manifest.
func (s *ServerStruct) pushProject(name string) process {
	return func(ctx context.Context) error {
		project, ok := s.config.Project(name)
		if !ok {
			return fmt.Errorf("no %q project configured", name)
		}
		return s.PushSourceCode(ctx, project)
	}
}

// pushAllSourceCode pushes every configured project, in order.
func (s *ServerStruct) pushAllSourceCode(ctx context.Context) error {
	pushed := 0
	for _, project := range s.config.Projects {
		if config.IsReservedProjectName(project.Name) {
			serverlogger.Warn("Project %q shadows the push_%s process, skipping", project.Name, project.Name)
			continue
		}
		if pushed > 0 {
			fmt.Fprint(s.out, "\n\n")
		}
		pushed++
		fmt.Fprintf(s.out, "%s:\n\n", strings.ToUpper(project.Name))
		if err := s.PushSourceCode(ctx, project); err != nil {
			return err
		}
	}
	return nil
}

// PushSourceCode makes the project's root directory if needed, then pushes
// its directories followed by its files.
func (s *ServerStruct) PushSourceCode(ctx context.Context, project config.Project) error {
	s.remote.MakeDir(ctx, project.DirName)

	localRoot := filepath.Join(s.config.LocalPath, project.DirName)
	for _, dir := range project.Directories {
		if err := s.PushDir(ctx, filepath.Join(localRoot, dir), path.Join(project.DirName, dir)); err != nil {
			return err
		}
	}
	for _, file := range project.Files {
		if err := s.PushFile(ctx, filepath.Join(localRoot, file), path.Join(project.DirName, file)); err != nil {
			return err
		}
	}
	return nil
}

// pushEnv asks for the environment file and pushes it as the compose .env.
func (s *ServerStruct) pushEnv(ctx context.Context) error {
	compose, ok := s.config.Project(config.ComposeProject)
	if !ok {
		return fmt.Errorf("no %q project configured", config.ComposeProject)
	}
	dest := path.Join(compose.DirName, ".env")

	origin, err := s.input.EnvironmentFilePath()
	if err != nil {
		return err
	}
	return s.PushFile(ctx, origin, dest)
}

// PushFile replaces dest on the server with the local origin file.
func (s *ServerStruct) PushFile(ctx context.Context, origin, dest string) error {
	if err := s.remote.RemoveFile(ctx, dest); err != nil {
		serverlogger.Debug("Could not remove %s: %v", dest, err)
	}
	fmt.Fprintf(s.out, "Pushing %s...\n", origin)
	return s.remote.PushFile(ctx, origin, dest)
}

// PushDir replaces dest on the server with the local origin directory.
func (s *ServerStruct) PushDir(ctx context.Context, origin, dest string) error {
	if err := s.remote.RemoveDir(ctx, dest); err != nil {
		serverlogger.Debug("Could not remove %s: %v", dest, err)
	}
	fmt.Fprintf(s.out, "Pushing %s...\n", origin)
	return s.remote.PushDir(ctx, origin, dest)
}
