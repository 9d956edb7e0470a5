package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/ssh"
)

const (
	ConfigName  = "epoca"
	ConfigFile  = ConfigName + ".yaml"
	DefaultPort = 22

	// ComposeProject is the project that owns the docker-compose setup and the .env file.
	ComposeProject = "compose"
)

// Default returns the built-in configuration of the production server.
func Default() *Config {
	return &Config{
		LocalPath:         "~/Documents/projects/epoca/platform/production",
		SSHPrivateKeyPath: "~/.ssh/id_rsa",
		Server: Server{
			User: "root",
			Host: "139.59.15.146",
			Port: DefaultPort,
		},
		Categories: DefaultCategories(),
		Projects:   DefaultProjects(),
	}
}

// DefaultCategories returns the process menu.
func DefaultCategories() []Category {
	return []Category{
		{
			Name: "Server",
			Processes: []string{
				"connect_to_server",
				"reboot_server",
				"shutdown_server",
			},
		},
		{
			Name: "Compose",
			Processes: []string{
				"up_prod",
				"build_prod",
				"debug_mode_prod",
				"restore_mode_prod",
				"down",
				"restart",
				"prune",
				"database_backup",
				"database_restore",
			},
		},
		{
			Name: "Push",
			Processes: []string{
				"push_compose",
				"push_api",
				"push_gui",
				"push_all_source_code",
				"push_env",
			},
		},
	}
}

// DefaultProjects returns the source code manifests of the platform.
func DefaultProjects() []Project {
	return []Project{
		{
			Name:        ComposeProject,
			DirName:     "compose",
			Directories: []string{"docker-compose", "src"},
			Files:       []string{"gulpfile.js", "package.json", "tsconfig.json"},
		},
		{
			Name:        "api",
			DirName:     "api-production",
			Directories: []string{"src"},
			Files: []string{
				".dockerignore",
				"docker-compose.yml",
				"Dockerfile",
				"gulpfile.js",
				"package-lock.json",
				"package.json",
				"tsconfig.json",
			},
		},
		{
			Name:        "gui",
			DirName:     "gui-production",
			Directories: []string{"service-worker", "src"},
			Files: []string{
				".browserslistrc",
				".dockerignore",
				"angular.json",
				"docker-compose.yml",
				"Dockerfile",
				"gulpfile.js",
				"karma.conf.js",
				"nginx.conf",
				"ngsw-config.json",
				"package-lock.json",
				"package.json",
				"tsconfig.app.json",
				"tsconfig.json",
				"tsconfig.spec.json",
			},
		},
	}
}

// Address returns the ssh address of the server, user@host.
func (c *Config) Address() string {
	return fmt.Sprintf("%s@%s", c.Server.User, c.Server.Host)
}

// Project looks up a project by name.
func (c *Config) Project(name string) (Project, bool) {
	for _, p := range c.Projects {
		if p.Name == name {
			return p, true
		}
	}
	return Project{}, false
}

// Category looks up a menu category by name.
func (c *Config) Category(name string) (Category, bool) {
	for _, cat := range c.Categories {
		if cat.Name == name {
			return cat, true
		}
	}
	return Category{}, false
}

// ProcessIDs returns every process id in menu order.
func (c *Config) ProcessIDs() []string {
	var ids []string
	for _, cat := range c.Categories {
		ids = append(ids, cat.Processes...)
	}
	return ids
}

// reservedProjectNames would give a push_<name> id already taken by a
// built-in process.
var reservedProjectNames = map[string]bool{
	"env":             true,
	"all_source_code": true,
}

// IsReservedProjectName reports whether push_<name> is a built-in process.
func IsReservedProjectName(name string) bool {
	return reservedProjectNames[name]
}

// Validate checks the configuration for missing or conflicting values.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Server.Host) == "" {
		errs = append(errs, errors.New("server.host is required"))
	}
	if strings.TrimSpace(c.Server.User) == "" {
		errs = append(errs, errors.New("server.user is required"))
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d is out of range", c.Server.Port))
	}
	if strings.TrimSpace(c.SSHPrivateKeyPath) == "" {
		errs = append(errs, errors.New("ssh_private_key_path is required"))
	}
	if strings.TrimSpace(c.LocalPath) == "" {
		errs = append(errs, errors.New("local_path is required"))
	}

	seen := make(map[string]bool)
	for _, cat := range c.Categories {
		if cat.Name == "" {
			errs = append(errs, errors.New("category without a name"))
			continue
		}
		if seen[cat.Name] {
			errs = append(errs, fmt.Errorf("duplicate category %q", cat.Name))
		}
		seen[cat.Name] = true
		if len(cat.Processes) == 0 {
			errs = append(errs, fmt.Errorf("category %q has no processes", cat.Name))
		}
	}

	seen = make(map[string]bool)
	for _, p := range c.Projects {
		if p.Name == "" {
			errs = append(errs, errors.New("project without a name"))
			continue
		}
		if seen[p.Name] {
			errs = append(errs, fmt.Errorf("duplicate project %q", p.Name))
		}
		seen[p.Name] = true
		if reservedProjectNames[p.Name] {
			errs = append(errs, fmt.Errorf("project name %q is reserved by the push_%s process", p.Name, p.Name))
		}
		if strings.TrimSpace(p.DirName) == "" {
			errs = append(errs, fmt.Errorf("project %q has no dir_name", p.Name))
		}
	}
	if !seen[ComposeProject] {
		errs = append(errs, fmt.Errorf("a %q project is required", ComposeProject))
	}

	return errors.Join(errs...)
}

// CheckPrivateKey verifies that path holds a parseable ssh private key.
// Passphrase protected keys pass; ssh asks for the passphrase itself.
func CheckPrivateKey(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read private key: %w", err)
	}

	if _, err := ssh.ParseRawPrivateKey(data); err != nil {
		var missing *ssh.PassphraseMissingError
		if errors.As(err, &missing) {
			return nil
		}
		return fmt.Errorf("unable to parse private key %s: %w", path, err)
	}
	return nil
}

// ExpandHome replaces a leading ~/ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
