package config

// Config represents the complete configuration structure
type Config struct {
	// LocalPath is the directory holding the production projects on this machine.
	LocalPath string `yaml:"local_path" mapstructure:"local_path"`

	SSHPrivateKeyPath string `yaml:"ssh_private_key_path" mapstructure:"ssh_private_key_path"`

	Server Server `yaml:"server" mapstructure:"server"`

	// Categories is the process menu, in display order.
	Categories []Category `yaml:"categories" mapstructure:"categories"`

	// Projects are the source code manifests, in push order.
	Projects []Project `yaml:"projects" mapstructure:"projects"`
}

// Server contains the connection details of the production machine
type Server struct {
	User string `yaml:"user" mapstructure:"user"`
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port,omitempty" mapstructure:"port"`
}

// Category groups process ids under one menu entry
type Category struct {
	Name      string   `yaml:"name" mapstructure:"name"`
	Processes []string `yaml:"processes" mapstructure:"processes"`
}

// Project outlines the structure of the data pushed for one project.
// Directories and Files are relative to LocalPath/DirName locally and to
// DirName on the server.
type Project struct {
	Name        string   `yaml:"name" mapstructure:"name"`
	DirName     string   `yaml:"dir_name" mapstructure:"dir_name"`
	Directories []string `yaml:"directories" mapstructure:"directories"`
	Files       []string `yaml:"files" mapstructure:"files"`
}
