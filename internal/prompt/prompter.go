package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"epoca/internal/config"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

// ErrAborted is returned when the input stream ends before an answer is given.
var ErrAborted = errors.New("prompt aborted")

var (
	labelColor  = color.New(color.FgCyan, color.Bold)
	indexColor  = color.New(color.FgYellow)
	reasonColor = color.New(color.FgRed)
)

type Prompter interface {
	Select(label string, options []string) (string, error)
	Input(label string, validate func(string) error) (string, error)
	ProcessID(categories []config.Category) (string, error)
	DatabaseBackupName() (string, error)
	EnvironmentFilePath() (string, error)
}

type cliPrompter struct {
	reader *bufio.Reader
	out    io.Writer
}

func NewCLIPrompter(in io.Reader, out io.Writer) Prompter {
	return &cliPrompter{reader: bufio.NewReader(in), out: out}
}

// NewStdPrompter prompts on the process's stdin and stdout.
func NewStdPrompter() Prompter {
	return NewCLIPrompter(os.Stdin, os.Stdout)
}

// Select lists options and returns the one picked by number or by name.
func (p *cliPrompter) Select(label string, options []string) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("%s: nothing to select", label)
	}

	labelColor.Fprintf(p.out, "? %s\n", label)
	for i, opt := range options {
		fmt.Fprintf(p.out, "  %s %s\n", indexColor.Sprintf("%2d)", i+1), opt)
	}

	for {
		fmt.Fprintf(p.out, "Choice [1-%d]: ", len(options))
		answer, err := p.readLine()
		if err != nil {
			return "", err
		}
		if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(options) {
			return options[n-1], nil
		}
		for _, opt := range options {
			if answer == opt {
				return opt, nil
			}
		}
		reasonColor.Fprintf(p.out, ">> %q is not one of the options.\n", answer)
	}
}

// Input asks until validate accepts the trimmed answer.
func (p *cliPrompter) Input(label string, validate func(string) error) (string, error) {
	for {
		labelColor.Fprintf(p.out, "? %s: ", label)
		answer, err := p.readLine()
		if err != nil {
			return "", err
		}
		if validate == nil {
			return answer, nil
		}
		if err := validate(answer); err != nil {
			reasonColor.Fprintf(p.out, ">> %s\n", err)
			continue
		}
		return answer, nil
	}
}

// ProcessID walks the operator through category and then process selection.
func (p *cliPrompter) ProcessID(categories []config.Category) (string, error) {
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
	}

	name, err := p.Select("Select the type of process", names)
	if err != nil {
		return "", err
	}
	for _, c := range categories {
		if c.Name == name {
			return p.Select("Select a process", c.Processes)
		}
	}
	return "", fmt.Errorf("unknown category %q", name)
}

// DatabaseBackupName collects the name of the backup file to restore.
func (p *cliPrompter) DatabaseBackupName() (string, error) {
	return p.Input("Enter the backup file name. F.e: 1646678127337.dump", ValidateBackupName)
}

// EnvironmentFilePath collects the absolute path of the env file to push.
func (p *cliPrompter) EnvironmentFilePath() (string, error) {
	return p.Input("Enter the absolute path to the environment file", ValidateEnvironmentFile)
}

func (p *cliPrompter) readLine() (string, error) {
	line, err := p.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && strings.TrimSpace(line) != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(p.out)
			return "", ErrAborted
		}
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// ValidateBackupName accepts names such as 1646678127337.dump.
func ValidateBackupName(value string) error {
	if len(value) >= 15 && strings.Contains(value, ".dump") {
		return nil
	}
	return errors.New("Please enter a valid backup file name.")
}

// ValidateEnvironmentFile accepts a regular .env file that parses as dotenv.
func ValidateEnvironmentFile(value string) error {
	invalid := errors.New("Please enter a valid path.")
	if !strings.Contains(value, ".env") {
		return invalid
	}
	info, err := os.Lstat(value)
	if err != nil || !info.Mode().IsRegular() {
		return invalid
	}
	if _, err := godotenv.Read(value); err != nil {
		return invalid
	}
	return nil
}
