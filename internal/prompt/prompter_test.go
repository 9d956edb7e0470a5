package prompt

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"epoca/internal/config"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func newPrompter(input string) (Prompter, *bytes.Buffer) {
	var out bytes.Buffer
	return NewCLIPrompter(strings.NewReader(input), &out), &out
}

func TestSelectByNumberAndName(t *testing.T) {
	p, out := newPrompter("2\n")
	got, err := p.Select("Pick", []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Equal(t, "b", got)
	assert.Contains(t, out.String(), "? Pick")
	assert.Contains(t, out.String(), " 3) c")

	p, _ = newPrompter("  c  \n")
	got, err = p.Select("Pick", []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Equal(t, "c", got)
}

func TestSelectRetriesInvalidAnswers(t *testing.T) {
	p, out := newPrompter("0\nzzz\n4\n1\n")
	got, err := p.Select("Pick", []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Equal(t, "a", got)
	assert.Equal(t, 3, strings.Count(out.String(), "is not one of the options"))
}

func TestSelectAbortsOnEOF(t *testing.T) {
	p, _ := newPrompter("")
	_, err := p.Select("Pick", []string{"a"})
	assert.ErrorIs(t, err, ErrAborted)

	_, err = p.Select("Pick", nil)
	assert.Error(t, err)
}

func TestInputAcceptsFinalLineWithoutNewline(t *testing.T) {
	p, _ := newPrompter("value")
	got, err := p.Input("Name", nil)
	require.NoError(t, err)
	assert.Equal(t, "value", got)
}

func TestProcessID(t *testing.T) {
	p, out := newPrompter("Compose\n9\n")
	got, err := p.ProcessID(config.DefaultCategories())
	require.NoError(t, err)
	assert.Equal(t, "database_restore", got)
	assert.Contains(t, out.String(), "Select the type of process")
	assert.Contains(t, out.String(), "Select a process")
}

func TestDatabaseBackupName(t *testing.T) {
	p, out := newPrompter("short.dump\n16466781273370000\n1646678127337.dump\n")
	got, err := p.DatabaseBackupName()
	require.NoError(t, err)
	assert.Equal(t, "1646678127337.dump", got)
	assert.Equal(t, 2, strings.Count(out.String(), "Please enter a valid backup file name."))
	assert.Contains(t, out.String(), "F.e: 1646678127337.dump")
}

func TestValidateBackupName(t *testing.T) {
	assert.NoError(t, ValidateBackupName("1646678127337.dump"))
	assert.NoError(t, ValidateBackupName("backup-2022.dump.gz"))
	assert.Error(t, ValidateBackupName("1.dump"))
	assert.Error(t, ValidateBackupName("1646678127337.sql"))
	assert.Error(t, ValidateBackupName("123456789.dump"))
	assert.NoError(t, ValidateBackupName("1234567890.dump"))
}

func TestValidateEnvironmentFile(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "prod.env")
	require.NoError(t, os.WriteFile(good, []byte("API_KEY=abc\n# comment\nPORT=3000\n"), 0o600))

	malformed := filepath.Join(dir, "broken.env")
	require.NoError(t, os.WriteFile(malformed, []byte("BAD-KEY=1\n"), 0o600))

	wrongName := filepath.Join(dir, "settings.txt")
	require.NoError(t, os.WriteFile(wrongName, []byte("A=1\n"), 0o600))

	link := filepath.Join(dir, "link.env")
	require.NoError(t, os.Symlink(good, link))

	envDir := filepath.Join(dir, "dir.env")
	require.NoError(t, os.Mkdir(envDir, 0o755))

	assert.NoError(t, ValidateEnvironmentFile(good))
	for _, path := range []string{malformed, wrongName, link, envDir, filepath.Join(dir, "missing.env")} {
		assert.EqualError(t, ValidateEnvironmentFile(path), "Please enter a valid path.", path)
	}
}

func TestEnvironmentFilePathRetries(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(good, []byte("A=1\n"), 0o600))

	p, out := newPrompter(filepath.Join(dir, "nope.env") + "\n" + good + "\n")
	got, err := p.EnvironmentFilePath()
	require.NoError(t, err)
	assert.Equal(t, good, got)
	assert.Equal(t, 1, strings.Count(out.String(), "Please enter a valid path."))
}
