package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func init() {
	color.NoColor = true
}

func TestLogRespectsMinLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelWarn)

	l.Debug("hidden %d", 1)
	l.Info("hidden %d", 2)
	l.Warn("shown %d", 3)
	l.Error("shown %d", 4)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "shown 3")
	assert.Contains(t, out, "ERROR")
	assert.Contains(t, out, "shown 4")
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelError)
	l.Info("before")
	l.SetLevel(LevelDebug)
	l.Debug("after")

	assert.NotContains(t, buf.String(), "before")
	assert.Contains(t, buf.String(), "after")
}

func TestPackageLoggerUsesDefaults(t *testing.T) {
	l := PackageLogger("🧪 TEST")

	var buf bytes.Buffer
	SetDefaults(LevelDebug, &buf)
	t.Cleanup(func() { SetDefaults(LevelInfo, os.Stderr) })

	l.Debug("push %s", "src")

	out := buf.String()
	assert.Contains(t, out, "🧪 TEST push src")
	assert.Contains(t, out, "logger_test.go")
}

func TestPackageLoggerKeepsExplicitOutput(t *testing.T) {
	l := PackageLogger("🧪 TEST")

	var own, shared bytes.Buffer
	l.SetOutput(&own)
	SetDefaults(LevelDebug, &shared)
	t.Cleanup(func() { SetDefaults(LevelInfo, os.Stderr) })

	l.Info("pushed")

	assert.Contains(t, own.String(), "🧪 TEST pushed")
	assert.Empty(t, shared.String())
}

func TestPackageLoggerKeepsCallerSetting(t *testing.T) {
	l := PackageLogger("🧪 TEST")

	var buf bytes.Buffer
	l.SetOutput(&buf)
	l.EnableCallerInfo(true)
	l.Info("pushed")

	assert.Contains(t, buf.String(), "logger_test.go")
}

func TestCallerInfoCanBeDisabled(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelDebug)
	l.EnableCallerInfo(false)
	l.Success("done")

	assert.Contains(t, buf.String(), "SUCCESS")
	assert.NotContains(t, buf.String(), "logger_test.go")
}
