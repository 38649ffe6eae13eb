package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bradford-hamilton/chipvm/internal/audio"
	"github.com/bradford-hamilton/chipvm/internal/config"
	"github.com/retroenv/retrogolib/assert"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() { cfg = config.Default() })

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRootWithoutArgsPrintsUsage(t *testing.T) {
	out, err := execute(t)
	assert.NoError(t, err)
	assert.Contains(t, out, "chipvm [path/to/rom]")
}

func TestRunMissingROM(t *testing.T) {
	_, err := execute(t, "run", filepath.Join(t.TempDir(), "missing.ch8"), "--audio", "none")
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestRunRequiresROM(t *testing.T) {
	_, err := execute(t, "run")
	assert.Error(t, err)
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	_, err := execute(t, "run", "rom.ch8", "--frontend", "vulkan")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown frontend")
}

func TestNewSinkNone(t *testing.T) {
	c := config.Default()
	c.Audio = config.AudioNone
	s, err := newSink(c)
	assert.NoError(t, err)
	assert.Equal(t, audio.Silent{}, s)
}
