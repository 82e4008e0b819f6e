package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectMode_NonInteractiveEnv(t *testing.T) {
	t.Setenv(NonInteractiveEnvVar, "1")
	t.Setenv("CI", "")

	assert.Equal(t, ModeNonInteractive, DetectMode())
}

func TestDetectMode_CI(t *testing.T) {
	t.Setenv(NonInteractiveEnvVar, "")
	t.Setenv("CI", "true")

	assert.Equal(t, ModeNonInteractive, DetectMode())
}

func TestDetectMode_NoTerminal(t *testing.T) {
	// In test context, stdin is not a terminal
	t.Setenv(NonInteractiveEnvVar, "")
	t.Setenv("CI", "")

	assert.Equal(t, ModeNonInteractive, DetectMode())
	assert.False(t, IsInteractive())
}
