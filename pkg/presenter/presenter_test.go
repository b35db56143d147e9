package presenter

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	presenter := New()
	assert.NotNil(t, presenter)
	assert.Equal(t, os.Stdout, presenter.output)
	assert.Equal(t, os.Stderr, presenter.errorOutput)
	assert.False(t, presenter.quiet)
}

func TestDetectColorMode(t *testing.T) {
	tests := []struct {
		name     string
		noColor  string
		color    string
		expected ColorMode
	}{
		{"NO_COLOR set", "1", "", ColorNever},
		{"NO_COLOR wins over always", "1", "always", ColorNever},
		{"TODOMAKER_COLOR always", "", "always", ColorAlways},
		{"TODOMAKER_COLOR force", "", "force", ColorAlways},
		{"TODOMAKER_COLOR never", "", "never", ColorNever},
		{"TODOMAKER_COLOR off", "", "off", ColorNever},
		{"TODOMAKER_COLOR auto", "", "auto", ColorAuto},
		{"default", "", "", ColorAuto},
		{"invalid value", "", "rainbow", ColorAuto},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", tt.noColor)
			t.Setenv("TODOMAKER_COLOR", tt.color)

			assert.Equal(t, tt.expected, detectColorMode())
		})
	}
}

func TestError(t *testing.T) {
	var errorOutput bytes.Buffer
	presenter := NewWithOptions(nil, &errorOutput, ColorNever)

	err := errors.New("permission denied")
	presenter.Error(err, "Failed to generate checklist")
	assert.Equal(t, "[ERROR] Failed to generate checklist: permission denied\n", errorOutput.String())

	errorOutput.Reset()
	presenter.Error(err, "")
	assert.Equal(t, "[ERROR] permission denied\n", errorOutput.String())

	errorOutput.Reset()
	presenter.Error(nil, "context")
	assert.Empty(t, errorOutput.String())
}

func TestErrorQuietMode(t *testing.T) {
	var errorOutput bytes.Buffer
	presenter := NewWithOptions(nil, &errorOutput, ColorNever)
	presenter.SetQuiet(true)

	presenter.Error(errors.New("disk full"), "")

	assert.Contains(t, errorOutput.String(), "disk full")
}

func TestSuccess(t *testing.T) {
	var output bytes.Buffer
	presenter := NewWithOptions(&output, nil, ColorNever)

	presenter.Success("Created markdown file todo_2024-01-15.md")

	assert.Equal(t, "✓ Created markdown file todo_2024-01-15.md\n", output.String())
}

func TestQuietMode(t *testing.T) {
	var output bytes.Buffer
	presenter := NewWithOptions(&output, nil, ColorNever)
	presenter.SetQuiet(true)
	assert.True(t, presenter.IsQuiet())

	presenter.Success("done")
	presenter.Warning("careful")
	presenter.Info("note")

	assert.Empty(t, output.String())
}

func TestWarning(t *testing.T) {
	var output bytes.Buffer
	presenter := NewWithOptions(&output, nil, ColorNever)

	presenter.Warning("todo_2024-01-15.md has 3 open items")

	result := output.String()
	assert.Contains(t, result, "⚠")
	assert.Contains(t, result, "todo_2024-01-15.md has 3 open items")
}

func TestInfo(t *testing.T) {
	var output bytes.Buffer
	presenter := NewWithOptions(&output, nil, ColorNever)

	presenter.Info("todo_2024-01-15.md: 0/10 done")

	assert.Equal(t, "todo_2024-01-15.md: 0/10 done\n", output.String())
}

func TestSetDefault(t *testing.T) {
	var output bytes.Buffer
	prev := SetDefault(NewWithOptions(&output, &output, ColorNever))
	defer SetDefault(prev)

	Info("hello")
	Success("written")
	SetQuiet(true)
	Info("hidden")

	assert.Equal(t, "hello\n✓ written\n", output.String())
	assert.True(t, Default().IsQuiet())
}
