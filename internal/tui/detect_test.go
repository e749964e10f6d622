package tui_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/renderwave/internal/tui"
)

func envFrom(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestDetectOutputModeFor(t *testing.T) {
	tty := tui.Terminal{StdinTTY: true, StdoutTTY: true}
	piped := tui.Terminal{StdinTTY: false, StdoutTTY: true}

	tests := []struct {
		name    string
		term    tui.Terminal
		env     map[string]string
		plain   bool
		noColor bool
		want    tui.OutputMode
	}{
		{name: "terminal is interactive", term: tty, want: tui.OutputModeInteractive},
		{name: "plain flag wins", term: tty, plain: true, want: tui.OutputModePlain},
		{name: "dumb terminal", term: tty, env: map[string]string{"TERM": "dumb"}, want: tui.OutputModePlain},
		{name: "redirected stdout", term: tui.Terminal{StdinTTY: true}, want: tui.OutputModePlain},
		{name: "CI is styled", term: tty, env: map[string]string{"CI": "true"}, want: tui.OutputModeStyled},
		{name: "piped stdin is styled", term: piped, want: tui.OutputModeStyled},
		{name: "piped stdin with NO_COLOR", term: piped, env: map[string]string{"NO_COLOR": ""}, want: tui.OutputModePlain},
		{name: "piped stdin with no-color flag", term: piped, noColor: true, want: tui.OutputModePlain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tui.DetectOutputModeFor(tt.term, envFrom(tt.env), tt.plain, tt.noColor)
			assert.Equal(t, tt.want, got, "got %s", got)
		})
	}
}

func TestOutputModeString(t *testing.T) {
	assert.Equal(t, "interactive", tui.OutputModeInteractive.String())
	assert.Equal(t, "styled", tui.OutputModeStyled.String())
	assert.Equal(t, "plain", tui.OutputModePlain.String())
}
