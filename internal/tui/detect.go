// Package tui holds terminal helpers shared by the interactive views.
package tui

import (
	"os"

	"golang.org/x/term"
)

// OutputMode is how a view should be presented on the current terminal.
type OutputMode int

// Output modes, from richest to plainest.
const (
	// OutputModeInteractive runs a full-screen Bubble Tea program.
	OutputModeInteractive OutputMode = iota
	// OutputModeStyled prints styled, non-interactive output.
	OutputModeStyled
	// OutputModePlain prints unstyled text.
	OutputModePlain
)

// String returns the mode name.
func (m OutputMode) String() string {
	switch m {
	case OutputModeInteractive:
		return "interactive"
	case OutputModeStyled:
		return "styled"
	default:
		return "plain"
	}
}

// Environment variables consulted by DetectOutputMode.
const (
	EnvNoColor = "NO_COLOR"
	EnvCI      = "CI"
	EnvTerm    = "TERM"
)

// Terminal reports whether stdin and stdout are terminals.
type Terminal struct {
	StdinTTY  bool
	StdoutTTY bool
}

// CurrentTerminal inspects the process's standard streams.
func CurrentTerminal() Terminal {
	return Terminal{
		StdinTTY:  term.IsTerminal(int(os.Stdin.Fd())),
		StdoutTTY: term.IsTerminal(int(os.Stdout.Fd())),
	}
}

// DetectOutputMode picks the output mode for the current process.
// plain forces OutputModePlain; noColor drops styling.
func DetectOutputMode(plain, noColor bool) OutputMode {
	return DetectOutputModeFor(CurrentTerminal(), os.LookupEnv, plain, noColor)
}

// DetectOutputModeFor is DetectOutputMode with the terminal and environment
// supplied by the caller.
func DetectOutputModeFor(t Terminal, lookupEnv func(string) (string, bool), plain, noColor bool) OutputMode {
	if plain {
		return OutputModePlain
	}
	if v, ok := lookupEnv(EnvTerm); ok && v == "dumb" {
		return OutputModePlain
	}
	if _, ok := lookupEnv(EnvNoColor); ok {
		noColor = true
	}
	if !t.StdoutTTY {
		return OutputModePlain
	}

	_, ci := lookupEnv(EnvCI)
	if t.StdinTTY && !ci {
		return OutputModeInteractive
	}
	if noColor {
		return OutputModePlain
	}
	return OutputModeStyled
}

// TerminalSize returns the width and height of stdout, or the fallback
// size when stdout is not a terminal.
func TerminalSize(fallbackWidth, fallbackHeight int) (int, int) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return fallbackWidth, fallbackHeight
	}
	return w, h
}
