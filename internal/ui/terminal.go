// Package ui provides terminal styling for bugtrack CLI output.
package ui

import (
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// IsTerminal reports whether stdout is attached to a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// ShouldUseColor reports whether output should be colored.
//
// Precedence follows the informal CLI conventions:
//   - NO_COLOR set (any value) disables color
//   - CLICOLOR=0 disables color unless CLICOLOR_FORCE overrides
//   - CLICOLOR_FORCE set (non-zero) enables color even when piped
//   - otherwise color is used only on a TTY
func ShouldUseColor() bool {
	if termenv.EnvNoColor() {
		return false
	}
	if force := os.Getenv("CLICOLOR_FORCE"); force != "" && force != "0" {
		return true
	}
	return IsTerminal()
}

// ShouldUseEmoji reports whether status icons should include emoji.
// BT_NO_EMOJI disables them; otherwise emoji follow the TTY check.
func ShouldUseEmoji() bool {
	if os.Getenv("BT_NO_EMOJI") != "" {
		return false
	}
	return IsTerminal()
}

// IsAgentMode reports whether output is being consumed by an automated
// agent (BT_AGENT set). Agent mode suppresses markdown rendering and
// decorative styling so output stays trivially parseable.
func IsAgentMode() bool {
	return os.Getenv("BT_AGENT") != ""
}
