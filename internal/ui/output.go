package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

const width = 70

// UI provides user interface methods
type UI struct {
	output         io.Writer
	nonInteractive bool // If true, don't prompt user for input
	// Color functions
	colorInfo    *color.Color
	colorSuccess *color.Color
	colorWarning *color.Color
	colorError   *color.Color
	colorBold    *color.Color
	colorCyan    *color.Color
	colorDim     *color.Color
}

// New creates a new UI instance
func New() *UI {
	return &UI{
		output:         os.Stderr,
		nonInteractive: false,
		colorInfo:      color.New(color.FgBlue),
		colorSuccess:   color.New(color.FgGreen),
		colorWarning:   color.New(color.FgYellow),
		colorError:     color.New(color.FgRed),
		colorBold:      color.New(color.Bold),
		colorCyan:      color.New(color.FgCyan, color.Bold),
		colorDim:       color.New(color.Faint),
	}
}

// NewWithWriter creates a UI with custom output writer (useful for testing)
func NewWithWriter(w io.Writer) *UI {
	ui := New()
	ui.output = w
	return ui
}

// SetNonInteractive enables or disables non-interactive mode
func (u *UI) SetNonInteractive(enabled bool) {
	u.nonInteractive = enabled
}

// Info prints an info message
func (u *UI) Info(msg string) {
	u.colorInfo.Fprintf(u.output, "[INFO] %s\n", msg)
}

// Infof prints a formatted info message
func (u *UI) Infof(format string, args ...interface{}) {
	u.Info(fmt.Sprintf(format, args...))
}

// Success prints a success message
func (u *UI) Success(msg string) {
	u.colorSuccess.Fprintf(u.output, "[✓] %s\n", msg)
}

// Successf prints a formatted success message
func (u *UI) Successf(format string, args ...interface{}) {
	u.Success(fmt.Sprintf(format, args...))
}

// Warning prints a warning message
func (u *UI) Warning(msg string) {
	u.colorWarning.Fprintf(u.output, "[WARNING] %s\n", msg)
}

// Warningf prints a formatted warning message
func (u *UI) Warningf(format string, args ...interface{}) {
	u.Warning(fmt.Sprintf(format, args...))
}

// Error prints an error message
func (u *UI) Error(msg string) {
	u.colorError.Fprintf(u.output, "[ERROR] %s\n", msg)
}

// Errorf prints a formatted error message
func (u *UI) Errorf(format string, args ...interface{}) {
	u.Error(fmt.Sprintf(format, args...))
}

// Header prints a header with a box
func (u *UI) Header(title string) {
	border := strings.Repeat("=", width)

	fmt.Fprintln(u.output)
	u.colorCyan.Fprintln(u.output, border)
	u.colorCyan.Fprintf(u.output, "  %s\n", title)
	u.colorCyan.Fprintln(u.output, border)
	fmt.Fprintln(u.output)
}

// Separator prints a separator line
func (u *UI) Separator() {
	u.colorCyan.Fprintln(u.output, strings.Repeat("-", width))
}

// Print prints a plain message without formatting
func (u *UI) Print(msg string) {
	fmt.Fprintln(u.output, msg)
}

// Printf prints a formatted plain message
func (u *UI) Printf(format string, args ...interface{}) {
	fmt.Fprintf(u.output, format+"\n", args...)
}

// Field prints a labelled text field. Multi-line values are indented under
// the label; empty values show a placeholder.
func (u *UI) Field(label, value string) {
	u.colorBold.Fprintf(u.output, "  %s\n", label)
	if value == "" {
		u.colorDim.Fprintln(u.output, "    (empty)")
		return
	}
	for _, line := range strings.Split(value, "\n") {
		fmt.Fprintf(u.output, "    %s\n", line)
	}
}

// Buttons prints a row of bracketed button labels
func (u *UI) Buttons(labels ...string) {
	parts := make([]string, len(labels))
	for i, label := range labels {
		parts[i] = u.colorBold.Sprintf("[ %s ]", label)
	}
	fmt.Fprintf(u.output, "  %s\n", strings.Join(parts, "  "))
}

// Toast prints a short status line
func (u *UI) Toast(t Toast) {
	c := u.colorSuccess
	if t.Kind == ToastFailure {
		c = u.colorWarning
	}
	c.Fprintf(u.output, "  » %s\n", t.Message)
}

// ClearScreen clears the terminal using ANSI escape codes
func (u *UI) ClearScreen() {
	if u.nonInteractive {
		return
	}
	fmt.Fprint(u.output, "\033[2J\033[H")
}
