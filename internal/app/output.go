package app

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/felixgeelhaar/devkit/internal/config"
	"github.com/felixgeelhaar/devkit/internal/domain/result"
)

// Theme colors (Catppuccin Mocha inspired).
var (
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#1e66f5", Dark: "#89b4fa"} // Blue
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#40a02b", Dark: "#a6e3a1"} // Green
	ColorWarning = lipgloss.AdaptiveColor{Light: "#df8e1d", Dark: "#f9e2af"} // Yellow
	ColorError   = lipgloss.AdaptiveColor{Light: "#d20f39", Dark: "#f38ba8"} // Red
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#6c6f85", Dark: "#6c7086"} // Overlay0
)

// Styles are the banner and line styles for one output stream.
type Styles struct {
	Success lipgloss.Style
	Failure lipgloss.Style
	Warning lipgloss.Style
	Title   lipgloss.Style
	Muted   lipgloss.Style
}

// NewStyles builds styles bound to the renderer of w, so color is only
// emitted when w is a terminal.
func NewStyles(w io.Writer) Styles {
	r := lipgloss.NewRenderer(w)
	return Styles{
		Success: r.NewStyle().Bold(true).Foreground(ColorSuccess),
		Failure: r.NewStyle().Bold(true).Foreground(ColorError),
		Warning: r.NewStyle().Foreground(ColorWarning),
		Title:   r.NewStyle().Bold(true).Foreground(ColorPrimary),
		Muted:   r.NewStyle().Foreground(ColorMuted),
	}
}

// CodeNamer returns the symbolic name of an adapter code, or "" when the code
// is not one of the adapter's own.
type CodeNamer func(code int) string

// Printer writes command results to the console.
type Printer struct {
	out      io.Writer
	errOut   io.Writer
	outStyle Styles
	errStyle Styles
	tail     int
	verbose  bool
}

// NewPrinter creates a printer. tail bounds the diagnostic lines shown for a
// failure; 0 shows all of them.
func NewPrinter(out, errOut io.Writer, tail int, verbose bool) *Printer {
	return &Printer{
		out:      out,
		errOut:   errOut,
		outStyle: NewStyles(out),
		errStyle: NewStyles(errOut),
		tail:     tail,
		verbose:  verbose,
	}
}

// Out returns the standard output writer.
func (p *Printer) Out() io.Writer {
	return p.out
}

// Lines prints lines to standard output.
func (p *Printer) Lines(lines ...string) {
	for _, line := range lines {
		_, _ = fmt.Fprintln(p.out, line)
	}
}

// Report prints res under a banner naming the operation and returns the
// error the command should exit with. Success output goes to stdout in full;
// a failure prints a banner and the last lines of output to stderr.
func (p *Printer) Report(operation string, res result.Result, name CodeNamer) error {
	if res.IsSuccess() {
		_, _ = fmt.Fprintln(p.out, p.outStyle.Success.Render("✓ "+operation))
		p.Lines(res.Output...)
		return nil
	}

	label := fmt.Sprintf("code %d", res.Code)
	if name != nil {
		if n := name(res.Code); n != "" {
			label = fmt.Sprintf("%s, code %d", n, res.Code)
		}
	}
	_, _ = fmt.Fprintln(p.errOut, p.errStyle.Failure.Render(fmt.Sprintf("✗ %s failed (%s)", operation, label)))
	if res.Kind != result.KindToolFailed && res.Kind != result.KindOK {
		_, _ = fmt.Fprintln(p.errOut, p.errStyle.Muted.Render("  kind: "+res.Kind.String()))
	}

	lines := res.Tail(p.tail)
	if skipped := len(res.Output) - len(lines); skipped > 0 {
		_, _ = fmt.Fprintln(p.errOut, p.errStyle.Muted.Render(fmt.Sprintf("  ... %d earlier line(s) omitted", skipped)))
	}
	for _, line := range lines {
		_, _ = fmt.Fprintln(p.errOut, "  "+line)
	}

	return FromResult(res)
}

// Error prints an error that did not come from an adapter.
func (p *Printer) Error(err error) {
	if err == nil {
		return
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		// Report already printed it.
		return
	}

	msg := err.Error()
	if ue := config.GetUserError(err); ue != nil {
		msg = ue.Message
		if ue.Context != "" {
			msg += fmt.Sprintf(" (at %s)", ue.Context)
		}
		if ue.Suggestion != "" {
			msg += fmt.Sprintf("\n\nSuggestion: %s", ue.Suggestion)
		}
		if p.verbose && ue.Underlying != nil {
			msg += fmt.Sprintf("\n\nTechnical details: %v", ue.Underlying)
		}
	}
	_, _ = fmt.Fprintf(p.errOut, "%s %s\n", p.errStyle.Failure.Render("Error:"), msg)
}

// Warn prints a warning line to stderr.
func (p *Printer) Warn(msg string) {
	_, _ = fmt.Fprintln(p.errOut, p.errStyle.Warning.Render("! "+msg))
}

// Title prints a section title to stdout.
func (p *Printer) Title(title string) {
	_, _ = fmt.Fprintln(p.out, p.outStyle.Title.Render(title))
}
