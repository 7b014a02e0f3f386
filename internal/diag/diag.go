// Package diag renders scsserr.Error values for a terminal, the CLI-side
// counterpart to scsserr's own machine-oriented CSS()/JSON() shapes.
// Grounded on github.com/jinterlante1206-AleutianLocal's pkg/ux/output.go
// (a lipgloss style table: named colors, a handful of pre-built
// lipgloss.Style values for title/success/warning/error text and bordered
// boxes), repointed at compiler diagnostics instead of CLI chrome.
package diag

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/titpetric/scssgo/scsserr"
)

var (
	colorError   = lipgloss.Color("#E74C3C")
	colorWarning = lipgloss.Color("#F4D03F")
	colorMuted   = lipgloss.Color("#2C4A54")
	colorBold    = lipgloss.Color("#FFFFFF")
)

var (
	styleErrorTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorError)
	styleWarningTitle = lipgloss.NewStyle().Bold(true).Foreground(colorWarning)
	styleMuted        = lipgloss.NewStyle().Foreground(colorMuted)
	styleBold         = lipgloss.NewStyle().Bold(true).Foreground(colorBold)
	styleBox          = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(0, 1)
)

// Options controls how Render formats an Error: whether ANSI color codes
// are emitted at all (Colors) and whether box-drawing characters may be
// used (Unicode) — both correspond directly to §6.1's logger options.
type Options struct {
	Colors      bool
	Unicode     bool
	ColumnLimit int
}

// Render formats err for terminal display: a colored single-line header
// followed by the formatted source snippet scsserr.Error.Formatted()
// already builds, boxed when Unicode is enabled.
func Render(err *scsserr.Error, opts Options) string {
	title := styleErrorTitle
	label := "Error"
	if err.Kind == scsserr.KindDeprecation {
		title = styleWarningTitle
		label = "Warning"
	}
	if !opts.Colors {
		title = lipgloss.NewStyle()
		styleBoldCopy := lipgloss.NewStyle()
		return plain(label, err, styleBoldCopy)
	}

	body := title.Render(fmt.Sprintf("%s: %s", label, err.Message))
	body += "\n" + styleMuted.Render(err.Formatted())

	if !opts.Unicode {
		return body
	}
	return styleBox.Render(body)
}

func plain(label string, err *scsserr.Error, _ lipgloss.Style) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", label, err.Message)
	b.WriteString(err.Formatted())
	return b.String()
}

// Summary renders a one-line "N error(s), M warning(s)" footer, the same
// kind of terse run summary a build tool prints after its diagnostics.
func Summary(errs, warnings int) string {
	status := styleBold
	if errs > 0 {
		status = styleErrorTitle
	} else if warnings > 0 {
		status = styleWarningTitle
	}
	return status.Render(fmt.Sprintf("%d error(s), %d warning(s)", errs, warnings))
}
