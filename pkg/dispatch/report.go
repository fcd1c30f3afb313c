// SPDX-License-Identifier: EPL-2.0

package dispatch

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/argonaut-cli/argonaut/internal/issue"
)

type styles struct {
	errLabel   lipgloss.Style
	canclabel  lipgloss.Style
	suggestion lipgloss.Style
	hint       lipgloss.Style
}

func newStyles(noColor bool) styles {
	if noColor {
		plain := lipgloss.NewStyle()
		return styles{errLabel: plain, canclabel: plain, suggestion: plain, hint: plain}
	}
	return styles{
		errLabel:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		canclabel:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
		suggestion: lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
		hint:       lipgloss.NewStyle().Faint(true),
	}
}

// reportDiagnostic writes a usage diagnostic: the one-line message, ranked
// suggestions when present, and the catalogued remediation in explain mode.
func (d *Dispatcher) reportDiagnostic(w io.Writer, diag *issue.Diagnostic) {
	fmt.Fprintf(w, "%s %s\n", d.styles.errLabel.Render("error:"), diag.Message)

	if len(diag.Suggestions) > 0 {
		quoted := make([]string, len(diag.Suggestions))
		for i, s := range diag.Suggestions {
			quoted[i] = "'" + s + "'"
		}
		fmt.Fprintf(w, "%s\n", d.styles.suggestion.Render(
			"Did you mean "+strings.Join(quoted, ", ")+"?"))
	}

	if d.opts.Explain {
		if text, err := issue.Explain(diag.Kind, d.stylePath()); err == nil {
			fmt.Fprint(w, text)
		}
	}
}

func (d *Dispatcher) reportCancellation(w io.Writer, msg string) {
	fmt.Fprintf(w, "%s %s\n", d.styles.canclabel.Render("cancelled:"), msg)
}

func (d *Dispatcher) reportFailure(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %v\n", d.styles.errLabel.Render("error:"), err)
	if d.opts.Explain {
		if text, eerr := issue.Explain(issue.ExecutionFailed, d.stylePath()); eerr == nil {
			fmt.Fprint(w, text)
		}
	}
}

func (d *Dispatcher) stylePath() string {
	if d.opts.NoColor {
		return "notty"
	}
	return "dark"
}
