package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"yieldcurve/internal/domain"
	"yieldcurve/internal/service"

	"github.com/charmbracelet/lipgloss"
)

// Report writes the human-readable diagnostics of a comparison. Styling is
// dropped automatically when w is not a terminal.
type Report struct {
	w       io.Writer
	heading lipgloss.Style
	label   lipgloss.Style
	warn    lipgloss.Style
	note    lipgloss.Style
}

func NewReport(w io.Writer) *Report {
	r := lipgloss.NewRenderer(w)
	return &Report{
		w:       w,
		heading: r.NewStyle().Bold(true),
		label:   r.NewStyle().Foreground(lipgloss.Color("12")),
		warn:    r.NewStyle().Foreground(lipgloss.Color("11")),
		note:    r.NewStyle().Faint(true),
	}
}

// Write prints reference dates, coverage and substitutions. When cmpErr is
// domain.ErrNoOverlap it also prints the per-side values.
func (r *Report) Write(cmp *service.Comparison, cmpErr error) {
	if cmp == nil {
		return
	}
	r.referenceLine(cmp.US)
	r.referenceLine(cmp.CA)

	fmt.Fprintf(r.w, "%s %s\n", r.label.Render("Tenors with values:"), bracketList(cmp.Have))
	if len(cmp.Missing) > 0 {
		fmt.Fprintf(r.w, "%s %s\n", r.warn.Render("Tenors missing on one side:"), bracketList(cmp.Missing))
	}

	for _, c := range []domain.Curve{cmp.US, cmp.CA} {
		subs := c.Substitutions()
		for _, t := range cmp.Tenors {
			if note, ok := subs[t]; ok {
				fmt.Fprintln(r.w, r.note.Render(fmt.Sprintf("%s %s uses %s (%s)", c.Jurisdiction, t, c.Observations[t].SeriesID, note)))
			}
		}
	}

	if errors.Is(cmpErr, domain.ErrNoOverlap) {
		fmt.Fprintln(r.w, r.warn.Render(cmpErr.Error()))
		fmt.Fprintf(r.w, "US values: %s\n", valueMap(cmp.Tenors, cmp.US))
		fmt.Fprintf(r.w, "CA values: %s\n", valueMap(cmp.Tenors, cmp.CA))
	}
}

// Saved reports where the chart was written.
func (r *Report) Saved(path string) {
	fmt.Fprintf(r.w, "%s %s\n", r.heading.Render("Saved plot to"), path)
}

func (r *Report) referenceLine(c domain.Curve) {
	source := c.Source
	if source == "" {
		source = "no source"
	}
	date := c.AsOf
	if date == "" {
		date = "unknown"
	}
	fmt.Fprintf(r.w, "%s reference date: %s (%s)\n", r.heading.Render(c.Jurisdiction.Name()), date, source)
	if len(c.Attempts) > 1 {
		fmt.Fprintln(r.w, r.note.Render(fmt.Sprintf("%s fell back after %d empty source(s)", c.Jurisdiction, len(c.Attempts)-1)))
	}
}

func bracketList(tenors []domain.Tenor) string {
	return "[" + strings.Join(domain.TenorStrings(tenors), ", ") + "]"
}

func valueMap(tenors []domain.Tenor, c domain.Curve) string {
	parts := make([]string, 0, len(tenors))
	for _, t := range tenors {
		parts = append(parts, fmt.Sprintf("%s: %s", t, c.Yield(t)))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
