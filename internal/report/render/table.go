// Package render formats an analysis result for a terminal (§6's "text"
// and "compact" output formats).
package render

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/watttrace/analyzer-core/pkg/report"
)

// Options controls how Table and Compact render a result.
type Options struct {
	NoColor bool
	Verbose bool
}

func (o Options) colorize(c *color.Color, text string) string {
	if o.NoColor {
		return text
	}

	return c.Sprint(text)
}

// Table writes a full multi-section breakdown of serializable to w: a
// summary line, a per-function table in definition order, and a
// hotspot table (top-5 by weighted operations, §4.9).
func Table(w io.Writer, serializable report.Serializable, opts Options) {
	header := color.New(color.FgCyan, color.Bold)

	fmt.Fprintf(w, "%s: %s\n", opts.colorize(header, "Language"), serializable.Language)

	if serializable.FilePath != "" {
		fmt.Fprintf(w, "%s: %s\n", opts.colorize(header, "File"), serializable.FilePath)
	}

	fmt.Fprintf(w, "%s: %s joules (%s)\n",
		opts.colorize(header, "Energy"),
		humanize.CommafWithDigits(serializable.EnergyJoules, 4),
		humanize.CommafWithDigits(serializable.EnergyKWh, 8)+" kWh")

	fmt.Fprintf(w, "%s: %s g CO2\n\n", opts.colorize(header, "Carbon"),
		humanize.CommafWithDigits(serializable.CarbonGramsCO2, 4))

	renderFunctionTable(w, serializable, opts)
	renderHotspotTable(w, serializable, opts)
	renderAssumptions(w, serializable, opts)
}

func renderFunctionTable(w io.Writer, s report.Serializable, opts Options) {
	if len(s.Functions) == 0 {
		return
	}

	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false

	tbl.AppendHeader(table.Row{"Function", "Line", "Weighted Ops", "Energy (J)", "Carbon (g)", "Recursive"})

	for _, fn := range s.Functions {
		tbl.AppendRow(table.Row{
			fn.Name, fn.Line, fn.WeightedOps,
			humanize.CommafWithDigits(fn.EnergyJoules, 6),
			humanize.CommafWithDigits(fn.CarbonGramsCO2, 6),
			fn.IsRecursive,
		})
	}

	tbl.Render()
	fmt.Fprintln(w)
}

func renderHotspotTable(w io.Writer, s report.Serializable, opts Options) {
	if len(s.HotspotFunctions) == 0 {
		return
	}

	warn := color.New(color.FgYellow, color.Bold)
	fmt.Fprintln(w, opts.colorize(warn, "Hotspots"))

	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)

	tbl.AppendHeader(table.Row{"Function", "Weighted Ops", "% of Total"})

	for _, h := range s.HotspotFunctions {
		tbl.AppendRow(table.Row{h.Name, h.WeightedOp, fmt.Sprintf("%.2f%%", h.Percentage)})
	}

	tbl.Render()
	fmt.Fprintln(w)
}

func renderAssumptions(w io.Writer, s report.Serializable, opts Options) {
	if !opts.Verbose || len(s.Assumptions) == 0 {
		return
	}

	dim := color.New(color.FgHiBlack)

	fmt.Fprintln(w, opts.colorize(dim, "Assumptions:"))

	for _, a := range s.Assumptions {
		fmt.Fprintf(w, "  - %s\n", opts.colorize(dim, a))
	}
}

// Compact writes a single-line summary of result to w.
func Compact(w io.Writer, s report.Serializable) {
	fmt.Fprintf(w, "%s %s %s joules %s gCO2 (%d functions, %d total ops)\n",
		s.Language, fallbackDash(s.FilePath),
		humanize.CommafWithDigits(s.EnergyJoules, 4),
		humanize.CommafWithDigits(s.CarbonGramsCO2, 4),
		len(s.Functions), s.TotalWeightedOperation)
}

func fallbackDash(s string) string {
	if s == "" {
		return "-"
	}

	return s
}
