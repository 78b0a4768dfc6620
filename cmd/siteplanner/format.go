package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/ChicagoDave/siteplanner/pkg/layout"
	"github.com/ChicagoDave/siteplanner/pkg/validation"
)

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")

	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleError   = lipgloss.NewStyle().Foreground(colorRed)
	styleKey     = lipgloss.NewStyle().Foreground(colorGray).Width(22)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
)

func printTitle(w io.Writer, title string) {
	fmt.Fprintln(w, styleTitle.Render(title))
}

func printKeyValue(w io.Writer, key string, value any) {
	fmt.Fprintf(w, "  %s %v\n", styleKey.Render(key), value)
}

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", styleSuccess.Render(iconSuccess), fmt.Sprintf(format, args...))
}

func printFailure(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", styleError.Render(iconError), fmt.Sprintf(format, args...))
}

func printResult(w io.Writer, icon string, style lipgloss.Style, r validation.Result) {
	fmt.Fprintf(w, "  %s [%s] %s\n", style.Render(icon), r.Level, r.Message)
	if r.SpecPath != "" {
		fmt.Fprintf(w, "    %s %s = %v\n", styleDim.Render("->"), r.SpecPath, r.ActualValue)
	}
	if r.Expected != "" {
		fmt.Fprintf(w, "    expected: %s\n", r.Expected)
	}
	if r.ConflictWith != "" {
		fmt.Fprintf(w, "    conflicts with: %s\n", r.ConflictWith)
	}
	for _, s := range r.Suggestions {
		fmt.Fprintf(w, "    * %s\n", s)
	}
}

func printValidationReport(w io.Writer, r *validation.Report) {
	if len(r.Errors) > 0 {
		fmt.Fprintln(w, styleError.Render(fmt.Sprintf("ERRORS (%d):", len(r.Errors))))
		for _, e := range r.Errors {
			printResult(w, iconError, styleError, e)
		}
		fmt.Fprintln(w)
	}

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, styleWarning.Render(fmt.Sprintf("WARNINGS (%d):", len(r.Warnings))))
		for _, e := range r.Warnings {
			printResult(w, iconWarning, styleWarning, e)
		}
		fmt.Fprintln(w)
	}

	if len(r.Info) > 0 {
		fmt.Fprintf(w, "INFO (%d):\n", len(r.Info))
		for _, i := range r.Info {
			fmt.Fprintf(w, "  %s [%s] %s\n", styleDim.Render(iconInfo), i.Level, i.Message)
		}
		fmt.Fprintln(w)
	}

	if r.Valid {
		printSuccess(w, "Result: VALID (%s)", r.Summary)
	} else {
		printFailure(w, "Result: INVALID (%s)", r.Summary)
	}
}

func printSolveSummary(w io.Writer, name string, res *layout.Result) {
	printTitle(w, fmt.Sprintf("Arrangements for %s", name))
	printKeyValue(w, "Valid arrangements", styleNumber.Render(fmt.Sprint(len(res.Arrangements))))
	if res.Truncated {
		printKeyValue(w, "Truncated", styleWarning.Render("yes (arrangement limit reached)"))
	}
	fmt.Fprintln(w)

	printTitle(w, "Abandoned branches")
	for _, f := range layout.Failures {
		printKeyValue(w, string(f), res.Tally[f])
	}
	printKeyValue(w, "total", res.Tally.Total())
	fmt.Fprintln(w)

	if len(res.Arrangements) == 0 {
		printFailure(w, "No valid arrangement found")
		if f, ok := res.Tally.Dominant(); ok {
			fmt.Fprintf(w, "  %s most branches failed with %s: %s\n", styleDim.Render(iconInfo), f, f.Hint())
		}
		return
	}

	fmt.Fprintf(w, "%-5s %-11s %-14s %-7s %-7s %-14s\n", "ID", "Orientation", "Main", "Group", "Utility", "Utility at")
	for _, a := range res.Arrangements {
		fmt.Fprintf(w, "%-5d %-11s %-14s %-7s %-7s %-14s\n",
			a.ID, a.Main.Axis,
			fmt.Sprintf("(%.0f, %.0f)", a.Main.Rect.X, a.Main.Rect.Y),
			a.Secondary.Side, a.Utility.Edge,
			fmt.Sprintf("(%.1f, %.1f)", a.Utility.Rect.X, a.Utility.Rect.Y),
		)
	}
}

func printReserves(w io.Writer, ids []int, reserves []layout.Reserve) {
	printTitle(w, "Reserve squares")
	fmt.Fprintf(w, "%-5s %-16s %10s\n", "ID", "Origin", "Side")
	for i, r := range reserves {
		if !r.Found {
			fmt.Fprintf(w, "%-5d %-16s %10s\n", ids[i], "-", styleDim.Render("none"))
			continue
		}
		fmt.Fprintf(w, "%-5d %-16s %10.1f\n", ids[i], fmt.Sprintf("(%.1f, %.1f)", r.Origin.X, r.Origin.Y), r.Side)
	}
}
