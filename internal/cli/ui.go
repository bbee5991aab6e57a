package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/railreport/pkg/material"
	"github.com/matzehuels/railreport/pkg/report"
	"github.com/matzehuels/railreport/pkg/text"
)

var (
	colorCyan   = lipgloss.Color("36")  // primary
	colorGreen  = lipgloss.Color("35")  // success
	colorYellow = lipgloss.Color("220") // warnings
	colorWhite  = lipgloss.Color("255") // values
	colorGray   = lipgloss.Color("245") // labels
	colorDim    = lipgloss.Color("240") // muted
)

var (
	StyleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleSection = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Underline(true)
	StyleDim     = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleLabel       = lipgloss.NewStyle().Foreground(colorGray)
)

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

func printSuccess(format string, args ...any) {
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// Record view layout, in terminal columns.
const (
	viewLabelWidth = 24
	viewValueWidth = 56
)

// formatRecord lays rec out in the report's section order for the terminal.
// Values wrap at viewValueWidth columns with continuation lines aligned
// under the value column.
func formatRecord(rec *material.Record) string {
	var b strings.Builder
	title := "Material " + rec.ID()
	if rec.ID() == "" {
		title = "Material (no id)"
	}
	b.WriteString(StyleTitle.Render(title) + "\n")

	// One "unit" per rune: wrap widths are counted in columns.
	cols := text.Approx{CharWidth: 1}
	label := styleLabel.Width(viewLabelWidth)
	indent := strings.Repeat(" ", viewLabelWidth+1)

	for _, sec := range material.Sections(rec) {
		b.WriteString("\n" + StyleSection.Render(sec.Title) + "\n")
		for _, f := range sec.Fields {
			value := report.DisplayValue(f.Value, f.Placeholder)
			style := StyleValue
			if _, ok := report.FormatValue(f.Value); !ok {
				style = StyleDim
			}
			for i, line := range text.Wrap(value, viewValueWidth, 1, cols) {
				if i == 0 {
					b.WriteString(label.Render(f.Label) + " " + style.Render(line) + "\n")
					continue
				}
				b.WriteString(indent + style.Render(line) + "\n")
			}
		}
	}
	return b.String()
}
