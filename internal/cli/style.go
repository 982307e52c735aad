package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Adaptive colors that work in both light and dark terminals.
// First value is for dark terminals, second for light terminals.
var (
	ColorSuccess = lipgloss.AdaptiveColor{Dark: "#22c55e", Light: "#16a34a"} // green
	ColorError   = lipgloss.AdaptiveColor{Dark: "#ef4444", Light: "#dc2626"} // red
	ColorWarning = lipgloss.AdaptiveColor{Dark: "#f59e0b", Light: "#d97706"} // amber
	ColorMuted   = lipgloss.AdaptiveColor{Dark: "#6b7280", Light: "#9ca3af"} // gray
	ColorAccent  = lipgloss.AdaptiveColor{Dark: "#a78bfa", Light: "#7c3aed"} // purple for IDs
	ColorURL     = lipgloss.AdaptiveColor{Dark: "#38bdf8", Light: "#0284c7"} // cyan for URLs
)

var (
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleMuted   = lipgloss.NewStyle().Foreground(ColorMuted)
	StyleID      = lipgloss.NewStyle().Foreground(ColorAccent)
	StyleURL     = lipgloss.NewStyle().Foreground(ColorURL)
)

const (
	IconSuccess = "✓"
	IconError   = "✗"
	IconWarning = "!"
	IconInfo    = "→"

	cellFilled = "██"
	cellEmpty  = "··"
)

// PrintSuccess prints a success message with a green checkmark.
func PrintSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", StyleSuccess.Render(IconSuccess), fmt.Sprintf(format, args...))
}

// PrintError prints an error message with a red X.
func PrintError(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", StyleError.Render(IconError), fmt.Sprintf(format, args...))
}

// PrintWarning prints a warning message with an amber icon.
func PrintWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", StyleWarning.Render(IconWarning), fmt.Sprintf(format, args...))
}

// PrintInfo prints an info message with a muted arrow.
func PrintInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", StyleMuted.Render(IconInfo), fmt.Sprintf(format, args...))
}

func RenderID(id string) string {
	return StyleID.Render(id)
}

func RenderURL(url string) string {
	return StyleURL.Render(url)
}

func RenderMuted(text string) string {
	return StyleMuted.Render(text)
}

// ColorSwatch renders a cell-sized block in the given hex color.
func ColorSwatch(hexColor string) string {
	if hexColor == "" {
		return StyleMuted.Render(cellFilled)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor)).Render(cellFilled)
}

// RenderGrid draws a side x side grid inside a rounded border.
// Empty cells are muted dots.
func RenderGrid(side int, colorAt func(row, column int) (string, bool)) string {
	var rows []string
	for r := 0; r < side; r++ {
		cells := make([]string, 0, side)
		for c := 0; c < side; c++ {
			if color, ok := colorAt(r, c); ok {
				cells = append(cells, ColorSwatch(color))
			} else {
				cells = append(cells, StyleMuted.Render(cellEmpty))
			}
		}
		rows = append(rows, strings.Join(cells, " "))
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorMuted).
		Padding(0, 1).
		Render(strings.Join(rows, "\n"))
}
