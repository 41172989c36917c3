// Package output provides terminal output utilities.
package output

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// TableStyle defines the style for table output.
type TableStyle struct {
	// Border is the border style.
	Border lipgloss.Border

	// BorderColor is the color for borders.
	BorderColor lipgloss.Color

	// HeaderStyle is the style for header cells.
	HeaderStyle lipgloss.Style

	// CellStyle is the style for regular cells.
	CellStyle lipgloss.Style
}

// DefaultTableStyle returns the default table style.
func DefaultTableStyle() TableStyle {
	return TableStyle{
		Border:      lipgloss.NormalBorder(),
		BorderColor: lipgloss.Color("240"),
		HeaderStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		CellStyle:   lipgloss.NewStyle(),
	}
}

// Table represents a styled table.
type Table struct {
	headers []string
	rows    [][]string
	style   TableStyle
}

// NewTable creates a new table with the given headers.
func NewTable(headers ...string) *Table {
	return &Table{
		headers: headers,
		rows:    make([][]string, 0),
		style:   DefaultTableStyle(),
	}
}

// Row adds a row to the table.
func (t *Table) Row(cells ...string) *Table {
	t.rows = append(t.rows, cells)
	return t
}

// SetStyle sets the table style.
func (t *Table) SetStyle(style TableStyle) *Table {
	t.style = style
	return t
}

// String renders the table as a string.
func (t *Table) String() string {
	tbl := table.New().
		Border(t.style.Border).
		BorderStyle(lipgloss.NewStyle().Foreground(t.style.BorderColor)).
		Headers(t.headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return t.style.HeaderStyle
			}
			return t.style.CellStyle
		})

	for _, row := range t.rows {
		tbl.Row(row...)
	}

	return tbl.String()
}

// ComponentRow is a single row of the `list` command's component table.
type ComponentRow struct {
	ID        string
	Name      string
	Version   string
	Source    string
	Blueprint string
}

// RenderComponentTable renders the registered-component listing used by the
// `list` action.
func RenderComponentTable(rows []ComponentRow) string {
	t := NewTable("ID", "NAME", "VERSION", "SOURCE", "BLUEPRINT")

	for _, r := range rows {
		t.Row(r.ID, r.Name, r.Version, r.Source, r.Blueprint)
	}

	return t.String()
}

// TargetRow is a single row of a build run's target-status summary table.
type TargetRow struct {
	Target   string
	Status   string
	Duration string
	Message  string
}

// RenderTargetTable renders a post-build summary table of construction task
// outcomes (built/unchanged/stale/failed), keyed by target path.
func RenderTargetTable(rows []TargetRow) string {
	t := NewTable("TARGET", "STATUS", "DURATION", "MESSAGE")

	for _, r := range rows {
		t.Row(r.Target, r.Status, r.Duration, r.Message)
	}

	return t.String()
}
