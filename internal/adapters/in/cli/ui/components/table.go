// Package components renders tables and status cells for the CLI.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/bnema/stevedore/internal/adapters/in/cli/ui/styles"
)

// TableColumn defines a table column. A zero Width leaves the column unbounded.
type TableColumn struct {
	Title string
	Width int
}

// Table is a bordered table with fixed column widths.
type Table struct {
	columns     []TableColumn
	rows        [][]string
	border      lipgloss.Border
	borderStyle lipgloss.Style
	headerStyle lipgloss.Style
	cellStyle   lipgloss.Style
}

// TableOption configures a Table.
type TableOption func(*Table)

// NewTable creates a table with the theme defaults.
func NewTable(opts ...TableOption) *Table {
	t := &Table{
		border:      lipgloss.RoundedBorder(),
		borderStyle: styles.Theme.TableBorder,
		headerStyle: styles.Theme.TableHeader,
		cellStyle:   styles.Theme.TableCell,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// WithColumns sets the table columns.
func WithColumns(cols []TableColumn) TableOption {
	return func(t *Table) { t.columns = cols }
}

// WithRows sets the table rows.
func WithRows(rows [][]string) TableOption {
	return func(t *Table) { t.rows = rows }
}

// WithHeaderStyle sets the header style.
func WithHeaderStyle(s lipgloss.Style) TableOption {
	return func(t *Table) { t.headerStyle = s }
}

// WithCellStyle sets the body cell style.
func WithCellStyle(s lipgloss.Style) TableOption {
	return func(t *Table) { t.cellStyle = s }
}

// AddRow appends a row.
func (t *Table) AddRow(row ...string) {
	t.rows = append(t.rows, row)
}

// Render renders the table. Cells wider than their column are cut with an ellipsis.
func (t *Table) Render() string {
	if len(t.columns) == 0 {
		return ""
	}

	headers := make([]string, len(t.columns))
	for i, col := range t.columns {
		headers[i] = truncateCell(col.Title, contentWidth(t.headerStyle, col.Width))
	}

	rows := make([][]string, len(t.rows))
	for r, row := range t.rows {
		rows[r] = make([]string, len(row))
		for c, cell := range row {
			rows[r][c] = truncateCell(cell, contentWidth(t.cellStyle, t.width(c)))
		}
	}

	return table.New().
		Border(t.border).
		BorderStyle(t.borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := t.cellStyle
			if row == table.HeaderRow {
				s = t.headerStyle
			}
			if w := t.width(col); w > 0 {
				s = s.Width(w).MaxWidth(w)
			}
			return s
		}).
		String()
}

func (t *Table) width(col int) int {
	if col < 0 || col >= len(t.columns) {
		return 0
	}
	return t.columns[col].Width
}

// contentWidth is the room left for text once the style's padding is taken.
func contentWidth(s lipgloss.Style, width int) int {
	if width <= 0 {
		return 0
	}
	return max(width-s.GetHorizontalPadding(), 1)
}

// truncateCell cuts value to maxWidth display columns on a grapheme
// boundary. Styled input is returned untouched.
func truncateCell(value string, maxWidth int) string {
	if strings.Contains(value, "\x1b[") {
		return value
	}
	if maxWidth <= 0 || runewidth.StringWidth(value) <= maxWidth {
		return value
	}
	if maxWidth <= 3 {
		return strings.Repeat(".", maxWidth)
	}

	target := maxWidth - 3
	var b strings.Builder
	width := 0
	g := uniseg.NewGraphemes(value)
	for g.Next() {
		w := runewidth.StringWidth(g.Str())
		if width+w > target {
			break
		}
		b.WriteString(g.Str())
		width += w
	}
	if b.Len() == 0 {
		return strings.Repeat(".", maxWidth)
	}
	return b.String() + "..."
}
