package components

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/indiecore/bwproxy/pkg/app/styles"
)

// CardTable renders a static table of card rows, used for token search
// results and cache listings.
func CardTable(headers []string, rows [][]string, width int) string {
	if len(rows) == 0 {
		return styles.MutedStyle.Render("nothing to show")
	}

	per := width / len(headers)
	cols := make([]table.Column, len(headers))
	for i, h := range headers {
		cols[i] = table.Column{Title: h, Width: per - 2}
	}
	trows := make([]table.Row, len(rows))
	for i, r := range rows {
		trows[i] = table.Row(r)
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(trows),
		table.WithHeight(len(rows)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		Bold(true).
		Foreground(styles.Primary).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(styles.Muted)
	s.Selected = lipgloss.NewStyle()
	t.SetStyles(s)

	return t.View()
}
