package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/windoze95/saltybytes-mealsearch/internal/search"
)

var (
	inputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	clearStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	titleStyle       = lipgloss.NewStyle().Bold(true)
	selectedStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	thumbStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	descriptionStyle = lipgloss.NewStyle()
	labelStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Underline(true)
	placeholderStyle = lipgloss.NewStyle().Bold(true).Padding(1, 2)
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the screen.
func (m Model) View() string {
	var b strings.Builder

	header := lipgloss.JoinHorizontal(lipgloss.Center,
		inputBoxStyle.Render(m.input.View()),
		" ",
		clearStyle.Render("X"),
	)
	b.WriteString(header)
	b.WriteString("\n")

	footer := helpStyle.Render("↑/↓ select • enter " + strings.ToLower(m.text.SeeMore) + "/" +
		strings.ToLower(m.text.SeeLess) + " • esc clear • ctrl+c quit")

	available := m.height - lipgloss.Height(header) - lipgloss.Height(footer) - 1
	switch {
	case len(m.screen.Rows) > 0:
		b.WriteString(m.renderRows(available))
	case m.screen.Placeholder != "":
		b.WriteString(placeholderStyle.Render(m.screen.Placeholder))
	}

	b.WriteString("\n")
	b.WriteString(footer)
	return b.String()
}

// renderRows renders as many rows as fit in height lines, scrolled so the
// selected row is visible.
func (m Model) renderRows(height int) string {
	width := max(20, m.width-4)
	blocks := make([]string, len(m.screen.Rows))
	for i, row := range m.screen.Rows {
		blocks[i] = renderRow(row, width, i == m.cursor)
	}

	start := 0
	for start < m.cursor && totalHeight(blocks[start:m.cursor+1]) > height {
		start++
	}

	var out []string
	used := 0
	for _, block := range blocks[start:] {
		h := lipgloss.Height(block)
		if used > 0 && used+h > height {
			break
		}
		out = append(out, block)
		used += h
	}
	return strings.Join(out, "\n")
}

func renderRow(row search.Row, width int, selected bool) string {
	marker := "  "
	title := titleStyle.Render(row.Title)
	if selected {
		marker = "› "
		title = selectedStyle.Render(row.Title)
	}

	lines := []string{marker + title}
	if row.ThumbnailURL != "" {
		lines = append(lines, "  "+thumbStyle.Render(row.ThumbnailURL))
	}
	desc := clampLines(row.Description, width-2, row.Lines)
	for _, l := range strings.Split(desc, "\n") {
		lines = append(lines, "  "+descriptionStyle.Render(l))
	}
	lines = append(lines, "  "+labelStyle.Render(row.Label), "")
	return strings.Join(lines, "\n")
}

// clampLines word-wraps text to width and keeps at most n lines, marking a
// cut with an ellipsis. n == 0 keeps every line.
func clampLines(text string, width, n int) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	wrapped := lipgloss.NewStyle().Width(width).Render(text)

	lines := strings.Split(wrapped, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	if n > 0 && len(lines) > n {
		lines = lines[:n]
		lines[n-1] += "…"
	}
	return strings.Join(lines, "\n")
}

func totalHeight(blocks []string) int {
	h := 0
	for _, b := range blocks {
		h += lipgloss.Height(b)
	}
	return h
}
