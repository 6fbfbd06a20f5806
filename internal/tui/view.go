// internal/tui/view.go
package tui

import (
	"fmt"
	"strings"

	"github.com/pipdeck/pipdeck/pkg/catalog"
)

func (m Model) View() string {
	var b strings.Builder

	switch m.screen {
	case screenSearch:
		b.WriteString(titleStyle.Render(fmt.Sprintf("search: %s (page %d/%d)", m.query, m.page, m.total)))
		b.WriteString("\n\n")
		for i, item := range m.results {
			prefix := "  "
			line := fmt.Sprintf("%-30s %-12s %s", item.Name, item.Version, item.Description)
			if i == m.cursor {
				prefix = cursorStyle.Render("> ")
				line = cursorStyle.Render(line)
			}
			b.WriteString(prefix + line + "\n")
		}
		b.WriteString("\n" + dimStyle.Render("enter install · h/l page · esc back · q quit"))

	default:
		title := "installed packages"
		if m.hasReq {
			title += " · requirements file present"
		}
		b.WriteString(titleStyle.Render(title))
		b.WriteString("\n\n")

		if m.loading {
			b.WriteString(statusStyle.Render("loading installed packages...") + "\n")
		}

		for i, p := range m.packages {
			prefix := "  "
			latest := p.Latest
			if catalog.HasUpdate(p) {
				latest = updateStyle.Render(latest + " ↑")
			}
			line := fmt.Sprintf("%-30s %-12s %s", p.Name, p.Version, latest)
			if i == m.cursor {
				prefix = cursorStyle.Render("> ")
			}
			b.WriteString(prefix + line + "\n")
		}

		var footer []string
		if m.checking {
			footer = append(footer, statusStyle.Render("checking for updates..."))
		}
		if m.progress != "" {
			footer = append(footer, statusStyle.Render(m.progress))
		}
		if m.status != "" {
			footer = append(footer, dimStyle.Render(m.status))
		}
		if m.errText != "" {
			footer = append(footer, errorStyle.Render(m.errText))
		}
		footer = append(footer, dimStyle.Render("r refresh · u update · U update all · x remove · v versions · / search · q quit"))
		b.WriteString("\n" + strings.Join(footer, "\n"))
	}

	if m.searching {
		b.WriteString("\n" + statusStyle.Render("search: "+m.query+"▌"))
	}

	return b.String()
}
