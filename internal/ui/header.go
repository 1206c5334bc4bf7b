package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// renderCommandBar renders the key hints for the mounted route and the theme
// indicator.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	h := m.help
	h.ShortSeparator = "  "
	h.Styles.ShortKey = styles.AccentText
	h.Styles.ShortDesc = styles.MutedText
	h.Styles.ShortSeparator = styles.FaintText
	h.Styles.Ellipsis = styles.FaintText

	theme := bg.Render("T", styles.AccentText) + bg.Render(":"+m.theme.Name, styles.FaintText)
	h.Width = max(m.width-2-lipgloss.Width(theme)-2, 10)

	hints := h.ShortHelpView(m.keys.routeHelp(m.route))
	gap := max(m.width-2-lipgloss.Width(hints)-lipgloss.Width(theme), 1)
	return styles.Header.Width(m.width).Render(hints + bg.Spaces(gap) + theme)
}
