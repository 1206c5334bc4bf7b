package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

type navLink struct {
	label string
	path  string
}

var navLinks = []navLink{
	{label: "Home", path: PathHome},
	{label: "Add Book", path: PathAddBook},
}

const (
	navLogo   = "readinglist"
	navGap    = 2
	menuLabel = "≡ Menu"
)

// span is a horizontal run of header cells.
type span struct {
	x, w int
}

func (s span) contains(x int) bool {
	return x >= s.x && x < s.x+s.w
}

// navBar holds the only state the navigation bar has: whether the collapsed
// menu is open and which entry is highlighted in it.
type navBar struct {
	open      bool
	highlight int
}

// collapsed reports whether the links fold into a menu at this width.
func (n navBar) collapsed(width int) bool {
	return width < NavCollapseWidth
}

func (n *navBar) toggle(active Route) {
	if n.open {
		n.close()
		return
	}
	n.open = true
	n.highlight = 0
	for i, link := range navLinks {
		if ParseRoute(link.path).Kind == active.Kind {
			n.highlight = i
		}
	}
}

func (n *navBar) close() {
	n.open = false
}

// rows is the number of screen rows the open menu occupies.
func (n navBar) rows(width int) int {
	if n.open && n.collapsed(width) {
		return len(navLinks)
	}
	return 0
}

// linksStart is the first cell after the logo; the header has one cell of
// left padding.
func linksStart() int {
	return 1 + len(navLogo) + navGap
}

func linkSpans() []span {
	spans := make([]span, 0, len(navLinks))
	x := linksStart()
	for _, link := range navLinks {
		w := ansi.StringWidth(link.label)
		spans = append(spans, span{x: x, w: w})
		x += w + navGap
	}
	return spans
}

func menuSpan() span {
	return span{x: linksStart(), w: ansi.StringWidth(menuLabel)}
}

// click resolves a click in the header or the open menu. It returns the path
// to navigate to, if any.
func (n *navBar) click(x, y, width int) (string, bool) {
	if y == 0 {
		if n.collapsed(width) {
			if menuSpan().contains(x) {
				n.toggle(Route{})
			}
			return "", false
		}
		for i, s := range linkSpans() {
			if s.contains(x) {
				return navLinks[i].path, true
			}
		}
		return "", false
	}
	idx := y - headerRows
	if n.open && idx >= 0 && idx < len(navLinks) {
		n.close()
		return navLinks[idx].path, true
	}
	return "", false
}

// handleMenuKey drives the open menu.
func (m Model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.nav.highlight = (m.nav.highlight + len(navLinks) - 1) % len(navLinks)
	case key.Matches(msg, m.keys.Down), msg.Type == tea.KeyTab:
		m.nav.highlight = (m.nav.highlight + 1) % len(navLinks)
	case msg.Type == tea.KeyEnter:
		return m, m.navigate(navLinks[m.nav.highlight].path)
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Menu):
		m.nav.close()
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	}
	return m, nil
}

// renderHeader renders the navigation bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	left := bg.Render(navLogo, styles.Logo) + bg.Spaces(navGap)
	if m.nav.collapsed(m.width) {
		style := ternaryStyle(m.nav.open, styles.AccentText.Bold(true), styles.Text)
		left += bg.Render(menuLabel, style)
	} else {
		parts := make([]string, 0, len(navLinks))
		for _, link := range navLinks {
			style := styles.Text
			if ParseRoute(link.path).Kind == m.route.Kind {
				style = styles.AccentText.Bold(true).Underline(true)
			}
			parts = append(parts, bg.Render(link.label, style))
		}
		left += bg.Join(parts, strings.Repeat(" ", navGap))
	}

	// API origin on the right when it fits.
	if m.config != nil && m.config.APIURL != "" {
		right := m.config.APIURL
		gap := m.width - 2 - ansi.StringWidth(left) - ansi.StringWidth(right)
		if gap >= navGap {
			left += bg.Spaces(gap) + bg.Render(right, styles.FaintText)
		}
	}

	return styles.Header.Width(m.width).Render(left)
}

// renderMenu renders the open menu below the header, or "".
func (m Model) renderMenu() string {
	if m.nav.rows(m.width) == 0 {
		return ""
	}
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	lines := make([]string, 0, len(navLinks))
	for i, link := range navLinks {
		label := "  " + link.label
		if i == m.nav.highlight {
			lines = append(lines, styles.Selected.Width(m.width).Render(label))
			continue
		}
		style := styles.Text
		if ParseRoute(link.path).Kind == m.route.Kind {
			style = styles.AccentText
		}
		lines = append(lines, bg.FillLine(bg.Render(label, style), m.width))
	}
	return strings.Join(lines, "\n")
}
