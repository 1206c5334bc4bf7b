package ui

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/readinglist/internal/books"
	"github.com/five82/readinglist/internal/config"
	"github.com/five82/readinglist/internal/prefs"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Service   books.Service
	Config    *config.Config
	Prefs     prefs.Prefs
	PrefsPath string // empty disables saving preferences
	StartPath string // initial route, "/" when empty
}

// statusLine is the one-line message above the command bar.
type statusLine struct {
	text  string
	isErr bool
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	service   books.Service
	config    *config.Config
	prefs     prefs.Prefs
	prefsPath string

	// UI state
	theme    Theme
	keys     keyMap
	help     help.Model
	width    int
	height   int
	ready    bool
	showHelp bool
	status   statusLine

	// Routing
	route   Route
	nav     navBar
	initCmd tea.Cmd

	// Views
	list   listView
	form   addView
	detail detailView
}

// New creates the model and mounts the start route.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	p := opts.Prefs
	if p == (prefs.Prefs{}) {
		p = prefs.Defaults()
	}

	start := opts.StartPath
	if strings.TrimSpace(start) == "" {
		start = PathHome
	}

	m := Model{
		ctx:       ctx,
		service:   opts.Service,
		config:    opts.Config,
		prefs:     p,
		prefsPath: opts.PrefsPath,
		theme:     GetTheme(p.Theme),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		width:     defaultWidth,
		height:    defaultHeight,
		list:      newListView(),
		form:      newAddView(),
		detail:    newDetailView(),
	}
	m.initCmd = m.navigate(start)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.initCmd
}

// Route returns the mounted route.
func (m Model) Route() Route {
	return m.route
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		if !m.nav.collapsed(m.width) {
			m.nav.close()
		}
		m.list.clamp(m.listRows())
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case booksLoadedMsg:
		return m.handleBooksLoaded(msg)

	case bookLoadedMsg:
		return m.handleBookLoaded(msg)

	case bookCreatedMsg:
		return m.handleBookCreated(msg)

	case bookDeletedMsg:
		return m.handleBookDeleted(msg)

	case bookUpdatedMsg:
		return m.handleBookUpdated(msg)

	case prefsSavedMsg:
		if msg.err != nil {
			log.Printf("save prefs: %v", msg.err)
		}
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	if menu := m.renderMenu(); menu != "" {
		b.WriteString(menu)
		b.WriteString("\n")
	}
	b.WriteString(m.renderTitledBox(m.route.Title(), m.renderContent(), m.width, m.boxHeight(), m.inputFocused()))
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	return b.String()
}

// navigate unmounts the current view and mounts the one for path.
func (m *Model) navigate(path string) tea.Cmd {
	leave := m.unmount()
	m.route = ParseRoute(path)
	m.nav.close()
	m.status = statusLine{}

	var mount tea.Cmd
	switch m.route.Kind {
	case RouteBooks:
		mount = m.mountList()
	case RouteAddBook:
		mount = m.mountForm()
	case RouteBookDetail:
		mount = m.mountDetail(m.route.ID)
	default:
		log.Printf("no route for %q", m.route.Raw)
	}
	if leave == nil {
		return mount
	}
	return tea.Batch(leave, mount)
}

// unmount leaves the current view. An open detail editor is committed, so
// every way out of the view counts as a blur.
func (m *Model) unmount() tea.Cmd {
	switch m.route.Kind {
	case RouteBooks:
		m.list.load.Cancel()
		m.list.search.Blur()
	case RouteAddBook:
		m.form.blur()
	case RouteBookDetail:
		commit := m.commitEdit()
		m.detail.load.Cancel()
		m.detail.stopEditing()
		return commit
	}
	return nil
}

// inputFocused reports whether keystrokes belong to a text input.
func (m Model) inputFocused() bool {
	switch m.route.Kind {
	case RouteBooks:
		return m.list.searching
	case RouteAddBook:
		return m.form.focused()
	case RouteBookDetail:
		return m.detail.editing
	}
	return false
}

// handleKey processes keyboard input: the help overlay and the menu first,
// then a focused input, then global keys, then the mounted view.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.nav.open {
		return m.handleMenuKey(msg)
	}

	if !m.inputFocused() {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = true
			return m, nil
		case key.Matches(msg, m.keys.CycleTheme):
			return m, m.cycleTheme()
		case key.Matches(msg, m.keys.GoHome):
			return m, m.navigate(PathHome)
		case key.Matches(msg, m.keys.GoAdd):
			return m, m.navigate(PathAddBook)
		case key.Matches(msg, m.keys.Menu):
			if m.nav.collapsed(m.width) {
				m.nav.toggle(m.route)
			}
			return m, nil
		}
	}

	switch m.route.Kind {
	case RouteBooks:
		return m.handleListKey(msg)
	case RouteAddBook:
		return m.handleFormKey(msg)
	case RouteBookDetail:
		return m.handleDetailKey(msg)
	}
	return m, nil
}

// handleMouse dispatches left clicks and wheel events by screen row.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		if msg.Action == tea.MouseActionPress {
			m.showHelp = false
		}
		return m, nil
	}

	if msg.Action != tea.MouseActionPress {
		return m, nil
	}

	x, y := msg.X, msg.Y
	cx, cy := x-boxBorder, y-m.contentTop()-boxBorder

	if msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown {
		if m.route.Kind == RouteBooks {
			m.list.scroll(msg.Button == tea.MouseButtonWheelDown, m.listRows())
		}
		return m, nil
	}
	if msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	if y < headerRows+m.nav.rows(m.width) {
		path, ok := m.nav.click(x, y, m.width)
		if !ok {
			return m, nil
		}
		return m, m.navigate(path)
	}
	m.nav.close()

	switch m.route.Kind {
	case RouteBooks:
		return m.clickList(cx, cy)
	case RouteAddBook:
		return m.clickForm(cx, cy)
	case RouteBookDetail:
		return m.clickDetail(cx, cy)
	}
	return m, nil
}

func (m *Model) cycleTheme() tea.Cmd {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	m.prefs.Theme = m.theme.Name
	return savePrefsCmd(m.prefsPath, m.prefs)
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = statusLine{text: text, isErr: isErr}
}

// contentTop is the first screen row of the content box.
func (m Model) contentTop() int {
	return headerRows + m.nav.rows(m.width)
}

func (m Model) boxHeight() int {
	return max(m.height-m.contentTop()-footerRows, 2*boxBorder+1)
}

// innerSize is the usable area inside the content box.
func (m Model) innerSize() (int, int) {
	return max(m.width-2*boxBorder, 1), max(m.boxHeight()-2*boxBorder, 1)
}

// renderContent renders the mounted view.
func (m Model) renderContent() string {
	w, h := m.innerSize()
	switch m.route.Kind {
	case RouteBooks:
		return m.renderList(w, h)
	case RouteAddBook:
		return m.renderForm(w)
	case RouteBookDetail:
		return m.renderDetail(w)
	default:
		styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)
		return styles.DangerText.Render("Page not found") + "\n" +
			styles.MutedText.Render("No view for "+m.route.Raw+". Press H to go home.")
	}
}

// renderTitledBox renders content in a box with the title embedded in the
// top border: ┌─── Title ───┐. A focused box uses the focus colours.
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	borderColor := m.theme.Border
	if focused {
		borderColor = m.theme.BorderFocus
	}
	bg := NewBgStyle(m.theme.SurfaceAlt)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColor))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := max(width-2, 1)
	title = truncate(title, max(innerWidth-4, 1))
	titleLen := lipgloss.Width(title)
	leftPad := max((innerWidth-titleLen-2)/2, 0)
	rightPad := max(innerWidth-titleLen-2-leftPad, 0)

	top := bg.Render("┌"+strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad)+"┐", borderStyle)
	bottom := bg.Render("└"+strings.Repeat("─", innerWidth)+"┘", borderStyle)
	side := bg.Render("│", borderStyle)

	lines := strings.Split(clipLines(content, innerWidth), "\n")
	rows := make([]string, 0, max(height-2, 0))
	for i := 0; i < height-2; i++ {
		var line string
		if i < len(lines) {
			line = lines[i]
		}
		rows = append(rows, side+bg.FillLine(line, innerWidth)+side)
	}
	return top + "\n" + strings.Join(rows, "\n") + "\n" + bottom
}

func (m Model) renderStatus() string {
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	bg := NewBgStyle(m.theme.Background)
	if m.status.text == "" {
		return bg.FillLine("", m.width)
	}
	style := styles.SuccessText
	if m.status.isErr {
		style = styles.DangerText
	}
	return bg.FillLine(" "+style.Render(truncate(m.status.text, m.width-2)), m.width)
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	p := tea.NewProgram(New(opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
