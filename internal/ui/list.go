package ui

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/readinglist/internal/books"
	"github.com/five82/readinglist/internal/catalog"
	"github.com/five82/readinglist/internal/state"
)

const (
	searchLabel  = "Search Books: "
	actionLabel  = "Action"
	deleteButton = "[del]"
)

// listView is the state of the book list.
type listView struct {
	load      state.Load[[]books.Book]
	sort      catalog.SortState
	search    textinput.Model
	searching bool
	selected  int
	offset    int
	column    int // header cursor, index into books.Fields
	pending   map[int64]catalog.Removal
}

func newListView() listView {
	return listView{
		sort:    catalog.DefaultSort(),
		search:  newInput("Search Books"),
		pending: make(map[int64]catalog.Removal),
	}
}

// reset clears per-mount state. The load is kept so tokens stay unique
// across mounts.
func (l *listView) reset(sort catalog.SortState) {
	l.sort = sort
	l.search.Reset()
	l.search.Blur()
	l.searching = false
	l.selected = 0
	l.offset = 0
	l.column = max(indexOfField(sort.Column), 0)
	l.pending = make(map[int64]catalog.Removal)
}

// visible returns the filtered and sorted rows.
func (l listView) visible() []books.Book {
	if l.load.Phase() != state.Ready {
		return nil
	}
	return catalog.Sort(catalog.Filter(l.load.Value(), l.search.Value()), l.sort)
}

func (l listView) selectedBook() (books.Book, bool) {
	rows := l.visible()
	if l.selected < 0 || l.selected >= len(rows) {
		return books.Book{}, false
	}
	return rows[l.selected], true
}

// clamp keeps the selection inside the rows and the selection on screen.
func (l *listView) clamp(pageRows int) {
	n := len(l.visible())
	l.selected = min(max(l.selected, 0), max(n-1, 0))
	if pageRows <= 0 {
		l.offset = 0
		return
	}
	if l.selected < l.offset {
		l.offset = l.selected
	}
	if l.selected >= l.offset+pageRows {
		l.offset = l.selected - pageRows + 1
	}
	l.offset = min(max(l.offset, 0), max(n-pageRows, 0))
}

func (l *listView) move(delta, pageRows int) {
	l.selected += delta
	l.clamp(pageRows)
}

func (l *listView) scroll(down bool, pageRows int) {
	if down {
		l.move(1, pageRows)
	} else {
		l.move(-1, pageRows)
	}
}

// listRows is how many table rows fit under the search line and header.
func (m Model) listRows() int {
	_, h := m.innerSize()
	return max(h-2, 1)
}

func (m *Model) mountList() tea.Cmd {
	m.list.reset(m.prefs.Sort())
	ctx, tok := m.list.load.Begin(m.ctx)
	return listBooksCmd(ctx, m.service, tok)
}

func (m Model) handleBooksLoaded(msg booksLoadedMsg) (tea.Model, tea.Cmd) {
	list, err := msg.books, msg.err
	if errors.Is(err, books.ErrMalformedList) {
		log.Printf("list books: %v", err)
		list, err = []books.Book{}, nil
	}
	if list == nil && err == nil {
		list = []books.Book{}
	}
	if !m.list.load.Resolve(msg.token, list, err) {
		return m, nil
	}
	if err != nil {
		log.Printf("list books: %v", err)
	}
	m.list.clamp(m.listRows())
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.listRows()

	if m.list.searching {
		switch msg.Type {
		case tea.KeyEsc, tea.KeyEnter:
			m.list.searching = false
			m.list.search.Blur()
			return m, nil
		case tea.KeyUp:
			m.list.move(-1, rows)
			return m, nil
		case tea.KeyDown:
			m.list.move(1, rows)
			return m, nil
		}
		before := m.list.search.Value()
		var cmd tea.Cmd
		m.list.search, cmd = m.list.search.Update(msg)
		if m.list.search.Value() != before {
			m.list.selected, m.list.offset = 0, 0
		}
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Search):
		m.list.searching = true
		return m, m.list.search.Focus()
	case key.Matches(msg, m.keys.Up):
		m.list.move(-1, rows)
	case key.Matches(msg, m.keys.Down):
		m.list.move(1, rows)
	case key.Matches(msg, m.keys.Top):
		m.list.move(-len(m.list.visible()), rows)
	case key.Matches(msg, m.keys.Bottom):
		m.list.move(len(m.list.visible()), rows)
	case key.Matches(msg, m.keys.Left):
		m.list.column = (m.list.column + len(books.Fields) - 1) % len(books.Fields)
	case key.Matches(msg, m.keys.Right):
		m.list.column = (m.list.column + 1) % len(books.Fields)
	case key.Matches(msg, m.keys.Sort):
		return m, m.sortBy(books.Fields[m.list.column])
	case key.Matches(msg, m.keys.Delete):
		if book, ok := m.list.selectedBook(); ok {
			return m, m.deleteBook(book.ID)
		}
	case key.Matches(msg, m.keys.Open):
		if book, ok := m.list.selectedBook(); ok {
			return m, m.navigate(BookPath(book.ID))
		}
	case key.Matches(msg, m.keys.Reload):
		return m, m.navigate(PathHome)
	case key.Matches(msg, m.keys.Back):
		if m.list.search.Value() != "" {
			m.list.search.Reset()
			m.list.clamp(rows)
		}
	}
	return m, nil
}

// sortBy applies a header activation and remembers the ordering.
func (m *Model) sortBy(column books.Field) tea.Cmd {
	m.list.sort = m.list.sort.Toggle(column)
	m.list.column = max(indexOfField(column), 0)
	m.list.clamp(m.listRows())
	m.prefs = m.prefs.WithSort(m.list.sort)
	return savePrefsCmd(m.prefsPath, m.prefs)
}

// deleteBook removes the row at once and asks the server to delete it. A
// failed delete puts the row back where it was.
func (m *Model) deleteBook(id int64) tea.Cmd {
	rest, removed, ok := catalog.Remove(m.list.load.Value(), id)
	if !ok {
		return nil
	}
	m.list.load.Set(rest)
	m.list.pending[id] = removed
	m.list.clamp(m.listRows())
	m.setStatus(fmt.Sprintf("Deleting %q...", removed.Book.Title), false)
	return deleteBookCmd(m.ctx, m.service, id)
}

func (m Model) handleBookDeleted(msg bookDeletedMsg) (tea.Model, tea.Cmd) {
	removed, ok := m.list.pending[msg.id]
	delete(m.list.pending, msg.id)

	// A 404 means someone else deleted it; the row stays gone.
	if books.IsNotFound(msg.err) {
		log.Printf("delete book %d: already gone", msg.id)
		m.setStatus(fmt.Sprintf("Book %d was already deleted", msg.id), false)
		return m, nil
	}
	if msg.err != nil {
		log.Printf("delete book %d: %v", msg.id, msg.err)
		if ok && m.route.Kind == RouteBooks {
			m.list.load.Set(catalog.Restore(m.list.load.Value(), removed))
			m.list.clamp(m.listRows())
		}
		m.setStatus(fmt.Sprintf("Failed to delete book %d: %v", msg.id, msg.err), true)
		return m, nil
	}

	if ok {
		m.setStatus(fmt.Sprintf("Deleted %q", removed.Book.Title), false)
	} else {
		m.setStatus(fmt.Sprintf("Deleted book %d", msg.id), false)
	}
	return m, nil
}

// listColumn is one column of the book table. The action column has no field.
type listColumn struct {
	field books.Field
	label string
	span
}

// listColumns lays out the table for the given width. Fixed-width columns
// keep their size; title, author and genres share what is left.
func listColumns(width int) []listColumn {
	fixed := map[books.Field]int{
		books.FieldID:        6,
		books.FieldPublished: 11,
		books.FieldPages:     7,
		books.FieldRating:    8,
		books.FieldISBN:      14,
	}
	flexWeight := map[books.Field]int{
		books.FieldTitle:  4,
		books.FieldAuthor: 3,
		books.FieldGenres: 3,
	}
	actionWidth := len(actionLabel)
	gaps := len(books.Fields) // one space before every column but the first
	used := actionWidth + gaps
	for _, w := range fixed {
		used += w
	}
	flex := max(width-used, 3*6)

	cols := make([]listColumn, 0, len(books.Fields)+1)
	x := 0
	assigned := 0
	for _, f := range books.Fields {
		w, ok := fixed[f]
		if !ok {
			w = flex * flexWeight[f] / 10
			if f == books.FieldGenres {
				w = flex - assigned
			}
			assigned += w
		}
		cols = append(cols, listColumn{field: f, label: fieldLabel(f), span: span{x: x, w: w}})
		x += w + 1
	}
	cols = append(cols, listColumn{label: actionLabel, span: span{x: x, w: actionWidth}})
	return cols
}

func columnAt(cols []listColumn, x int) (listColumn, bool) {
	for _, c := range cols {
		if c.contains(x) {
			return c, true
		}
	}
	return listColumn{}, false
}

// clickList handles a click inside the content box: the search line focuses
// the search, a header sorts, a title opens the book and [del] deletes it.
func (m Model) clickList(x, y int) (tea.Model, tea.Cmd) {
	w, _ := m.innerSize()
	switch {
	case y == 0:
		m.list.searching = true
		return m, m.list.search.Focus()
	case y < 0:
		return m, nil
	}

	if m.list.searching {
		m.list.searching = false
		m.list.search.Blur()
	}
	if m.list.load.Phase() != state.Ready {
		return m, nil
	}

	col, ok := columnAt(listColumns(w), x)
	if !ok {
		return m, nil
	}
	if y == 1 {
		if col.field == "" {
			return m, nil
		}
		return m, m.sortBy(col.field)
	}

	idx := m.list.offset + y - 2
	rows := m.list.visible()
	if idx >= len(rows) {
		return m, nil
	}
	m.list.selected = idx
	m.list.clamp(m.listRows())
	switch col.field {
	case books.FieldTitle:
		return m, m.navigate(BookPath(rows[idx].ID))
	case "":
		return m, m.deleteBook(rows[idx].ID)
	}
	return m, nil
}

// renderList renders the search line and the table, or the load state.
func (m Model) renderList(width, height int) string {
	styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)
	bg := NewBgStyle(m.theme.SurfaceAlt)

	lines := []string{bg.Render(searchLabel, styles.MutedText) + m.renderInput(m.list.search, max(width-len(searchLabel), 1))}

	switch m.list.load.Phase() {
	case state.Loading:
		return strings.Join(append(lines, bg.Render("Loading books...", styles.MutedText)), "\n")
	case state.Failed:
		msg := "Error: Failed to fetch books: " + m.list.load.Err().Error()
		return strings.Join(append(lines, bg.Render(msg, styles.DangerText)), "\n")
	}

	all := m.list.load.Value()
	if len(all) == 0 {
		return strings.Join(append(lines, bg.Render("No books yet", styles.MutedText)), "\n")
	}

	cols := listColumns(width)
	lines = append(lines, m.renderListHeader(cols, styles, bg))

	rows := m.list.visible()
	if len(rows) == 0 {
		msg := fmt.Sprintf("No books match %q", m.list.search.Value())
		return strings.Join(append(lines, bg.Render(msg, styles.MutedText)), "\n")
	}

	page := max(height-2, 1)
	end := min(m.list.offset+page, len(rows))
	for i := m.list.offset; i < end; i++ {
		lines = append(lines, m.renderListRow(rows[i], cols, i == m.list.selected, width, styles, bg))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderListHeader(cols []listColumn, styles Styles, bg BgStyle) string {
	var b strings.Builder
	for i, c := range cols {
		if i > 0 {
			b.WriteString(bg.Spaces(1))
		}
		label := c.label
		if c.field != "" && c.field == m.list.sort.Column {
			label += " " + m.list.sort.Order.Arrow()
		}
		style := styles.MutedText.Bold(true)
		if c.field != "" && c.field == m.list.sort.Column {
			style = styles.AccentText.Bold(true)
		}
		if c.field != "" && c.field == books.Fields[m.list.column] {
			style = style.Underline(true)
		}
		b.WriteString(style.Render(cell(label, c.w)))
	}
	return b.String()
}

func (m Model) renderListRow(book books.Book, cols []listColumn, selected bool, width int, styles Styles, bg BgStyle) string {
	values := make([]string, 0, len(cols))
	for _, c := range cols {
		switch c.field {
		case "":
			values = append(values, deleteButton)
		case books.FieldRating:
			values = append(values, strconv.FormatFloat(book.Rating, 'f', 1, 64))
		default:
			values = append(values, book.Text(c.field))
		}
	}

	if selected {
		parts := make([]string, len(cols))
		for i, c := range cols {
			parts[i] = cell(values[i], c.w)
		}
		return styles.Selected.Width(width).Render(strings.Join(parts, " "))
	}

	var b strings.Builder
	for i, c := range cols {
		if i > 0 {
			b.WriteString(bg.Spaces(1))
		}
		style := styles.Text
		switch c.field {
		case books.FieldID:
			style = styles.MutedText
		case books.FieldTitle:
			style = styles.AccentText
		case books.FieldRating:
			style = styles.RatingStyle(book.Rating).Background(bg.bg)
		case "":
			style = styles.DangerText
		}
		b.WriteString(style.Render(cell(values[i], c.w)))
	}
	return b.String()
}

func indexOfField(f books.Field) int {
	for i, field := range books.Fields {
		if field == f {
			return i
		}
	}
	return -1
}

// newInput builds a text input with a static cursor; a blinking cursor would
// keep the program ticking for nothing.
func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

// renderInput draws ti in the current theme at the given width.
func (m Model) renderInput(ti textinput.Model, width int) string {
	bgColor := m.theme.SurfaceAlt
	if ti.Focused() {
		bgColor = m.theme.FocusBg
	}
	bg := lipgloss.Color(bgColor)
	ti.Width = max(width-1, 1)
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Text)).Background(bg)
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Faint)).Background(bg)
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent))
	ti.Cursor.TextStyle = ti.TextStyle
	return lipgloss.NewStyle().Background(bg).Width(width).Render(ti.View())
}
