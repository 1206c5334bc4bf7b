package ui

import (
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/readinglist/internal/books"
	"github.com/five82/readinglist/internal/catalog"
	"github.com/five82/readinglist/internal/state"
)

const stackLabelWidth = 12

// detailView shows one book and edits it a field at a time.
type detailView struct {
	id   int64
	load state.Load[books.Book]
	col  int // selected cell, index into books.Fields

	editing bool
	field   books.Field
	input   textinput.Model
	before  books.Book // the book when editing started

	visit     uint64     // bumped per mount; updates from older visits only report
	confirmed books.Book // last book the server returned
	seq       uint64
	latest    map[books.Field]uint64 // newest update seq per field
	inflight  int
	err       string
}

func newDetailView() detailView {
	return detailView{
		input:  newInput(""),
		latest: make(map[books.Field]uint64),
	}
}

// reset prepares the view for id. The load and the update sequence survive
// so tokens and seqs stay unique.
func (d *detailView) reset(id int64) {
	d.id = id
	d.visit++
	d.confirmed = books.Book{}
	d.col = max(indexOfField(books.FieldTitle), 0)
	d.stopEditing()
	d.latest = make(map[books.Field]uint64)
	d.inflight = 0
	d.err = ""
}

func (d *detailView) stopEditing() {
	d.editing = false
	d.field = ""
	d.input.Blur()
}

// startEdit turns the cell for field into an editor seeded with its value.
func (d *detailView) startEdit(field books.Field) tea.Cmd {
	if d.load.Phase() != state.Ready {
		return nil
	}
	if !field.Editable() {
		d.err = fieldLabel(field) + " cannot be edited"
		return nil
	}
	book := d.load.Value()
	d.col = max(indexOfField(field), 0)
	d.editing = true
	d.field = field
	d.before = book.Clone()
	d.err = ""
	d.input.SetValue(catalog.EditText(book, field))
	d.input.CursorEnd()
	return d.input.Focus()
}

func (m *Model) mountDetail(id int64) tea.Cmd {
	m.detail.reset(id)
	ctx, tok := m.detail.load.Begin(m.ctx)
	return getBookCmd(ctx, m.service, tok, id)
}

func (m Model) handleBookLoaded(msg bookLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.id != m.detail.id || !m.detail.load.Resolve(msg.token, msg.book, msg.err) {
		return m, nil
	}
	if msg.err != nil {
		log.Printf("get book %d: %v", msg.id, msg.err)
		return m, nil
	}
	m.detail.confirmed = msg.book.Clone()
	return m, nil
}

// commitEdit leaves edit mode and sends the edited field as a one-field
// update. A draft that does not parse is reverted without a request.
func (m *Model) commitEdit() tea.Cmd {
	d := &m.detail
	if !d.editing {
		return nil
	}
	field := d.field
	draft := d.input.Value()
	d.stopEditing()

	patch, err := catalog.ParseEdit(field, draft)
	if err != nil {
		d.restore(field, d.before)
		d.err = "Not saved: " + err.Error()
		return nil
	}

	d.load.Set(patch.Apply(d.load.Value()))
	d.seq++
	d.latest[field] = d.seq
	d.inflight++
	return updateBookCmd(m.ctx, m.service, d.id, d.visit, d.seq, patch)
}

// restore copies field from src into the local book.
func (d *detailView) restore(field books.Field, src books.Book) {
	p, err := books.NewPatch(field, src.Value(field))
	if err != nil {
		log.Printf("restore %s: %v", field, err)
		return
	}
	d.load.Set(p.Apply(d.load.Value()))
}

func (m Model) handleBookUpdated(msg bookUpdatedMsg) (tea.Model, tea.Cmd) {
	d := &m.detail
	field := msg.patch.Field()

	if m.route.Kind != RouteBookDetail || d.id != msg.id || d.visit != msg.visit {
		if msg.err != nil {
			log.Printf("update book %d %s (view left): %v", msg.id, field, msg.err)
			m.setStatus(fmt.Sprintf("Book %d: %v", msg.id, msg.err), true)
		}
		return m, nil
	}

	d.inflight = max(d.inflight-1, 0)
	newest := d.latest[field] == msg.seq

	if msg.err != nil {
		log.Printf("update book %d %s: %v", msg.id, field, msg.err)
		// Older failures are superseded; the newest one falls back to
		// what the server last confirmed.
		if newest && !(d.editing && d.field == field) {
			d.restore(field, d.confirmed)
		}
		d.err = msg.err.Error()
		m.setStatus(fmt.Sprintf("%s not saved: %v", fieldLabel(field), msg.err), true)
		return m, nil
	}

	d.confirmed = msg.book.Clone()
	switch {
	case d.inflight == 0 && !d.editing:
		d.load.Set(msg.book)
	case newest && !(d.editing && d.field == field):
		d.restore(field, msg.book)
	}
	m.setStatus(fmt.Sprintf("Saved %s", strings.ToLower(fieldLabel(field))), false)
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := &m.detail
	n := len(books.Fields)

	if d.editing {
		switch msg.Type {
		case tea.KeyEnter, tea.KeyEsc:
			return m, m.commitEdit()
		case tea.KeyTab:
			cmd := m.commitEdit()
			d.col = (d.col + 1) % n
			return m, cmd
		case tea.KeyShiftTab:
			cmd := m.commitEdit()
			d.col = (d.col + n - 1) % n
			return m, cmd
		}
		var cmd tea.Cmd
		d.input, cmd = d.input.Update(msg)
		m.applyDraft()
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Left), msg.Type == tea.KeyShiftTab:
		d.col = (d.col + n - 1) % n
	case key.Matches(msg, m.keys.Right), msg.Type == tea.KeyTab:
		d.col = (d.col + 1) % n
	case key.Matches(msg, m.keys.Edit):
		return m, d.startEdit(books.Fields[d.col])
	case key.Matches(msg, m.keys.Reload):
		return m, m.navigate(BookPath(d.id))
	case key.Matches(msg, m.keys.Back):
		return m, m.navigate(PathHome)
	}
	return m, nil
}

// applyDraft shows a parseable draft in the local book straight away.
func (m *Model) applyDraft() {
	d := &m.detail
	if patch, err := catalog.ParseEdit(d.field, d.input.Value()); err == nil {
		d.load.Set(patch.Apply(d.load.Value()))
	}
}

// detailCells lays out one cell per field. Wide terminals get a header row
// and a data row; narrow ones get a label/value line per field.
func detailCells(width int) (cells []span, stacked bool) {
	if width < DetailStackWidth {
		return nil, true
	}
	cols := listColumns(width)
	cells = make([]span, 0, len(books.Fields))
	for _, c := range cols {
		if c.field != "" {
			cells = append(cells, c.span)
		}
	}
	// The data row has no action column; give its room to the last cell.
	last := &cells[len(cells)-1]
	last.w = width - last.x
	return cells, false
}

// clickDetail blurs an open editor and opens the clicked cell for editing.
func (m Model) clickDetail(x, y int) (tea.Model, tea.Cmd) {
	w, _ := m.innerSize()
	cells, stacked := detailCells(w)

	idx := -1
	switch {
	case stacked && y >= 0 && y < len(books.Fields):
		idx = y
	case !stacked && y == 1:
		for i, c := range cells {
			if c.contains(x) {
				idx = i
			}
		}
	}

	d := &m.detail
	if d.editing && idx >= 0 && books.Fields[idx] == d.field {
		return m, nil
	}
	commit := m.commitEdit()
	if idx < 0 {
		return m, commit
	}
	d.col = idx
	return m, tea.Batch(commit, d.startEdit(books.Fields[idx]))
}

func (m Model) renderDetail(width int) string {
	styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)
	bg := NewBgStyle(m.theme.SurfaceAlt)
	d := m.detail

	switch d.load.Phase() {
	case state.Loading:
		return bg.Render("Loading book...", styles.MutedText)
	case state.Failed:
		return bg.Render("Error: "+d.load.Err().Error(), styles.DangerText)
	}

	book := d.load.Value()
	value := func(i int, w int) string {
		f := books.Fields[i]
		if d.editing && d.field == f {
			return m.renderInput(d.input, w)
		}
		text := cell(book.Text(f), w)
		switch {
		case i == d.col:
			return styles.Selected.Render(text)
		case f == books.FieldRating:
			return styles.RatingStyle(book.Rating).Background(bg.bg).Render(text)
		case f == books.FieldID:
			return styles.MutedText.Render(text)
		}
		return styles.Text.Render(text)
	}

	var lines []string
	cells, stacked := detailCells(width)
	if stacked {
		for i, f := range books.Fields {
			label := styles.MutedText.Bold(true).Render(cell(fieldLabel(f), stackLabelWidth))
			lines = append(lines, label+value(i, max(width-stackLabelWidth, 1)))
		}
	} else {
		var header, data strings.Builder
		for i, c := range cells {
			if i > 0 {
				header.WriteString(bg.Spaces(1))
				data.WriteString(bg.Spaces(1))
			}
			header.WriteString(styles.MutedText.Bold(true).Render(cell(fieldLabel(books.Fields[i]), c.w)))
			data.WriteString(value(i, c.w))
		}
		lines = append(lines, header.String(), data.String())
	}

	lines = append(lines, "")
	switch {
	case d.err != "":
		lines = append(lines, bg.Render(d.err, styles.DangerText))
	case d.editing:
		lines = append(lines, bg.Render("Editing "+fieldLabel(d.field)+": enter/tab/esc to save", styles.MutedText))
	default:
		lines = append(lines, bg.Render("Click a cell or press enter to edit", styles.FaintText))
	}
	return strings.Join(lines, "\n")
}
