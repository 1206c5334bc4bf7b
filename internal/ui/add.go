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
)

const (
	formLabelWidth = 12
	submitLabel    = "[ Add Book ]"
	noFocus        = -1
)

var formPlaceholders = map[books.Field]string{
	books.FieldTitle:     "Dune",
	books.FieldAuthor:    "Frank Herbert",
	books.FieldPublished: "1965",
	books.FieldPages:     "412",
	books.FieldGenres:    "sci-fi, classic",
	books.FieldRating:    "4.5",
	books.FieldISBN:      "optional",
}

// addView is the add-book form. Every field takes two rows: the input and
// the line for its validation message. The submit button follows.
type addView struct {
	seq        int // bumped per mount so late results can be recognised
	inputs     []textinput.Model
	focus      int // index into inputs, len(inputs) for the button, noFocus
	errors     catalog.FormErrors
	submitting bool
	err        string
}

func newAddView() addView {
	v := addView{focus: noFocus}
	v.inputs = make([]textinput.Model, len(catalog.FormFields))
	for i, f := range catalog.FormFields {
		v.inputs[i] = newInput(formPlaceholders[f])
	}
	return v
}

func (v *addView) reset() {
	seq := v.seq + 1
	*v = newAddView()
	v.seq = seq
}

func (v addView) focused() bool {
	return v.focus != noFocus
}

func (v addView) buttonIndex() int {
	return len(v.inputs)
}

// setFocus moves focus to idx, which may be the button or noFocus.
func (v *addView) setFocus(idx int) tea.Cmd {
	for i := range v.inputs {
		v.inputs[i].Blur()
	}
	v.focus = idx
	if idx >= 0 && idx < len(v.inputs) {
		return v.inputs[idx].Focus()
	}
	return nil
}

func (v *addView) blur() {
	v.setFocus(noFocus)
}

// step moves focus forwards or backwards through the inputs and the button.
func (v *addView) step(delta int) tea.Cmd {
	n := len(v.inputs) + 1
	cur := v.focus
	if cur == noFocus {
		cur = ternaryInt(delta > 0, -1, 0)
	}
	return v.setFocus(((cur+delta)%n + n) % n)
}

// form collects the raw input values.
func (v addView) form() catalog.AddForm {
	var f catalog.AddForm
	for i, field := range catalog.FormFields {
		f.Set(field, v.inputs[i].Value())
	}
	return f
}

func (m *Model) mountForm() tea.Cmd {
	m.form.reset()
	return m.form.setFocus(0)
}

// submitForm validates the form and posts it. Validation failures stay local.
func (m *Model) submitForm() tea.Cmd {
	if m.form.submitting {
		return nil
	}
	book, errs := m.form.form().Book()
	m.form.errors = errs
	m.form.err = ""
	if errs != nil {
		for i, f := range catalog.FormFields {
			if _, bad := errs[f]; bad {
				return m.form.setFocus(i)
			}
		}
		return nil
	}
	m.form.submitting = true
	return createBookCmd(m.ctx, m.service, m.form.seq, book)
}

func (m Model) handleBookCreated(msg bookCreatedMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.form.seq || m.route.Kind != RouteAddBook {
		if msg.err != nil {
			log.Printf("create book (form left): %v", msg.err)
		}
		return m, nil
	}
	m.form.submitting = false
	if msg.err != nil {
		log.Printf("create book: %v", msg.err)
		m.form.err = "Failed to add book: " + msg.err.Error()
		return m, nil
	}
	cmd := m.navigate(PathHome)
	m.setStatus(fmt.Sprintf("Added %q", msg.book.Title), false)
	return m, cmd
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v := &m.form

	switch {
	case key.Matches(msg, m.keys.Submit):
		return m, m.submitForm()
	case msg.Type == tea.KeyEsc:
		if v.focused() {
			v.blur()
			return m, nil
		}
		return m, m.navigate(PathHome)
	case key.Matches(msg, m.keys.Next):
		return m, v.step(1)
	case key.Matches(msg, m.keys.Prev):
		return m, v.step(-1)
	case msg.Type == tea.KeyEnter:
		last := len(v.inputs) - 1
		if v.focus == v.buttonIndex() || v.focus == last {
			return m, m.submitForm()
		}
		return m, v.step(1)
	}

	if v.focus == v.buttonIndex() && msg.Type == tea.KeySpace {
		return m, m.submitForm()
	}
	if v.focus < 0 || v.focus >= len(v.inputs) {
		return m, nil
	}

	var cmd tea.Cmd
	before := v.inputs[v.focus].Value()
	v.inputs[v.focus], cmd = v.inputs[v.focus].Update(msg)
	if v.inputs[v.focus].Value() != before {
		delete(v.errors, catalog.FormFields[v.focus])
	}
	return m, cmd
}

// clickForm focuses the clicked input or submits on the button row.
func (m Model) clickForm(x, y int) (tea.Model, tea.Cmd) {
	if y < 0 || x < 0 {
		return m, nil
	}
	idx := y / 2
	switch {
	case idx < len(m.form.inputs) && y%2 == 0:
		return m, m.form.setFocus(idx)
	case y == 2*len(m.form.inputs) && x < len(submitLabel):
		m.form.setFocus(m.form.buttonIndex())
		return m, m.submitForm()
	}
	m.form.blur()
	return m, nil
}

func (m Model) renderForm(width int) string {
	styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)
	bg := NewBgStyle(m.theme.SurfaceAlt)
	v := m.form

	lines := make([]string, 0, 2*len(v.inputs)+2)
	for i, f := range catalog.FormFields {
		label := fieldLabel(f)
		if catalog.Required(f) {
			label += " *"
		}
		labelStyle := styles.MutedText
		if i == v.focus {
			labelStyle = styles.AccentText.Bold(true)
		}
		lines = append(lines,
			labelStyle.Render(cell(label, formLabelWidth))+m.renderInput(v.inputs[i], max(width-formLabelWidth, 1)))

		msg := v.errors[f]
		lines = append(lines, bg.Spaces(formLabelWidth)+bg.Render(msg, styles.DangerText))
	}

	button := styles.Text.Bold(true)
	if v.focus == v.buttonIndex() {
		button = styles.Selected.Bold(true)
	}
	lines = append(lines, button.Render(submitLabel))

	switch {
	case v.submitting:
		lines = append(lines, bg.Render("Saving...", styles.MutedText))
	case v.err != "":
		lines = append(lines, bg.Render(v.err, styles.DangerText))
	default:
		lines = append(lines, bg.Render("* required", styles.FaintText))
	}
	return strings.Join(lines, "\n")
}

func ternaryInt(cond bool, a, b int) int {
	if cond {
		return a
	}
	return b
}
