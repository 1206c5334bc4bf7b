package ui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/readinglist/internal/books"
	"github.com/five82/readinglist/internal/catalog"
)

// fillForm types values into the form fields in display order, tabbing
// between them.
func fillForm(h *harness, values ...string) {
	h.t.Helper()
	for i, v := range values {
		if i > 0 {
			h.press(tea.KeyTab)
		}
		h.typeText(v)
	}
}

var duneForm = []string{"Dune", "Frank Herbert", "1965", "412", "sci-fi, classic", "4.5", "0441013597"}

func TestForm_MountFocusesFirstField(t *testing.T) {
	h := newHarness(t, newFakeService(), PathAddBook, testWidth, testHeight)

	assert.Equal(t, 0, h.m.form.focus)
	assert.True(t, h.m.inputFocused())

	view := h.view()
	assert.Contains(t, view, "Add Book")
	assert.Contains(t, view, "[ Add Book ]")
	assert.Contains(t, view, "Title *")
	assert.Contains(t, view, "ISBN")
}

func TestForm_RequiredFieldsBlockSubmit(t *testing.T) {
	svc := newFakeService()
	h := newHarness(t, svc, PathAddBook, testWidth, testHeight)

	fillForm(h, "Dune", "Frank Herbert")
	h.send(tea.KeyMsg{Type: tea.KeyCtrlS})

	_, created, _, _ := svc.snapshot()
	assert.Empty(t, created)
	assert.Equal(t, RouteAddBook, h.m.Route().Kind)
	assert.Equal(t, catalog.MsgRequired, h.m.form.errors[books.FieldPublished])
	assert.NotContains(t, h.m.form.errors, books.FieldISBN)
	assert.Contains(t, h.view(), catalog.MsgRequired)

	// Focus jumps to the first invalid field.
	assert.Equal(t, 2, h.m.form.focus)
}

func TestForm_TypingClearsFieldError(t *testing.T) {
	h := newHarness(t, newFakeService(), PathAddBook, testWidth, testHeight)

	h.send(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.Len(t, h.m.form.errors, 6)
	require.Equal(t, 0, h.m.form.focus)

	h.typeText("D")
	assert.NotContains(t, h.m.form.errors, books.FieldTitle)
	assert.Contains(t, h.m.form.errors, books.FieldAuthor)
}

func TestForm_NumericErrors(t *testing.T) {
	svc := newFakeService()
	h := newHarness(t, svc, PathAddBook, testWidth, testHeight)

	fillForm(h, "Dune", "Frank Herbert", "nineteen", "412", "sci-fi", "great")
	h.send(tea.KeyMsg{Type: tea.KeyCtrlS})

	_, created, _, _ := svc.snapshot()
	assert.Empty(t, created)
	assert.Equal(t, catalog.MsgWholeNumber, h.m.form.errors[books.FieldPublished])
	assert.Equal(t, catalog.MsgNumber, h.m.form.errors[books.FieldRating])
}

func TestForm_SubmitSendsCoercedBook(t *testing.T) {
	svc := newFakeService(sampleBooks()[0])
	h := newHarness(t, svc, PathAddBook, testWidth, testHeight)

	fillForm(h, duneForm...)
	h.send(tea.KeyMsg{Type: tea.KeyCtrlS})

	_, created, _, _ := svc.snapshot()
	require.Len(t, created, 1)
	assert.Equal(t, books.NewBook{
		Title:     "Dune",
		Author:    "Frank Herbert",
		Published: 1965,
		Pages:     412,
		Genres:    []string{"sci-fi", "classic"},
		Rating:    4.5,
		ISBN:      "0441013597",
	}, created[0])

	assert.Equal(t, RouteBooks, h.m.Route().Kind)
	assert.Equal(t, []string{"Emma", "Dune"}, h.rowTitles())
	assert.Contains(t, h.view(), `Added "Dune"`)
}

func TestForm_EnterOnLastFieldSubmits(t *testing.T) {
	svc := newFakeService()
	h := newHarness(t, svc, PathAddBook, testWidth, testHeight)

	fillForm(h, duneForm...)
	h.press(tea.KeyEnter)

	_, created, _, _ := svc.snapshot()
	assert.Len(t, created, 1)
	assert.Equal(t, RouteBooks, h.m.Route().Kind)
}

func TestForm_CreateFailureKeepsForm(t *testing.T) {
	svc := newFakeService()
	svc.createErr = errors.New("api POST /v1/books returned status 500")
	h := newHarness(t, svc, PathAddBook, testWidth, testHeight)

	fillForm(h, duneForm...)
	h.send(tea.KeyMsg{Type: tea.KeyCtrlS})

	assert.Equal(t, RouteAddBook, h.m.Route().Kind)
	assert.False(t, h.m.form.submitting)
	assert.Equal(t, "Dune", h.m.form.inputs[0].Value())
	assert.Contains(t, h.view(), "Failed to add book")
}

func TestForm_ButtonClickSubmits(t *testing.T) {
	svc := newFakeService()
	h := newHarness(t, svc, PathAddBook, testWidth, testHeight)

	fillForm(h, duneForm...)
	h.clickContent(2, 2*len(catalog.FormFields))

	_, created, _, _ := svc.snapshot()
	assert.Len(t, created, 1)
}

func TestForm_ClickFocusesInput(t *testing.T) {
	h := newHarness(t, newFakeService(), PathAddBook, testWidth, testHeight)

	h.clickContent(formLabelWidth+1, 6)
	assert.Equal(t, 3, h.m.form.focus)

	h.clickContent(formLabelWidth+1, 7) // message row
	assert.False(t, h.m.form.focused())
}

func TestForm_EscBlursThenLeaves(t *testing.T) {
	h := newHarness(t, newFakeService(), PathAddBook, testWidth, testHeight)

	h.press(tea.KeyEsc)
	assert.False(t, h.m.form.focused())
	assert.Equal(t, RouteAddBook, h.m.Route().Kind)

	h.press(tea.KeyEsc)
	assert.Equal(t, RouteBooks, h.m.Route().Kind)
}

func TestForm_LateCreateAfterLeavingIsIgnored(t *testing.T) {
	h := newHarness(t, newFakeService(), PathAddBook, testWidth, testHeight)
	seq := h.m.form.seq

	h.run(h.m.navigate(PathHome))
	h.send(bookCreatedMsg{seq: seq, book: books.Book{ID: 4, Title: "Late"}})

	assert.Equal(t, RouteBooks, h.m.Route().Kind)
	assert.Empty(t, h.m.status.text)
}
