package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const narrowWidth = NavCollapseWidth - 10

func TestNavBar_WideShowsLinks(t *testing.T) {
	h := newHarness(t, newFakeService(sampleBooks()...), PathHome, testWidth, testHeight)

	view := h.view()
	assert.Contains(t, view, "Home")
	assert.Contains(t, view, "Add Book")
	assert.NotContains(t, view, menuLabel)
	assert.Contains(t, view, "http://localhost:3001")
}

func TestNavBar_LinkClickNavigates(t *testing.T) {
	h := newHarness(t, newFakeService(sampleBooks()...), PathHome, testWidth, testHeight)

	spans := linkSpans()
	h.click(spans[1].x+1, 0)
	assert.Equal(t, RouteAddBook, h.m.Route().Kind)

	h.click(spans[0].x, 0)
	assert.Equal(t, RouteBooks, h.m.Route().Kind)
}

func TestNavBar_CollapsesBelowThreshold(t *testing.T) {
	h := newHarness(t, newFakeService(sampleBooks()...), PathHome, narrowWidth, testHeight)

	view := h.view()
	assert.Contains(t, view, menuLabel)
	assert.False(t, h.m.nav.open)
	assert.Equal(t, 0, h.m.nav.rows(narrowWidth))
}

func TestNavBar_MenuKeys(t *testing.T) {
	h := newHarness(t, newFakeService(sampleBooks()...), PathHome, narrowWidth, testHeight)

	h.typeText("m")
	require.True(t, h.m.nav.open)
	assert.Equal(t, headerRows+len(navLinks), h.m.contentTop())
	assert.Equal(t, 0, h.m.nav.highlight, "active route is highlighted")

	h.typeText("j")
	h.press(tea.KeyEnter)
	assert.False(t, h.m.nav.open)
	assert.Equal(t, RouteAddBook, h.m.Route().Kind)
}

func TestNavBar_MenuEscCloses(t *testing.T) {
	h := newHarness(t, newFakeService(sampleBooks()...), PathHome, narrowWidth, testHeight)

	h.typeText("m")
	h.press(tea.KeyEsc)
	assert.False(t, h.m.nav.open)
	assert.Equal(t, RouteBooks, h.m.Route().Kind)
}

func TestNavBar_MenuClicks(t *testing.T) {
	h := newHarness(t, newFakeService(sampleBooks()...), PathHome, narrowWidth, testHeight)

	h.click(menuSpan().x, 0)
	require.True(t, h.m.nav.open)
	assert.Contains(t, h.view(), "  Add Book")

	h.click(3, headerRows+1)
	assert.False(t, h.m.nav.open)
	assert.Equal(t, RouteAddBook, h.m.Route().Kind)
}

func TestNavBar_ClickBelowMenuCloses(t *testing.T) {
	h := newHarness(t, newFakeService(sampleBooks()...), PathHome, narrowWidth, testHeight)

	h.click(menuSpan().x, 0)
	require.True(t, h.m.nav.open)
	h.click(5, testHeight-5)
	assert.False(t, h.m.nav.open)
}

func TestNavBar_WideningClosesMenu(t *testing.T) {
	h := newHarness(t, newFakeService(sampleBooks()...), PathHome, narrowWidth, testHeight)

	h.typeText("m")
	require.True(t, h.m.nav.open)
	h.send(tea.WindowSizeMsg{Width: testWidth, Height: testHeight})
	assert.False(t, h.m.nav.open)
}

func TestNavBar_LeavingDetailCommitsEdit(t *testing.T) {
	svc := newFakeService(sampleBooks()...)
	h := newHarness(t, svc, "/books/7", testWidth, testHeight)

	h.clickContent(detailTitleX, 1)
	require.True(t, h.m.detail.editing)
	h.typeText("!")
	h.click(linkSpans()[0].x, 0)

	assert.Equal(t, RouteBooks, h.m.Route().Kind)
	_, _, updates, _ := svc.snapshot()
	require.Len(t, updates, 1)
	assert.Equal(t, "Dune!", updates[0].patch.Value())
}

func TestNavBar_MenuEnterWhileEditingCommitsEdit(t *testing.T) {
	svc := newFakeService(sampleBooks()...)
	h := newHarness(t, svc, "/books/7", narrowWidth, testHeight)

	// Narrow detail views stack fields; the title is the second line.
	h.clickContent(stackLabelWidth+1, 1)
	require.True(t, h.m.detail.editing)
	h.typeText("!")

	h.click(menuSpan().x, 0)
	require.True(t, h.m.nav.open)
	require.Equal(t, 0, h.m.nav.highlight)
	h.press(tea.KeyEnter)

	assert.Equal(t, RouteBooks, h.m.Route().Kind)
	_, _, updates, _ := svc.snapshot()
	require.Len(t, updates, 1)
	assert.Equal(t, int64(7), updates[0].id)
	assert.Equal(t, "Dune!", updates[0].patch.Value())
}
