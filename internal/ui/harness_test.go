package ui

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/five82/readinglist/internal/books"
	"github.com/five82/readinglist/internal/config"
)

const cmdTimeout = 200 * time.Millisecond

type updateCall struct {
	id    int64
	patch books.Patch
}

// fakeService is an in-memory books.Service that records every call.
type fakeService struct {
	mu sync.Mutex

	books []books.Book

	listErr   error
	getErr    error
	createErr error
	updateErr error
	deleteErr error

	listCalls int
	getCalls  []int64
	created   []books.NewBook
	updates   []updateCall
	deleted   []int64
}

func newFakeService(list ...books.Book) *fakeService {
	return &fakeService{books: list}
}

func (f *fakeService) List(context.Context) ([]books.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]books.Book, len(f.books))
	for i, b := range f.books {
		out[i] = b.Clone()
	}
	return out, nil
}

func (f *fakeService) Get(_ context.Context, id int64) (books.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls = append(f.getCalls, id)
	if f.getErr != nil {
		return books.Book{}, f.getErr
	}
	for _, b := range f.books {
		if b.ID == id {
			return b.Clone(), nil
		}
	}
	return books.Book{}, books.ErrFetchBook
}

func (f *fakeService) Create(_ context.Context, nb books.NewBook) (books.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, nb)
	if f.createErr != nil {
		return books.Book{}, f.createErr
	}
	var next int64 = 1
	for _, b := range f.books {
		next = max(next, b.ID+1)
	}
	book := books.Book{
		ID:        next,
		Title:     nb.Title,
		Author:    nb.Author,
		Published: nb.Published,
		Pages:     nb.Pages,
		Genres:    nb.Genres,
		Rating:    nb.Rating,
		ISBN:      nb.ISBN,
	}
	f.books = append(f.books, book)
	return book.Clone(), nil
}

func (f *fakeService) Update(_ context.Context, id int64, patch books.Patch) (books.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, updateCall{id: id, patch: patch})
	if f.updateErr != nil {
		return books.Book{}, f.updateErr
	}
	for i, b := range f.books {
		if b.ID == id {
			f.books[i] = patch.Apply(b)
			return f.books[i].Clone(), nil
		}
	}
	return books.Book{}, books.ErrUpdateBook
}

func (f *fakeService) Delete(_ context.Context, id int64) (books.DeleteResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	if f.deleteErr != nil {
		return books.DeleteResponse{}, f.deleteErr
	}
	for i, b := range f.books {
		if b.ID == id {
			f.books = append(f.books[:i], f.books[i+1:]...)
			break
		}
	}
	return books.DeleteResponse{Message: fmt.Sprintf("Book %d deleted", id)}, nil
}

func (f *fakeService) snapshot() (listCalls int, created []books.NewBook, updates []updateCall, deleted []int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls,
		append([]books.NewBook(nil), f.created...),
		append([]updateCall(nil), f.updates...),
		append([]int64(nil), f.deleted...)
}

// harness drives a Model the way the Bubble Tea runtime would: every command
// is executed and its message fed back into Update.
type harness struct {
	t   *testing.T
	m   Model
	svc *fakeService
}

func newHarness(t *testing.T, svc *fakeService, start string, width, height int) *harness {
	t.Helper()
	m := New(Options{
		Service:   svc,
		Config:    &config.Config{APIURL: "http://localhost:3001"},
		StartPath: start,
	})
	h := &harness{t: t, m: m, svc: svc}
	h.send(tea.WindowSizeMsg{Width: width, Height: height})
	h.run(m.Init())
	return h
}

func (h *harness) send(msg tea.Msg) {
	h.t.Helper()
	next, cmd := h.m.Update(msg)
	h.m = next.(Model)
	h.run(cmd)
}

func (h *harness) run(cmd tea.Cmd) {
	h.t.Helper()
	for _, msg := range h.collect(cmd) {
		h.send(msg)
	}
}

// collect executes cmd and flattens batches. Quit and commands that do not
// return in time are dropped.
func (h *harness) collect(cmd tea.Cmd) []tea.Msg {
	h.t.Helper()
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(cmdTimeout):
		return nil
	}

	switch msg := msg.(type) {
	case nil, tea.QuitMsg:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, h.collect(c)...)
		}
		return out
	default:
		return []tea.Msg{msg}
	}
}

func (h *harness) typeText(s string) {
	h.t.Helper()
	for _, r := range s {
		h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func (h *harness) press(k tea.KeyType) {
	h.t.Helper()
	h.send(tea.KeyMsg{Type: k})
}

// click sends a left click at screen cell (x, y).
func (h *harness) click(x, y int) {
	h.t.Helper()
	h.send(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
}

// clickContent clicks cell (x, y) of the content box interior.
func (h *harness) clickContent(x, y int) {
	h.t.Helper()
	h.click(x+boxBorder, y+h.m.contentTop()+boxBorder)
}

func (h *harness) view() string {
	return ansi.Strip(h.m.View())
}

// rowTitles returns the visible titles of the book list in screen order.
func (h *harness) rowTitles() []string {
	rows := h.m.list.visible()
	titles := make([]string, len(rows))
	for i, b := range rows {
		titles[i] = b.Title
	}
	return titles
}

func sampleBooks() []books.Book {
	return []books.Book{
		{ID: 1, Title: "Emma", Author: "Jane Austen", Published: 1815, Pages: 474, Genres: []string{"classic", "romance"}, Rating: 3.9, ISBN: "9780141439587"},
		{ID: 7, Title: "Dune", Author: "Frank Herbert", Published: 1965, Pages: 412, Genres: []string{"sci-fi", "classic"}, Rating: 4.2, ISBN: "0441013597"},
		{ID: 9, Title: "Neuromancer", Author: "William Gibson", Published: 1984, Pages: 271, Genres: []string{"sci-fi", "cyberpunk"}, Rating: 3.8},
	}
}
