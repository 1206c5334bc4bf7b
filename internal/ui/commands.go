package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/readinglist/internal/books"
	"github.com/five82/readinglist/internal/prefs"
	"github.com/five82/readinglist/internal/state"
)

// Messages

type booksLoadedMsg struct {
	token state.Token
	books []books.Book
	err   error
}

type bookLoadedMsg struct {
	token state.Token
	id    int64
	book  books.Book
	err   error
}

type bookCreatedMsg struct {
	seq  int
	book books.Book
	err  error
}

type bookDeletedMsg struct {
	id  int64
	err error
}

type bookUpdatedMsg struct {
	id    int64
	visit uint64
	seq   uint64
	patch books.Patch
	book  books.Book
	err   error
}

type prefsSavedMsg struct {
	err error
}

// Commands

func listBooksCmd(ctx context.Context, svc books.Service, tok state.Token) tea.Cmd {
	return func() tea.Msg {
		list, err := svc.List(ctx)
		return booksLoadedMsg{token: tok, books: list, err: err}
	}
}

func getBookCmd(ctx context.Context, svc books.Service, tok state.Token, id int64) tea.Cmd {
	return func() tea.Msg {
		book, err := svc.Get(ctx, id)
		return bookLoadedMsg{token: tok, id: id, book: book, err: err}
	}
}

func createBookCmd(ctx context.Context, svc books.Service, seq int, book books.NewBook) tea.Cmd {
	return func() tea.Msg {
		created, err := svc.Create(ctx, book)
		return bookCreatedMsg{seq: seq, book: created, err: err}
	}
}

func deleteBookCmd(ctx context.Context, svc books.Service, id int64) tea.Cmd {
	return func() tea.Msg {
		_, err := svc.Delete(ctx, id)
		return bookDeletedMsg{id: id, err: err}
	}
}

func updateBookCmd(ctx context.Context, svc books.Service, id int64, visit, seq uint64, patch books.Patch) tea.Cmd {
	return func() tea.Msg {
		book, err := svc.Update(ctx, id, patch)
		return bookUpdatedMsg{id: id, visit: visit, seq: seq, patch: patch, book: book, err: err}
	}
}

func savePrefsCmd(path string, p prefs.Prefs) tea.Cmd {
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		return prefsSavedMsg{err: prefs.Save(path, p)}
	}
}
