package catalog

import (
	"slices"

	"github.com/five82/readinglist/internal/books"
)

// Removal remembers where an optimistically removed book sat so it can be put
// back if the server rejects the delete.
type Removal struct {
	Book  books.Book
	Index int
}

// Remove returns list without the book with the given id. ok is false when no
// such book exists, in which case list is returned unchanged.
func Remove(list []books.Book, id int64) (rest []books.Book, removed Removal, ok bool) {
	idx := slices.IndexFunc(list, func(b books.Book) bool { return b.ID == id })
	if idx < 0 {
		return list, Removal{}, false
	}
	rest = make([]books.Book, 0, len(list)-1)
	rest = append(rest, list[:idx]...)
	rest = append(rest, list[idx+1:]...)
	return rest, Removal{Book: list[idx], Index: idx}, true
}

// Restore puts a removed book back at its original position, clamped to the
// current length. A book whose id is already present is not duplicated.
func Restore(list []books.Book, removed Removal) []books.Book {
	if slices.ContainsFunc(list, func(b books.Book) bool { return b.ID == removed.Book.ID }) {
		return list
	}
	idx := min(max(removed.Index, 0), len(list))
	return slices.Insert(slices.Clone(list), idx, removed.Book)
}
