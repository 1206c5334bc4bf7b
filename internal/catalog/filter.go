package catalog

import (
	"strings"

	"github.com/five82/readinglist/internal/books"
)

// searchFields are matched by Filter. Published is intentionally absent.
var searchFields = []books.Field{
	books.FieldID,
	books.FieldTitle,
	books.FieldAuthor,
	books.FieldPages,
	books.FieldRating,
	books.FieldISBN,
}

// Filter returns the books whose id, title, author, any genre, pages, rating
// or isbn contain term, ignoring case. An empty term returns list itself.
func Filter(list []books.Book, term string) []books.Book {
	if term == "" {
		return list
	}
	needle := strings.ToLower(term)
	out := make([]books.Book, 0, len(list))
	for _, book := range list {
		if Matches(book, needle) {
			out = append(out, book)
		}
	}
	return out
}

// Matches reports whether book contains the already lower-cased needle in one
// of the searched fields.
func Matches(book books.Book, needle string) bool {
	for _, field := range searchFields {
		if strings.Contains(strings.ToLower(book.Text(field)), needle) {
			return true
		}
	}
	for _, genre := range book.Genres {
		if strings.Contains(strings.ToLower(genre), needle) {
			return true
		}
	}
	return false
}
