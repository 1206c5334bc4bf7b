package catalog

import (
	"cmp"
	"slices"
	"strings"

	"github.com/five82/readinglist/internal/books"
)

// Order is the direction of the list sort.
type Order int

const (
	Ascending Order = iota
	Descending
)

func (o Order) String() string {
	if o == Descending {
		return "desc"
	}
	return "asc"
}

// Arrow is the indicator drawn next to the active column header.
func (o Order) Arrow() string {
	if o == Descending {
		return "↓"
	}
	return "↑"
}

// SortState is the active column and direction of the book list.
type SortState struct {
	Column books.Field
	Order  Order
}

// DefaultSort is id ascending.
func DefaultSort() SortState {
	return SortState{Column: books.FieldID, Order: Ascending}
}

// Toggle returns the state after the header of column is activated: the
// active column flips direction, any other column becomes active ascending.
func (s SortState) Toggle(column books.Field) SortState {
	if column == s.Column {
		if s.Order == Ascending {
			return SortState{Column: column, Order: Descending}
		}
		return SortState{Column: column, Order: Ascending}
	}
	return SortState{Column: column, Order: Ascending}
}

// Sort returns a sorted copy of list. Values compare by their raw type:
// numbers numerically, text lexically, genres by their joined text. Equal
// values keep their input order.
func Sort(list []books.Book, state SortState) []books.Book {
	out := slices.Clone(list)
	slices.SortStableFunc(out, func(a, b books.Book) int {
		c := Compare(a, b, state.Column)
		if state.Order == Descending {
			return -c
		}
		return c
	})
	return out
}

// Compare orders a and b by the raw value of column.
func Compare(a, b books.Book, column books.Field) int {
	switch column {
	case books.FieldID:
		return cmp.Compare(a.ID, b.ID)
	case books.FieldPublished:
		return cmp.Compare(a.Published, b.Published)
	case books.FieldPages:
		return cmp.Compare(a.Pages, b.Pages)
	case books.FieldRating:
		return cmp.Compare(a.Rating, b.Rating)
	case books.FieldGenres:
		return strings.Compare(strings.Join(a.Genres, ","), strings.Join(b.Genres, ","))
	default:
		return strings.Compare(a.Text(column), b.Text(column))
	}
}
