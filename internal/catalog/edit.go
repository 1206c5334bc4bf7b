package catalog

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/five82/readinglist/internal/books"
)

// EditText is the text an inline editor starts with for field.
func EditText(book books.Book, field books.Field) string {
	return book.Text(field)
}

// ParseEdit converts editor text into a typed patch for field.
func ParseEdit(field books.Field, text string) (books.Patch, error) {
	if !field.Editable() {
		return books.Patch{}, fmt.Errorf("%s is read-only", field)
	}
	trimmed := strings.TrimSpace(text)
	switch field.Kind() {
	case books.KindInt:
		n, err := strconv.Atoi(trimmed)
		if err != nil {
			return books.Patch{}, fmt.Errorf("%s: %s", field, strings.ToLower(MsgWholeNumber))
		}
		return books.NewPatch(field, n)
	case books.KindFloat:
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return books.Patch{}, fmt.Errorf("%s: %s", field, strings.ToLower(MsgNumber))
		}
		return books.NewPatch(field, f)
	case books.KindList:
		return books.NewPatch(field, SplitGenres(text))
	default:
		return books.NewPatch(field, text)
	}
}
