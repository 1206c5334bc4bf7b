package books

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Field identifies one attribute of a Book. The set is closed: only the
// constants below are valid.
type Field string

const (
	FieldID        Field = "id"
	FieldTitle     Field = "title"
	FieldAuthor    Field = "author"
	FieldPublished Field = "published"
	FieldPages     Field = "pages"
	FieldGenres    Field = "genres"
	FieldRating    Field = "rating"
	FieldISBN      Field = "isbn"
)

// Kind describes the Go type carried by a field.
type Kind int

const (
	KindText Kind = iota
	KindInt
	KindFloat
	KindList
	KindID
)

// Fields lists every book field in display order.
var Fields = []Field{
	FieldID,
	FieldTitle,
	FieldAuthor,
	FieldPublished,
	FieldPages,
	FieldGenres,
	FieldRating,
	FieldISBN,
}

// Kind returns the value kind of f.
func (f Field) Kind() Kind {
	switch f {
	case FieldID:
		return KindID
	case FieldPublished, FieldPages:
		return KindInt
	case FieldRating:
		return KindFloat
	case FieldGenres:
		return KindList
	default:
		return KindText
	}
}

// Valid reports whether f is one of the known fields.
func (f Field) Valid() bool {
	for _, known := range Fields {
		if f == known {
			return true
		}
	}
	return false
}

// Editable reports whether the client may change f. The id never is.
func (f Field) Editable() bool {
	return f.Valid() && f != FieldID
}

// Value returns the raw value of f on b.
func (b Book) Value(f Field) any {
	switch f {
	case FieldID:
		return b.ID
	case FieldTitle:
		return b.Title
	case FieldAuthor:
		return b.Author
	case FieldPublished:
		return b.Published
	case FieldPages:
		return b.Pages
	case FieldGenres:
		return append([]string(nil), b.Genres...)
	case FieldRating:
		return b.Rating
	case FieldISBN:
		return b.ISBN
	}
	return nil
}

// Text renders the value of f as shown in tables.
func (b Book) Text(f Field) string {
	switch f {
	case FieldID:
		return strconv.FormatInt(b.ID, 10)
	case FieldTitle:
		return b.Title
	case FieldAuthor:
		return b.Author
	case FieldPublished:
		return strconv.Itoa(b.Published)
	case FieldPages:
		return strconv.Itoa(b.Pages)
	case FieldGenres:
		return b.GenresText()
	case FieldRating:
		return b.RatingText()
	case FieldISBN:
		return b.ISBN
	}
	return ""
}

// Patch is a partial update carrying exactly one editable field.
type Patch struct {
	field Field
	value any
}

// NewPatch builds a patch after checking that value has the Go type f expects:
// string for text fields, int for published and pages, float64 for rating and
// []string for genres.
func NewPatch(f Field, value any) (Patch, error) {
	if !f.Editable() {
		return Patch{}, fmt.Errorf("field %q is not editable", f)
	}
	ok := false
	switch f.Kind() {
	case KindText:
		_, ok = value.(string)
	case KindInt:
		_, ok = value.(int)
	case KindFloat:
		_, ok = value.(float64)
	case KindList:
		var list []string
		list, ok = value.([]string)
		if ok {
			value = append([]string{}, list...)
		}
	}
	if !ok {
		return Patch{}, fmt.Errorf("field %q does not accept %T", f, value)
	}
	return Patch{field: f, value: value}, nil
}

// Field returns the patched field.
func (p Patch) Field() Field { return p.field }

// Value returns the patched value.
func (p Patch) Value() any { return p.value }

// IsZero reports whether p was built without NewPatch.
func (p Patch) IsZero() bool { return p.field == "" }

// Apply returns a copy of b with the patch applied.
func (p Patch) Apply(b Book) Book {
	out := b.Clone()
	switch p.field {
	case FieldTitle:
		out.Title = p.value.(string)
	case FieldAuthor:
		out.Author = p.value.(string)
	case FieldISBN:
		out.ISBN = p.value.(string)
	case FieldPublished:
		out.Published = p.value.(int)
	case FieldPages:
		out.Pages = p.value.(int)
	case FieldRating:
		out.Rating = p.value.(float64)
	case FieldGenres:
		out.Genres = append([]string{}, p.value.([]string)...)
	}
	return out
}

// MarshalJSON encodes the patch as a one-key object such as {"rating":4.5}.
func (p Patch) MarshalJSON() ([]byte, error) {
	if p.IsZero() {
		return nil, fmt.Errorf("empty patch")
	}
	return json.Marshal(map[string]any{string(p.field): p.value})
}
