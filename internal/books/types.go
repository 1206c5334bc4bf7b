package books

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Book mirrors the book resource served under /v1/books.
type Book struct {
	ID        int64    `json:"id"`
	Title     string   `json:"title"`
	Author    string   `json:"author"`
	Published int      `json:"published"`
	Pages     int      `json:"pages"`
	Genres    []string `json:"genres"`
	Rating    float64  `json:"rating"`
	ISBN      string   `json:"isbn"`
}

// NewBook is the create payload. The server assigns the id.
type NewBook struct {
	Title     string   `json:"title"`
	Author    string   `json:"author"`
	Published int      `json:"published"`
	Pages     int      `json:"pages"`
	Genres    []string `json:"genres"`
	Rating    float64  `json:"rating"`
	ISBN      string   `json:"isbn"`
}

// listEnvelope mirrors GET /v1/books. Books stays raw so a non-array payload
// can be told apart from a transport failure.
type listEnvelope struct {
	Books json.RawMessage `json:"books"`
}

// bookEnvelope mirrors the single-book responses of get, create and update.
type bookEnvelope struct {
	Book Book `json:"book"`
}

// DeleteResponse mirrors DELETE /v1/books/{id}.
type DeleteResponse struct {
	Message string `json:"message"`
}

// GenresText renders genres the way every view shows them.
func (b Book) GenresText() string {
	return strings.Join(b.Genres, ", ")
}

// RatingText renders the rating in its shortest decimal form (4.5, 4).
func (b Book) RatingText() string {
	return strconv.FormatFloat(b.Rating, 'f', -1, 64)
}

// Clone returns a copy that shares no slices with b.
func (b Book) Clone() Book {
	dup := b
	if b.Genres != nil {
		dup.Genres = append([]string(nil), b.Genres...)
	}
	return dup
}
