package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRoute(t *testing.T) {
	tests := []struct {
		path string
		kind RouteKind
		id   int64
	}{
		{"/", RouteBooks, 0},
		{"", RouteBooks, 0},
		{"/books/add", RouteAddBook, 0},
		{"/books/add/", RouteAddBook, 0},
		{"/books/7", RouteBookDetail, 7},
		{"/books/42/", RouteBookDetail, 42},
		{"/books/0", RouteNotFound, 0},
		{"/books/-3", RouteNotFound, 0},
		{"/books/+3", RouteNotFound, 0},
		{"/books/abc", RouteNotFound, 0},
		{"/books/", RouteNotFound, 0},
		{"/books", RouteNotFound, 0},
		{"/authors", RouteNotFound, 0},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			r := ParseRoute(tt.path)
			assert.Equal(t, tt.kind, r.Kind)
			assert.Equal(t, tt.id, r.ID)
			assert.Equal(t, tt.path, r.Raw)
		})
	}
}

func TestRoutePathRoundTrip(t *testing.T) {
	for _, path := range []string{PathHome, PathAddBook, BookPath(12)} {
		assert.Equal(t, path, ParseRoute(path).Path())
	}
}

func TestRouteTitle(t *testing.T) {
	assert.Equal(t, "Book List", ParseRoute("/").Title())
	assert.Equal(t, "Add Book", ParseRoute("/books/add").Title())
	assert.Equal(t, "Book #7", ParseRoute("/books/7").Title())
	assert.Equal(t, "Not Found", ParseRoute("/nope").Title())
}
