package ui

import (
	"strconv"
	"strings"
)

// RouteKind identifies which view a path mounts.
type RouteKind int

const (
	RouteNotFound RouteKind = iota
	RouteBooks
	RouteAddBook
	RouteBookDetail
)

// Paths handled by the router.
const (
	PathHome    = "/"
	PathAddBook = "/books/add"
	bookPrefix  = "/books/"
)

// Route is a parsed path.
type Route struct {
	Kind RouteKind
	ID   int64  // set for RouteBookDetail
	Raw  string // path as requested
}

// ParseRoute matches path against the known routes. /books/add is matched
// before /books/{id}; an id must be a positive integer.
func ParseRoute(path string) Route {
	raw := strings.TrimSpace(path)
	clean := raw
	if clean == "" {
		clean = PathHome
	}
	if len(clean) > 1 {
		clean = strings.TrimSuffix(clean, "/")
	}

	switch {
	case clean == PathHome:
		return Route{Kind: RouteBooks, Raw: raw}
	case clean == PathAddBook:
		return Route{Kind: RouteAddBook, Raw: raw}
	case strings.HasPrefix(clean, bookPrefix):
		rest := strings.TrimPrefix(clean, bookPrefix)
		id, err := strconv.ParseInt(rest, 10, 64)
		if err != nil || id <= 0 || strings.ContainsAny(rest, "+-") {
			return Route{Kind: RouteNotFound, Raw: raw}
		}
		return Route{Kind: RouteBookDetail, ID: id, Raw: raw}
	default:
		return Route{Kind: RouteNotFound, Raw: raw}
	}
}

// BookPath returns the detail path for id.
func BookPath(id int64) string {
	return bookPrefix + strconv.FormatInt(id, 10)
}

// Path returns the canonical path of r.
func (r Route) Path() string {
	switch r.Kind {
	case RouteBooks:
		return PathHome
	case RouteAddBook:
		return PathAddBook
	case RouteBookDetail:
		return BookPath(r.ID)
	default:
		return r.Raw
	}
}

// Title is shown on the content box of the route.
func (r Route) Title() string {
	switch r.Kind {
	case RouteBooks:
		return "Book List"
	case RouteAddBook:
		return "Add Book"
	case RouteBookDetail:
		return "Book #" + strconv.FormatInt(r.ID, 10)
	default:
		return "Not Found"
	}
}
