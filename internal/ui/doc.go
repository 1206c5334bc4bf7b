// Package ui is the terminal front end of the reading list, built on Bubble
// Tea.
//
// # Layout
//
//	row 0        navigation bar: logo, Home, Add Book (or a Menu toggle)
//	rows 1..     open menu entries, when collapsed and open
//	content box  the mounted route, framed with its title
//	status line  last mutation result or error
//	command bar  key hints for the route and the theme name
//
// # Routes
//
// The router mounts one view at a time:
//
//	/              list.go    book table with search, sort and delete
//	/books/add     add.go     add-book form
//	/books/{id}    detail.go  one book, editable a field at a time
//
// Anything else renders "Page not found". Navigating unmounts the current
// view, which cancels its in-flight load.
//
// # Data flow
//
// Network calls run as tea.Cmds and report back as messages defined in
// commands.go. Loads carry a state.Token and results for a token that is no
// longer current are dropped. Mutations follow one policy: delete and inline
// edits change local state first and roll back with a visible error if the
// server refuses; create waits for the server and keeps the form on failure.
//
// # Input
//
// Keys go to the help overlay, then the open menu, then a focused text input,
// then the global bindings, then the mounted view. Mouse clicks are mapped to
// the same actions by screen position; the layout helpers (listColumns,
// detailCells, linkSpans) are shared between rendering and hit testing.
package ui
