// Package catalog holds the view-independent logic of the reading list UI:
// search filtering and column sorting of the book list, validation and
// coercion of the add-book form, parsing of inline edits, and the
// remove/restore helpers behind optimistic deletes.
//
// Nothing here performs I/O; the ui package feeds it data fetched through
// the books client.
package catalog
