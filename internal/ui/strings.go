package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/five82/readinglist/internal/books"
)

var titleCaser = cases.Title(language.English)

// fieldLabel is the column heading for f: ID and ISBN are acronyms, every
// other field is capitalised.
func fieldLabel(f books.Field) string {
	switch f {
	case books.FieldID, books.FieldISBN:
		return strings.ToUpper(string(f))
	default:
		return titleCaser.String(string(f))
	}
}

// truncate shortens a string to the given cell width, adding an ellipsis if
// needed.
func truncate(value string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if ansi.StringWidth(value) <= limit {
		return value
	}
	if limit <= 3 {
		return ansi.Truncate(value, limit, "")
	}
	return ansi.Truncate(value, limit, "...")
}

// padRight pads a string with spaces to the given cell width.
func padRight(s string, width int) string {
	w := ansi.StringWidth(s)
	if width <= 0 || w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// cell truncates then pads s to exactly width cells.
func cell(s string, width int) string {
	return padRight(truncate(s, width), width)
}

// clipLines cuts every line of s to width cells.
func clipLines(s string, width int) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = ansi.Truncate(line, width, "")
	}
	return strings.Join(lines, "\n")
}
