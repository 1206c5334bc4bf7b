package ui

// Terminal width thresholds for responsive layouts.
const (
	// NavCollapseWidth is the width below which the navigation links collapse
	// into a menu.
	NavCollapseWidth = 60

	// DetailStackWidth is the width below which the detail table is drawn as
	// one label/value line per field instead of a header row and a data row.
	DetailStackWidth = 90
)

// Fixed screen rows.
const (
	headerRows = 1 // navigation bar
	footerRows = 2 // status line + command bar
	boxBorder  = 1 // titled box border on each side
)

// Size used before the first tea.WindowSizeMsg arrives.
const (
	defaultWidth  = 100
	defaultHeight = 30
)
