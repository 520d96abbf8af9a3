package ui

// Panel dimensions, in terminal cells.
const (
	// BorderRows is the rows taken by the top and bottom border.
	BorderRows = 2

	// PanelChromeWidth is the columns taken by border and padding on both sides.
	PanelChromeWidth = 4

	// MinPanelWidth keeps the content renderer from wrapping every word.
	MinPanelWidth = 20

	// HandleWidth is the length of the grab handle.
	HandleWidth = 8

	// StatusRows is the status line at the top of the backdrop.
	StatusRows = 1
)
