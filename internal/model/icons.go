package model

// Centralized icons for the UI components
// Using simple single-width characters for consistent terminal rendering
const (
	IconSelected    = "›" // Cursor row in the variable list
	IconScrollLeft  = "«" // Value continues to the left
	IconScrollRight = "»" // Value continues to the right
	IconMoreAbove   = "▲" // List continues above the window
	IconMoreBelow   = "▼" // List continues below the window
	IconEditing     = "✎" // Input line is active
	IconError       = "✗" // Last action failed
)
