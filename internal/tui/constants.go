package tui

// Package-level constants to avoid magic numbers and improve readability.
const (
	// progressMaxWidth caps the remaining-time bar on wide terminals.
	progressMaxWidth = 48
	// progressPadding is the horizontal space kept free around the bar.
	progressPadding = 4

	// wheelRadius is how many neighbouring rows each picker column shows above and below the selection.
	wheelRadius = 1

	alertTitle   = "Timer Finished"
	alertMessage = "Your countdown is over"
	alertAction  = "Ok"
)
