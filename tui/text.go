package tui

// UI Text Constants
const (
	TextTitle = "📸 SnapFix Analysis"

	// Feed status
	TextLoading      = "Loading analyses..."
	TextRefreshing   = "Refreshing analysis..."
	TextErrorBanner  = "Failed to load analyses. Please try again later."
	TextScreenshots  = "Screenshots"
	TextDetailHeader = "Analysis Result"

	// Detail pane
	TextSelectPrompt = "Select a screenshot to view its analysis"
	TextNoAnalysis   = "No analysis available"

	// Empty state
	TextEmptyTitle = "No Screenshots Yet"
	TextEmptyIntro = "Press Win + Shift + S to capture a screenshot.\nThe analysis will appear here automatically."
)

// TextEmptySteps walks a new user through producing the first capture
var TextEmptySteps = []string{
	"Press Win + Shift + S to start capturing",
	"Select the area you want to capture",
	"Wait for the analysis to complete",
	"Results will appear here automatically",
}

// Footer
const (
	TextFooter = "←/→/↑/↓ select | tab section | pgup/pgdn scroll | r refresh | q quit"
)
