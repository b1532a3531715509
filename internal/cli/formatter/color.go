package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/pathfinder/internal/domain"
	"github.com/alexanderramin/pathfinder/internal/resolver"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// PercentStyle colours completion: green from 66%, yellow from 33%, red below.
func PercentStyle(pct int) lipgloss.Style {
	switch {
	case pct >= 66:
		return StyleGreen
	case pct >= 33:
		return StyleYellow
	default:
		return StyleRed
	}
}

// MatchBadge labels how a pathway reference was resolved. Heuristic and
// fallback matches stand out so users can double-check them.
func MatchBadge(src resolver.MatchSource) string {
	switch src {
	case resolver.FromPathwayIDs, resolver.FromPathwayID, resolver.FromTrainingPaths:
		return StyleGreen.Render("● " + string(src))
	case resolver.FromNameToID, resolver.FromDirectName:
		return StyleBlue.Render("● " + string(src))
	case resolver.FromFuzzyName:
		return StyleYellow.Render("◐ " + string(src))
	case resolver.FromFallback:
		return StylePurple.Render("◌ " + string(src))
	default:
		return StyleRed.Render("✖ unresolved")
	}
}

// MilestoneStatusPill returns a colored indicator for a user milestone status.
func MilestoneStatusPill(status domain.MilestoneStatus) string {
	switch status {
	case domain.MilestoneDone:
		return StyleGreen.Render("✔ Done")
	case domain.MilestoneInProgress:
		return StyleYellow.Render("● In Progress")
	case domain.MilestoneTodo:
		return StyleBlue.Render("○ Todo")
	case domain.MilestoneNotStarted:
		return StyleDim.Render("○ Not started")
	default:
		return StyleDim.Render(string(status))
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
