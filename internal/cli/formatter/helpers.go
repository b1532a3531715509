package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/pathfinder/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// RelativeDateFrom returns a human-friendly relative date string from a reference time.
func RelativeDateFrom(t time.Time, now time.Time) string {
	days := int(math.Round(t.Sub(now).Hours() / 24))

	switch {
	case days == 0:
		return "Today"
	case days == -1:
		return "Yesterday"
	case days > 0:
		return "In the future"
	case days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	case days > -730:
		return fmt.Sprintf("%dmo ago", -days/30)
	default:
		return fmt.Sprintf("%dy ago", -days/365)
	}
}

// VerifiedLabel describes when a requirement was last checked against its
// source. Checks older than a year are flagged.
func VerifiedLabel(t *time.Time, now time.Time) string {
	if t == nil {
		return StyleDim.Render("unverified")
	}
	text := "verified " + strings.ToLower(RelativeDateFrom(*t, now))
	if now.Sub(*t) > 365*24*time.Hour {
		return StyleYellow.Render(text)
	}
	return StyleDim.Render(text)
}

// HumanTimestamp formats a trace timestamp relative to now.
func HumanTimestamp(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < 0:
		return t.Format("Jan 2 15:04")
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return t.Format("Jan 2 15:04")
	}
}

// CategoryBadge returns a coloured category label.
func CategoryBadge(c domain.RequirementCategory) string {
	switch c {
	case domain.CategoryExam:
		return StyleRed.Render(string(c))
	case domain.CategoryCertificate:
		return StyleBlue.Render(string(c))
	case domain.CategoryPlacement, domain.CategoryTraining:
		return StyleGreen.Render(string(c))
	case domain.CategoryPortfolio, domain.CategoryCourse:
		return StylePurple.Render(string(c))
	default:
		return StyleDim.Render("--")
	}
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// OrDash renders empty strings as a dimmed dash.
func OrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return StyleDim.Render("--")
	}
	return s
}
