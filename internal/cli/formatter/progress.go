package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

func clampPct(pct float64) float64 {
	if pct < 0 {
		return 0
	}
	if pct > 1 {
		return 1
	}
	return pct
}

// RenderProgress renders a static bar followed by the percentage, e.g.
// "████░░░░  45%". pct is a fraction in [0, 1].
func RenderProgress(pct float64, width int) string {
	pct = clampPct(pct)
	if width < 2 {
		width = 2
	}

	color := string(ColorGreen)
	if pct < 0.33 {
		color = string(ColorRed)
	} else if pct < 0.66 {
		color = string(ColorYellow)
	}

	bar := progress.New(
		progress.WithSolidFill(color),
		progress.WithFillCharacters([]rune(filledBlock)[0], []rune(emptyBlock)[0]),
		progress.WithoutPercentage(),
		progress.WithWidth(width),
	)
	return fmt.Sprintf("%s %3.0f%%", bar.ViewAs(pct), pct*100)
}

// RenderCompactBar renders bar blocks only, for table cells.
func RenderCompactBar(pct float64, width int, dim bool) string {
	pct = clampPct(pct)
	if width < 2 {
		width = 2
	}
	filled := int(pct * float64(width))
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
	if dim {
		return bar
	}
	return PercentStyle(int(pct * 100)).Render(bar)
}
