package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/pathfinder/internal/progress"
)

const barWidth = 24

// FormatProgress renders each pathway a user holds with its bar, the
// requirements still missing and the next steps.
func FormatProgress(userID string, results []progress.Result) string {
	var b strings.Builder
	b.WriteString(Header("Progress · " + userID))
	b.WriteString("\n\n")

	if len(results) == 0 {
		b.WriteString(Dim("No pathways on this profile. Add some with `pathfinder profile set`.") + "\n")
		return b.String()
	}

	for i, r := range results {
		if i > 0 {
			b.WriteString("\n")
		}
		writeResult(&b, r)
	}
	return b.String()
}

func writeResult(b *strings.Builder, r progress.Result) {
	if !r.Resolved {
		fmt.Fprintf(b, "%s  %s\n", Bold(r.Pathway.Name), MatchBadge(r.MatchedFrom))
		fmt.Fprintf(b, "  %s\n", Dim("no pathway matches this reference ("+r.Pathway.ID+")"))
		return
	}

	fmt.Fprintf(b, "%s %s  %s\n", Bold(r.Pathway.Name), Dim("("+r.Pathway.ID+")"), MatchBadge(r.MatchedFrom))
	fmt.Fprintf(b, "  %s  %s\n",
		RenderProgress(float64(r.PercentComplete)/100, barWidth),
		Dim(fmt.Sprintf("%d of %d", r.CompletedCount, r.TotalRequired)))

	for _, req := range r.Completed {
		fmt.Fprintf(b, "  %s %s\n", StyleGreen.Render("✔"), req.Name)
	}
	for _, req := range r.Missing {
		fmt.Fprintf(b, "  %s %s\n", StyleDim.Render("○"), req.Name)
	}
	for _, m := range r.CustomMilestones {
		mark := StyleDim.Render("○")
		if m.Completed {
			mark = StyleGreen.Render("✔")
		}
		fmt.Fprintf(b, "  %s %s %s\n", mark, m.Name, StylePurple.Render("custom"))
	}

	if len(r.NextSteps) > 0 {
		names := make([]string, 0, len(r.NextSteps))
		for _, s := range r.NextSteps {
			names = append(names, s.Name)
		}
		fmt.Fprintf(b, "  %s %s\n", StyleYellow.Render("next:"), strings.Join(names, ", "))
	}
}

// SummaryRow is one user/pathway line in a multi-user summary.
type SummaryRow struct {
	UserID string
	Result progress.Result
}

// FormatProgressSummary renders one line per user and pathway.
func FormatProgressSummary(rows []SummaryRow) string {
	if len(rows) == 0 {
		return Dim("No user profiles found.") + "\n"
	}

	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		r := row.Result
		pct := Dim("--")
		bar := ""
		if r.Resolved {
			pct = PercentStyle(r.PercentComplete).Render(strconv.Itoa(r.PercentComplete) + "%")
			bar = RenderCompactBar(float64(r.PercentComplete)/100, 12, false)
		}
		cells = append(cells, []string{
			row.UserID,
			r.Pathway.Name,
			bar,
			pct,
			strconv.Itoa(r.CompletedCount) + "/" + strconv.Itoa(r.TotalRequired),
		})
	}
	return RenderTable([]string{"USER", "PATHWAY", "", "DONE", "COUNT"}, cells)
}
