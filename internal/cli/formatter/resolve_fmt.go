package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/pathfinder/internal/resolver"
)

// FormatResolution renders the outcome of a resolve call.
func FormatResolution(res resolver.Result) string {
	if !res.Resolved() {
		return StyleRed.Render("✖ No pathway matched.") + "\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", Bold(res.Pathway.Name), Dim("("+res.Pathway.ID+")"))
	fmt.Fprintf(&b, "%s %s\n", Dim("source:"), MatchBadge(res.MatchedFrom))
	if res.MatchedVia != "" {
		fmt.Fprintf(&b, "%s %s\n", Dim("input:"), res.MatchedVia)
	}
	if prov := res.Pathway.Provenance(); prov != "" {
		fmt.Fprintf(&b, "%s\n", StyleYellow.Render(prov))
	}
	return b.String()
}

// FormatTraces renders recorded resolution diagnostics, newest first.
func FormatTraces(events []resolver.TraceEvent, now time.Time) string {
	if len(events) == 0 {
		return Dim("No resolution traces recorded.") + "\n"
	}

	rows := make([][]string, 0, len(events))
	for i := len(events) - 1; i >= 0; i-- {
		e := events[i]
		var kind string
		switch e.Kind {
		case resolver.TraceUnresolved:
			kind = StyleRed.Render(string(e.Kind))
		case resolver.TraceFallback:
			kind = StylePurple.Render(string(e.Kind))
		default:
			kind = StyleYellow.Render(string(e.Kind))
		}
		rows = append(rows, []string{
			HumanTimestamp(e.At, now),
			kind,
			OrDash(strings.Join(e.Attempted, ", ")),
			OrDash(e.Specialty),
			OrDash(e.PathwayID),
			OrDash(string(e.Rule)),
		})
	}
	return RenderTable([]string{"WHEN", "KIND", "ATTEMPTED", "SPECIALTY", "PATHWAY", "RULE"}, rows)
}
