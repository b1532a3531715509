package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/pathfinder/internal/domain"
)

// FormatPathwayList renders the registry as a table.
func FormatPathwayList(defs []domain.PathwayDefinition) string {
	if len(defs) == 0 {
		return Dim("No pathways in the registry. Import a seed with `pathfinder registry import`.") + "\n"
	}

	rows := make([][]string, 0, len(defs))
	for _, d := range defs {
		rows = append(rows, []string{
			StyleBlue.Render(d.ID),
			d.Name,
			OrDash(d.Country),
			strconv.Itoa(d.RequiredCount()) + "/" + strconv.Itoa(len(d.Requirements)),
			OrDash(d.EstimatedDuration),
		})
	}
	return RenderTable([]string{"ID", "NAME", "COUNTRY", "REQUIRED", "DURATION"}, rows)
}

// FormatPathway renders one pathway with its requirements.
func FormatPathway(d *domain.PathwayDefinition, now time.Time) string {
	var b strings.Builder

	b.WriteString(Header(d.Name))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n", Dim("id:"), StyleBlue.Render(d.ID))
	if prov := d.Provenance(); prov != "" {
		fmt.Fprintf(&b, "%s\n", StyleYellow.Render(prov))
	}
	if d.Description != "" {
		fmt.Fprintf(&b, "%s\n", d.Description)
	}
	if d.TargetRole != "" {
		fmt.Fprintf(&b, "%s %s\n", Dim("role:"), d.TargetRole)
	}
	if d.EstimatedDuration != "" {
		fmt.Fprintf(&b, "%s %s\n", Dim("duration:"), d.EstimatedDuration)
	}
	if d.Country != "" {
		fmt.Fprintf(&b, "%s %s\n", Dim("country:"), d.Country)
	}
	b.WriteString("\n")

	if len(d.Requirements) == 0 {
		b.WriteString(Dim("No requirements listed.") + "\n")
		return b.String()
	}

	rows := make([][]string, 0, len(d.Requirements))
	for _, r := range d.Requirements {
		req := StyleDim.Render("optional")
		if r.IsRequired {
			req = StyleGreen.Render("required")
		}
		rows = append(rows, []string{
			strconv.Itoa(r.Order),
			r.Name,
			CategoryBadge(r.Category),
			req,
			OrDash(strings.Join(r.Alternatives, ", ")),
			VerifiedLabel(r.LastVerifiedAt, now),
		})
	}
	b.WriteString(RenderTable([]string{"#", "REQUIREMENT", "CATEGORY", "", "ALSO ACCEPTS", "CHECKED"}, rows))
	return b.String()
}
