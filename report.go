package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/insightdelivered/assembly-converter/internal/models"
)

var (
	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
	headColor = color.New(color.FgCyan, color.Bold)
)

// printSummary prints counts for a written dataset, grouped by party or
// district. Labels outside the static enumerations are flagged.
func printSummary(w io.Writer, a *models.Assembly, outPath string, by models.ColorChoice) {
	fmt.Fprintf(w, "%s %s\n", headColor.Sprint("Page:"), a.Page)
	fmt.Fprintf(w, "  Source: %s\n", a.Source)
	fmt.Fprintf(w, "  Found %d constituencies in %d district(s), %d party label(s)\n",
		len(a.Records), len(a.Districts), len(a.Parties))

	if a.Ungrouped > 0 {
		fmt.Fprintf(w, "  %s %d record(s) precede the first district header\n", warnColor.Sprint("Warning:"), a.Ungrouped)
	}
	if a.Unnumbered > 0 {
		fmt.Fprintf(w, "  %s %d record(s) have no constituency number\n", warnColor.Sprint("Warning:"), a.Unnumbered)
	}

	for _, g := range groupCounts(a, by) {
		mark := okColor.Sprint("✓")
		if !g.known {
			mark = warnColor.Sprint("?")
		}
		fmt.Fprintf(w, "    %s %-40s %3d\n", mark, g.label, g.count)
	}

	fmt.Fprintf(w, "  Output: %s\n", outPath)
	fmt.Fprintln(w, "  Done.")
}

type groupCount struct {
	label string
	count int
	known bool
}

// groupCounts counts records per party or district, in first-occurrence order.
func groupCounts(a *models.Assembly, by models.ColorChoice) []groupCount {
	labels := a.Parties
	key := func(rec models.ConstituencyRecord) string { return rec.Party }
	known := func(s string) bool { return models.Party(s).IsKnown() }
	if by == models.ByDistrict {
		labels = a.Districts
		key = func(rec models.ConstituencyRecord) string { return rec.District }
		known = func(s string) bool { return models.District(s).IsKnown() }
	}

	counts := make(map[string]int, len(labels))
	for _, rec := range a.Records {
		counts[key(rec)]++
	}

	out := make([]groupCount, 0, len(labels))
	for _, l := range labels {
		out = append(out, groupCount{label: l, count: counts[l], known: known(l)})
	}
	return out
}

// printVerify dumps [district, constituency, party] for every record.
func printVerify(w io.Writer, a *models.Assembly) {
	for _, rec := range a.Records {
		fmt.Fprintf(w, "[%q, %q, %q]\n", rec.District, rec.Constituency, rec.Party)
	}
}
