// Package report renders distribution reports for the terminal.
package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"

	"github.com/starchartio/starchart/internal/analysis"
	"github.com/starchartio/starchart/internal/style"
)

const maxBarWidth = 30

// Write renders the report as styled text: one bar row per rating value, one
// per category, then the summary statistics.
func Write(w io.Writer, rep *analysis.Report) {
	fmt.Fprintln(w, style.Section("Rating distribution"))
	writeBars(w, valueRows(rep))
	fmt.Fprintln(w)

	fmt.Fprintln(w, style.Section("Category distribution"))
	writeBars(w, categoryRows(rep))
	fmt.Fprintln(w)

	writeStats(w, rep)
}

type row struct {
	label      string
	count      int
	proportion float64
}

func valueRows(rep *analysis.Report) []row {
	return lo.Map(rep.Values, func(vc analysis.ValueCount, _ int) row {
		return row{label: strconv.Itoa(vc.Value), count: vc.Count, proportion: vc.Proportion}
	})
}

func categoryRows(rep *analysis.Report) []row {
	return lo.Map(rep.Categories, func(cc analysis.CategoryCount, _ int) row {
		return row{label: cc.Name, count: cc.Count, proportion: cc.Proportion}
	})
}

func writeBars(w io.Writer, rows []row) {
	if len(rows) == 0 {
		fmt.Fprintln(w, style.MutedStyle.Render("  (no data)"))
		return
	}

	labelWidth := lo.Max(lo.Map(rows, func(r row, _ int) int { return len(r.label) }))
	maxCount := lo.Max(lo.Map(rows, func(r row, _ int) int { return r.count }))

	for _, r := range rows {
		bar := strings.Repeat("█", barWidth(r.count, maxCount))
		fmt.Fprintf(w, "  %-*s  %s %d (%5.1f%%)\n",
			labelWidth, r.label, style.AccentStyle.Render(bar), r.count, r.proportion*100)
	}
}

// barWidth scales a count against the largest row; any non-zero count shows
// at least one glyph.
func barWidth(count, maxCount int) int {
	if count <= 0 || maxCount <= 0 {
		return 0
	}
	return max(1, int(math.Round(float64(count)/float64(maxCount)*maxBarWidth)))
}

func writeStats(w io.Writer, rep *analysis.Report) {
	fmt.Fprintln(w, style.Section("Statistics"))

	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	table.Append([]string{"Total ratings", strconv.Itoa(rep.Total)})
	table.Append([]string{"Mean rating", fmt.Sprintf("%.2f", rep.Mean)})
	table.Append([]string{"Median rating", fmt.Sprintf("%.1f", rep.Median)})
	table.Render()
}
