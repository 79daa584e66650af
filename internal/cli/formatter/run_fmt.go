package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/rcpsp/internal/domain"
)

// FormatRuns renders the run history, newest first as given.
func FormatRuns(runs []*domain.Run, now time.Time) string {
	if len(runs) == 0 {
		return Dim("No runs recorded yet. Solve a dataset to create one.") + "\n"
	}
	headers := []string{"ID", "Dataset", "Status", "Objective", "Solutions", "Created"}
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			TruncID(r.ID),
			r.Dataset,
			StatusIndicator(r.Status),
			objectiveCell(r),
			strconv.Itoa(r.SolutionCount),
			HumanTimestampFrom(r.CreatedAt, now),
		})
	}
	return RenderSection("Runs", headers, rows)
}

// FormatRun renders the detail view of one run.
func FormatRun(r *domain.Run, now time.Time) string {
	lines := []struct{ label, value string }{
		{"ID", r.ID},
		{"Dataset", r.Dataset},
		{"Source", CoalesceDash(r.SourcePath)},
		{"Row layout", string(r.RowLayout)},
		{"Status", StatusIndicator(r.Status)},
		{"Objective", objectiveCell(r)},
		{"Solutions", strconv.Itoa(r.SolutionCount)},
		{"Tie-break", YesNo(r.TieBreakApplied)},
		{"Search", fmt.Sprintf("%d nodes in %s", r.Nodes, FormatWallTime(r.WallTime))},
		{"Created", fmt.Sprintf("%s (%s)", r.CreatedAt.Format(time.RFC3339), HumanTimestampFrom(r.CreatedAt, now))},
	}
	var b strings.Builder
	for i, l := range lines {
		fmt.Fprintf(&b, "%s %s", Dim(fmt.Sprintf("%-11s", l.label)), l.value)
		if i < len(lines)-1 {
			b.WriteString("\n")
		}
	}
	return RenderBox("Run "+r.ShortID(), b.String()) + "\n"
}

// FormatRankedSolutions renders a run's stored solutions in rank order.
func FormatRankedSolutions(solutions []domain.RankedSolution) string {
	if len(solutions) == 0 {
		return Dim("No solutions stored for this run.") + "\n"
	}
	headers := []string{"Rank", "Found", "Makespan", "Score"}
	rows := make([][]string, len(solutions))
	for i, rs := range solutions {
		rows[i] = []string{
			strconv.Itoa(rs.Rank + 1),
			strconv.Itoa(rs.Solution.Index + 1),
			strconv.Itoa(rs.Solution.Makespan),
			strconv.Itoa(rs.TieBreakScore),
		}
	}
	return RenderSection("Ranked Solutions", headers, rows)
}

// CoalesceDash returns s, or a dim dash when s is empty.
func CoalesceDash(s string) string {
	if s == "" {
		return Dim("-")
	}
	return s
}

func objectiveCell(r *domain.Run) string {
	if !r.Status.HasSolution() {
		return "-"
	}
	return strconv.Itoa(r.Objective)
}

// FormatGantt renders one row per job with its span and a day bar over
// days 1..makespan.
func FormatGantt(sol domain.Solution) string {
	headers := []string{"Job", "Start", "End", "Days"}
	keys := sol.Assignment.Keys()
	rows := make([][]string, 0, len(keys))
	for _, key := range keys {
		span := sol.Assignment[key]
		var bar strings.Builder
		for d := range sol.Makespan {
			if span.Active(d) {
				bar.WriteString(StyleBlue.Render(filledBlock))
			} else {
				bar.WriteString(Dim("·"))
			}
		}
		rows = append(rows, []string{key.String(), strconv.Itoa(span.Start), strconv.Itoa(span.End), bar.String()})
	}
	return RenderTable(headers, rows)
}
