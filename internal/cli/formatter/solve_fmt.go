package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/rcpsp/internal/domain"
	"github.com/alexanderramin/rcpsp/internal/report"
	"github.com/alexanderramin/rcpsp/internal/scheduler"
)

// FormatMakespans lists every reported solution's makespan in result order.
func FormatMakespans(solutions []domain.Solution) string {
	headers := []string{fmt.Sprintf("Solution n / %d", len(solutions)), "Makespan"}
	rows := make([][]string, len(solutions))
	for i, s := range solutions {
		rows[i] = []string{strconv.Itoa(i + 1), strconv.Itoa(s.Makespan)}
	}
	return RenderSection("Makespans", headers, rows)
}

// FormatSolveSummary renders the status, objective and search statistics.
func FormatSolveSummary(res *scheduler.Result) string {
	var b strings.Builder
	if res.TieBreakApplied {
		b.WriteString(StyleYellow.Render("Tied makespan values found, applying tiebreaker."))
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Solver status: %s\n", StatusIndicator(res.Status))
	if res.Status.HasSolution() {
		fmt.Fprintf(&b, "Objective value: %s\n", Bold(strconv.Itoa(res.ObjectiveValue)))
	} else {
		fmt.Fprintf(&b, "Objective value: %s\n", Dim("-"))
	}
	b.WriteString(Dim(fmt.Sprintf("%d nodes in %s", res.Stats.Nodes, FormatWallTime(res.Stats.WallTime))))
	b.WriteString("\n\n")
	return b.String()
}

// FormatSchedule renders the job-by-day table of a report.
func FormatSchedule(rep *report.Report) string {
	if rep.Schedule.Days == 0 {
		return Header("Schedule") + "\n" + Dim("Empty schedule.") + "\n\n"
	}
	return RenderSection("Schedule", rep.Schedule.Header(), rep.Schedule.Rows())
}

// FormatUsage renders the resource-by-day table of a report.
func FormatUsage(rep *report.Report) string {
	if len(rep.Usage.Resources) == 0 {
		return Header("Resource Usage") + "\n" + Dim("No resource demands.") + "\n\n"
	}
	return RenderSection("Resource Usage", rep.Usage.Header(), rep.Usage.Rows())
}

// FormatReport renders the schedule and usage tables.
func FormatReport(rep *report.Report) string {
	return FormatSchedule(rep) + FormatUsage(rep)
}
