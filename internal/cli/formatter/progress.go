package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/rcpsp/internal/domain"
	"github.com/alexanderramin/rcpsp/internal/report"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderLoad renders a load bar like [████░░░░]  50%. Load above 1 is
// drawn full and red; the percentage still shows the real value.
func RenderLoad(load float64, width int) string {
	if load < 0 {
		load = 0
	}
	if width < 2 {
		width = 2
	}

	filled := min(int(load*float64(width)), width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	switch {
	case load > 1:
		style = StyleRed
	case load >= 0.9:
		style = StyleYellow
	}

	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), load*100)
}

// FormatPeakLoad renders the peak daily usage of every renewable resource
// in the report against its capacity.
func FormatPeakLoad(rep *report.Report, resources []domain.Resource) string {
	capacity := make(map[string]domain.Resource, len(resources))
	for _, r := range resources {
		capacity[r.Name] = r
	}

	var rows [][]string
	for _, row := range rep.Usage.Resources {
		r, ok := capacity[row.Resource]
		if !ok || !r.Kind.Enforced() {
			continue
		}
		load := 0.0
		if r.Available > 0 {
			load = float64(row.Peak()) / float64(r.Available)
		}
		rows = append(rows, []string{
			row.Resource,
			fmt.Sprintf("%d / %d", row.Peak(), r.Available),
			RenderLoad(load, 20),
		})
	}
	if len(rows) == 0 {
		return ""
	}
	return RenderSection("Peak Load", []string{"Resource", "Peak", "Load"}, rows)
}
