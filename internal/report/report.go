package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/rcpsp/internal/domain"
)

// NoDemand marks an active day of a job that needs no resource.
const NoDemand = "N/A"

// Report is the presentation handoff for one solution.
type Report struct {
	Makespan int
	Schedule Schedule
	Usage    Usage
}

// Schedule has one row per job and one column per day 1..Days.
type Schedule struct {
	Days int
	Jobs []JobRow
}

type JobRow struct {
	Key   domain.JobKey
	Cells []string
}

// Usage has one row per resource some job declares a demand for.
type Usage struct {
	Days      int
	Resources []UsageRow
}

type UsageRow struct {
	Resource string
	Values   []int
}

// Peak returns the highest daily usage.
func (r UsageRow) Peak() int {
	peak := 0
	for _, v := range r.Values {
		peak = max(peak, v)
	}
	return peak
}

// Build derives the daily schedule and usage tables of sol. Rows follow
// project order then job order; resource annotations and usage rows follow
// the dataset's resource order.
func Build(sol domain.Solution, projects []domain.Project, resources []domain.Resource) *Report {
	days := sol.Makespan
	rep := &Report{
		Makespan: days,
		Schedule: Schedule{Days: days},
		Usage:    Usage{Days: days},
	}

	usage := make(map[string][]int)
	for pi := range projects {
		p := &projects[pi]
		for _, job := range p.Jobs {
			key := p.Key(job.ID)
			row := JobRow{Key: key, Cells: make([]string, days)}
			span, ok := sol.Assignment[key]
			if ok {
				cell := annotate(job, resources)
				for d := range days {
					if !span.Active(d) {
						continue
					}
					row.Cells[d] = cell
					for name, amount := range job.Demands {
						if usage[name] == nil {
							usage[name] = make([]int, days)
						}
						usage[name][d] += amount
					}
				}
			}
			rep.Schedule.Jobs = append(rep.Schedule.Jobs, row)
		}
	}

	declared := make(map[string]bool)
	for _, p := range projects {
		for _, job := range p.Jobs {
			for name := range job.Demands {
				declared[name] = true
			}
		}
	}
	for _, r := range resources {
		if !declared[r.Name] {
			continue
		}
		values := usage[r.Name]
		if values == nil {
			values = make([]int, days)
		}
		rep.Usage.Resources = append(rep.Usage.Resources, UsageRow{Resource: r.Name, Values: values})
	}
	return rep
}

func annotate(job domain.Job, resources []domain.Resource) string {
	var parts []string
	for _, r := range resources {
		if amount := job.Demand(r.Name); amount > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", r.Name, amount))
		}
	}
	if len(parts) == 0 {
		return NoDemand
	}
	return strings.Join(parts, ", ")
}

func dayHeader(corner string, days int) []string {
	h := make([]string, 0, days+1)
	h = append(h, corner)
	for d := range days {
		h = append(h, strconv.Itoa(d+1))
	}
	return h
}

// Header returns the column titles: a corner cell, then days 1..Days.
func (s Schedule) Header() []string {
	return dayHeader(`Job \ Day`, s.Days)
}

// Rows returns one string row per job, the job label first.
func (s Schedule) Rows() [][]string {
	rows := make([][]string, len(s.Jobs))
	for i, j := range s.Jobs {
		row := make([]string, 0, len(j.Cells)+1)
		row = append(row, j.Key.String())
		rows[i] = append(row, j.Cells...)
	}
	return rows
}

func (u Usage) Header() []string {
	return dayHeader(`Resource \ Day`, u.Days)
}

func (u Usage) Rows() [][]string {
	rows := make([][]string, len(u.Resources))
	for i, r := range u.Resources {
		row := make([]string, 0, len(r.Values)+1)
		row = append(row, r.Resource)
		for _, v := range r.Values {
			row = append(row, strconv.Itoa(v))
		}
		rows[i] = row
	}
	return rows
}
