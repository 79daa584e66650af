package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/rcpsp/internal/domain"
)

// FormatInfo renders the general-information table.
func FormatInfo(info domain.Info) string {
	headers := []string{"Projects", "Jobs", "Horizon", "RN_R", "NR_R", "DC_R"}
	row := []string{
		strconv.Itoa(info.ProjectCount),
		strconv.Itoa(info.JobCount),
		strconv.Itoa(info.Horizon),
		strconv.Itoa(info.Renewable),
		strconv.Itoa(info.Nonrenewable),
		strconv.Itoa(info.DoublyConstrained),
	}
	return RenderSection("General Information", headers, [][]string{row})
}

// FormatResources renders resource availability in dataset order.
func FormatResources(resources []domain.Resource) string {
	rows := make([][]string, 0, len(resources))
	for _, r := range resources {
		rows = append(rows, []string{r.Name, strconv.Itoa(r.Available), string(r.Kind)})
	}
	return RenderSection("Resource Availability", []string{"Resource", "Quantity", "Kind"}, rows)
}

// FormatProjects renders one row of project metadata per project.
func FormatProjects(projects []domain.Project) string {
	headers := []string{"Project", "Jobs", "Rel Date", "Due Date", "Tardcost", "MPM Time"}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{
			strconv.Itoa(p.ID),
			strconv.Itoa(p.JobsNumber),
			strconv.Itoa(p.ReleaseDate),
			strconv.Itoa(p.DueDate),
			strconv.Itoa(p.TardCost),
			strconv.Itoa(p.MPMTime),
		})
	}
	return RenderSection("Project Information", headers, rows)
}

// FormatJobs renders the job table of one project. Demands are listed in
// dataset resource order.
func FormatJobs(p domain.Project, resources []domain.Resource) string {
	headers := []string{"Job", "Mode", "Duration", "Demands", "Successors"}
	rows := make([][]string, 0, len(p.Jobs))
	for _, j := range p.Jobs {
		rows = append(rows, []string{
			strconv.Itoa(j.ID),
			strconv.Itoa(j.Mode),
			strconv.Itoa(j.Duration),
			demandList(j, resources),
			successorList(j),
		})
	}
	return RenderSection(fmt.Sprintf("Project %d Jobs", p.ID), headers, rows)
}

// FormatDataset renders the info, resources and projects tables.
func FormatDataset(ds *domain.Dataset) string {
	return FormatInfo(ds.Info) + FormatResources(ds.Resources) + FormatProjects(ds.Projects)
}

func demandList(j domain.Job, resources []domain.Resource) string {
	parts := make([]string, 0, len(resources))
	for _, r := range resources {
		if v, ok := j.Demands[r.Name]; ok {
			parts = append(parts, fmt.Sprintf("%s=%d", r.Name, v))
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}

func successorList(j domain.Job) string {
	succ := j.RealSuccessors()
	if len(succ) == 0 {
		return "-"
	}
	parts := make([]string, len(succ))
	for i, s := range succ {
		parts[i] = strconv.Itoa(s)
	}
	return strings.Join(parts, " ")
}
