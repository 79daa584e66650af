package importer

import (
	"fmt"
	"maps"
	"slices"

	"github.com/alexanderramin/rcpsp/internal/domain"
)

// BuildOptions controls how project rows are located in the shared tables.
type BuildOptions struct {
	Layout domain.RowLayout
}

func (o BuildOptions) layout() domain.RowLayout {
	if o.Layout == "" {
		return domain.LayoutStride
	}
	return o.Layout
}

// BuildInfo extracts the general-information scalars.
func BuildInfo(sections *Sections) (domain.Info, error) {
	g, errs := decodeGeneral(sections)
	if len(errs) == 0 {
		errs = validateGeneral(g)
	}
	if err := validationError(errs); err != nil {
		return domain.Info{}, err
	}
	return infoFrom(g), nil
}

// BuildResources returns one resource per resource-availability row, in
// table order, classified by name prefix.
func BuildResources(sections *Sections) ([]domain.Resource, error) {
	rows, errs := decodeAvailability(sections)
	if len(errs) == 0 {
		errs = validateAvailability(rows)
	}
	if err := validationError(errs); err != nil {
		return nil, err
	}
	return resourcesFrom(rows), nil
}

// BuildProjects assembles every project of the projects summary with its
// jobs, then checks successor references and job identity.
func BuildProjects(sections *Sections, opts BuildOptions) ([]domain.Project, error) {
	s := &Schema{}
	var errs []error
	var e []error

	s.Availability, e = decodeAvailability(sections)
	errs = append(errs, e...)
	s.Projects, e = decodeProjects(sections)
	errs = append(errs, e...)
	s.Precedence, e = decodePrecedence(sections)
	errs = append(errs, e...)
	s.Requests, e = decodeRequests(sections, s.ResourceNames())
	errs = append(errs, e...)
	if err := validationError(errs); err != nil {
		return nil, err
	}

	errs = append(errs, validateAvailability(s.Availability)...)
	errs = append(errs, validateProjectRows(s.Projects)...)
	errs = append(errs, validatePrecedence(s.Precedence)...)
	errs = append(errs, validateRequests(s.Requests)...)
	if err := validationError(errs); err != nil {
		return nil, err
	}

	projects, errs := projectsFrom(s, opts)
	if err := validationError(errs); err != nil {
		return nil, err
	}
	if err := validationError(checkProjects(projects)); err != nil {
		return nil, err
	}
	return projects, nil
}

// BuildDataset decodes, validates and converts a whole parsed file.
func BuildDataset(name string, sections *Sections, opts BuildOptions) (*domain.Dataset, error) {
	schema, err := Decode(sections)
	if err != nil {
		return nil, err
	}
	if err := validationError(ValidateSchema(schema)); err != nil {
		return nil, err
	}
	return Convert(name, schema, opts)
}

// Convert turns a validated Schema into a Dataset and runs the post-build
// consistency checks.
func Convert(name string, s *Schema, opts BuildOptions) (*domain.Dataset, error) {
	projects, errs := projectsFrom(s, opts)
	if err := validationError(errs); err != nil {
		return nil, err
	}

	ds := &domain.Dataset{
		Name:      name,
		Info:      infoFrom(s.General),
		Resources: resourcesFrom(s.Availability),
		Projects:  projects,
	}

	problems := checkProjects(projects)
	problems = append(problems, checkInfo(ds)...)
	if err := validationError(problems); err != nil {
		return nil, err
	}
	return ds, nil
}

func infoFrom(g GeneralInfo) domain.Info {
	return domain.Info{
		ProjectCount:      atoiPtr(g.Projects),
		JobCount:          atoiPtr(g.Jobs),
		Horizon:           atoiPtr(g.Horizon),
		Renewable:         atoiPtr(g.Renewable),
		Nonrenewable:      atoiPtr(g.Nonrenewable),
		DoublyConstrained: atoiPtr(g.DoublyConstrained),
	}
}

func resourcesFrom(rows []AvailabilityRow) []domain.Resource {
	out := make([]domain.Resource, len(rows))
	for i, r := range rows {
		out[i] = domain.Resource{
			Name:      r.Resource,
			Available: atoi(r.Qty),
			Kind:      domain.KindFromName(r.Resource),
		}
	}
	return out
}

// jobRows returns the shared-table row indices of a project's jobs.
func jobRows(layout domain.RowLayout, ordinal, offset, jobs int) []int {
	rows := make([]int, jobs)
	for i := range rows {
		switch layout {
		case domain.LayoutSequential:
			rows[i] = offset + i
		default:
			rows[i] = i * ordinal
		}
	}
	return rows
}

func projectsFrom(s *Schema, opts BuildOptions) ([]domain.Project, []error) {
	layout := opts.layout()
	if !domain.ValidRowLayouts[string(layout)] {
		return nil, []error{fmt.Errorf("row layout %q is not one of stride, sequential", layout)}
	}

	resources := s.ResourceNames()
	var errs []error
	projects := make([]domain.Project, 0, len(s.Projects))
	offset := 0
	for k, row := range s.Projects {
		p := domain.Project{
			ID:          atoi(row.ProNr),
			JobsNumber:  atoi(row.Jobs),
			ReleaseDate: atoiPtr(row.RelDate),
			DueDate:     atoiPtr(row.DueDate),
			TardCost:    atoiPtr(row.TardCost),
			MPMTime:     atoiPtr(row.MPMTime),
		}
		p.Jobs = make([]domain.Job, 0, p.JobsNumber)
		for i, idx := range jobRows(layout, k+1, offset, p.JobsNumber) {
			job, err := jobFrom(s, resources, idx)
			if err != nil {
				errs = append(errs, fmt.Errorf("project %d job %d: %w", p.ID, i+1, err))
				continue
			}
			p.Jobs = append(p.Jobs, job)
		}
		offset += p.JobsNumber
		projects = append(projects, p)
	}
	return projects, errs
}

func jobFrom(s *Schema, resources []string, idx int) (domain.Job, error) {
	if idx >= len(s.Precedence) {
		return domain.Job{}, fmt.Errorf("%s row %d out of range (%d rows)", SectionPrecedence, idx, len(s.Precedence))
	}
	if idx >= len(s.Requests) {
		return domain.Job{}, fmt.Errorf("%s row %d out of range (%d rows)", SectionRequests, idx, len(s.Requests))
	}
	prec := s.Precedence[idx]
	req := s.Requests[idx]
	if prec.JobNr != req.JobNr {
		return domain.Job{}, fmt.Errorf("row %d: %s job %s does not match %s job %s",
			idx, SectionPrecedence, prec.JobNr, SectionRequests, req.JobNr)
	}

	job := domain.Job{
		ID:       atoi(prec.JobNr),
		Mode:     atoi(prec.Modes),
		Duration: atoi(req.Duration),
		Demands:  make(map[string]int, len(resources)),
	}
	for _, name := range resources {
		job.Demands[name] = atoi(req.Demands[name])
	}
	tokens := prec.SuccessorTokens()
	job.Successors = make([]int, len(tokens))
	for i, tok := range tokens {
		job.Successors[i] = atoi(tok)
	}
	return job, nil
}

// checkProjects verifies job identity, demands and successor references.
func checkProjects(projects []domain.Project) []error {
	var errs []error
	for _, p := range projects {
		ids := make(map[int]bool, len(p.Jobs))
		for _, j := range p.Jobs {
			if ids[j.ID] {
				errs = append(errs, fmt.Errorf("project %d: duplicate job id %d", p.ID, j.ID))
			}
			ids[j.ID] = true
		}
		for _, j := range p.Jobs {
			for _, name := range sortedKeys(j.Demands) {
				if j.Demands[name] < 0 {
					errs = append(errs, fmt.Errorf("project %d job %d: negative demand %d for %s", p.ID, j.ID, j.Demands[name], name))
				}
			}
			for _, succ := range j.RealSuccessors() {
				if !ids[succ] {
					errs = append(errs, fmt.Errorf("project %d job %d: successor %d is not a job of the project", p.ID, j.ID, succ))
				}
			}
		}
	}
	return errs
}

func checkInfo(ds *domain.Dataset) []error {
	var errs []error
	if ds.Info.ProjectCount != len(ds.Projects) {
		errs = append(errs, fmt.Errorf("%s.%s: declares %d projects, found %d",
			SectionGeneral, KeyProjects, ds.Info.ProjectCount, len(ds.Projects)))
	}
	if n := ds.JobCount(); ds.Info.JobCount != n {
		errs = append(errs, fmt.Errorf("%s.%s: declares %d jobs, projects hold %d",
			SectionGeneral, KeyJobs, ds.Info.JobCount, n))
	}
	return errs
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
