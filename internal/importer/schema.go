package importer

import "fmt"

// Section names of the benchmark format, after CleanKey normalization.
const (
	SectionGeneral      = "general_information"
	SectionProjects     = "projects_summary"
	SectionPrecedence   = "precedence_relations"
	SectionRequests     = "duration_and_resources"
	SectionAvailability = "resource_availability"
)

// Field keys of the general-information section.
const (
	KeyProjects          = "projects"
	KeyJobs              = "jobs_(incl_supersource/sink_)"
	KeyJobsShort         = "jobs"
	KeyHorizon           = "horizon"
	KeyRenewable         = "renewable"
	KeyNonrenewable      = "nonrenewable"
	KeyDoublyConstrained = "doubly_constrained"
)

// Schema is the typed view of a parsed dataset. Values are kept as raw
// tokens; ValidateSchema checks them and Convert coerces them.
type Schema struct {
	General      GeneralInfo
	Projects     []ProjectRow
	Precedence   []PrecedenceRow
	Requests     []RequestRow
	Availability []AvailabilityRow
}

// GeneralInfo holds the scalar summary fields.
type GeneralInfo struct {
	Projects          *string
	Jobs              *string
	Horizon           *string
	Renewable         *string
	Nonrenewable      *string
	DoublyConstrained *string
}

// ProjectRow is one row of the projects summary.
type ProjectRow struct {
	Row      int
	ProNr    string
	Jobs     string
	RelDate  *string
	DueDate  *string
	TardCost *string
	MPMTime  *string
}

// PrecedenceRow is one row of the precedence relations table. Successors
// holds the raw successor cell: a single token, or the spilled list whose
// first token is the successor count.
type PrecedenceRow struct {
	Row        int
	JobNr      string
	Modes      string
	Successors Value
}

// SuccessorTokens returns the successor ids of the row: the spilled list
// without its leading count column, or the scalar cell as a one-element list.
func (r PrecedenceRow) SuccessorTokens() []string {
	tokens := r.Successors.List()
	if r.Successors.IsList() {
		return tokens[1:]
	}
	return tokens
}

// RequestRow is one row of the duration-and-resources table.
type RequestRow struct {
	Row      int
	JobNr    string
	Mode     string
	Duration string
	Demands  map[string]string
}

// AvailabilityRow is one row of the resource-availability table.
type AvailabilityRow struct {
	Row      int
	Resource string
	Qty      string
}

// ResourceNames returns the declared resource names in table order.
func (s *Schema) ResourceNames() []string {
	names := make([]string, len(s.Availability))
	for i, a := range s.Availability {
		names[i] = a.Resource
	}
	return names
}

// Decode maps Sections onto the typed Schema. Every missing section or
// column is reported; the result is usable only when the error is nil.
func Decode(sections *Sections) (*Schema, error) {
	var errs []error
	schema := &Schema{}

	general, e := decodeGeneral(sections)
	schema.General = general
	errs = append(errs, e...)

	availability, e := decodeAvailability(sections)
	schema.Availability = availability
	errs = append(errs, e...)

	projects, e := decodeProjects(sections)
	schema.Projects = projects
	errs = append(errs, e...)

	precedence, e := decodePrecedence(sections)
	schema.Precedence = precedence
	errs = append(errs, e...)

	requests, e := decodeRequests(sections, schema.ResourceNames())
	schema.Requests = requests
	errs = append(errs, e...)

	if err := validationError(errs); err != nil {
		return nil, err
	}
	return schema, nil
}

func requireSection(sections *Sections, name string) (*Section, []error) {
	sec, ok := sections.Section(name)
	if !ok {
		return nil, []error{fmt.Errorf("section %q is missing", name)}
	}
	return sec, nil
}

func decodeGeneral(sections *Sections) (GeneralInfo, []error) {
	sec, errs := requireSection(sections, SectionGeneral)
	if sec == nil {
		return GeneralInfo{}, errs
	}
	jobs := scalarField(sec, KeyJobs)
	if jobs == nil {
		jobs = scalarField(sec, KeyJobsShort)
	}
	return GeneralInfo{
		Projects:          scalarField(sec, KeyProjects),
		Jobs:              jobs,
		Horizon:           scalarField(sec, KeyHorizon),
		Renewable:         scalarField(sec, KeyRenewable),
		Nonrenewable:      scalarField(sec, KeyNonrenewable),
		DoublyConstrained: scalarField(sec, KeyDoublyConstrained),
	}, nil
}

func scalarField(sec *Section, name string) *string {
	f, ok := sec.Field(name)
	if !ok || len(f.Values) == 0 {
		return nil
	}
	v := f.Values[0].Scalar()
	return &v
}

// table gives row access to a set of required and optional columns.
type table struct {
	sec      *Section
	columns  map[string]*Field
	rowCount int
}

func openTable(sections *Sections, name string, required []string, optional ...string) (*table, []error) {
	sec, errs := requireSection(sections, name)
	if sec == nil {
		return nil, errs
	}
	t := &table{sec: sec, columns: make(map[string]*Field)}
	for _, col := range required {
		f, ok := sec.Field(col)
		if !ok {
			errs = append(errs, fmt.Errorf("%s.%s: column is missing", name, col))
			continue
		}
		t.columns[col] = f
	}
	for _, col := range optional {
		if f, ok := sec.Field(col); ok {
			t.columns[col] = f
		}
	}
	for _, col := range required {
		if f, ok := t.columns[col]; ok && f.Len() > t.rowCount {
			t.rowCount = f.Len()
		}
	}
	return t, errs
}

// cell returns the scalar token at (col, row), reporting ragged tables.
func (t *table) cell(col string, row int) (string, error) {
	f, ok := t.columns[col]
	if !ok {
		return "", fmt.Errorf("%s.%s: column is missing", t.sec.Name, col)
	}
	v, ok := f.At(row)
	if !ok {
		return "", fmt.Errorf("%s.%s[%d]: row is missing", t.sec.Name, col, row)
	}
	if v.IsList() {
		return "", fmt.Errorf("%s.%s[%d]: unexpected token list %v", t.sec.Name, col, row, v.List())
	}
	return v.Scalar(), nil
}

func (t *table) optionalCell(col string, row int) *string {
	f, ok := t.columns[col]
	if !ok {
		return nil
	}
	v, ok := f.At(row)
	if !ok {
		return nil
	}
	s := v.Scalar()
	return &s
}

func decodeProjects(sections *Sections) ([]ProjectRow, []error) {
	t, errs := openTable(sections, SectionProjects,
		[]string{"pronr", "jobs"}, "rel_date", "duedate", "tardcost", "mpm_time")
	if t == nil || len(errs) > 0 {
		return nil, errs
	}
	rows := make([]ProjectRow, 0, t.rowCount)
	for i := 0; i < t.rowCount; i++ {
		pronr, err1 := t.cell("pronr", i)
		jobs, err2 := t.cell("jobs", i)
		if err1 != nil || err2 != nil {
			errs = appendNonNil(errs, err1, err2)
			continue
		}
		rows = append(rows, ProjectRow{
			Row:      i,
			ProNr:    pronr,
			Jobs:     jobs,
			RelDate:  t.optionalCell("rel_date", i),
			DueDate:  t.optionalCell("duedate", i),
			TardCost: t.optionalCell("tardcost", i),
			MPMTime:  t.optionalCell("mpm_time", i),
		})
	}
	return rows, errs
}

func decodePrecedence(sections *Sections) ([]PrecedenceRow, []error) {
	sec, errs := requireSection(sections, SectionPrecedence)
	if sec == nil {
		return nil, errs
	}
	modesCol := "modes"
	if _, ok := sec.Field(modesCol); !ok {
		modesCol = "mode"
	}
	t, errs := openTable(sections, SectionPrecedence, []string{"jobnr", modesCol, "successors"})
	if len(errs) > 0 {
		return nil, errs
	}
	rows := make([]PrecedenceRow, 0, t.rowCount)
	for i := 0; i < t.rowCount; i++ {
		jobnr, err1 := t.cell("jobnr", i)
		modes, err2 := t.cell(modesCol, i)
		succ, ok := t.columns["successors"].At(i)
		if !ok {
			errs = append(errs, fmt.Errorf("%s.successors[%d]: row is missing", SectionPrecedence, i))
		}
		if err1 != nil || err2 != nil || !ok {
			errs = appendNonNil(errs, err1, err2)
			continue
		}
		rows = append(rows, PrecedenceRow{Row: i, JobNr: jobnr, Modes: modes, Successors: succ})
	}
	return rows, errs
}

func decodeRequests(sections *Sections, resources []string) ([]RequestRow, []error) {
	sec, errs := requireSection(sections, SectionRequests)
	if sec == nil {
		return nil, errs
	}
	modeCol := "mode"
	if _, ok := sec.Field(modeCol); !ok {
		modeCol = "modes"
	}
	required := append([]string{"jobnr", modeCol, "duration"}, resources...)
	t, errs := openTable(sections, SectionRequests, required)
	if len(errs) > 0 {
		return nil, errs
	}
	rows := make([]RequestRow, 0, t.rowCount)
	for i := 0; i < t.rowCount; i++ {
		row := RequestRow{Row: i, Demands: make(map[string]string, len(resources))}
		var rowErrs []error
		var err error
		if row.JobNr, err = t.cell("jobnr", i); err != nil {
			rowErrs = append(rowErrs, err)
		}
		if row.Mode, err = t.cell(modeCol, i); err != nil {
			rowErrs = append(rowErrs, err)
		}
		if row.Duration, err = t.cell("duration", i); err != nil {
			rowErrs = append(rowErrs, err)
		}
		for _, r := range resources {
			v, err := t.cell(r, i)
			if err != nil {
				rowErrs = append(rowErrs, err)
				continue
			}
			row.Demands[r] = v
		}
		if len(rowErrs) > 0 {
			errs = append(errs, rowErrs...)
			continue
		}
		rows = append(rows, row)
	}
	return rows, errs
}

func decodeAvailability(sections *Sections) ([]AvailabilityRow, []error) {
	t, errs := openTable(sections, SectionAvailability, []string{"resource", "qty"})
	if t == nil || len(errs) > 0 {
		return nil, errs
	}
	rows := make([]AvailabilityRow, 0, t.rowCount)
	for i := 0; i < t.rowCount; i++ {
		name, err1 := t.cell("resource", i)
		qty, err2 := t.cell("qty", i)
		if err1 != nil || err2 != nil {
			errs = appendNonNil(errs, err1, err2)
			continue
		}
		rows = append(rows, AvailabilityRow{Row: i, Resource: name, Qty: qty})
	}
	return rows, errs
}

func appendNonNil(errs []error, more ...error) []error {
	for _, e := range more {
		if e != nil {
			errs = append(errs, e)
		}
	}
	return errs
}
