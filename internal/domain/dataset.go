package domain

// Info is the scalar summary of a dataset's general-information section.
type Info struct {
	ProjectCount      int
	JobCount          int
	Horizon           int
	Renewable         int
	Nonrenewable      int
	DoublyConstrained int
}

type Resource struct {
	Name      string
	Available int
	Kind      ResourceKind
}

// Dataset is one parsed benchmark file. It is read-only once built.
type Dataset struct {
	Name      string
	Info      Info
	Resources []Resource
	Projects  []Project
}

// Resource looks up a resource by name.
func (d *Dataset) Resource(name string) (Resource, bool) {
	for _, r := range d.Resources {
		if r.Name == name {
			return r, true
		}
	}
	return Resource{}, false
}

// JobCount returns the number of jobs across all projects.
func (d *Dataset) JobCount() int {
	n := 0
	for _, p := range d.Projects {
		n += len(p.Jobs)
	}
	return n
}
