package domain

import "fmt"

// NoSuccessor is the sentinel successor id meaning "no successor".
const NoSuccessor = 0

// JobKey identifies a job across all projects of a dataset.
type JobKey struct {
	ProjectID int
	JobID     int
}

func (k JobKey) String() string {
	return fmt.Sprintf("p%d/j%d", k.ProjectID, k.JobID)
}

type Job struct {
	ID         int
	Mode       int
	Duration   int
	Demands    map[string]int
	Successors []int
}

// Demand returns the job's demand for the named resource, 0 if undeclared.
func (j Job) Demand(resource string) int {
	return j.Demands[resource]
}

// RealSuccessors returns the successor ids with the sentinel removed.
func (j Job) RealSuccessors() []int {
	out := make([]int, 0, len(j.Successors))
	for _, s := range j.Successors {
		if s != NoSuccessor {
			out = append(out, s)
		}
	}
	return out
}

// DemandsAny reports whether the job needs a positive amount of any resource.
func (j Job) DemandsAny() bool {
	for _, v := range j.Demands {
		if v > 0 {
			return true
		}
	}
	return false
}

type Project struct {
	ID          int
	JobsNumber  int
	ReleaseDate int
	DueDate     int
	TardCost    int
	MPMTime     int
	Jobs        []Job
}

// Job looks up a job by id within the project.
func (p *Project) Job(id int) (Job, bool) {
	for _, j := range p.Jobs {
		if j.ID == id {
			return j, true
		}
	}
	return Job{}, false
}

// Key returns the dataset-wide key of one of this project's jobs.
func (p *Project) Key(jobID int) JobKey {
	return JobKey{ProjectID: p.ID, JobID: jobID}
}
