package importer

import (
	"fmt"
	"strconv"
)

// ValidateSchema checks a decoded Schema for missing scalars, non-numeric
// cells, duplicate resources and negative quantities. It returns every
// problem found rather than stopping at the first.
func ValidateSchema(s *Schema) []error {
	var errs []error
	errs = append(errs, validateGeneral(s.General)...)
	errs = append(errs, validateAvailability(s.Availability)...)
	errs = append(errs, validateProjectRows(s.Projects)...)
	errs = append(errs, validatePrecedence(s.Precedence)...)
	errs = append(errs, validateRequests(s.Requests)...)
	return errs
}

func validateGeneral(g GeneralInfo) []error {
	var errs []error
	required := []struct {
		key string
		val *string
	}{
		{KeyProjects, g.Projects},
		{KeyJobs, g.Jobs},
		{KeyHorizon, g.Horizon},
		{KeyRenewable, g.Renewable},
		{KeyNonrenewable, g.Nonrenewable},
		{KeyDoublyConstrained, g.DoublyConstrained},
	}
	for _, r := range required {
		field := SectionGeneral + "." + r.key
		if r.val == nil {
			errs = append(errs, fmt.Errorf("%s: is required", field))
			continue
		}
		if err := checkCount(field, *r.val); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func validateAvailability(rows []AvailabilityRow) []error {
	var errs []error
	seen := make(map[string]int, len(rows))
	for _, r := range rows {
		prefix := fmt.Sprintf("%s[%d]", SectionAvailability, r.Row)
		if r.Resource == "" {
			errs = append(errs, fmt.Errorf("%s.resource: is required", prefix))
		} else if first, dup := seen[r.Resource]; dup {
			errs = append(errs, fmt.Errorf("%s.resource: duplicate resource %q (first at row %d)", prefix, r.Resource, first))
		} else {
			seen[r.Resource] = r.Row
		}
		if err := checkCount(prefix+".qty", r.Qty); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func validateProjectRows(rows []ProjectRow) []error {
	var errs []error
	seen := make(map[string]bool, len(rows))
	for _, r := range rows {
		prefix := fmt.Sprintf("%s[%d]", SectionProjects, r.Row)
		if err := checkInt(prefix+".pronr", r.ProNr); err != nil {
			errs = append(errs, err)
		} else if seen[r.ProNr] {
			errs = append(errs, fmt.Errorf("%s.pronr: duplicate project %s", prefix, r.ProNr))
		}
		seen[r.ProNr] = true
		if err := checkCount(prefix+".jobs", r.Jobs); err != nil {
			errs = append(errs, err)
		}
		optional := []struct {
			col string
			val *string
		}{
			{"rel_date", r.RelDate},
			{"duedate", r.DueDate},
			{"tardcost", r.TardCost},
			{"mpm_time", r.MPMTime},
		}
		for _, o := range optional {
			if o.val == nil {
				continue
			}
			if err := checkInt(prefix+"."+o.col, *o.val); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errs
}

func validatePrecedence(rows []PrecedenceRow) []error {
	var errs []error
	for _, r := range rows {
		prefix := fmt.Sprintf("%s[%d]", SectionPrecedence, r.Row)
		if err := checkInt(prefix+".jobnr", r.JobNr); err != nil {
			errs = append(errs, err)
		}
		if err := checkInt(prefix+".modes", r.Modes); err != nil {
			errs = append(errs, err)
		}
		for i, tok := range r.SuccessorTokens() {
			if err := checkCount(fmt.Sprintf("%s.successors[%d]", prefix, i), tok); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errs
}

func validateRequests(rows []RequestRow) []error {
	var errs []error
	for _, r := range rows {
		prefix := fmt.Sprintf("%s[%d]", SectionRequests, r.Row)
		if err := checkInt(prefix+".jobnr", r.JobNr); err != nil {
			errs = append(errs, err)
		}
		if err := checkInt(prefix+".mode", r.Mode); err != nil {
			errs = append(errs, err)
		}
		if err := checkCount(prefix+".duration", r.Duration); err != nil {
			errs = append(errs, err)
		}
		for _, name := range sortedKeys(r.Demands) {
			if err := checkCount(prefix+"."+name, r.Demands[name]); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errs
}

func checkInt(field, tok string) error {
	if _, err := strconv.Atoi(tok); err != nil {
		return fmt.Errorf("%s: %q is not an integer", field, tok)
	}
	return nil
}

// checkCount accepts non-negative integers only.
func checkCount(field, tok string) error {
	n, err := strconv.Atoi(tok)
	if err != nil {
		return fmt.Errorf("%s: %q is not an integer", field, tok)
	}
	if n < 0 {
		return fmt.Errorf("%s: must be >= 0, got %d", field, n)
	}
	return nil
}

// atoi converts a token that has already passed validation.
func atoi(tok string) int {
	n, _ := strconv.Atoi(tok)
	return n
}

func atoiPtr(tok *string) int {
	if tok == nil {
		return 0
	}
	return atoi(*tok)
}
