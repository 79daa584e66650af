package importer

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInput indicates missing or empty source text.
	ErrInput = errors.New("input error")

	// ErrParse indicates a structurally malformed section.
	ErrParse = errors.New("parse error")

	// ErrValidation indicates the parsed data is inconsistent.
	ErrValidation = errors.New("validation error")
)

// InputError reports unusable source text.
type InputError struct {
	Source string
	Msg    string
}

func (e *InputError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("%s: %s", ErrInput, e.Msg)
	}
	return fmt.Sprintf("%s: %s: %s", ErrInput, e.Source, e.Msg)
}

func (e *InputError) Unwrap() error { return ErrInput }

// ParseError locates a structural problem by section and 1-based line.
type ParseError struct {
	Section string
	Line    int
	Msg     string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: section %q line %d: %s", ErrParse, e.Section, e.Line, e.Msg)
}

func (e *ParseError) Unwrap() error { return ErrParse }

// ValidationError collects every dataset inconsistency found in one pass.
type ValidationError struct {
	Problems []error
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "dataset validation failed (%d errors):", len(e.Problems))
	for _, p := range e.Problems {
		b.WriteString("\n  - ")
		b.WriteString(p.Error())
	}
	return b.String()
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func validationError(problems []error) error {
	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{Problems: problems}
}
