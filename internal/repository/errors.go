package repository

import "errors"

var (
	ErrNotFound    = errors.New("not found")
	ErrAmbiguousID = errors.New("ambiguous id prefix")
)
