package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound        = errors.New("entity not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNoAssessment    = errors.New("complete assessment first")
	ErrEmptyMessage    = errors.New("empty message")
	ErrInvalidInput    = errors.New("invalid assessment input")
)
