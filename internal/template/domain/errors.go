package domain

import "errors"

var (
	// ErrInvalidName indicates an empty template name.
	ErrInvalidName = errors.New("invalid template name")
	// ErrInvalidOrganization indicates an empty organization name.
	ErrInvalidOrganization = errors.New("invalid organization")
	// ErrInvalidPurpose indicates an empty template purpose.
	ErrInvalidPurpose = errors.New("invalid purpose")
	// ErrInvalidSignatories indicates a missing or blank signatory.
	ErrInvalidSignatories = errors.New("invalid signatories")
	// ErrTemplateNotFound indicates no template matches the identifier.
	ErrTemplateNotFound = errors.New("template not found")
)
