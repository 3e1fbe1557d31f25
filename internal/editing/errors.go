package editing

import "errors"

var (
	// ErrContentMismatch is returned when supplied content does not have the
	// shape required by the target section's type.
	ErrContentMismatch = errors.New("content does not match section type")
	// ErrUnknownSectionType is returned for a type tag outside the known set.
	ErrUnknownSectionType = errors.New("unknown section type")
	// ErrUnknownField is returned for a document or contact field name outside the known set.
	ErrUnknownField = errors.New("unknown field")
	// ErrInvalidDirection is returned for a move direction other than up or down.
	ErrInvalidDirection = errors.New("invalid direction")
	// ErrInvalidDocument is returned when a replacement document breaks a model invariant.
	ErrInvalidDocument = errors.New("invalid document")
)
