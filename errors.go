package depset

import "errors"

// Sentinel errors for manifest and request failures.
var (
	// ErrIncompatibleSelection indicates a request that selects all groups and
	// only optional groups at the same time.
	ErrIncompatibleSelection = errors.New("all and only-optional are mutually exclusive")

	// ErrMissingField indicates the manifest lacks a required top-level field.
	ErrMissingField = errors.New("missing required manifest field")

	// ErrUnsupportedFormat indicates a manifest file type that has no reader.
	ErrUnsupportedFormat = errors.New("unsupported manifest format")

	// ErrDuplicateGroup indicates two optional groups share a name.
	ErrDuplicateGroup = errors.New("duplicate optional dependency group")
)
