package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Database errors
	ErrUnknownDriver   = fmt.Errorf("unknown database driver")
	ErrStorageConflict = fmt.Errorf("domain storage already exists")

	// Filesystem errors
	ErrTemplateMissing = fmt.Errorf("descriptor template missing")
)
