package store

import (
	"fmt"

	"github.com/goliatone/go-formspec/pkg/definition"
)

// ErrNotFound is returned for unknown form ids. It matches
// definition.ErrFormNotFound under errors.Is.
var ErrNotFound = fmt.Errorf("store: %w", definition.ErrFormNotFound)
