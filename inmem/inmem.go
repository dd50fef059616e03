// Package inmem provides in-memory store implementations backed by maps and
// mutexes. They are the default for single-process deployments and for tests
// that need real store semantics rather than function-field mocks.
package inmem

import (
	"fmt"

	"github.com/storee/storee"
)

func notFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, storee.ErrNotFound)
}
