// Package opts implements the table-driven option parser shared by every
// verb: each Option pairs its accepted flag spellings with a parse
// function and a validation predicate, and parsing accumulates into an
// explicit Request value rather than process-wide state.
package opts

import (
	"fmt"

	"github.com/mqtools/mqctl/internal/mqueue"
)

// DefaultMode is the permission set applied when -m is not given.
const DefaultMode = 0o755

// Request accumulates everything option parsing produces for one verb
// invocation. Size and Depth default to -1 so "not supplied" stays
// distinguishable from "supplied as zero".
type Request struct {
	// Exists is set by the creator once it has probed the queue; the
	// size/depth validators relax when the queue is already there.
	Exists bool

	Size  int64
	Depth int64
	Block bool

	SetMode bool
	Mode    uint32

	SetGroup bool
	Group    uint32

	SetUser bool
	User    uint32

	Priority uint

	Queues   []string
	Contents []string
}

// NewRequest returns a Request with the documented defaults: blocking
// I/O, mode 0755, medium priority, size and depth unset.
func NewRequest() *Request {
	return &Request{
		Size:     -1,
		Depth:    -1,
		Block:    true,
		Mode:     DefaultMode,
		Priority: mqueue.PrioMax / 2,
	}
}

// ValidateSize reports whether a usable message size is available. An
// existing queue keeps its size, so the check only bites on creation.
func (r *Request) ValidateSize() error {
	if r.Exists || r.Size > 0 {
		return nil
	}
	return fmt.Errorf("-s maximum message size not provided")
}

// ValidateDepth is the depth counterpart of ValidateSize.
func (r *Request) ValidateDepth() error {
	if r.Exists || r.Depth > 0 {
		return nil
	}
	return fmt.Errorf("-d maximum queue depth not provided")
}
