// Package memerr provides the allocator's standardized fault type. The
// allocator surfaces exactly one kind of error as a Go value: everything
// else is either a null pointer (out of memory) or a silent no-op (null or
// redundant deallocation). A Fault is raised when the manager observes its
// own metadata is corrupt, and by Close when leak checking is enabled and
// regions are still held. There is no recovery from that: the code that
// raises one panics and expects the process to go down.
package memerr

import (
	"fmt"
	"runtime"
)

// Category classifies what kind of internal invariant was violated.
type Category string

const (
	CategoryInvariant Category = "INVARIANT"
)

// Fault is a standardized, caller-attributed description of a corrupted
// allocator invariant.
type Fault struct {
	Category Category
	Code     string
	Message  string
	Caller   string
}

func (f *Fault) Error() string {
	return fmt.Sprintf("[%s:%s] %s (caller: %s)", f.Category, f.Code, f.Message, f.Caller)
}

func newFault(category Category, code, message string) *Fault {
	caller := "unknown"

	if pc, _, _, ok := runtime.Caller(2); ok {
		if fn := runtime.FuncForPC(pc); fn != nil {
			caller = fn.Name()
		}
	}

	return &Fault{Category: category, Code: code, Message: message, Caller: caller}
}

// Invariant panics with a Fault describing a corrupted allocator invariant
// (e.g. a block the free index believes it holds cannot be found). There is
// no recoverable path from this: the metadata plane underlying every live
// allocation may already be wrong, so the process must be assumed corrupt.
func Invariant(code, message string) {
	panic(newFault(CategoryInvariant, code, message))
}
