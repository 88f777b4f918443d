package batch

import (
	"fmt"

	"github.com/joshuapare/adtkit/pkg/types"
)

// OpError reports which batch entry failed. errors.Is against the types
// sentinels sees through it.
type OpError struct {
	Index int
	Name  string
	Op    types.EditOp // nil when the entry did not decode
	Err   error
}

func (e *OpError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("operation %d: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("operation %d (%s): %v", e.Index, e.Name, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }
