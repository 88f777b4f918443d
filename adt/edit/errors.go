package edit

import (
	"errors"

	"github.com/joshuapare/adtkit/adt"
	"github.com/joshuapare/adtkit/adt/layout"
	"github.com/joshuapare/adtkit/adt/mutator"
	"github.com/joshuapare/adtkit/internal/buf"
	"github.com/joshuapare/adtkit/internal/format"
	"github.com/joshuapare/adtkit/pkg/types"
)

// classify maps a low-level error onto the public error kinds. Errors that
// already carry a kind pass through.
func classify(err error, msg string, args ...any) error {
	if err == nil {
		return nil
	}
	if types.KindOf(err) != 0 {
		return err
	}
	return types.Wrap(kindFor(err), err, msg, args...)
}

func kindFor(err error) types.ErrKind {
	switch {
	case errors.Is(err, adt.ErrNodeNotFound):
		return types.ErrKindNodeNotFound
	case errors.Is(err, adt.ErrPropertyNotFound):
		return types.ErrKindPropertyNotFound
	case errors.Is(err, adt.ErrBadPath),
		errors.Is(err, format.ErrNameEmpty),
		errors.Is(err, format.ErrNameTooLong),
		errors.Is(err, format.ErrNameEncoding),
		errors.Is(err, format.ErrValueTooLarge):
		return types.ErrKindInvalidOperation
	case errors.Is(err, format.ErrTruncated),
		errors.Is(err, buf.ErrOutOfBounds),
		errors.Is(err, adt.ErrCorrupt),
		errors.Is(err, layout.ErrOutsideNode),
		errors.Is(err, mutator.ErrCounterOverflow),
		errors.Is(err, mutator.ErrCounterUnderflow),
		errors.Is(err, mutator.ErrInvalidDelta):
		return types.ErrKindMalformedInput
	default:
		return types.ErrKindInvalidOperation
	}
}
