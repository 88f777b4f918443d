package adt

import (
	"fmt"

	"github.com/joshuapare/adtkit/internal/buf"
	"github.com/joshuapare/adtkit/internal/format"
)

// Report summarises a structural validation pass.
type Report struct {
	Nodes      int // nodes visited
	Properties int // properties visited
	MaxDepth   int // depth of the deepest node, root = 0
	End        int // offset just past the root subtree
	Trailing   int // bytes after End
}

// Validate walks the whole blob and checks the layout invariants: every
// header and property (padding included) lies inside the blob, and the
// counters cannot claim more entries than the remaining bytes could hold.
// Bytes after the root subtree are reported, not rejected.
func Validate(b []byte) (Report, error) {
	var r Report
	end, err := validateNode(b, RootOffset, 0, &r)
	if err != nil {
		return r, err
	}
	r.End = end
	r.Trailing = len(b) - end
	return r, nil
}

func validateNode(b []byte, off, depth int, r *Report) (int, error) {
	h, err := format.DecodeNode(b, off)
	if err != nil {
		return 0, fmt.Errorf("node at %#x: %w: %w", off, ErrCorrupt, err)
	}
	r.Nodes++
	r.MaxDepth = max(r.MaxDepth, depth)

	remaining := len(b) - off - format.NodeHeaderSize
	if _, err := buf.CheckRange(remaining, 0, int(h.PropertyCount)*format.PropHeaderSize); err != nil {
		return 0, fmt.Errorf("node at %#x claims %d properties: %w", off, h.PropertyCount, ErrCorrupt)
	}

	cur := FirstPropertyOffset(off)
	for i := uint32(0); i < h.PropertyCount; i++ {
		p, err := format.DecodePropertyStrict(b, cur)
		if err != nil {
			return 0, fmt.Errorf("node at %#x property %d: %w: %w", off, i, ErrCorrupt, err)
		}
		r.Properties++
		cur += p.StoredLen()
	}

	if _, err := buf.CheckRange(len(b)-cur, 0, int(h.ChildCount)*format.NodeHeaderSize); err != nil {
		return 0, fmt.Errorf("node at %#x claims %d children: %w", off, h.ChildCount, ErrCorrupt)
	}
	for i := uint32(0); i < h.ChildCount; i++ {
		if cur, err = validateNode(b, cur, depth+1, r); err != nil {
			return 0, err
		}
	}
	return cur, nil
}
