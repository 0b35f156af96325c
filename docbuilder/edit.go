package docbuilder

import (
	"bytes"
	"sort"

	"github.com/teranos/xmldoc/errors"
)

// Edit replaces src[Start:End] with Text. Start == End is an insertion.
type Edit struct {
	Start int
	End   int
	Text  string
}

// ApplyEdits applies edits to src and returns the new source. Offsets refer to
// the original src, so edits may be given in any order. Overlapping edits, or
// two insertions at the same offset, are rejected and src is left as is.
func ApplyEdits(src []byte, edits []Edit) ([]byte, error) {
	if len(edits) == 0 {
		return src, nil
	}

	sorted := append([]Edit(nil), edits...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	for i, e := range sorted {
		if e.Start < 0 || e.End < e.Start || e.End > len(src) {
			return nil, errors.Mark(
				errors.Newf("edit [%d:%d] out of range for %d bytes", e.Start, e.End, len(src)),
				errors.ErrInvalidRequest)
		}
		if i > 0 {
			prev := sorted[i-1]
			if e.Start < prev.End || e.Start == prev.Start {
				return nil, errors.Mark(
					errors.Newf("edit [%d:%d] overlaps [%d:%d]", e.Start, e.End, prev.Start, prev.End),
					errors.ErrInvalidRequest)
			}
		}
	}

	var buf bytes.Buffer
	grow := len(src)
	for _, e := range sorted {
		grow += len(e.Text) - (e.End - e.Start)
	}
	buf.Grow(grow)

	last := 0
	for _, e := range sorted {
		buf.Write(src[last:e.Start])
		buf.WriteString(e.Text)
		last = e.End
	}
	buf.Write(src[last:])
	return buf.Bytes(), nil
}
