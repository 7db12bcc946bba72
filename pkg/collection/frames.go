package collection

import "github.com/aretw0/nodegraph/pkg/domain"

type frameRange struct {
	first, last       int
	firstSet, lastSet bool
}

func (r *frameRange) add(first, last int, firstOK, lastOK bool) {
	if firstOK {
		if !r.firstSet || first < r.first {
			r.first = first
		}
		r.firstSet = true
	}
	if lastOK {
		if !r.lastSet || last > r.last {
			r.last = last
		}
		r.lastSet = true
	}
}

// RecomputeFrameRangeForAllReaders aggregates the frame range of every reader,
// nested groups included. The first reader's bounds replace first and last,
// later readers only widen them. Unbounded sides are ignored, and a side no
// reader bounds keeps the value passed in.
func (c *Collection) RecomputeFrameRangeForAllReaders(first, last int) (int, int) {
	var acc frameRange
	accumulateFrames(c, &acc)
	if acc.firstSet {
		first = acc.first
	}
	if acc.lastSet {
		last = acc.last
	}
	return first, last
}

func accumulateFrames(coll domain.Collection, acc *frameRange) {
	for _, n := range coll.Nodes() {
		if n.Capabilities().Has(domain.CapReader) {
			if fr, ok := n.(domain.FrameRanger); ok {
				acc.add(fr.FrameRange())
			}
			continue
		}
		if g, ok := n.AsContainer(); ok {
			accumulateFrames(g, acc)
		}
	}
}
