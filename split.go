package traffic

import(
	"fmt"
	"time"
)

// DefaultSplitThreshold is the gap used by Split (and Traffic.Iterate) when given a threshold
// of zero or less.
const DefaultSplitThreshold = 600 * time.Second

// A SegmentIterator walks the segments of a Flight, in time order. It does the work lazily; a
// segment isn't cut until Iterate asks for it. Not restartable.
//
//   it := f.Split(0)
//   for it.Iterate() {
//     seg := it.Flight()
//   }
//   if it.Err() != nil { ... }
type SegmentIterator struct {
	sorted    Table
	threshold time.Duration
	pending   []span // LIFO; top of stack is the next span to examine

	val *Flight
	err error
}

// A half-open range of indices into the sorted table
type span struct { lo,hi int }

// Split breaks the flight wherever consecutive reports are more than threshold apart. It works
// by repeatedly bisecting at the largest remaining gap, left half first, so the segments come
// out in time order and between them contain every report of the flight exactly once.
func (f *Flight)Split(threshold time.Duration) *SegmentIterator {
	if threshold <= 0 { threshold = DefaultSplitThreshold }
	it := SegmentIterator{
		sorted: f.reports.Sorted(),
		threshold: threshold,
	}
	if len(it.sorted) > 0 {
		it.pending = []span{{0, len(it.sorted)}}
	}
	return &it
}

func (it *SegmentIterator)Iterate() bool {
	if it.err != nil { return false }
	it.val,it.err = it.nextWithErr()
	return (it.val != nil && it.err == nil)
}
func (it *SegmentIterator)Flight() *Flight { return it.val }
func (it *SegmentIterator)Err() error {
	if it.err == nil { return nil }
	return fmt.Errorf("segmentiterator: %w", it.err)
}

// All drains the iterator.
func (it *SegmentIterator)All() ([]*Flight, error) {
	ret := []*Flight{}
	for it.Iterate() {
		ret = append(ret, it.Flight())
	}
	return ret, it.Err()
}

func (it *SegmentIterator)nextWithErr() (*Flight, error) {
	for len(it.pending) > 0 {
		s := it.pending[len(it.pending)-1]
		it.pending = it.pending[:len(it.pending)-1]

		k,gap := it.maxGap(s)
		if gap <= it.threshold {
			return &Flight{reports: it.sorted[s.lo:s.hi].Copy()}, nil
		}

		// Everything before the gap is strictly earlier than sorted[k]; everything from k on is
		// at or after it. So this is Before(t0,strict) and After(t0,!strict), done by index.
		left,right := span{s.lo, k}, span{k, s.hi}
		if left.hi-left.lo >= s.hi-s.lo || right.hi-right.lo >= s.hi-s.lo {
			return nil, fmt.Errorf("bisection at %d of [%d,%d) did not shrink", k, s.lo, s.hi)
		}
		it.pending = append(it.pending, right, left)
	}
	return nil,nil // All done
}

// maxGap finds the largest gap between neighbouring reports in the span, and the index of the
// report to its right. The first of equal gaps wins.
func (it *SegmentIterator)maxGap(s span) (int, time.Duration) {
	k,max := s.lo, time.Duration(0)
	for i:=s.lo+1; i<s.hi; i++ {
		if d := it.sorted[i].Timestamp.Sub(it.sorted[i-1].Timestamp); d > max {
			k,max = i,d
		}
	}
	return k,max
}

// Gaps lists the time between each pair of consecutive reports (in time order).
func (f *Flight)Gaps() []time.Duration {
	s := f.reports.Sorted()
	ret := []time.Duration{}
	for i:=1; i<len(s); i++ {
		ret = append(ret, s[i].Timestamp.Sub(s[i-1].Timestamp))
	}
	return ret
}
