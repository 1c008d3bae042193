package frameset

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strings"
)

// FrameSet is an immutable representation of the ordered, unique set of
// frames denoted by a frame range string.
//
// The frame range can be expressed in the following ways:
//
//	1-5
//	1-5,10-20
//	1-100x5 (every fifth frame)
//	1-100y5 (opposite of above, fills in missing frames)
//	1-100:4 (same as 1-100x4,1-100x3,1-100x2,1-100)
//
// All set operations return a new normalized FrameSet; the receiver is
// never mutated, so a FrameSet is safe to share between goroutines without
// locking. Equality is based on contents and order, not on the frame range
// string it was built from.
type FrameSet struct {
	frange string
	items  map[int64]struct{}
	order  []int64
}

// New parses a frame range string into a FrameSet. Padding placeholder
// characters ("#", "@") are stripped before parsing, stray commas are
// tolerated and the empty string denotes the empty set. The first clause
// that fails the grammar aborts construction with a MalformedRangeError.
func New(frange string) (*FrameSet, error) {
	r := &FrameSet{
		frange: stripPadChars(frange),
		items:  map[int64]struct{}{},
	}
	if r.frange == "" {
		return r, nil
	}
	for _, part := range strings.Split(r.frange, ",") {
		if part == "" {
			continue
		}
		clause, err := parseRangePart(part)
		if err != nil {
			return nil, err
		}
		for _, f := range clause.expand() {
			if _, ok := r.items[f]; ok {
				continue
			}
			r.items[f] = struct{}{}
			r.order = append(r.order, f)
		}
	}
	return r, nil
}

// FromFrames builds a FrameSet from a slice of frames, removing duplicates
// while preserving first-occurrence order. With sortFrames set the frames
// are sorted ascending first. The frame range string is regenerated by the
// run compressor.
func FromFrames(frames []int64, sortFrames bool) *FrameSet {
	if sortFrames {
		sorted := make([]int64, len(frames))
		copy(sorted, frames)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
		frames = sorted
	}
	r := &FrameSet{items: make(map[int64]struct{}, len(frames))}
	for _, f := range frames {
		if _, ok := r.items[f]; ok {
			continue
		}
		r.items[f] = struct{}{}
		r.order = append(r.order, f)
	}
	r.frange = FramesToFrameRange(r.order, false, 0, false)
	return r
}

// TryFrameSet coerces v to a FrameSet. It accepts a FrameSet, a slice of
// frames or a frame range string. The second return is false when v is not
// coercible; callers dispatching a binary operation treat that as "not
// applicable" rather than an error.
func TryFrameSet(v any) (*FrameSet, bool) {
	switch o := v.(type) {
	case *FrameSet:
		return o, o != nil
	case FrameSet:
		return &o, true
	case []int64:
		return FromFrames(o, false), true
	case []int:
		frames := make([]int64, len(o))
		for i, f := range o {
			frames[i] = int64(f)
		}
		return FromFrames(frames, false), true
	case string:
		r, err := New(o)
		if err != nil {
			return nil, false
		}
		return r, true
	default:
		return nil, false
	}
}

// IsFrameRange reports whether the given string parses as a frame range.
func IsFrameRange(frange string) bool {
	_, err := New(frange)
	return err == nil
}

// String returns the frame range string the set was built from, or the
// regenerated one for sets built from frames.
func (r *FrameSet) String() string { return r.frange }

// Len returns the number of unique frames.
func (r *FrameSet) Len() int { return len(r.order) }

// HasFrame reports whether frame is a member of the set.
func (r *FrameSet) HasFrame(frame int64) bool {
	_, ok := r.items[frame]
	return ok
}

// Frame returns the frame at the given position of the ordered frames.
func (r *FrameSet) Frame(index int) (int64, error) {
	if index < 0 || index >= len(r.order) {
		return 0, fmt.Errorf("frame %d: %w", index, ErrIndexOutOfRange)
	}
	return r.order[index], nil
}

// Index returns the position of frame within the ordered frames.
func (r *FrameSet) Index(frame int64) (int, error) {
	for i, f := range r.order {
		if f == frame {
			return i, nil
		}
	}
	return 0, fmt.Errorf("index of %d: %w", frame, ErrValueNotFound)
}

// Start returns the first frame in the set.
func (r *FrameSet) Start() (int64, error) {
	if len(r.order) == 0 {
		return 0, fmt.Errorf("start: %w", ErrEmptyFrameSet)
	}
	return r.order[0], nil
}

// End returns the last frame in the set.
func (r *FrameSet) End() (int64, error) {
	if len(r.order) == 0 {
		return 0, fmt.Errorf("end: %w", ErrEmptyFrameSet)
	}
	return r.order[len(r.order)-1], nil
}

// Frames returns a copy of the ordered frames.
func (r *FrameSet) Frames() []int64 {
	frames := make([]int64, len(r.order))
	copy(frames, r.order)
	return frames
}

// Iterate returns an iterator over the ordered frames.
func (r *FrameSet) Iterate() *Iterator {
	return newIterator(r.order)
}

// FrameRange returns the frame range string, zero-padded to the given width.
//
//	New("1-100").FrameRange(5) == "00001-00100"
func (r *FrameSet) FrameRange(zfill int) string {
	return PadFrameRange(r.frange, zfill)
}

// InvertedFrameRange returns the range string of the frames missing within
// the span of the set, or "" when the set has no internal gaps.
//
//	New("1-100x2").InvertedFrameRange(0) == "2-98x2"
func (r *FrameSet) InvertedFrameRange(zfill int) string {
	var gaps []int64
	it := newIterator(r.sortedFrames())
	for it.Next() {
		if it.Index() == 0 || it.IsConsecutive() {
			continue
		}
		gaps = appendFrameRange(gaps, it.prev()+1, it.Frame()-1, 1)
	}
	if len(gaps) == 0 {
		return ""
	}
	return FramesToFrameRange(gaps, false, zfill, false)
}

// Normalize returns a new FrameSet with the frames sorted ascending and the
// frame range string recompressed. Normalize is idempotent.
func (r *FrameSet) Normalize() *FrameSet {
	return FromFrames(r.sortedFrames(), false)
}

// Union returns a new sorted FrameSet holding the frames of r and all others.
func (r *FrameSet) Union(others ...*FrameSet) *FrameSet {
	merged := r.cloneItems()
	for _, o := range others {
		for f := range o.items {
			merged[f] = struct{}{}
		}
	}
	return fromItems(merged)
}

// Intersection returns a new sorted FrameSet holding the frames common to r
// and all others.
func (r *FrameSet) Intersection(others ...*FrameSet) *FrameSet {
	merged := map[int64]struct{}{}
	for f := range r.items {
		inAll := true
		for _, o := range others {
			if _, ok := o.items[f]; !ok {
				inAll = false
				break
			}
		}
		if inAll {
			merged[f] = struct{}{}
		}
	}
	return fromItems(merged)
}

// Difference returns a new sorted FrameSet holding the frames of r that are
// in none of the others.
func (r *FrameSet) Difference(others ...*FrameSet) *FrameSet {
	merged := r.cloneItems()
	for _, o := range others {
		for f := range o.items {
			delete(merged, f)
		}
	}
	return fromItems(merged)
}

// SymmetricDifference returns a new sorted FrameSet holding the frames in
// either r or other, but not both.
func (r *FrameSet) SymmetricDifference(other *FrameSet) *FrameSet {
	merged := map[int64]struct{}{}
	for f := range r.items {
		if _, ok := other.items[f]; !ok {
			merged[f] = struct{}{}
		}
	}
	for f := range other.items {
		if _, ok := r.items[f]; !ok {
			merged[f] = struct{}{}
		}
	}
	return fromItems(merged)
}

// IsDisjoint reports whether r and other share no frames.
func (r *FrameSet) IsDisjoint(other *FrameSet) bool {
	for f := range r.items {
		if _, ok := other.items[f]; ok {
			return false
		}
	}
	return true
}

// IsSubset reports whether every frame of r is in other.
func (r *FrameSet) IsSubset(other *FrameSet) bool {
	for f := range r.items {
		if _, ok := other.items[f]; !ok {
			return false
		}
	}
	return true
}

// IsSuperset reports whether every frame of other is in r.
func (r *FrameSet) IsSuperset(other *FrameSet) bool {
	return other.IsSubset(r)
}

// Equal reports whether r and other hold the same frames in the same order.
// The frame range strings are not compared; "1-3" and "1,2,3" are equal.
func (r *FrameSet) Equal(other *FrameSet) bool {
	if len(r.order) != len(other.order) {
		return false
	}
	for i, f := range r.order {
		if other.order[i] != f {
			return false
		}
	}
	return true
}

// LessThan reports whether r sorts below other: a proper subset is less,
// and equal contents fall back to a lexicographic comparison of the
// ordered frames. New("1-5") is less than New("5-1").
func (r *FrameSet) LessThan(other *FrameSet) bool {
	if r.IsSubset(other) && len(r.items) < len(other.items) {
		return true
	}
	return r.sameItems(other) && compareOrder(r.order, other.order) < 0
}

// LessThanEqual reports whether r is a subset of other.
func (r *FrameSet) LessThanEqual(other *FrameSet) bool {
	return r.IsSubset(other)
}

// GreaterThan is the mirror of LessThan.
func (r *FrameSet) GreaterThan(other *FrameSet) bool {
	return other.LessThan(r)
}

// GreaterThanEqual reports whether r is a superset of other.
func (r *FrameSet) GreaterThanEqual(other *FrameSet) bool {
	return r.IsSuperset(other)
}

// Hash returns a hash over the ordered frames, usable as a map key for
// content-and-order identity. Consistent with Equal.
func (r *FrameSet) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	for _, f := range r.order {
		v := uint64(f)
		for i := 0; i < 8; i++ {
			buf[i] = byte(v >> (8 * i))
		}
		h.Write(buf[:])
	}
	return h.Sum64()
}

func (r *FrameSet) sameItems(other *FrameSet) bool {
	if len(r.items) != len(other.items) {
		return false
	}
	for f := range r.items {
		if _, ok := other.items[f]; !ok {
			return false
		}
	}
	return true
}

func (r *FrameSet) sortedFrames() []int64 {
	frames := r.Frames()
	sort.Slice(frames, func(i, j int) bool { return frames[i] < frames[j] })
	return frames
}

func (r *FrameSet) cloneItems() map[int64]struct{} {
	items := make(map[int64]struct{}, len(r.items))
	for f := range r.items {
		items[f] = struct{}{}
	}
	return items
}

func fromItems(items map[int64]struct{}) *FrameSet {
	frames := make([]int64, 0, len(items))
	for f := range items {
		frames = append(frames, f)
	}
	return FromFrames(frames, true)
}

func compareOrder(a, b []int64) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}
