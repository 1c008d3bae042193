package frameset

// Iterator walks a slice of frames.
type Iterator struct {
	current int
	frames  []int64
}

func newIterator(frames []int64) *Iterator {
	return &Iterator{current: -1, frames: frames}
}

// Next advances the iterator and reports whether a frame is available.
func (r *Iterator) Next() bool {
	r.current++
	return r.current < len(r.frames)
}

// Frame returns the current frame.
func (r *Iterator) Frame() int64 {
	return r.frames[r.current]
}

// Index returns the position of the current frame.
func (r *Iterator) Index() int {
	return r.current
}

// IsConsecutive reports whether the current frame directly follows the
// previous one.
func (r *Iterator) IsConsecutive() bool {
	if r.current < 1 {
		return false
	}
	return r.frames[r.current-1] == r.frames[r.current]-1
}

func (r *Iterator) prev() int64 {
	return r.frames[r.current-1]
}
