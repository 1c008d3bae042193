package frameset

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// widths of the padding placeholder characters accepted (and stripped)
// around a frame range string, e.g. "1-100#" or "@@1-100".
var padWidths = map[rune]int{'#': 4, '@': 1}

// rangePartRE matches one comma-separated clause of a frame range string.
// Examples: "1", "1-100", "1-100x5", "1-100:5", "1-100y5", "-4--2".
var rangePartRE = regexp.MustCompile(`^(-?\d+)(?:-(-?\d+)(?:([:xy])(\d+))?)?$`)

const (
	modNone    = 0
	modStride  = 'x'
	modFill    = 'y'
	modStagger = ':'
)

// rangeClause is one parsed clause. chunk is always >= 1.
type rangeClause struct {
	start    int64
	end      int64
	modifier byte
	chunk    int64
}

// parseRangePart parses a single clause against the range grammar.
func parseRangePart(part string) (rangeClause, error) {
	m := rangePartRE.FindStringSubmatch(part)
	if m == nil {
		return rangeClause{}, &MalformedRangeError{
			Clause: part,
			Reason: fmt.Sprintf("did not match %s", rangePartRE.String()),
		}
	}
	c := rangeClause{chunk: 1}
	var err error
	// the regex guarantees digits, so ParseInt can only fail on overflow
	c.start, err = strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return rangeClause{}, &MalformedRangeError{
			Clause: part,
			Reason: fmt.Sprintf("frame %q out of range", m[1]),
		}
	}
	c.end = c.start
	if m[2] != "" {
		c.end, err = strconv.ParseInt(m[2], 10, 64)
		if err != nil {
			return rangeClause{}, &MalformedRangeError{
				Clause: part,
				Reason: fmt.Sprintf("frame %q out of range", m[2]),
			}
		}
	}
	if m[3] != "" {
		c.modifier = m[3][0]
		chunk, err := strconv.ParseInt(m[4], 10, 64)
		if err != nil {
			return rangeClause{}, &MalformedRangeError{
				Clause: part,
				Reason: fmt.Sprintf("chunk %q out of range", m[4]),
			}
		}
		if chunk == 0 {
			return rangeClause{}, &MalformedRangeError{
				Clause: part,
				Reason: "chunk cannot be 0",
			}
		}
		c.chunk = chunk
	}
	return c, nil
}

// stripPadChars removes the padding placeholder characters from a frame
// range string before parsing.
func stripPadChars(frange string) string {
	return strings.Map(func(r rune) rune {
		if _, ok := padWidths[r]; ok {
			return -1
		}
		return r
	}, frange)
}

// appendFrameRange appends the inclusive frames from start to stop to dst.
// Direction is inferred from start and stop; only the magnitude of step is
// used, so descending ranges work with a positive chunk.
func appendFrameRange(dst []int64, start, stop, step int64) []int64 {
	step = abs64(step)
	if start <= stop {
		for f := start; f <= stop; f += step {
			dst = append(dst, f)
			// the next increment would wrap past the int64 boundary
			if f > stop-step {
				break
			}
		}
		return dst
	}
	for f := start; f >= stop; f -= step {
		dst = append(dst, f)
		if f < stop+step {
			break
		}
	}
	return dst
}

// expand returns the frames a single clause denotes, in emission order,
// including frames already seen by earlier clauses. The caller dedupes.
func (c rangeClause) expand() []int64 {
	switch c.modifier {
	case modStride:
		return appendFrameRange(nil, c.start, c.end, c.chunk)
	case modStagger:
		// largest stride first, finer strides fill in behind it; the
		// emission order is part of the contract, not just the set
		var frames []int64
		for stride := c.chunk; stride >= 1; stride-- {
			frames = appendFrameRange(frames, c.start, c.end, stride)
		}
		return frames
	case modFill:
		excluded := map[int64]struct{}{}
		for _, f := range appendFrameRange(nil, c.start, c.end, c.chunk) {
			excluded[f] = struct{}{}
		}
		var frames []int64
		for _, f := range appendFrameRange(nil, c.start, c.end, 1) {
			if _, ok := excluded[f]; !ok {
				frames = append(frames, f)
			}
		}
		return frames
	default:
		return appendFrameRange(nil, c.start, c.end, 1)
	}
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
