package frameset

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// padRE matches the numeric literals of one clause of a frame range string,
// capturing signs, the range separator and any modifier separately so that
// only the digits are rewritten when padding.
var padRE = regexp.MustCompile(`(-?)(\d+)(?:(-)(-?)(\d+)(?:([:xy])(\d+))?)?`)

// padInt returns the zero-filled string of a frame number. The sign counts
// toward the width, matching the compressor's rendering of negative frames.
func padInt(frame int64, width int) string {
	return fmt.Sprintf("%0*d", width, frame)
}

// zfillDigits left-pads a bare digit string with zeros. Used by the textual
// padding pass, where the sign is captured separately and not counted.
func zfillDigits(digits string, width int) string {
	if len(digits) >= width {
		return digits
	}
	return strings.Repeat("0", width-len(digits)) + digits
}

// buildFrangePart renders one run as a range token. A stride of 0 means no
// stride was established (single frame).
func buildFrangePart(start, stop, stride int64, zfill int) string {
	if stride == 0 || start == stop {
		return padInt(start, zfill)
	}
	if abs64(stride) == 1 {
		return fmt.Sprintf("%s-%s", padInt(start, zfill), padInt(stop, zfill))
	}
	return fmt.Sprintf("%s-%sx%d", padInt(start, zfill), padInt(stop, zfill), stride)
}

// appendFrameRanges compresses frames into range tokens in a single forward
// pass and appends them to parts. A stride is only trusted once three
// consecutive frames agree on it; a bare pair always flushes as two single
// frame tokens, never as a two-sample stride.
func appendFrameRanges(parts []string, frames []int64, zfill int) []string {
	var (
		start, stride, last int64
		count               int
		open, strideSet     bool
	)
	for _, frame := range frames {
		if !open {
			start, last, count, open = frame, frame, 1, true
			stride, strideSet = 0, false
			continue
		}
		// the stride is established by the second sample; a duplicate
		// establishes a stride of 0, which is not the same as none
		if !strideSet {
			stride = abs64(frame - start)
			strideSet = true
		}
		newStride := abs64(frame - last)
		switch {
		case stride == newStride:
			last = frame
			count++
		case count == 2:
			// two samples do not establish a stride: the first frame
			// stands alone and the run restarts at the second
			parts = append(parts, buildFrangePart(start, start, 0, zfill))
			start = last
			stride = newStride
			last = frame
		default:
			parts = append(parts, buildFrangePart(start, last, stride, zfill))
			start, last, count = frame, frame, 1
			stride, strideSet = 0, false
		}
	}
	if !open {
		return parts
	}
	if count == 2 {
		parts = append(parts, buildFrangePart(start, start, 0, zfill))
		parts = append(parts, buildFrangePart(last, last, 0, zfill))
		return parts
	}
	return append(parts, buildFrangePart(start, last, stride, zfill))
}

// FramesToFrameRange converts a sequence of frames into the most compact
// frame range string that reproduces the same set of frames. Iteration
// order is significant unless sortFrames is set; compress removes
// duplicates first, keeping the first occurrence.
func FramesToFrameRange(frames []int64, sortFrames bool, zfill int, compress bool) string {
	if compress {
		frames = uniqueFrames(frames)
	}
	switch len(frames) {
	case 0:
		return ""
	case 1:
		return padInt(frames[0], zfill)
	}
	if sortFrames {
		sorted := make([]int64, len(frames))
		copy(sorted, frames)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
		frames = sorted
	}
	return strings.Join(appendFrameRanges(nil, frames, zfill), ",")
}

// PadFrameRange zero-pads every frame number of a frame range string to the
// given width. Signs, separators, modifiers and chunks are left untouched.
func PadFrameRange(frange string, zfill int) string {
	return padRE.ReplaceAllStringFunc(frange, func(clause string) string {
		m := padRE.FindStringSubmatch(clause)
		m[2] = zfillDigits(m[2], zfill)
		if m[5] != "" {
			m[5] = zfillDigits(m[5], zfill)
		}
		return strings.Join(m[1:], "")
	})
}

// uniqueFrames returns frames with duplicates removed, first occurrence wins.
func uniqueFrames(frames []int64) []int64 {
	seen := make(map[int64]struct{}, len(frames))
	out := make([]int64, 0, len(frames))
	for _, f := range frames {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}
