package frameset

import (
	"testing"
)

func TestFramesToFrameRange(t *testing.T) {
	cases := map[string]struct {
		frames   []int64
		sort     bool
		zfill    int
		compress bool
		expected string
	}{
		"Empty": {
			frames:   nil,
			expected: "",
		},
		"Single": {
			frames:   []int64{42},
			expected: "42",
		},
		"SinglePadded": {
			frames:   []int64{42},
			zfill:    4,
			expected: "0042",
		},
		"Run": {
			frames:   []int64{1, 2, 3, 4, 5},
			expected: "1-5",
		},
		"Pair": {
			frames:   []int64{5, 9},
			expected: "5,9",
		},
		"ThreeSampleStride": {
			frames:   []int64{5, 9, 13},
			expected: "5-13x4",
		},
		"PairThenRun": {
			frames:   []int64{1, 5, 6, 7, 8},
			expected: "1,5-8",
		},
		"StrideBreak": {
			frames:   []int64{1, 3, 5, 7, 8, 9},
			expected: "1-7x2,8,9",
		},
		"Unsorted": {
			frames:   []int64{8, 2, 4, 6},
			sort:     true,
			expected: "2-8x2",
		},
		"Duplicates": {
			frames:   []int64{1, 2, 2, 3},
			compress: true,
			expected: "1-3",
		},
		"DuplicatePairKept": {
			frames:   []int64{5, 5, 9},
			expected: "5,5,9",
		},
		"DuplicateInRunKept": {
			frames:   []int64{1, 2, 2, 3},
			expected: "1,2,2,3",
		},
		"AllDuplicates": {
			frames:   []int64{5, 5, 5},
			expected: "5",
		},
		"Descending": {
			frames:   []int64{365, 364, 363},
			expected: "365-363",
		},
		"NegativeRun": {
			frames:   []int64{-2, -3, -4},
			expected: "-2--4",
		},
		"Mixed": {
			frames:   []int64{-1, 4, 9, 14, 19, 20, 22, 24, 25, 34, 365, 364, 363, -2, -3, -4},
			expected: "-1-19x5,20-24x2,25,34,365-363,-2--4",
		},
		"MixedSorted": {
			frames:   []int64{-1, 4, 9, 14, 19, 20, 22, 24, 25, 34, 365, 364, 363, -2, -3, -4},
			sort:     true,
			expected: "-4--1,4-19x5,20-24x2,25,34,363-365",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got := FramesToFrameRange(tc.frames, tc.sort, tc.zfill, tc.compress)
			if got != tc.expected {
				t.Errorf("%s: -want %q, +got: %q\n", name, tc.expected, got)
			}
		})
	}
}

func TestPadFrameRange(t *testing.T) {
	cases := map[string]struct {
		frange   string
		zfill    int
		expected string
	}{
		"Range": {
			frange:   "1-100",
			zfill:    5,
			expected: "00001-00100",
		},
		"StrideChunkUntouched": {
			frange:   "1-100x5",
			zfill:    5,
			expected: "00001-00100x5",
		},
		"StaggerChunkUntouched": {
			frange:   "1-100:5",
			zfill:    5,
			expected: "00001-00100:5",
		},
		"NegativeSignNotCounted": {
			frange:   "-3-5",
			zfill:    3,
			expected: "-003-005",
		},
		"NegativeRange": {
			frange:   "5--1",
			zfill:    2,
			expected: "05--01",
		},
		"MultiClause": {
			frange:   "1,5-8,10-20y3",
			zfill:    3,
			expected: "001,005-008,010-020y3",
		},
		"WidthAlreadyMet": {
			frange:   "100-200",
			zfill:    2,
			expected: "100-200",
		},
		"Empty": {
			frange:   "",
			zfill:    4,
			expected: "",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got := PadFrameRange(tc.frange, tc.zfill)
			if got != tc.expected {
				t.Errorf("%s: -want %q, +got: %q\n", name, tc.expected, got)
			}
		})
	}
}
