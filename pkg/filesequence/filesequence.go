package filesequence

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/Kthulhu/fileseq/pkg/frameset"
)

// widths of the padding placeholder characters.
// "#" pads to 4 digits, "@" to 1; characters add up, so "##" is 8.
var padWidths = map[rune]int{'#': 4, '@': 1}

// splitterRE locates the frame range and padding placeholders inside a file
// sequence string. Example: /film/shot/renders/bilbo_bty.1-100#.exr
var splitterRE = regexp.MustCompile(`([:xy\-0-9,]*)([#@]+)`)

// FileSequence represents an ordered sequence of files, e.g. the frames of
// a render: dirname + basename + frame range + padding chars + extension.
type FileSequence struct {
	dirname  string
	basename string
	padChars string
	ext      string
	frames   *frameset.FrameSet
	zfill    int
}

// New parses a file sequence string such as
// "/film/shot/renders/bilbo_bty.1-100#.exr". A string without padding
// placeholders is treated as a solitary file.
func New(sequence string) (*FileSequence, error) {
	r := &FileSequence{}

	m := splitterRE.FindStringSubmatchIndex(sequence)
	if m == nil {
		name := sequence
		r.ext = filepath.Ext(name)
		name = strings.TrimSuffix(name, r.ext)
		r.dirname, r.basename = filepath.Split(name)
		return r, nil
	}

	frange := sequence[m[2]:m[3]]
	r.padChars = sequence[m[4]:m[5]]
	r.ext = sequence[m[1]:]
	r.dirname, r.basename = filepath.Split(sequence[:m[0]])
	r.zfill = padCharsWidth(r.padChars)

	if frange != "" {
		frames, err := frameset.New(frange)
		if err != nil {
			return nil, fmt.Errorf("parse file sequence %q: %w", sequence, err)
		}
		r.frames = frames
	}
	return r, nil
}

func padCharsWidth(padChars string) int {
	width := 0
	for _, c := range padChars {
		width += padWidths[c]
	}
	return width
}

// PadChars maps a digit width back to padding placeholder notation. Width 0
// maps to "@", multiples of 4 to that many "#", anything else to that many
// "@". The mapping is lossy for widths that are not multiples of 4.
func PadChars(width int) string {
	switch {
	case width == 0:
		return "@"
	case width%4 == 0:
		return strings.Repeat("#", width/4)
	default:
		return strings.Repeat("@", width)
	}
}

func (r *FileSequence) Dirname() string   { return r.dirname }
func (r *FileSequence) Basename() string  { return r.basename }
func (r *FileSequence) Padding() string   { return r.padChars }
func (r *FileSequence) Extension() string { return r.ext }
func (r *FileSequence) ZFill() int        { return r.zfill }

// FrameSet returns the frame set of the sequence, or nil when the sequence
// carries no frame pattern.
func (r *FileSequence) FrameSet() *frameset.FrameSet { return r.frames }

// Start returns the first frame, or 0 when there is no frame pattern.
func (r *FileSequence) Start() int64 {
	if r.frames == nil {
		return 0
	}
	start, err := r.frames.Start()
	if err != nil {
		return 0
	}
	return start
}

// End returns the last frame, or 0 when there is no frame pattern.
func (r *FileSequence) End() int64 {
	if r.frames == nil {
		return 0
	}
	end, err := r.frames.End()
	if err != nil {
		return 0
	}
	return end
}

// FrameRange returns the frame range of the sequence, zero-padded to the
// detected width. Empty when the sequence has no frame pattern.
func (r *FileSequence) FrameRange() string {
	if r.frames == nil {
		return ""
	}
	return r.frames.FrameRange(r.zfill)
}

// InvertedFrameRange returns the padded range of the missing frames within
// the span of the sequence. Empty when there is no frame pattern or no gap.
func (r *FileSequence) InvertedFrameRange() string {
	if r.frames == nil {
		return ""
	}
	return r.frames.InvertedFrameRange(r.zfill)
}

// Frame returns the path to the given frame of the sequence, zero-filled to
// the detected width.
//
//	seq.Frame(1) == "/foo/bar.0001.exr"
func (r *FileSequence) Frame(frame int64) string {
	return r.FrameToken(strconv.FormatInt(frame, 10))
}

// FrameToken renders the path with tok in the frame position. Numeric
// tokens are zero-filled; anything else, such as a literal "#", passes
// through unchanged. When the sequence has no padding placeholder the frame
// position is omitted entirely.
func (r *FileSequence) FrameToken(tok string) string {
	zframe := tok
	if _, err := strconv.ParseInt(tok, 10, 64); err == nil {
		zframe = zfill(tok, r.zfill)
	}
	if r.zfill == 0 {
		zframe = ""
	}
	return r.dirname + r.basename + zframe + r.ext
}

// Index returns the path to the file at the given position of the ordered
// frames.
func (r *FileSequence) Index(index int) (string, error) {
	if r.frames == nil {
		return r.String(), nil
	}
	frame, err := r.frames.Frame(index)
	if err != nil {
		return "", err
	}
	return r.Frame(frame), nil
}

// Len returns the number of files in the sequence. A sequence without a
// frame pattern holds a single file.
func (r *FileSequence) Len() int {
	if r.frames == nil || r.zfill == 0 {
		return 1
	}
	return r.frames.Len()
}

// Paths returns the per-frame file paths in frame order. A sequence without
// a frame pattern yields its own string.
func (r *FileSequence) Paths() []string {
	if r.frames == nil || r.zfill == 0 {
		return []string{r.String()}
	}
	paths := make([]string, 0, r.frames.Len())
	it := r.frames.Iterate()
	for it.Next() {
		paths = append(paths, r.Frame(it.Frame()))
	}
	return paths
}

// Format renders the sequence according to a template. Available keys:
// {dirname} {basename} {range} {inverted} {padding} {extension} {start}
// {end} {length}.
func (r *FileSequence) Format(template string) string {
	return strings.NewReplacer(
		"{dirname}", r.dirname,
		"{basename}", r.basename,
		"{range}", r.FrameRange(),
		"{inverted}", r.InvertedFrameRange(),
		"{padding}", r.padChars,
		"{extension}", r.ext,
		"{start}", strconv.FormatInt(r.Start(), 10),
		"{end}", strconv.FormatInt(r.End(), 10),
		"{length}", strconv.Itoa(r.Len()),
	).Replace(template)
}

// Split breaks the sequence into its contiguous pieces, one per range token.
func (r *FileSequence) Split() ([]*FileSequence, error) {
	if r.frames == nil {
		return []*FileSequence{r}, nil
	}
	var result []*FileSequence
	for _, frange := range strings.Split(r.frames.FrameRange(0), ",") {
		seq, err := New(r.dirname + r.basename + frange + r.padChars + r.ext)
		if err != nil {
			return nil, err
		}
		result = append(result, seq)
	}
	return result, nil
}

// SetDirname replaces the directory of the sequence.
func (r *FileSequence) SetDirname(dirname string) {
	if dirname != "" && !strings.HasSuffix(dirname, string(filepath.Separator)) {
		dirname += string(filepath.Separator)
	}
	r.dirname = dirname
}

// SetBasename replaces the basename of the sequence.
func (r *FileSequence) SetBasename(basename string) { r.basename = basename }

// SetPadding replaces the padding placeholders, e.g. "#" or "@@@", and
// recomputes the digit width. An empty string disables frame rendering.
func (r *FileSequence) SetPadding(padChars string) {
	r.padChars = padChars
	r.zfill = padCharsWidth(padChars)
}

// SetExtension replaces the file extension, adding the leading period when
// missing.
func (r *FileSequence) SetExtension(ext string) {
	if ext != "" && ext[0] != '.' {
		ext = "." + ext
	}
	r.ext = ext
}

// SetFrameSet replaces the frame set of the sequence.
func (r *FileSequence) SetFrameSet(frames *frameset.FrameSet) { r.frames = frames }

// SetFrameRange replaces the frame range of the sequence.
func (r *FileSequence) SetFrameRange(frange string) error {
	frames, err := frameset.New(frange)
	if err != nil {
		return err
	}
	r.frames = frames
	return nil
}

// String returns the file sequence string.
func (r *FileSequence) String() string {
	frange := ""
	if r.frames != nil {
		frange = r.frames.String()
	}
	return r.dirname + r.basename + frange + r.padChars + r.ext
}

// zfill left-pads a numeric string with zeros, the way the frame numbers of
// on-disk file names are padded.
func zfill(s string, width int) string {
	if len(s) >= width {
		return s
	}
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	for len(sign)+len(s) < width {
		s = "0" + s
	}
	return sign + s
}
