package filesequence

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/hsiafan/vlog"

	"github.com/Kthulhu/fileseq/pkg/frameset"
)

var logger = vlog.CurrentPackageLogger()

// onDiskRE matches file names that end in digits before the extension.
// Example: /film/shot/renders/bilbo_bty.0100.exr
var onDiskRE = regexp.MustCompile(`^(.*/)?(?:$|(.+?)([\-0-9]+)(?:(\.[^.]*$)|$))`)

type sequenceKey struct {
	dir  string
	base string
	ext  string
}

type sequenceFrames struct {
	frames []int64
	width  int
}

// FindSequencesOnDisk groups the files of a directory into file sequences.
// Files whose names carry no frame number are ignored.
func FindSequencesOnDisk(dir string) ([]*FileSequence, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan %q: %w", dir, err)
	}

	keys := []sequenceKey{}
	seqs := map[sequenceKey]*sequenceFrames{}
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		path := filepath.ToSlash(filepath.Join(dir, entry.Name()))
		m := onDiskRE.FindStringSubmatch(path)
		if m == nil || m[2] == "" || m[3] == "" {
			logger.Debug("no frame number in ", path, ", skipping")
			continue
		}
		frame, err := strconv.ParseInt(m[3], 10, 64)
		if err != nil {
			logger.Debug("bad frame number in ", path, ", skipping")
			continue
		}
		key := sequenceKey{dir: m[1], base: m[2], ext: m[4]}
		sf := seqs[key]
		if sf == nil {
			sf = &sequenceFrames{width: len(m[3])}
			seqs[key] = sf
			keys = append(keys, key)
		}
		sf.frames = append(sf.frames, frame)
	}

	result := make([]*FileSequence, 0, len(seqs))
	for _, key := range keys {
		sf := seqs[key]
		frange := frameset.FramesToFrameRange(sf.frames, true, 0, true)
		seq, err := New(key.dir + key.base + frange + PadChars(sf.width) + key.ext)
		if err != nil {
			logger.Warn("skipping sequence ", key.base, ": ", err)
			continue
		}
		result = append(result, seq)
	}
	return result, nil
}

// FindSequenceOnDisk searches a directory for the sequence matching a
// pattern such as "seq/bar#.exr".
func FindSequenceOnDisk(pattern string) (*FileSequence, error) {
	want, err := New(pattern)
	if err != nil {
		return nil, err
	}
	dir := want.Dirname()
	if dir == "" {
		dir = "."
	}
	seqs, err := FindSequencesOnDisk(dir)
	if err != nil {
		return nil, err
	}
	for _, seq := range seqs {
		if seq.Extension() != want.Extension() {
			continue
		}
		if seq.Basename() == want.Basename() {
			return seq, nil
		}
		if strings.HasPrefix(want.Basename(), seq.Basename()) && isFile(pattern) {
			return seq, nil
		}
	}
	return nil, fmt.Errorf("no sequence found on disk matching %s", pattern)
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
