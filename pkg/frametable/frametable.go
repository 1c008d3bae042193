package frametable

import (
	"fmt"
	"sync"

	"k8s.io/apimachinery/pkg/labels"

	"github.com/Kthulhu/fileseq/pkg/frameset"
)

// Table tracks per-frame metadata for the frames of a FrameSet, e.g. which
// frames of a render range have been claimed by a worker and with what
// status. The FrameSet defines the valid frame space and stays immutable;
// the table carries the mutable claim state.
type Table interface {
	Get(frame int64) (labels.Set, error)
	Claim(frame int64, d labels.Set) error
	ClaimDynamic(d labels.Set) (int64, error)
	Release(frame int64) error
	Update(frame int64, d labels.Set) error

	Count() int
	Has(frame int64) bool

	IsFree(frame int64) bool
	FindFree() (int64, error)

	GetAll() map[int64]labels.Set
	GetByLabel(selector labels.Selector) map[int64]labels.Set

	Claimed() *frameset.FrameSet
	Free() *frameset.FrameSet
}

// New builds a table over the frames of the given set.
func New(frames *frameset.FrameSet) (Table, error) {
	if frames == nil {
		return nil, fmt.Errorf("frame set is required")
	}
	return &table{
		m:       new(sync.RWMutex),
		frames:  frames,
		claimed: map[int64]labels.Set{},
	}, nil
}

type table struct {
	m       *sync.RWMutex
	frames  *frameset.FrameSet
	claimed map[int64]labels.Set
}

func (r *table) validate(frame int64) error {
	if !r.frames.HasFrame(frame) {
		return fmt.Errorf("frame %d is not part of the sequence range %q", frame, r.frames)
	}
	return nil
}

func (r *table) Get(frame int64) (labels.Set, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	if err := r.validate(frame); err != nil {
		return nil, err
	}
	d, ok := r.claimed[frame]
	if !ok {
		return nil, fmt.Errorf("no match found for: %v", frame)
	}
	return d, nil
}

func (r *table) Claim(frame int64, d labels.Set) error {
	r.m.Lock()
	defer r.m.Unlock()

	return r.add(frame, d)
}

func (r *table) ClaimDynamic(d labels.Set) (int64, error) {
	r.m.Lock()
	defer r.m.Unlock()

	it := r.frames.Iterate()
	for it.Next() {
		if r.isFree(it.Frame()) {
			if err := r.add(it.Frame(), d); err != nil {
				return 0, err
			}
			return it.Frame(), nil
		}
	}
	return 0, fmt.Errorf("no free frame found")
}

func (r *table) Release(frame int64) error {
	r.m.Lock()
	defer r.m.Unlock()

	if err := r.validate(frame); err != nil {
		return err
	}
	delete(r.claimed, frame)
	return nil
}

func (r *table) Update(frame int64, d labels.Set) error {
	r.m.Lock()
	defer r.m.Unlock()

	if err := r.validate(frame); err != nil {
		return err
	}
	if r.isFree(frame) {
		return fmt.Errorf("frame %d not claimed", frame)
	}
	r.claimed[frame] = d
	return nil
}

func (r *table) Count() int {
	r.m.RLock()
	defer r.m.RUnlock()

	return len(r.claimed)
}

func (r *table) Has(frame int64) bool {
	r.m.RLock()
	defer r.m.RUnlock()

	_, ok := r.claimed[frame]
	return ok
}

func (r *table) IsFree(frame int64) bool {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.frames.HasFrame(frame) && r.isFree(frame)
}

func (r *table) isFree(frame int64) bool {
	_, ok := r.claimed[frame]
	return !ok
}

func (r *table) FindFree() (int64, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	it := r.frames.Iterate()
	for it.Next() {
		if r.isFree(it.Frame()) {
			return it.Frame(), nil
		}
	}
	return 0, fmt.Errorf("no free frame found")
}

func (r *table) GetAll() map[int64]labels.Set {
	r.m.RLock()
	defer r.m.RUnlock()

	entries := make(map[int64]labels.Set, len(r.claimed))
	for frame, d := range r.claimed {
		entries[frame] = d
	}
	return entries
}

func (r *table) GetByLabel(selector labels.Selector) map[int64]labels.Set {
	r.m.RLock()
	defer r.m.RUnlock()

	entries := map[int64]labels.Set{}
	for frame, d := range r.claimed {
		if selector.Matches(d) {
			entries[frame] = d
		}
	}
	return entries
}

// Claimed returns the claimed frames as a sorted FrameSet.
func (r *table) Claimed() *frameset.FrameSet {
	r.m.RLock()
	defer r.m.RUnlock()

	frames := make([]int64, 0, len(r.claimed))
	for frame := range r.claimed {
		frames = append(frames, frame)
	}
	return frameset.FromFrames(frames, true)
}

// Free returns the unclaimed frames as a sorted FrameSet.
func (r *table) Free() *frameset.FrameSet {
	r.m.RLock()
	defer r.m.RUnlock()

	var frames []int64
	it := r.frames.Iterate()
	for it.Next() {
		if r.isFree(it.Frame()) {
			frames = append(frames, it.Frame())
		}
	}
	return frameset.FromFrames(frames, true)
}

func (r *table) add(frame int64, d labels.Set) error {
	if err := r.validate(frame); err != nil {
		return err
	}
	if !r.isFree(frame) {
		return fmt.Errorf("frame %d already claimed", frame)
	}
	r.claimed[frame] = d
	return nil
}
