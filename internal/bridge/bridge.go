// Package bridge exposes pitch engines to a host runtime through opaque
// integer handles.
//
// Hosts such as a JavaScript or JVM runtime cannot hold Go pointers, so
// engines live in a slot arena owned by a [Table] and are addressed by a
// [Handle] packing the slot index and a generation counter. Destroying a
// handle bumps the slot generation, which makes stale copies of the handle
// fail with [ErrInvalidHandle] instead of reaching a reused slot.
package bridge

import (
	"errors"
	"fmt"
	"sync"

	"github.com/cwbudde/algo-pitch/dsp/yin"
)

// NoPitch is returned by Process when no pitch was found, following the
// host convention of a negative frequency.
const NoPitch float32 = -1

// Generations wrap below 2^20 so handles stay exact in a float64, which is
// how JavaScript hosts carry them.
const maxGeneration = 1 << 20

// ErrInvalidHandle reports a zero, unknown or already destroyed handle.
var ErrInvalidHandle = errors.New("bridge: invalid handle")

// Handle identifies an engine in a Table. The zero Handle is never valid.
type Handle uint64

func makeHandle(index, gen uint32) Handle {
	return Handle(uint64(gen)<<32 | uint64(index))
}

func (h Handle) split() (index, gen uint32) {
	return uint32(h), uint32(h >> 32)
}

// Logger receives handle lifecycle messages. *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
}

// Option configures a Table.
type Option func(*Table)

// WithEngineOptions sets options applied to every engine the table creates.
func WithEngineOptions(opts ...yin.Option) Option {
	return func(t *Table) { t.engineOpts = append(t.engineOpts, opts...) }
}

// WithLogger attaches a logger.
func WithLogger(l Logger) Option {
	return func(t *Table) { t.logger = l }
}

type entry struct {
	mu     sync.Mutex // serializes calls on one engine
	engine *yin.Engine
}

type slot struct {
	gen   uint32
	entry *entry
}

// Table owns engines on behalf of a host. It is safe for concurrent use;
// calls on the same handle are serialized, calls on different handles run
// in parallel.
type Table struct {
	mu    sync.RWMutex
	slots []slot
	free  []uint32
	live  int

	engineOpts []yin.Option
	logger     Logger
}

// NewTable creates an empty table.
func NewTable(opts ...Option) *Table {
	t := &Table{}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	return t
}

// Create builds an engine and returns its handle.
func (t *Table) Create(sampleRate, frameLength int) (Handle, error) {
	engine, err := yin.New(sampleRate, frameLength, t.engineOpts...)
	if err != nil {
		return 0, err
	}

	t.mu.Lock()
	var index uint32
	if n := len(t.free); n > 0 {
		index = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		index = uint32(len(t.slots))
		t.slots = append(t.slots, slot{gen: 1})
	}
	t.slots[index].entry = &entry{engine: engine}
	h := makeHandle(index, t.slots[index].gen)
	t.live++
	t.mu.Unlock()

	if t.logger != nil {
		t.logger.Debug("bridge engine created", "handle", uint64(h), "sample_rate", sampleRate, "frame_length", frameLength)
	}
	return h, nil
}

// Process estimates the pitch of frame with the engine behind h. It returns
// NoPitch when no pitch is found.
func (t *Table) Process(h Handle, frame []float32) (float32, error) {
	e, err := t.lookup(h)
	if err != nil {
		return NoPitch, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.engine == nil {
		return NoPitch, fmt.Errorf("%w: %#x", ErrInvalidHandle, uint64(h))
	}

	res, err := e.engine.EstimateFloat32(frame)
	if err != nil {
		return NoPitch, err
	}
	hz, ok := res.Frequency()
	if !ok {
		return NoPitch, nil
	}
	return float32(hz), nil
}

// HostValue converts the outcome of Process for a dynamically typed host: the
// frequency as a float64 (NoPitch when none was found) or, on failure, the
// error text, so a host can tell a rejected frame from an unvoiced one.
func HostValue(hz float32, err error) any {
	if err != nil {
		return err.Error()
	}
	return float64(hz)
}

// Destroy closes the engine behind h and invalidates h.
func (t *Table) Destroy(h Handle) error {
	index, gen := h.split()

	t.mu.Lock()
	if !t.validLocked(index, gen) {
		t.mu.Unlock()
		return fmt.Errorf("%w: %#x", ErrInvalidHandle, uint64(h))
	}
	s := &t.slots[index]
	e := s.entry
	s.entry = nil
	s.gen++
	if s.gen >= maxGeneration {
		s.gen = 1
	}
	t.free = append(t.free, index)
	t.live--
	t.mu.Unlock()

	e.mu.Lock()
	err := e.engine.Close()
	e.engine = nil
	e.mu.Unlock()

	if t.logger != nil {
		t.logger.Debug("bridge engine destroyed", "handle", uint64(h))
	}
	return err
}

// Len returns the number of live engines.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.live
}

// Close destroys every live engine.
func (t *Table) Close() error {
	t.mu.RLock()
	var handles []Handle
	for i, s := range t.slots {
		if s.entry != nil {
			handles = append(handles, makeHandle(uint32(i), s.gen))
		}
	}
	t.mu.RUnlock()

	var errs []error
	for _, h := range handles {
		if err := t.Destroy(h); err != nil && !errors.Is(err, ErrInvalidHandle) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (t *Table) lookup(h Handle) (*entry, error) {
	index, gen := h.split()

	t.mu.RLock()
	defer t.mu.RUnlock()

	if !t.validLocked(index, gen) {
		return nil, fmt.Errorf("%w: %#x", ErrInvalidHandle, uint64(h))
	}
	return t.slots[index].entry, nil
}

func (t *Table) validLocked(index, gen uint32) bool {
	if gen == 0 || int(index) >= len(t.slots) {
		return false
	}
	s := t.slots[index]
	return s.entry != nil && s.gen == gen
}
