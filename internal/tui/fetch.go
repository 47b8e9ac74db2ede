package tui

import (
	"context"
	"time"
)

// slot identifies one kind of in-flight fetch. Starting a fetch in a slot
// supersedes whatever that slot was waiting for.
type slot int

const (
	slotCatalog slot = iota
	slotPopular
	slotShelf
	slotGenres
	slotDetail
	slotReader
	slotCount
)

// DefaultFetchTimeout bounds every catalog request issued by the TUI
const DefaultFetchTimeout = 30 * time.Second

type fetchSlot struct {
	gen    uint64
	cancel context.CancelFunc
}

// fetches hands out generation numbers per slot. A result is applied only
// when its generation is still the slot's current one.
type fetches struct {
	slots   [slotCount]fetchSlot
	timeout time.Duration
}

func newFetches(timeout time.Duration) *fetches {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &fetches{timeout: timeout}
}

// begin cancels the slot's previous fetch and returns the context and
// generation for a new one.
func (f *fetches) begin(s slot) (context.Context, uint64) {
	fs := &f.slots[s]
	if fs.cancel != nil {
		fs.cancel()
	}
	ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
	fs.gen++
	fs.cancel = cancel
	return ctx, fs.gen
}

// finish reports whether gen is current for the slot and releases its context
func (f *fetches) finish(s slot, gen uint64) bool {
	fs := &f.slots[s]
	if gen != fs.gen {
		return false
	}
	if fs.cancel != nil {
		fs.cancel()
		fs.cancel = nil
	}
	return true
}

// pending reports whether the slot has a fetch in flight
func (f *fetches) pending(s slot) bool {
	return f.slots[s].cancel != nil
}

// drop cancels the slot's fetch and invalidates its generation
func (f *fetches) drop(s slot) {
	fs := &f.slots[s]
	if fs.cancel != nil {
		fs.cancel()
		fs.cancel = nil
	}
	fs.gen++
}

// dropAll cancels every in-flight fetch
func (f *fetches) dropAll() {
	for s := range slotCount {
		f.drop(s)
	}
}
