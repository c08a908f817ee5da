// Package sloghooks logs intervalcache events to a *slog.Logger.
package sloghooks

import (
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/intervalcache"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	ComputedEvery uint64
	EvictedEvery  uint64
	// Invalidations that removed fewer intervals than this are not logged.
	MinInvalidated int
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	computedCtr atomic.Uint64
	evictedCtr  atomic.Uint64
}

var _ intervalcache.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) Computed(key intervalcache.Interval) {
	if h.l == nil || !sample(h.opts.ComputedEvery, &h.computedCtr) {
		return
	}
	h.l.Debug("intervalcache.computed",
		"left", key.Left,
		"right", key.Right)
}

func (h *Hooks) Evicted(key intervalcache.Interval) {
	if h.l == nil || !sample(h.opts.EvictedEvery, &h.evictedCtr) {
		return
	}
	h.l.Debug("intervalcache.evicted",
		"left", key.Left,
		"right", key.Right)
}

func (h *Hooks) Invalidated(index, removed int) {
	if h.l == nil || removed < h.opts.MinInvalidated {
		return
	}
	h.l.Info("intervalcache.invalidated",
		"index", index,
		"removed", removed)
}

func (h *Hooks) Reset(removed int) {
	if h.l == nil {
		return
	}
	h.l.Info("intervalcache.reset",
		"removed", removed)
}
