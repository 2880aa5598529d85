// Package observability lets callers watch pipviz at work without the
// libraries knowing who is listening.
//
// The pip client, the detail cache lookups and the render step emit events
// through [Lookup], [Cache] and [Render]. Any number of receivers may be
// registered; each event is delivered to all of them in registration order.
// With nothing registered the events go nowhere.
//
//	stop := observability.Register(observability.Hooks{
//	    Cache: observability.CacheFuncs{
//	        Hit: func(ctx context.Context, kind string) { hits.Add(1) },
//	    },
//	})
//	defer stop()
package observability

import (
	"context"
	"slices"
	"sync"
	"time"
)

// LookupHooks receives events from the package manager client.
type LookupHooks interface {
	// OnList is called once the installed-package listing finished.
	OnList(ctx context.Context, listed int, took time.Duration, err error)
	// OnDescribe is called after the package manager was asked for the
	// details of pkg. Cache hits do not run the package manager and are not
	// reported here.
	OnDescribe(ctx context.Context, pkg string, took time.Duration, err error)
}

// CacheHooks receives detail cache traffic. kind names the entry type,
// e.g. "pip-show".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, kind string)
	OnCacheMiss(ctx context.Context, kind string)
	OnCacheSet(ctx context.Context, kind string, size int)
}

// RenderHooks receives events from writing the output files.
type RenderHooks interface {
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, took time.Duration, err error)
}

// Hooks groups the receivers passed to Register. Nil fields are skipped.
type Hooks struct {
	Lookup LookupHooks
	Cache  CacheHooks
	Render RenderHooks
}

// LookupFuncs adapts plain functions to LookupHooks. Nil functions are
// skipped.
type LookupFuncs struct {
	List     func(ctx context.Context, listed int, took time.Duration, err error)
	Describe func(ctx context.Context, pkg string, took time.Duration, err error)
}

func (f LookupFuncs) OnList(ctx context.Context, listed int, took time.Duration, err error) {
	if f.List != nil {
		f.List(ctx, listed, took, err)
	}
}

func (f LookupFuncs) OnDescribe(ctx context.Context, pkg string, took time.Duration, err error) {
	if f.Describe != nil {
		f.Describe(ctx, pkg, took, err)
	}
}

// CacheFuncs adapts plain functions to CacheHooks. Nil functions are skipped.
type CacheFuncs struct {
	Hit  func(ctx context.Context, kind string)
	Miss func(ctx context.Context, kind string)
	Set  func(ctx context.Context, kind string, size int)
}

func (f CacheFuncs) OnCacheHit(ctx context.Context, kind string) {
	if f.Hit != nil {
		f.Hit(ctx, kind)
	}
}

func (f CacheFuncs) OnCacheMiss(ctx context.Context, kind string) {
	if f.Miss != nil {
		f.Miss(ctx, kind)
	}
}

func (f CacheFuncs) OnCacheSet(ctx context.Context, kind string, size int) {
	if f.Set != nil {
		f.Set(ctx, kind, size)
	}
}

type entry struct {
	id    uint64
	hooks Hooks
}

var (
	mu      sync.RWMutex
	entries []entry
	nextID  uint64
)

// Register adds h to the receivers and returns a function that removes it
// again. The returned function may be called more than once.
func Register(h Hooks) (unregister func()) {
	mu.Lock()
	nextID++
	id := nextID
	entries = append(entries, entry{id: id, hooks: h})
	mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			mu.Lock()
			defer mu.Unlock()
			entries = slices.DeleteFunc(entries, func(e entry) bool { return e.id == id })
		})
	}
}

// Registered returns the number of registered receivers.
func Registered() int {
	mu.RLock()
	defer mu.RUnlock()
	return len(entries)
}

func snapshot() []entry {
	mu.RLock()
	defer mu.RUnlock()
	return slices.Clone(entries)
}

// Lookup returns a LookupHooks that forwards to every registered receiver.
func Lookup() LookupHooks {
	var fan lookupFanout
	for _, e := range snapshot() {
		if e.hooks.Lookup != nil {
			fan = append(fan, e.hooks.Lookup)
		}
	}
	return fan
}

// Cache returns a CacheHooks that forwards to every registered receiver.
func Cache() CacheHooks {
	var fan cacheFanout
	for _, e := range snapshot() {
		if e.hooks.Cache != nil {
			fan = append(fan, e.hooks.Cache)
		}
	}
	return fan
}

// Render returns a RenderHooks that forwards to every registered receiver.
func Render() RenderHooks {
	var fan renderFanout
	for _, e := range snapshot() {
		if e.hooks.Render != nil {
			fan = append(fan, e.hooks.Render)
		}
	}
	return fan
}

type lookupFanout []LookupHooks

func (f lookupFanout) OnList(ctx context.Context, listed int, took time.Duration, err error) {
	for _, h := range f {
		h.OnList(ctx, listed, took, err)
	}
}

func (f lookupFanout) OnDescribe(ctx context.Context, pkg string, took time.Duration, err error) {
	for _, h := range f {
		h.OnDescribe(ctx, pkg, took, err)
	}
}

type cacheFanout []CacheHooks

func (f cacheFanout) OnCacheHit(ctx context.Context, kind string) {
	for _, h := range f {
		h.OnCacheHit(ctx, kind)
	}
}

func (f cacheFanout) OnCacheMiss(ctx context.Context, kind string) {
	for _, h := range f {
		h.OnCacheMiss(ctx, kind)
	}
}

func (f cacheFanout) OnCacheSet(ctx context.Context, kind string, size int) {
	for _, h := range f {
		h.OnCacheSet(ctx, kind, size)
	}
}

type renderFanout []RenderHooks

func (f renderFanout) OnRenderStart(ctx context.Context, formats []string) {
	for _, h := range f {
		h.OnRenderStart(ctx, formats)
	}
}

func (f renderFanout) OnRenderComplete(ctx context.Context, formats []string, took time.Duration, err error) {
	for _, h := range f {
		h.OnRenderComplete(ctx, formats, took, err)
	}
}
