// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package facet

import (
	"container/list"
	"sync"

	"github.com/drothermel/dr-plotter-sub000/diag"
	"github.com/drothermel/dr-plotter-sub000/frame"
	"github.com/drothermel/dr-plotter-sub000/style"
)

// DefaultDimensionCap is the default number of grouping dimensions a
// Coordinator remembers.
const DefaultDimensionCap = 32

// A Coordinator keeps cycled style assignments consistent across every
// subplot and call of a figure. Each category value of each grouping
// dimension is assigned a bundle the first time it is registered, and
// keeps it for as long as the dimension is tracked.
//
// At most cap dimensions are tracked. Registering a new dimension
// beyond the cap forgets the least recently registered dimension that
// is not pinned.
//
// A Coordinator is safe for concurrent use, so several figures may
// share one.
type Coordinator struct {
	mu       sync.Mutex
	assigner *style.Assigner
	cap      int
	lru      *list.List // of string; front is most recent
	elems    map[string]*list.Element
	pins     map[string]int
}

// NewCoordinator returns a Coordinator drawing bundles from c and
// tracking at most cap dimensions. cap <= 0 means DefaultDimensionCap.
func NewCoordinator(c style.Cycle, cap int) *Coordinator {
	if cap <= 0 {
		cap = DefaultDimensionCap
	}
	return &Coordinator{
		assigner: style.NewAssigner(c),
		cap:      cap,
		lru:      list.New(),
		elems:    make(map[string]*list.Element),
		pins:     make(map[string]int),
	}
}

// RegisterValues assigns bundles to any values of dim not seen before,
// in the order given. Null values are ignored.
func (c *Coordinator) RegisterValues(dim string, values []interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.elems[dim]; ok {
		c.lru.MoveToFront(e)
	} else {
		c.elems[dim] = c.lru.PushFront(dim)
		c.evict()
	}
	for _, v := range values {
		if frame.IsNull(v) {
			continue
		}
		c.assigner.Assign(dim, v)
	}
}

func (c *Coordinator) evict() {
	for e := c.lru.Back(); c.lru.Len() > c.cap && e != nil; {
		prev := e.Prev()
		dim := e.Value.(string)
		if c.pins[dim] == 0 {
			c.lru.Remove(e)
			delete(c.elems, dim)
			c.assigner.Forget(dim)
		}
		e = prev
	}
}

// StylesFor returns the bundle of each of values in dim. It does not
// assign bundles; every value must already be registered.
func (c *Coordinator) StylesFor(dim string, values []interface{}) (map[interface{}]style.Bundle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[interface{}]style.Bundle, len(values))
	for _, v := range values {
		b, ok := c.assigner.Bundle(dim, v)
		if !ok {
			return nil, diag.Configf(dim, "value %v of dimension %q has no style assignment", v, dim)
		}
		out[v] = b
	}
	return out, nil
}

// Pin protects dim from eviction until a matching Unpin.
func (c *Coordinator) Pin(dim string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pins[dim]++
}

// Unpin releases one Pin of dim.
func (c *Coordinator) Unpin(dim string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pins[dim]--; c.pins[dim] <= 0 {
		delete(c.pins, dim)
	}
	c.evict()
}

// Dimensions returns the tracked dimensions, most recently registered
// first.
func (c *Coordinator) Dimensions() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, c.lru.Len())
	for e := c.lru.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value.(string))
	}
	return out
}
