// Package iconcache tracks which icon files the visible UI depends on and
// defers releasing decoded images until nothing references them.
//
// Dependencies are recorded during the frame with Register. Edits and
// deletions drop a dependency with Unregister and stage the path with
// MarkForCleanup; Sweep runs once at the end of the frame and forgets
// every staged path that is no longer referenced.
package iconcache

import (
	"errors"
	"fmt"
)

// Forgetter releases the decoded resource cached under key.
type Forgetter interface {
	ForgetImage(key string) error
}

// Cache is not safe for concurrent use. It belongs to the UI goroutine.
type Cache struct {
	deps    map[string]map[string]struct{}
	pending []string
}

func New() *Cache {
	return &Cache{deps: make(map[string]map[string]struct{})}
}

// Register records that entity id renders the icon at path.
// Registering the same pair again is a no-op. Empty paths are ignored.
func (c *Cache) Register(path, id string) {
	if path == "" {
		return
	}
	set, ok := c.deps[path]
	if !ok {
		set = make(map[string]struct{})
		c.deps[path] = set
	}
	set[id] = struct{}{}
}

// Unregister drops one dependency. The path entry stays behind, possibly
// empty, until a sweep decides its fate.
func (c *Cache) Unregister(path, id string) {
	if set, ok := c.deps[path]; ok {
		delete(set, id)
	}
}

func (c *Cache) MarkForCleanup(path string) {
	if path == "" {
		return
	}
	c.pending = append(c.pending, path)
}

// Release is Unregister followed by MarkForCleanup, the sequence every
// edit and delete flow performs.
func (c *Cache) Release(path, id string) {
	c.Unregister(path, id)
	c.MarkForCleanup(path)
}

// Sweep forgets every pending path nobody references any more and
// returns the evicted paths. Paths that regained a dependency during the
// frame are left alone. A failing Forgetter does not stop the sweep;
// the entry is dropped regardless and the errors are joined.
func (c *Cache) Sweep(f Forgetter) ([]string, error) {
	if len(c.pending) == 0 {
		return nil, nil
	}
	pending := c.pending
	c.pending = nil

	var (
		evicted []string
		errs    []error
		seen    = make(map[string]struct{}, len(pending))
	)
	for _, path := range pending {
		if _, dup := seen[path]; dup {
			continue
		}
		seen[path] = struct{}{}

		if set, ok := c.deps[path]; ok && len(set) > 0 {
			continue
		}
		if err := f.ForgetImage(path); err != nil {
			errs = append(errs, fmt.Errorf("forget %s: %w", path, err))
		}
		delete(c.deps, path)
		evicted = append(evicted, path)
	}
	return evicted, errors.Join(errs...)
}

// Refs reports how many entities reference path.
func (c *Cache) Refs(path string) int {
	return len(c.deps[path])
}

// Tracked reports whether path has an entry, referenced or not.
func (c *Cache) Tracked(path string) bool {
	_, ok := c.deps[path]
	return ok
}

func (c *Cache) Len() int     { return len(c.deps) }
func (c *Cache) Pending() int { return len(c.pending) }
