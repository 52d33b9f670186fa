// Package view holds the client's in-memory list of files, the single
// source the CLI renders from.
//
// The collection is never edited in place: every change swaps in a new
// slice (Replace or Update) and subscribers are told about it.
package view

import (
	"slices"
	"sync"

	"github.com/dmitrijs2005/dogbox/internal/client/models"
)

// Listener receives the new collection after every change. Listeners may
// read the view but must not modify it.
type Listener func(entries []models.FileEntry)

type LocalView struct {
	mu        sync.Mutex
	entries   []models.FileEntry
	reserved  map[string]struct{}
	listeners map[int]Listener
	nextID    int

	// notifyMu keeps notifications in the same order as the changes.
	notifyMu sync.Mutex
}

func New() *LocalView {
	return &LocalView{
		reserved:  make(map[string]struct{}),
		listeners: make(map[int]Listener),
	}
}

// Snapshot returns a copy of the current collection.
func (v *LocalView) Snapshot() []models.FileEntry {
	v.mu.Lock()
	defer v.mu.Unlock()
	return slices.Clone(v.entries)
}

// Replace swaps in entries as the whole collection.
func (v *LocalView) Replace(entries []models.FileEntry) {
	v.Update(func([]models.FileEntry) []models.FileEntry {
		return entries
	})
}

// Update computes the next collection from a copy of the current one and
// swaps it in, all under one lock, so concurrent updates never lose each
// other's changes. fn must not call back into the view.
func (v *LocalView) Update(fn func(current []models.FileEntry) []models.FileEntry) {
	v.mu.Lock()
	next := slices.Clone(fn(slices.Clone(v.entries)))
	v.entries = next

	listeners := make([]Listener, 0, len(v.listeners))
	for _, id := range v.listenerIDs() {
		listeners = append(listeners, v.listeners[id])
	}

	v.notifyMu.Lock()
	v.mu.Unlock()
	defer v.notifyMu.Unlock()

	for _, l := range listeners {
		l(slices.Clone(next))
	}
}

// ContainsName reports whether an entry called name is in the current
// collection. Names are compared exactly.
func (v *LocalView) ContainsName(name string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.indexLocked(name) >= 0
}

// Find returns the entry called name.
func (v *LocalView) Find(name string) (models.FileEntry, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if i := v.indexLocked(name); i >= 0 {
		return v.entries[i], true
	}
	return models.FileEntry{}, false
}

// Reserve claims name for an upload in progress. It fails if the name is
// already listed or reserved. Every successful Reserve needs a Release.
func (v *LocalView) Reserve(name string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if _, ok := v.reserved[name]; ok {
		return false
	}
	if v.indexLocked(name) >= 0 {
		return false
	}
	v.reserved[name] = struct{}{}
	return true
}

func (v *LocalView) Release(name string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.reserved, name)
}

// Subscribe registers l and returns a function that unregisters it.
func (v *LocalView) Subscribe(l Listener) (unsubscribe func()) {
	v.mu.Lock()
	defer v.mu.Unlock()

	id := v.nextID
	v.nextID++
	v.listeners[id] = l

	return func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		delete(v.listeners, id)
	}
}

func (v *LocalView) indexLocked(name string) int {
	return slices.IndexFunc(v.entries, func(e models.FileEntry) bool {
		return e.Name == name
	})
}

// listenerIDs returns ids in subscription order.
func (v *LocalView) listenerIDs() []int {
	ids := make([]int, 0, len(v.listeners))
	for id := range v.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
