// Defines the item catalog and the packing State, the value-like partition of
// items into capacity-bounded containers that every driver searches over.

package search

import (
	"fmt"
	"sort"
	"strings"
)

// Catalog maps item identifiers to their (positive) sizes. A Catalog is fixed
// for the lifetime of a run and shared by reference across every State derived
// from it; nothing in this package ever writes to it after validation.
type Catalog map[string]int

// Validate checks that the catalog is usable as search input: non-empty and
// all sizes positive.
func (c Catalog) Validate() error {
	if len(c) == 0 {
		return fmt.Errorf("catalog is empty")
	}
	for id, size := range c {
		if size <= 0 {
			return fmt.Errorf("item %q has non-positive size %d", id, size)
		}
	}
	return nil
}

// TotalSize returns the summed size of every item in the catalog.
func (c Catalog) TotalSize() int {
	total := 0
	for _, size := range c {
		total += size
	}
	return total
}

// IDs returns the item identifiers in sorted order. Map iteration order is
// not deterministic, so every code path that feeds items into a seeded draw
// goes through this.
func (c Catalog) IDs() []string {
	ids := make([]string, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// NewContainer is the destination index passed to MoveItem to request a fresh
// container instead of an existing one.
const NewContainer = -1

// State is one packing of the catalog: a partition of all items into
// containers. States are value-like; MoveItem and SwapItems return a new
// State and never touch the receiver. A State may be infeasible (a container
// over capacity) — IsValid reports that, it is not enforced at construction.
type State struct {
	catalog    Catalog
	capacity   int
	containers [][]string
}

// NewState creates a State over the given catalog and capacity with the
// provided container layout. The containers slice is owned by the State after
// the call. Capacity and catalog problems are input errors, not panics.
func NewState(catalog Catalog, capacity int, containers [][]string) (*State, error) {
	if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	if capacity <= 0 {
		return nil, fmt.Errorf("capacity must be positive, got %d", capacity)
	}
	return &State{catalog: catalog, capacity: capacity, containers: containers}, nil
}

// newDerivedState builds a State sharing the receiver's catalog and capacity.
// In-package transformations use this; the inputs are already validated.
func (s *State) newDerivedState(containers [][]string) *State {
	return &State{catalog: s.catalog, capacity: s.capacity, containers: containers}
}

// Catalog returns the shared item catalog. Callers MUST NOT modify it.
func (s *State) Catalog() Catalog {
	return s.catalog
}

// Capacity returns the per-container capacity.
func (s *State) Capacity() int {
	return s.capacity
}

// Containers returns the container layout for iteration. The returned slice
// is the State's internal storage — callers MUST NOT modify it or its
// elements; derive a new State through MoveItem/SwapItems instead.
func (s *State) Containers() [][]string {
	return s.containers
}

// Load returns the summed item size of container idx.
func (s *State) Load(idx int) int {
	s.checkIndex("Load", idx)
	load := 0
	for _, id := range s.containers[idx] {
		load += s.catalog[id]
	}
	return load
}

// Remaining returns the free capacity of container idx. Negative when the
// container is overloaded.
func (s *State) Remaining(idx int) int {
	return s.capacity - s.Load(idx)
}

// IsValid reports whether no container exceeds capacity. Infeasible States
// are expected transiently (annealing and the genetic drivers produce them);
// this stays queryable on any State the package hands out.
func (s *State) IsValid() bool {
	for i := range s.containers {
		if s.Load(i) > s.capacity {
			return false
		}
	}
	return true
}

// NumContainers returns the number of non-empty containers.
func (s *State) NumContainers() int {
	n := 0
	for _, c := range s.containers {
		if len(c) > 0 {
			n++
		}
	}
	return n
}

// ItemCount returns the total number of items across all containers.
func (s *State) ItemCount() int {
	n := 0
	for _, c := range s.containers {
		n += len(c)
	}
	return n
}

// Clone returns an independent deep copy. The catalog is shared (it is
// read-only); the container layout is copied.
func (s *State) Clone() *State {
	containers := make([][]string, len(s.containers))
	for i, c := range s.containers {
		containers[i] = append([]string(nil), c...)
	}
	return s.newDerivedState(containers)
}

// MoveItem returns a new State with itemID moved from container from to
// container to, pruning any container left empty. Pass NewContainer as the
// destination to append a fresh container. Membership and index violations
// are caller bugs and panic; the receiver is never mutated.
func (s *State) MoveItem(itemID string, from, to int) *State {
	s.checkIndex("MoveItem", from)
	if to != NewContainer {
		s.checkIndex("MoveItem", to)
		if to == from {
			panic(fmt.Sprintf("MoveItem: source and destination are both container %d", from))
		}
	}

	next := s.Clone()
	next.containers[from] = removeItem("MoveItem", next.containers[from], itemID)
	if to == NewContainer {
		next.containers = append(next.containers, []string{itemID})
	} else {
		next.containers[to] = append(next.containers[to], itemID)
	}
	next.containers = pruneEmpty(next.containers)
	return next
}

// SwapItems returns a new State with item1 (in container c1) and item2 (in
// container c2) exchanged. The containers must differ; violations panic.
func (s *State) SwapItems(item1 string, c1 int, item2 string, c2 int) *State {
	s.checkIndex("SwapItems", c1)
	s.checkIndex("SwapItems", c2)
	if c1 == c2 {
		panic(fmt.Sprintf("SwapItems: both items are in container %d", c1))
	}

	next := s.Clone()
	next.containers[c1] = removeItem("SwapItems", next.containers[c1], item1)
	next.containers[c2] = removeItem("SwapItems", next.containers[c2], item2)
	next.containers[c1] = append(next.containers[c1], item2)
	next.containers[c2] = append(next.containers[c2], item1)
	next.containers = pruneEmpty(next.containers)
	return next
}

func (s *State) checkIndex(op string, idx int) {
	if idx < 0 || idx >= len(s.containers) {
		panic(fmt.Sprintf("%s: container index %d out of range [0,%d)", op, idx, len(s.containers)))
	}
}

// removeItem deletes the first occurrence of itemID, panicking if the item is
// not a member. Silent no-ops here would corrupt the partition.
func removeItem(op string, container []string, itemID string) []string {
	for i, id := range container {
		if id == itemID {
			out := make([]string, 0, len(container)-1)
			out = append(out, container[:i]...)
			return append(out, container[i+1:]...)
		}
	}
	panic(fmt.Sprintf("%s: item %q is not in the stated container", op, itemID))
}

func pruneEmpty(containers [][]string) [][]string {
	out := containers[:0]
	for _, c := range containers {
		if len(c) > 0 {
			out = append(out, c)
		}
	}
	return out
}

func (s *State) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "State with %d containers:\n", s.NumContainers())
	for i, c := range s.containers {
		if len(c) == 0 {
			continue
		}
		parts := make([]string, len(c))
		for j, id := range c {
			parts[j] = fmt.Sprintf("%s(%d)", id, s.catalog[id])
		}
		fmt.Fprintf(&sb, "  container %d (%d/%d): %s\n", i+1, s.Load(i), s.capacity, strings.Join(parts, ", "))
	}
	return sb.String()
}

// Layout describes one container for serialization.
type Layout struct {
	ID    int      `json:"id" yaml:"id"`
	Items []string `json:"items" yaml:"items"`
	Load  int      `json:"load" yaml:"load"`
}

// Snapshot returns a serialization-ready view of the non-empty containers.
func (s *State) Snapshot() []Layout {
	out := make([]Layout, 0, s.NumContainers())
	for i, c := range s.containers {
		if len(c) == 0 {
			continue
		}
		out = append(out, Layout{
			ID:    len(out) + 1,
			Items: append([]string(nil), c...),
			Load:  s.Load(i),
		})
	}
	return out
}
