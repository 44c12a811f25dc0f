// Heuristic constructors that build an initial State from an item catalog.
// Every constructor guarantees the partition invariant by construction and is
// deterministic (or seeded, for RandomFit). These produce the search input;
// the drivers consume it.

package search

import (
	"fmt"
	"math/rand"
	"sort"
)

// orderedItems returns catalog items in a deterministic order: sorted by id,
// or by decreasing size (id tie-break) when decreasing is set.
func orderedItems(catalog Catalog, decreasing bool) []string {
	ids := catalog.IDs()
	if decreasing {
		sort.SliceStable(ids, func(i, j int) bool {
			return catalog[ids[i]] > catalog[ids[j]]
		})
	}
	return ids
}

// packer accumulates containers with cached loads while a heuristic runs.
type packer struct {
	catalog    Catalog
	capacity   int
	containers [][]string
	loads      []int
}

func newPacker(catalog Catalog, capacity int) (*packer, error) {
	if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	if capacity <= 0 {
		return nil, fmt.Errorf("capacity must be positive, got %d", capacity)
	}
	return &packer{catalog: catalog, capacity: capacity}, nil
}

func (p *packer) place(idx int, itemID string) {
	p.containers[idx] = append(p.containers[idx], itemID)
	p.loads[idx] += p.catalog[itemID]
}

func (p *packer) open(itemID string) {
	p.containers = append(p.containers, []string{itemID})
	p.loads = append(p.loads, p.catalog[itemID])
}

func (p *packer) state() *State {
	return &State{catalog: p.catalog, capacity: p.capacity, containers: p.containers}
}

// FirstFit places each item into the first container with room, opening a
// new one when none fits. With decreasing set this is First Fit Decreasing.
func FirstFit(catalog Catalog, capacity int, decreasing bool) (*State, error) {
	p, err := newPacker(catalog, capacity)
	if err != nil {
		return nil, err
	}
	for _, id := range orderedItems(catalog, decreasing) {
		placed := false
		for i := range p.containers {
			if p.loads[i]+catalog[id] <= capacity {
				p.place(i, id)
				placed = true
				break
			}
		}
		if !placed {
			p.open(id)
		}
	}
	return p.state(), nil
}

// BestFit places each item into the container with the least remaining room
// that still fits it, opening a new one when none fits.
func BestFit(catalog Catalog, capacity int, decreasing bool) (*State, error) {
	p, err := newPacker(catalog, capacity)
	if err != nil {
		return nil, err
	}
	for _, id := range orderedItems(catalog, decreasing) {
		best, bestRemaining := -1, capacity+1
		for i := range p.containers {
			remaining := capacity - p.loads[i]
			if remaining >= catalog[id] && remaining < bestRemaining {
				best, bestRemaining = i, remaining
			}
		}
		if best >= 0 {
			p.place(best, id)
		} else {
			p.open(id)
		}
	}
	return p.state(), nil
}

// WorstFit places each item into the container with the most remaining room
// that fits it, spreading load rather than concentrating it.
func WorstFit(catalog Catalog, capacity int, decreasing bool) (*State, error) {
	p, err := newPacker(catalog, capacity)
	if err != nil {
		return nil, err
	}
	for _, id := range orderedItems(catalog, decreasing) {
		worst, worstRemaining := -1, -1
		for i := range p.containers {
			remaining := capacity - p.loads[i]
			if remaining >= catalog[id] && remaining > worstRemaining {
				worst, worstRemaining = i, remaining
			}
		}
		if worst >= 0 {
			p.place(worst, id)
		} else {
			p.open(id)
		}
	}
	return p.state(), nil
}

// NextFit only ever considers the most recently opened container, opening a
// new one when the item does not fit. O(n), never looks back.
func NextFit(catalog Catalog, capacity int, decreasing bool) (*State, error) {
	p, err := newPacker(catalog, capacity)
	if err != nil {
		return nil, err
	}
	for _, id := range orderedItems(catalog, decreasing) {
		last := len(p.containers) - 1
		if last >= 0 && p.loads[last]+catalog[id] <= capacity {
			p.place(last, id)
		} else {
			p.open(id)
		}
	}
	return p.state(), nil
}

// RandomFit shuffles the item order and places each item into a uniformly
// chosen container among those with room, opening a new one when none fits.
// All draws come from rng, so the result is reproducible under a fixed seed.
func RandomFit(catalog Catalog, capacity int, rng *rand.Rand) (*State, error) {
	p, err := newPacker(catalog, capacity)
	if err != nil {
		return nil, err
	}
	ids := orderedItems(catalog, false)
	rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })

	for _, id := range ids {
		var candidates []int
		for i := range p.containers {
			if p.loads[i]+catalog[id] <= capacity {
				candidates = append(candidates, i)
			}
		}
		if len(candidates) > 0 {
			p.place(candidates[rng.Intn(len(candidates))], id)
		} else {
			p.open(id)
		}
	}
	return p.state(), nil
}

// GreedyFit is Best Fit Decreasing, usually the strongest of the simple
// constructive heuristics.
func GreedyFit(catalog Catalog, capacity int) (*State, error) {
	return BestFit(catalog, capacity, true)
}

// SingleItemPerContainer opens one container per item — the worst legal
// packing, useful as a baseline and an upper bound in tests.
func SingleItemPerContainer(catalog Catalog, capacity int) (*State, error) {
	p, err := newPacker(catalog, capacity)
	if err != nil {
		return nil, err
	}
	for _, id := range orderedItems(catalog, false) {
		p.open(id)
	}
	return p.state(), nil
}

// EmptyState returns a State with no containers, for callers that build a
// layout themselves.
func EmptyState(catalog Catalog, capacity int) (*State, error) {
	return NewState(catalog, capacity, nil)
}

// CompareHeuristics runs every deterministic constructor on the catalog and
// returns the container count each produced, for choosing a starting point.
func CompareHeuristics(catalog Catalog, capacity int) (map[string]int, error) {
	type entry struct {
		name string
		run  func() (*State, error)
	}
	entries := []entry{
		{"first_fit", func() (*State, error) { return FirstFit(catalog, capacity, false) }},
		{"best_fit", func() (*State, error) { return BestFit(catalog, capacity, false) }},
		{"worst_fit", func() (*State, error) { return WorstFit(catalog, capacity, false) }},
		{"next_fit", func() (*State, error) { return NextFit(catalog, capacity, false) }},
		{"greedy_fit", func() (*State, error) { return GreedyFit(catalog, capacity) }},
	}
	out := make(map[string]int, len(entries))
	for _, e := range entries {
		s, err := e.run()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.name, err)
		}
		out[e.name] = s.NumContainers()
	}
	return out, nil
}

// GenerateCatalog builds a synthetic catalog of n items with sizes drawn
// uniformly from [minSize, maxSize]. Ids are zero-padded so sorted order
// matches generation order.
func GenerateCatalog(n, minSize, maxSize int, rng *rand.Rand) (Catalog, error) {
	if n <= 0 {
		return nil, fmt.Errorf("item count must be positive, got %d", n)
	}
	if minSize <= 0 || maxSize < minSize {
		return nil, fmt.Errorf("invalid size range [%d,%d]", minSize, maxSize)
	}
	catalog := make(Catalog, n)
	for i := 1; i <= n; i++ {
		catalog[fmt.Sprintf("ITEM-%03d", i)] = minSize + rng.Intn(maxSize-minSize+1)
	}
	return catalog, nil
}
