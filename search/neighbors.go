// Full move/swap neighborhood enumeration for the hill-climbing family.
// Enumerating and scoring every candidate is the dominant cost of those
// drivers; each candidate is a fresh State derived via MoveItem/SwapItems.

package search

import "fmt"

// Neighbor is one candidate State reachable by a single move or swap,
// paired with a human-readable description of the transformation.
type Neighbor struct {
	State *State
	Move  string
}

// EnumerateNeighbors generates the complete move+swap neighborhood of s:
//
//   - every item relocated to every other existing container and to one new
//     container (O(items * containers) candidates), and
//   - every item pair across every unordered pair of distinct containers
//     swapped (O(items^2) worst case).
//
// The source State is never mutated.
func EnumerateNeighbors(s *State) []Neighbor {
	containers := s.Containers()
	var neighbors []Neighbor

	// Move family.
	for from, container := range containers {
		for _, itemID := range container {
			for to := range containers {
				if to == from {
					continue
				}
				neighbors = append(neighbors, Neighbor{
					State: s.MoveItem(itemID, from, to),
					Move:  fmt.Sprintf("move %s: C%d -> C%d", itemID, from+1, to+1),
				})
			}
			neighbors = append(neighbors, Neighbor{
				State: s.MoveItem(itemID, from, NewContainer),
				Move:  fmt.Sprintf("move %s: C%d -> new", itemID, from+1),
			})
		}
	}

	// Swap family. j > i keeps container pairs unordered.
	for i, c1 := range containers {
		for _, item1 := range c1 {
			for j := i + 1; j < len(containers); j++ {
				for _, item2 := range containers[j] {
					neighbors = append(neighbors, Neighbor{
						State: s.SwapItems(item1, i, item2, j),
						Move:  fmt.Sprintf("swap %s(C%d) <-> %s(C%d)", item1, i+1, item2, j+1),
					})
				}
			}
		}
	}

	return neighbors
}
