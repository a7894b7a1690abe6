// pattern: Functional Core

package layout

// GenerateFloors produces one Floor per integer in [first, top],
// ascending, with only the floor number set. It replaces, never
// merges, a block's prior floors. Returns nil when top < first.
func GenerateFloors(first, top int) []Floor {
	if top < first {
		return nil
	}
	floors := make([]Floor, 0, top-first+1)
	for n := first; n <= top; n++ {
		floors = append(floors, Floor{Floor: n})
	}
	return floors
}
