// pattern: Functional Core

package layout

import "sort"

// DistinctCableNumbers returns the distinct cable numbers in use
// across all floors of all blocks, sorted ascending. Floors without a
// cable number are skipped. Derived on demand, never stored.
func DistinctCableNumbers(blocks []Block) []int {
	seen := make(map[int]struct{})
	for _, b := range blocks {
		for _, f := range b.Floors {
			if f.CableNumber != nil {
				seen[*f.CableNumber] = struct{}{}
			}
		}
	}
	numbers := make([]int, 0, len(seen))
	for n := range seen {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)
	return numbers
}

// FlatsForCable returns the flat ids wired to the given cable number,
// in block order then floor order. Floors with a matching cable but no
// flat assigned are skipped. Duplicates are kept as-is: each floor
// maps to at most one cable entry, so a repeat is a legitimate
// assignment, not noise.
func FlatsForCable(blocks []Block, cableNumber int) []string {
	var flats []string
	for _, b := range blocks {
		for _, f := range b.Floors {
			if f.CableNumber != nil && *f.CableNumber == cableNumber && f.Flat != "" {
				flats = append(flats, f.Flat)
			}
		}
	}
	return flats
}
