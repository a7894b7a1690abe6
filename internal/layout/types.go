// pattern: Functional Core

// Package layout holds the building-layout data model and the pure
// editing operations over it. Nothing in this package performs I/O;
// every operation takes the current block array and returns a new one.
package layout

import (
	"strconv"
	"strings"
)

// Floor is one level of one block. Flat is empty when unassigned;
// CableNumber and CableLength are nil when unset or when the user
// typed something that does not parse as an integer.
type Floor struct {
	Floor       int    `json:"floor"`
	Flat        string `json:"flat,omitempty"`
	CableNumber *int   `json:"cableNumber,omitempty"`
	CableLength *int   `json:"cableLength,omitempty"`
}

// Block is one structural wing of a building. TopFloor is nil while
// the block is unconfigured; BlockType is the registry key, empty
// until the user picks one.
type Block struct {
	FirstFloor int     `json:"firstFloor"`
	TopFloor   *int    `json:"topFloor,omitempty"`
	BlockType  string  `json:"blockType,omitempty"`
	Floors     []Floor `json:"floors"`
}

// NewBlock returns a block with default field values: ground floor 0,
// no top floor, no type, no floors.
func NewBlock() Block {
	return Block{FirstFloor: 0, Floors: nil}
}

// Configured reports whether the block has both a type and a top floor.
func (b Block) Configured() bool {
	return b.BlockType != "" && b.TopFloor != nil
}

// CountAssignments returns the number of floors carrying any
// flat or cable assignment. Used to warn when a regeneration is
// about to discard user input.
func CountAssignments(floors []Floor) int {
	n := 0
	for _, f := range floors {
		if f.Flat != "" || f.CableNumber != nil || f.CableLength != nil {
			n++
		}
	}
	return n
}

// parseInt parses raw user input as an integer. Whitespace is
// tolerated; anything unparsable yields nil (the "unset" marker).
func parseInt(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}

// IntPtr returns a pointer to n. Convenience for seeds and tests.
func IntPtr(n int) *int {
	return &n
}
