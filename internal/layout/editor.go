// pattern: Functional Core

package layout

import "errors"

// ErrLastBlock is returned by RemoveBlock when asked to delete the
// only remaining block. A layout always keeps at least one block
// while being edited; the UI surfaces this as a warning.
var ErrLastBlock = errors.New("a building layout needs at least one block")

// Floor field names accepted by SetFloorField.
const (
	FieldFlat        = "flat"
	FieldCableNumber = "cableNumber"
	FieldCableLength = "cableLength"
)

// cloneBlocks copies the slice and the targeted block so that prior
// snapshots of the array are never mutated. Untouched blocks are
// shared structurally.
func cloneBlocks(blocks []Block, target int) []Block {
	out := make([]Block, len(blocks))
	copy(out, blocks)
	if target >= 0 && target < len(out) {
		floors := make([]Floor, len(out[target].Floors))
		copy(floors, out[target].Floors)
		out[target].Floors = floors
	}
	return out
}

// SetTopFloor parses raw and stores it as the block's top floor.
// When the result is numeric the block's floors are regenerated from
// scratch; unparsable input unsets the top floor and leaves the
// existing floors untouched.
func SetTopFloor(blocks []Block, blockIndex int, raw string) []Block {
	if blockIndex < 0 || blockIndex >= len(blocks) {
		return blocks
	}
	out := cloneBlocks(blocks, blockIndex)
	top := parseInt(raw)
	out[blockIndex].TopFloor = top
	if top != nil {
		out[blockIndex].Floors = GenerateFloors(out[blockIndex].FirstFloor, *top)
	}
	return out
}

// SetFirstFloor parses raw and stores it as the block's first floor.
// Regeneration triggers under the same rule as SetTopFloor: only when
// both bounds are numeric. Unparsable input is ignored.
func SetFirstFloor(blocks []Block, blockIndex int, raw string) []Block {
	if blockIndex < 0 || blockIndex >= len(blocks) {
		return blocks
	}
	first := parseInt(raw)
	if first == nil {
		return blocks
	}
	out := cloneBlocks(blocks, blockIndex)
	out[blockIndex].FirstFloor = *first
	if top := out[blockIndex].TopFloor; top != nil {
		out[blockIndex].Floors = GenerateFloors(*first, *top)
	}
	return out
}

// SetBlockType stores a new block type. When the block already had a
// non-empty type and a numeric top floor, the floors are regenerated
// first, discarding any per-floor assignments: a different wing shape
// would otherwise carry stale flats from an incompatible layout.
func SetBlockType(blocks []Block, blockIndex int, value string) []Block {
	if blockIndex < 0 || blockIndex >= len(blocks) {
		return blocks
	}
	out := cloneBlocks(blocks, blockIndex)
	b := &out[blockIndex]
	if b.BlockType != "" && b.TopFloor != nil {
		b.Floors = GenerateFloors(b.FirstFloor, *b.TopFloor)
	}
	b.BlockType = value
	return out
}

// SetFloorField writes one field of one floor of one block. The flat
// field stores the raw string; cableNumber and cableLength parse as
// integers, with unparsable input stored as unset. Every other block
// and floor is left untouched.
func SetFloorField(blocks []Block, blockIndex, floorIndex int, field, raw string) []Block {
	if blockIndex < 0 || blockIndex >= len(blocks) {
		return blocks
	}
	if floorIndex < 0 || floorIndex >= len(blocks[blockIndex].Floors) {
		return blocks
	}
	out := cloneBlocks(blocks, blockIndex)
	f := &out[blockIndex].Floors[floorIndex]
	switch field {
	case FieldFlat:
		f.Flat = raw
	case FieldCableNumber:
		f.CableNumber = parseInt(raw)
	case FieldCableLength:
		f.CableLength = parseInt(raw)
	}
	return out
}

// AddBlock appends a block with default empty values.
func AddBlock(blocks []Block) []Block {
	out := make([]Block, len(blocks), len(blocks)+1)
	copy(out, blocks)
	return append(out, NewBlock())
}

// RemoveBlock deletes one block. Removing the last remaining block is
// refused: the array is returned unchanged along with ErrLastBlock.
func RemoveBlock(blocks []Block, blockIndex int) ([]Block, error) {
	if blockIndex < 0 || blockIndex >= len(blocks) {
		return blocks, nil
	}
	if len(blocks) <= 1 {
		return blocks, ErrLastBlock
	}
	out := make([]Block, 0, len(blocks)-1)
	out = append(out, blocks[:blockIndex]...)
	out = append(out, blocks[blockIndex+1:]...)
	return out, nil
}
