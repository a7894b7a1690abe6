// pattern: Imperative Shell

// Package session owns the state of one building being edited: the
// local copy of the block array, the create-vs-update decision made at
// load time, and unsaved-change tracking. All block mutation goes
// through the pure operations in internal/layout; this package adds
// the bookkeeping around them.
package session

import (
	"fiberdesk/internal/api"
	"fiberdesk/internal/layout"
	"fiberdesk/internal/logging"
)

// EditSession is the exclusive owner of one building's block array for
// the duration of a page session. Concurrent editors are not
// coordinated; the backend applies last-write-wins.
type EditSession struct {
	logger   *logging.ScopedLogger
	building api.Building
	blocks   []layout.Block
	isNew    bool
	dirty    bool
}

// New seeds a session from a fetched building. A building without a
// persisted layout starts with one default block and saves as a
// create; anything else saves as an update.
func New(building api.Building, logger *logging.ScopedLogger) *EditSession {
	s := &EditSession{logger: logger, building: building}
	if building.Layout == nil || len(building.Layout.Blocks) == 0 {
		s.blocks = []layout.Block{layout.NewBlock()}
		s.isNew = true
	} else {
		s.blocks = building.Layout.Blocks
	}
	logger.Info("edit session opened",
		"building", building.ID, "blocks", len(s.blocks), "new_layout", s.isNew)
	return s
}

// Building returns the backend record this session edits.
func (s *EditSession) Building() api.Building { return s.building }

// Blocks returns the current block array.
func (s *EditSession) Blocks() []layout.Block { return s.blocks }

// IsNew reports whether the next save should create rather than update.
func (s *EditSession) IsNew() bool { return s.isNew }

// Dirty reports whether there are unsaved changes.
func (s *EditSession) Dirty() bool { return s.dirty }

// MarkSaved records a successful save: subsequent saves become
// updates, and the session is clean until the next mutation.
func (s *EditSession) MarkSaved() {
	s.isNew = false
	s.dirty = false
}

// SetTopFloor applies the top-floor edit and returns how many floor
// assignments the regeneration discarded (0 when none, or when no
// regeneration happened).
func (s *EditSession) SetTopFloor(blockIndex int, raw string) int {
	before := s.assignments(blockIndex)
	s.apply(layout.SetTopFloor(s.blocks, blockIndex, raw))
	return s.discarded(blockIndex, before)
}

// SetFirstFloor applies the first-floor edit; same discard reporting
// as SetTopFloor.
func (s *EditSession) SetFirstFloor(blockIndex int, raw string) int {
	before := s.assignments(blockIndex)
	s.apply(layout.SetFirstFloor(s.blocks, blockIndex, raw))
	return s.discarded(blockIndex, before)
}

// SetBlockType applies the type change; a change away from an already
// configured shape regenerates the floors, and the returned count
// tells the UI how many assignments that dropped.
func (s *EditSession) SetBlockType(blockIndex int, value string) int {
	before := s.assignments(blockIndex)
	s.apply(layout.SetBlockType(s.blocks, blockIndex, value))
	return s.discarded(blockIndex, before)
}

// SetFloorField applies a single floor-field edit.
func (s *EditSession) SetFloorField(blockIndex, floorIndex int, field, raw string) {
	s.apply(layout.SetFloorField(s.blocks, blockIndex, floorIndex, field, raw))
}

// AddBlock appends a default block.
func (s *EditSession) AddBlock() {
	s.apply(layout.AddBlock(s.blocks))
}

// RemoveBlock deletes a block; removing the last one is refused with
// layout.ErrLastBlock for the UI to surface.
func (s *EditSession) RemoveBlock(blockIndex int) error {
	out, err := layout.RemoveBlock(s.blocks, blockIndex)
	if err != nil {
		s.logger.Warn("refused to remove last block", "building", s.building.ID)
		return err
	}
	s.apply(out)
	return nil
}

// CableNumbers returns the distinct cable numbers currently in use.
func (s *EditSession) CableNumbers() []int {
	return layout.DistinctCableNumbers(s.blocks)
}

// FlatsForCable returns the flat ids wired to one cable.
func (s *EditSession) FlatsForCable(cableNumber int) []string {
	return layout.FlatsForCable(s.blocks, cableNumber)
}

// ValidFlat reports whether a flat id belongs to this building.
// Floors must only reference flats of the building being configured.
func (s *EditSession) ValidFlat(id string) bool {
	for _, f := range s.building.Flats {
		if f.ID == id {
			return true
		}
	}
	return false
}

// apply installs a new block array and marks the session dirty when it
// actually changed.
func (s *EditSession) apply(blocks []layout.Block) {
	if sameBlocks(s.blocks, blocks) {
		return
	}
	s.blocks = blocks
	s.dirty = true
}

// assignments counts assigned floors of one block, 0 when out of range.
func (s *EditSession) assignments(blockIndex int) int {
	if blockIndex < 0 || blockIndex >= len(s.blocks) {
		return 0
	}
	return layout.CountAssignments(s.blocks[blockIndex].Floors)
}

// discarded reports how many assignments an edit dropped.
func (s *EditSession) discarded(blockIndex, before int) int {
	after := s.assignments(blockIndex)
	if d := before - after; d > 0 {
		s.logger.Warn("regeneration discarded floor assignments",
			"building", s.building.ID, "block", blockIndex, "discarded", d)
		return d
	}
	return 0
}

// sameBlocks is a cheap identity check: the layout operations return
// the original slice when they change nothing.
func sameBlocks(a, b []layout.Block) bool {
	return len(a) == len(b) && len(a) > 0 && &a[0] == &b[0]
}
