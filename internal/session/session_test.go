// pattern: Imperative Shell

package session

import (
	"errors"
	"testing"

	"fiberdesk/internal/api"
	"fiberdesk/internal/layout"
	"fiberdesk/internal/logging"
)

func buildingWithLayout() api.Building {
	return api.Building{
		ID:    "b1",
		Adres: "Kerkstraat 1",
		Flats: []api.Flat{
			{ID: "f1", Adres: "Kerkstraat", HuisNummer: "1"},
			{ID: "f2", Adres: "Kerkstraat", HuisNummer: "1", Toevoeging: "A"},
		},
		Layout: &api.BuildingLayout{Blocks: []layout.Block{{
			FirstFloor: 0,
			TopFloor:   layout.IntPtr(2),
			BlockType:  "leftWing",
			Floors: []layout.Floor{
				{Floor: 0, Flat: "f1", CableNumber: layout.IntPtr(7)},
				{Floor: 1, Flat: "f2"},
				{Floor: 2},
			},
		}}},
	}
}

func TestNew_SeedsFromExistingLayout(t *testing.T) {
	s := New(buildingWithLayout(), logging.NopLogger())

	if s.IsNew() {
		t.Error("existing layout should save as update")
	}
	if s.Dirty() {
		t.Error("freshly seeded session should be clean")
	}
	if len(s.Blocks()) != 1 {
		t.Errorf("expected 1 seeded block, got %d", len(s.Blocks()))
	}
}

func TestNew_MissingLayoutGetsDefaultBlock(t *testing.T) {
	s := New(api.Building{ID: "b2"}, logging.NopLogger())

	if !s.IsNew() {
		t.Error("missing layout should save as create")
	}
	blocks := s.Blocks()
	if len(blocks) != 1 || blocks[0].BlockType != "" || blocks[0].TopFloor != nil {
		t.Errorf("expected one default block, got %+v", blocks)
	}
}

func TestEditSession_MutationSetsDirty(t *testing.T) {
	s := New(buildingWithLayout(), logging.NopLogger())

	s.SetFloorField(0, 2, layout.FieldFlat, "f2")

	if !s.Dirty() {
		t.Error("expected dirty after floor edit")
	}
}

func TestEditSession_MarkSavedTransitionsToUpdate(t *testing.T) {
	s := New(api.Building{ID: "b3"}, logging.NopLogger())
	s.SetTopFloor(0, "2")

	if !s.IsNew() || !s.Dirty() {
		t.Fatalf("precondition failed: isNew=%v dirty=%v", s.IsNew(), s.Dirty())
	}

	s.MarkSaved()

	if s.IsNew() {
		t.Error("after save the next save must be an update")
	}
	if s.Dirty() {
		t.Error("after save the session must be clean")
	}
}

func TestEditSession_TypeChangeReportsDiscardedAssignments(t *testing.T) {
	s := New(buildingWithLayout(), logging.NopLogger())

	discarded := s.SetBlockType(0, "rightWing")

	if discarded != 2 {
		t.Errorf("expected 2 discarded assignments, got %d", discarded)
	}
	if layout.CountAssignments(s.Blocks()[0].Floors) != 0 {
		t.Errorf("expected regenerated floors without assignments, got %+v", s.Blocks()[0].Floors)
	}
}

func TestEditSession_UnsetTopFloorDiscardsNothing(t *testing.T) {
	s := New(buildingWithLayout(), logging.NopLogger())

	if discarded := s.SetTopFloor(0, ""); discarded != 0 {
		t.Errorf("non-numeric top floor must not regenerate, discarded %d", discarded)
	}
	if s.Blocks()[0].Floors[0].Flat != "f1" {
		t.Error("floors changed despite unset top floor")
	}
}

func TestEditSession_RemoveLastBlockRefused(t *testing.T) {
	s := New(buildingWithLayout(), logging.NopLogger())

	err := s.RemoveBlock(0)

	if !errors.Is(err, layout.ErrLastBlock) {
		t.Fatalf("expected ErrLastBlock, got %v", err)
	}
	if len(s.Blocks()) != 1 {
		t.Errorf("block array length changed to %d", len(s.Blocks()))
	}
}

func TestEditSession_AddThenRemoveBlock(t *testing.T) {
	s := New(buildingWithLayout(), logging.NopLogger())

	s.AddBlock()
	if len(s.Blocks()) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(s.Blocks()))
	}

	if err := s.RemoveBlock(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.Blocks()) != 1 {
		t.Errorf("expected 1 block, got %d", len(s.Blocks()))
	}
}

func TestEditSession_CableAggregation(t *testing.T) {
	s := New(buildingWithLayout(), logging.NopLogger())

	if got := s.CableNumbers(); len(got) != 1 || got[0] != 7 {
		t.Errorf("expected cable set [7], got %v", got)
	}
	if got := s.FlatsForCable(7); len(got) != 1 || got[0] != "f1" {
		t.Errorf("expected flats [f1], got %v", got)
	}
}

func TestEditSession_ValidFlat(t *testing.T) {
	s := New(buildingWithLayout(), logging.NopLogger())

	if !s.ValidFlat("f1") {
		t.Error("f1 belongs to the building")
	}
	if s.ValidFlat("f9") {
		t.Error("f9 does not belong to the building")
	}
}
