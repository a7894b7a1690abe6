// pattern: Functional Core

// Package blocktype defines the closed set of wing shapes a block can
// take. The registry is static data: categories group types for the
// selection UI only and carry no behavioral effect.
package blocktype

// Kind names the rendering strategy for a block type. The schema
// package matches on it exhaustively.
type Kind int

const (
	KindWing Kind = iota
	KindApartment
	KindNoGroundWing
	KindStraightWing
	KindDoubleWing
)

// Orientation is the stairwell side a wing diagram is drawn on.
type Orientation int

const (
	OrientLeft Orientation = iota
	OrientRight
	OrientCenter
)

// Descriptor holds presentation metadata and the rendering strategy
// for one block type. Value is the unique key stored on a block.
type Descriptor struct {
	Value       string
	Label       string
	Icon        string
	Kind        Kind
	Orientation Orientation
}

// Category groups descriptors for the type-selection UI.
type Category struct {
	Name  string
	Types []Descriptor
}

// Categories is the closed, ordered registry. Flattened values must be
// unique; that invariant is asserted by a static test, not per-call.
var Categories = []Category{
	{
		Name: "Wing",
		Types: []Descriptor{
			{Value: "leftWing", Label: "Left wing", Icon: "◧", Kind: KindWing, Orientation: OrientLeft},
			{Value: "rightWing", Label: "Right wing", Icon: "◨", Kind: KindWing, Orientation: OrientRight},
		},
	},
	{
		Name: "Apartment block",
		Types: []Descriptor{
			{Value: "apartmentBlock", Label: "Apartment block", Icon: "▣", Kind: KindApartment, Orientation: OrientCenter},
			{Value: "apartmentBlockWide", Label: "Apartment block (wide)", Icon: "▤", Kind: KindApartment, Orientation: OrientCenter},
			{Value: "apartmentBlockTower", Label: "Apartment tower", Icon: "▥", Kind: KindApartment, Orientation: OrientCenter},
		},
	},
	{
		Name: "Wing without ground floor",
		Types: []Descriptor{
			{Value: "leftWingNoGround", Label: "Left wing, no ground floor", Icon: "◩", Kind: KindNoGroundWing, Orientation: OrientLeft},
			{Value: "rightWingNoGround", Label: "Right wing, no ground floor", Icon: "◪", Kind: KindNoGroundWing, Orientation: OrientRight},
		},
	},
	{
		Name: "Straight-cable wing",
		Types: []Descriptor{
			{Value: "leftWingStraight", Label: "Left wing, straight cable", Icon: "◫", Kind: KindStraightWing, Orientation: OrientLeft},
			{Value: "rightWingStraight", Label: "Right wing, straight cable", Icon: "◻", Kind: KindStraightWing, Orientation: OrientRight},
			{Value: "straightRiser", Label: "Straight riser", Icon: "▯", Kind: KindStraightWing, Orientation: OrientCenter},
		},
	},
	{
		Name: "Double wing, shared stairwell",
		Types: []Descriptor{
			{Value: "doubleWingLeft", Label: "Double wing, left stairwell", Icon: "◰", Kind: KindDoubleWing, Orientation: OrientLeft},
			{Value: "doubleWingRight", Label: "Double wing, right stairwell", Icon: "◳", Kind: KindDoubleWing, Orientation: OrientRight},
			{Value: "doubleWingShared", Label: "Double wing, shared stairwell", Icon: "◲", Kind: KindDoubleWing, Orientation: OrientCenter},
		},
	},
}

// Lookup resolves a block-type key. Unknown keys, including the empty
// string, return ok=false; callers must tolerate that rather than
// treating it as an error (an unconfigured block simply has no shape).
func Lookup(value string) (Descriptor, bool) {
	if value == "" {
		return Descriptor{}, false
	}
	for _, c := range Categories {
		for _, d := range c.Types {
			if d.Value == value {
				return d, true
			}
		}
	}
	return Descriptor{}, false
}

// All returns the flattened descriptor list in registry order.
func All() []Descriptor {
	var out []Descriptor
	for _, c := range Categories {
		out = append(out, c.Types...)
	}
	return out
}
