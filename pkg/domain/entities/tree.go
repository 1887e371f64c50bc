package entities

import (
	"github.com/shopspring/decimal"
)

// PickType represents the cardinality constraint on a decision point's
// selectable choices.
type PickType int

const (
	Pick1 PickType = iota + 1
	Pick0or1
	Pick1orMore
	Pick0orMore
)

// String method for PickType enum
func (p PickType) String() string {
	switch p {
	case Pick1:
		return "Pick1"
	case Pick0or1:
		return "Pick0or1"
	case Pick1orMore:
		return "Pick1orMore"
	case Pick0orMore:
		return "Pick0orMore"
	default:
		return "Unknown"
	}
}

// Exclusive reports whether at most one choice may be selected under this
// pick type.
func (p PickType) Exclusive() bool {
	return p == Pick1 || p == Pick0or1
}

// Tree is the root of one configurable house catalog snapshot. It is built
// once per scenario session and mutated in place by the rule engine.
type Tree struct {
	ID      int
	PlanID  int
	Version *TreeVersion
}

// TreeVersion is one published version of the catalog tree.
type TreeVersion struct {
	ID     int
	Name   string
	Groups []*Group
}

// Group is the top-level container of the decision tree.
type Group struct {
	ID        int
	Name      string
	SortOrder int
	Status    PointStatus
	SubGroups []*SubGroup
}

// SubGroup contains an ordered list of decision points.
type SubGroup struct {
	ID        int
	GroupID   int
	Name      string
	SortOrder int
	Status    PointStatus
	Points    []*DecisionPoint
}

// DecisionPoint is one decision the buyer makes, constrained by a pick type.
type DecisionPoint struct {
	ID                int
	DivPointCatalogID int
	SubGroupID        int
	TreeVersionID     int
	Name              string
	SortOrder         int
	PickType          PickType
	IsStructuralItem  bool
	IsPastCutOff      bool
	Viewed            bool
	Enabled           bool
	Completed         bool
	Price             decimal.Decimal
	Status            PointStatus
	DisabledBy        []*PointRules
	Choices           []*Choice
}

// SelectedAttribute records one attribute or location the buyer picked for a
// selected choice.
type SelectedAttribute struct {
	AttributeID      int
	AttributeGroupID int
	LocationID       int
	LocationGroupID  int
}

// Choice is one selectable alternative within a decision point.
//
// ID identifies the choice within this tree version; DivChoiceCatalogID is
// stable across tree republishing and is what option rules and lot rules
// reference.
type Choice struct {
	ID                 int
	DivChoiceCatalogID int
	TreePointID        int
	TreeVersionID      int
	Name               string
	SortOrder          int

	// Quantity is 0 when not selected; a selected choice may carry multiple
	// units up to MaxQuantity.
	Quantity          int
	MaxQuantity       int
	ChoiceMaxQuantity int

	Price        decimal.Decimal
	Enabled      bool
	IsSelectable bool
	IsRequired   bool

	Options []*AttachedOption

	// Catalog-declared groups, before rule evaluation.
	AttributeGroups []int
	LocationGroups  []int

	// Post-rule groups the UI may actually offer.
	MappedAttributeGroups []int
	MappedLocationGroups  []int

	SelectedAttributes []SelectedAttribute

	DisabledBy []*ChoiceRules

	// LockedIn is non-nil when this choice was already purchased via a job or
	// change order. LockedInOptions freezes the option mapping in force at
	// that time.
	LockedIn        *LockedInChoice
	LockedInOptions []*LockedInOption

	ChangedDependentChoiceIDs []int
	MappingChanged            bool
}

// Selected reports whether the choice currently carries any quantity.
func (c *Choice) Selected() bool {
	return c.Quantity > 0
}

// ForEachPoint visits every decision point in tree order.
func (t *Tree) ForEachPoint(fn func(*DecisionPoint)) {
	for _, g := range t.Version.Groups {
		for _, sg := range g.SubGroups {
			for _, p := range sg.Points {
				fn(p)
			}
		}
	}
}

// ForEachChoice visits every choice in tree order.
func (t *Tree) ForEachChoice(fn func(*DecisionPoint, *Choice)) {
	t.ForEachPoint(func(p *DecisionPoint) {
		for _, c := range p.Choices {
			fn(p, c)
		}
	})
}

// Points returns every decision point in tree order, skipping points whose
// tree version does not match the active version.
func (t *Tree) Points() []*DecisionPoint {
	var points []*DecisionPoint
	t.ForEachPoint(func(p *DecisionPoint) {
		if p.TreeVersionID == t.Version.ID {
			points = append(points, p)
		}
	})
	return points
}

// Choices returns every choice in tree order, skipping choices whose tree
// version does not match the active version.
func (t *Tree) Choices() []*Choice {
	var choices []*Choice
	t.ForEachChoice(func(p *DecisionPoint, c *Choice) {
		if c.TreeVersionID == t.Version.ID {
			choices = append(choices, c)
		}
	})
	return choices
}

// FindChoice returns the choice with the given tree-instance id, or nil.
// Stale choices from another tree version are never returned.
func (t *Tree) FindChoice(id int) *Choice {
	for _, c := range t.Choices() {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// FindChoiceByCatalogID returns the choice with the given division catalog
// id, or nil.
func (t *Tree) FindChoiceByCatalogID(divChoiceCatalogID int) *Choice {
	for _, c := range t.Choices() {
		if c.DivChoiceCatalogID == divChoiceCatalogID {
			return c
		}
	}
	return nil
}

// ResolveChoice accepts either a tree-instance id or a division catalog id
// and returns the matching choice, preferring the instance id.
func (t *Tree) ResolveChoice(id int) *Choice {
	if c := t.FindChoice(id); c != nil {
		return c
	}
	return t.FindChoiceByCatalogID(id)
}

// FindPoint returns the decision point with the given tree-instance id, or
// nil.
func (t *Tree) FindPoint(id int) *DecisionPoint {
	for _, p := range t.Points() {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// PointForChoice returns the decision point containing the given choice, or
// nil.
func (t *Tree) PointForChoice(choiceID int) *DecisionPoint {
	for _, p := range t.Points() {
		for _, c := range p.Choices {
			if c.ID == choiceID {
				return p
			}
		}
	}
	return nil
}
