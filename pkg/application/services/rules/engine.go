package rules

import (
	"github.com/shopspring/decimal"

	"github.com/hearthside/configurator/pkg/domain/entities"
)

// Engine recomputes the enabled/price/option/mapping state of every choice
// and point in a tree from the authored rule set. It holds no state across
// passes; all memoization lives in per-pass maps so rule inputs stay
// read-only.
type Engine struct{}

// NewEngine creates a new rule propagation engine
func NewEngine() *Engine {
	return &Engine{}
}

// pass carries the working state of one ApplyRules invocation.
type pass struct {
	tree       *entities.Tree
	rules      *entities.TreeVersionRules
	options    []*entities.PlanOption
	lotID      int
	historical []*entities.TimeOfSaleOptionPrice

	executedChoiceRules map[int]bool
	executedPointRules  map[int]bool
	executedOptionRules map[int]bool

	// Attribute reassignments collected from satisfied option mappings,
	// applied after the base group mapping is known.
	activeReassignments []activeReassignment
}

type activeReassignment struct {
	from         *entities.Choice
	reassignment entities.AttributeReassignment
}

// ApplyRules mutates the tree in place so that every choice's enabled flag,
// price, attached options, and mapped attribute/location groups, and every
// point's enabled/completed flag, are consistent with the rule set and the
// current selections.
//
// The function is idempotent and never returns an error for well-formed
// input: rule references that do not resolve to a choice or point in the
// active tree version simply fail their branch of the evaluation.
//
// lotID is 0 when no homesite is selected; historical may be nil when no
// time-of-sale price records exist.
func (e *Engine) ApplyRules(
	tree *entities.Tree,
	rules *entities.TreeVersionRules,
	options []*entities.PlanOption,
	lotID int,
	historical []*entities.TimeOfSaleOptionPrice,
) {
	if tree == nil || tree.Version == nil {
		return
	}
	if rules == nil {
		rules = &entities.TreeVersionRules{}
	}

	p := &pass{
		tree:                tree,
		rules:               rules,
		options:             options,
		lotID:               lotID,
		historical:          historical,
		executedChoiceRules: make(map[int]bool),
		executedPointRules:  make(map[int]bool),
		executedOptionRules: make(map[int]bool),
	}

	p.reset()
	p.applyLotRules()
	p.enforceRequiredExclusivity()
	p.invalidateLockedInOptions()
	p.executeAllChoiceRules()
	p.executeAllPointRules()
	p.executeAllOptionRules()
	p.clampQuantities()
	p.remapGroups()
	p.detectMappingChanges()
	p.computePointPrices()
}

// reset restores every choice and point to its pre-rule state.
func (p *pass) reset() {
	for _, pt := range p.tree.Points() {
		pt.Enabled = true
		pt.DisabledBy = nil
		pt.Price = decimal.Zero
		for _, c := range pt.Choices {
			if c.TreeVersionID != p.tree.Version.ID {
				continue
			}
			maxQty := 1
			if c.ChoiceMaxQuantity > 0 {
				maxQty = c.ChoiceMaxQuantity
			}
			c.MaxQuantity = maxQty
			c.Price = decimal.Zero
			c.Enabled = true
			c.IsSelectable = true
			c.IsRequired = false
			c.Options = nil
			c.DisabledBy = nil
			c.ChangedDependentChoiceIDs = nil
			c.MappingChanged = false
		}
	}
}

// applyLotRules forces choices on or off for the selected homesite. Lot
// rules override the rest of the rule graph and disable manual toggling of
// the affected choice.
func (p *pass) applyLotRules() {
	if p.lotID == 0 {
		return
	}
	for _, c := range p.tree.Choices() {
		lr := p.rules.LotChoiceRuleFor(c.DivChoiceCatalogID)
		if lr == nil {
			continue
		}
		for _, assoc := range lr.Rules {
			if assoc.LotID != p.lotID {
				continue
			}
			if assoc.PlanID != 0 && p.tree.PlanID != 0 && assoc.PlanID != p.tree.PlanID {
				continue
			}
			if assoc.MustHave {
				if c.Quantity == 0 {
					c.Quantity = 1
				}
				c.IsRequired = true
				c.IsSelectable = false
			} else {
				c.Quantity = 0
				c.Enabled = false
				c.IsSelectable = false
			}
		}
	}
}

// enforceRequiredExclusivity disables the siblings of a required choice
// inside exclusive (Pick1/Pick0or1) points.
func (p *pass) enforceRequiredExclusivity() {
	for _, pt := range p.tree.Points() {
		if !pt.PickType.Exclusive() {
			continue
		}
		hasRequired := false
		for _, c := range pt.Choices {
			if c.IsRequired {
				hasRequired = true
				break
			}
		}
		if !hasRequired {
			continue
		}
		for _, c := range pt.Choices {
			if c.IsRequired {
				continue
			}
			c.Enabled = false
			if c.LockedIn == nil {
				c.Quantity = 0
			}
		}
	}
}

// invalidateLockedInOptions clears the contract mapping of a locked-in
// choice when it is no longer reconstructible under current selections.
func (p *pass) invalidateLockedInOptions() {
	for _, c := range p.tree.Choices() {
		if c.LockedIn == nil || len(c.LockedInOptions) == 0 {
			continue
		}
		if p.lockedMappingHolds(c) {
			continue
		}
		c.LockedIn = nil
		c.LockedInOptions = nil
	}
}

func (p *pass) lockedMappingHolds(c *entities.Choice) bool {
	for _, lo := range c.LockedInOptions {
		for _, loc := range lo.Choices {
			mapped := p.tree.FindChoiceByCatalogID(loc.ID)
			if mapped == nil {
				return false
			}
			if loc.MustHave != mapped.Selected() {
				return false
			}
		}
	}
	return true
}

// clampQuantities caps each choice's quantity at its settled maximum. Runs
// after option rules so a quantity permitted by an attached quantity option
// survives, while one whose permitting mapping broke falls back to the
// catalog limit. Locked-in choices keep their contracted quantity.
func (p *pass) clampQuantities() {
	for _, c := range p.tree.Choices() {
		if c.LockedIn != nil {
			continue
		}
		if c.MaxQuantity > 0 && c.Quantity > c.MaxQuantity {
			c.Quantity = c.MaxQuantity
		}
	}
}

// computePointPrices sums contained choice prices, weighted by quantity.
func (p *pass) computePointPrices() {
	for _, pt := range p.tree.Points() {
		sum := decimal.Zero
		for _, c := range pt.Choices {
			if c.Quantity > 0 {
				sum = sum.Add(c.Price.Mul(decimal.NewFromInt(int64(c.Quantity))))
			}
		}
		pt.Price = sum
	}
}
