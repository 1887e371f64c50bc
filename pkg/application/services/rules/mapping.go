package rules

import (
	"github.com/shopspring/decimal"

	"github.com/hearthside/configurator/pkg/domain/entities"
)

// remapGroups recomputes the attribute/location groups each choice may
// actually offer: the union of its attached options' groups, or the
// catalog-declared groups when no option is attached, adjusted for active
// attribute reassignments. Locked-in choices additionally keep the groups
// recorded at time of purchase.
func (p *pass) remapGroups() {
	for _, c := range p.tree.Choices() {
		var attrs, locs []int
		if len(c.Options) > 0 {
			for _, ao := range c.Options {
				attrs = unionInts(attrs, ao.Option.AttributeGroups)
				locs = unionInts(locs, ao.Option.LocationGroups)
			}
		} else {
			attrs = unionInts(nil, c.AttributeGroups)
			locs = unionInts(nil, c.LocationGroups)
		}
		if c.LockedIn != nil {
			attrs = unionInts(attrs, c.LockedIn.AttributeGroups)
			locs = unionInts(locs, c.LockedIn.LocationGroups)
		}
		c.MappedAttributeGroups = attrs
		c.MappedLocationGroups = locs
	}

	p.applyReassignments()

	for _, c := range p.tree.Choices() {
		dropOrphanedSelections(c)
	}
}

// applyReassignments moves attribute group ownership between choices for
// every reassignment declared on a satisfied option mapping. The group
// leaves the choice carrying the option and, when that choice is selected,
// lands on the referenced target.
func (p *pass) applyReassignments() {
	for _, ar := range p.activeReassignments {
		groupID := ar.reassignment.AttributeGroupID
		ar.from.MappedAttributeGroups = removeInt(ar.from.MappedAttributeGroups, groupID)

		if !ar.from.Selected() {
			continue
		}
		target := p.reassignmentTarget(ar.reassignment.ToChoiceID)
		if target == nil || target == ar.from {
			continue
		}
		target.MappedAttributeGroups = unionInts(target.MappedAttributeGroups, []int{groupID})
	}
}

// reassignmentTarget resolves a reassignment's receiving choice: the catalog
// id may reference either a live choice or the contracted identity of a
// locked-in choice.
func (p *pass) reassignmentTarget(divChoiceCatalogID int) *entities.Choice {
	if c := p.tree.FindChoiceByCatalogID(divChoiceCatalogID); c != nil {
		return c
	}
	for _, c := range p.tree.Choices() {
		if c.LockedIn != nil && c.LockedIn.DivChoiceCatalogID == divChoiceCatalogID {
			return c
		}
	}
	return nil
}

// dropOrphanedSelections removes selected attributes whose group is no
// longer offered by the choice.
func dropOrphanedSelections(c *entities.Choice) {
	if len(c.SelectedAttributes) == 0 {
		return
	}
	kept := c.SelectedAttributes[:0]
	for _, sa := range c.SelectedAttributes {
		if sa.AttributeGroupID != 0 && !containsInt(c.MappedAttributeGroups, sa.AttributeGroupID) {
			continue
		}
		if sa.LocationGroupID != 0 && !containsInt(c.MappedLocationGroups, sa.LocationGroupID) {
			continue
		}
		kept = append(kept, sa)
	}
	c.SelectedAttributes = kept
}

// detectMappingChanges reattaches the frozen contract mapping of a locked-in
// choice whose currently computed options differ from the options recorded
// at contract time, and marks the choices the buyer should be warned about.
func (p *pass) detectMappingChanges() {
	for _, c := range p.tree.Choices() {
		if c.LockedIn == nil || len(c.LockedInOptions) == 0 {
			continue
		}
		if sameOptionSet(c.Options, c.LockedInOptions) {
			continue
		}

		// Contract pricing and mapping are authoritative for the locked-in
		// choice itself.
		c.Options = nil
		c.Price = decimal.Zero
		for _, lo := range c.LockedInOptions {
			opt := entities.FindOption(p.options, lo.OptionID)
			if opt == nil {
				continue
			}
			c.Options = append(c.Options, &entities.AttachedOption{
				Option: opt,
				Price:  lo.ListPrice,
			})
			c.Price = c.Price.Add(lo.ListPrice)
		}
		c.MappingChanged = true

		p.markChangedDependents(c)
	}
}

// markChangedDependents flags every choice whose selection could collide
// with a locked-in choice's stale mapping: all siblings of a dependent
// choice when its point is exclusive, otherwise the dependent itself.
func (p *pass) markChangedDependents(locked *entities.Choice) {
	for _, lo := range locked.LockedInOptions {
		for _, loc := range lo.Choices {
			dep := p.tree.FindChoiceByCatalogID(loc.ID)
			if dep == nil || dep.ID == locked.ID {
				continue
			}
			pt := p.tree.PointForChoice(dep.ID)
			if pt != nil && pt.PickType.Exclusive() {
				for _, sib := range pt.Choices {
					if sib.ID == dep.ID {
						continue
					}
					sib.ChangedDependentChoiceIDs = unionInts(sib.ChangedDependentChoiceIDs, []int{locked.ID})
				}
			} else {
				dep.ChangedDependentChoiceIDs = unionInts(dep.ChangedDependentChoiceIDs, []int{locked.ID})
			}
		}
	}
}

func sameOptionSet(attached []*entities.AttachedOption, frozen []*entities.LockedInOption) bool {
	if len(attached) != len(frozen) {
		return false
	}
	for _, lo := range frozen {
		found := false
		for _, ao := range attached {
			if ao.Option.FinancialOptionIntegrationKey == lo.OptionID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func unionInts(dst []int, src []int) []int {
	for _, v := range src {
		if !containsInt(dst, v) {
			dst = append(dst, v)
		}
	}
	return dst
}

func removeInt(values []int, v int) []int {
	kept := values[:0]
	for _, existing := range values {
		if existing != v {
			kept = append(kept, existing)
		}
	}
	return kept
}

func containsInt(values []int, v int) bool {
	for _, existing := range values {
		if existing == v {
			return true
		}
	}
	return false
}
