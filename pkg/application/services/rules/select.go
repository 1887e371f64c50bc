package rules

import (
	"github.com/hearthside/configurator/pkg/domain/entities"
)

// Select sets a choice's quantity, clearing non-locked siblings first when
// the containing point allows at most one selection. Callers run an engine
// pass afterwards; Select itself only adjusts quantities.
func Select(tree *entities.Tree, choiceID int, quantity int) *entities.Choice {
	c := tree.ResolveChoice(choiceID)
	if c == nil {
		return nil
	}

	if quantity > 0 {
		pt := tree.PointForChoice(c.ID)
		if pt != nil && pt.PickType.Exclusive() {
			for _, sib := range pt.Choices {
				if sib.ID != c.ID && sib.LockedIn == nil {
					sib.Quantity = 0
				}
			}
		}
		if c.MaxQuantity > 0 && quantity > c.MaxQuantity {
			quantity = c.MaxQuantity
		}
	}
	if quantity < 0 {
		quantity = 0
	}
	c.Quantity = quantity
	return c
}
