package rules

import (
	"github.com/hearthside/configurator/pkg/domain/entities"
)

// MaxSortOrderChoice returns the choice among the given ids that sorts last
// in tree order (group, subgroup, point, then choice sort order). When
// several must-have choices jointly enable an option, its price is
// attributed to the last decision the buyer makes so price changes appear at
// the point of commitment rather than retroactively on an earlier screen.
//
// IDs may be tree-instance ids or division catalog ids.
func MaxSortOrderChoice(tree *entities.Tree, choiceIDs []int) *entities.Choice {
	if tree == nil || tree.Version == nil || len(choiceIDs) == 0 {
		return nil
	}

	var best *entities.Choice
	var bestKey sortKey

	for _, g := range tree.Version.Groups {
		for _, sg := range g.SubGroups {
			for _, pt := range sg.Points {
				for _, c := range pt.Choices {
					if !matchesAny(c, choiceIDs) {
						continue
					}
					key := sortKey{g.SortOrder, sg.SortOrder, pt.SortOrder, c.SortOrder}
					if best == nil || bestKey.less(key) {
						best = c
						bestKey = key
					}
				}
			}
		}
	}
	return best
}

type sortKey [4]int

func (k sortKey) less(other sortKey) bool {
	for i := range k {
		if k[i] != other[i] {
			return k[i] < other[i]
		}
	}
	return false
}

func matchesAny(c *entities.Choice, ids []int) bool {
	for _, id := range ids {
		if c.ID == id || c.DivChoiceCatalogID == id {
			return true
		}
	}
	return false
}
