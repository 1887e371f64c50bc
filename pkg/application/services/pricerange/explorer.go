package pricerange

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/hearthside/configurator/pkg/application/dto"
	"github.com/hearthside/configurator/pkg/application/services/rules"
	"github.com/hearthside/configurator/pkg/domain/entities"
)

// Explorer brute-forces the minimum and maximum achievable price of every
// choice. For each choice it collects the closure of choices that can affect
// its eligibility or price, enumerates every legal on/off combination of
// that closure by depth-first backtracking, reruns the rule engine per
// combination, and folds the observed prices.
//
// The enumeration is exponential in closure size; run it through a Worker,
// never on the interactive path.
type Explorer struct {
	engine *rules.Engine
}

// NewExplorer creates a new price-range explorer
func NewExplorer() *Explorer {
	return &Explorer{engine: rules.NewEngine()}
}

// ChoicePriceRanges computes the price range of every choice in the tree.
// The tree is only read; every evaluation runs on a clone. The context is
// checked between choices so a long batch can be abandoned.
func (e *Explorer) ChoicePriceRanges(
	ctx context.Context,
	tree *entities.Tree,
	treeRules *entities.TreeVersionRules,
	options []*entities.PlanOption,
) ([]dto.ChoicePriceRange, error) {
	if tree == nil || tree.Version == nil {
		return nil, nil
	}
	if treeRules == nil {
		treeRules = &entities.TreeVersionRules{}
	}

	choices := tree.Choices()
	ranges := make([]dto.ChoicePriceRange, 0, len(choices))
	for _, c := range choices {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ranges = append(ranges, e.priceRange(tree, treeRules, options, c))
	}
	return ranges, nil
}

func (e *Explorer) priceRange(
	tree *entities.Tree,
	treeRules *entities.TreeVersionRules,
	options []*entities.PlanOption,
	c *entities.Choice,
) dto.ChoicePriceRange {
	closure := relevantChoices(tree, treeRules, c)

	if len(closure) == 0 {
		price, _ := e.evaluate(tree, treeRules, options, c, nil)
		return dto.ChoicePriceRange{ChoiceID: c.ID, Min: price, Max: price}
	}

	var (
		min, max decimal.Decimal
		found    bool
	)
	fold := func(price decimal.Decimal) {
		if !found {
			min, max = price, price
			found = true
			return
		}
		if price.LessThan(min) {
			min = price
		}
		if price.GreaterThan(max) {
			max = price
		}
	}

	assignment := make(map[int]bool, len(closure))
	e.enumerate(tree, treeRules, options, c, closure, 0, assignment, fold)

	if !found {
		price, _ := e.evaluate(tree, treeRules, options, c, nil)
		return dto.ChoicePriceRange{ChoiceID: c.ID, Min: price, Max: price}
	}
	return dto.ChoicePriceRange{ChoiceID: c.ID, Min: min, Max: max}
}

// enumerate walks every boolean assignment over the closure ids depth-first,
// rejecting a partial assignment as soon as it selects two siblings of an
// exclusive point, rather than materializing the full 2^n set.
func (e *Explorer) enumerate(
	tree *entities.Tree,
	treeRules *entities.TreeVersionRules,
	options []*entities.PlanOption,
	c *entities.Choice,
	closure []int,
	idx int,
	assignment map[int]bool,
	fold func(decimal.Decimal),
) {
	if idx == len(closure) {
		if !e.assignmentSatisfiesRules(tree, treeRules, c, assignment) {
			return
		}
		if price, ok := e.evaluate(tree, treeRules, options, c, assignment); ok {
			fold(price)
		}
		return
	}

	id := closure[idx]

	if !e.selectionConflicts(tree, c, assignment, id) {
		assignment[id] = true
		e.enumerate(tree, treeRules, options, c, closure, idx+1, assignment, fold)
	}

	assignment[id] = false
	e.enumerate(tree, treeRules, options, c, closure, idx+1, assignment, fold)
	delete(assignment, id)
}

// selectionConflicts reports whether selecting id would put two choices into
// one exclusive point, counting the explored choice itself as selected.
func (e *Explorer) selectionConflicts(
	tree *entities.Tree,
	c *entities.Choice,
	assignment map[int]bool,
	id int,
) bool {
	pt := tree.PointForChoice(id)
	if pt == nil || !pt.PickType.Exclusive() {
		return false
	}
	for _, sib := range pt.Choices {
		if sib.ID == id {
			continue
		}
		if sib.ID == c.ID || assignment[sib.ID] {
			return true
		}
	}
	return false
}

// assignmentSatisfiesRules rejects assignments where a selected choice's own
// rules, or the rules of its containing point, cannot hold. Choices outside
// the closure count as deselected, which matches the quantity reset the
// evaluation performs. Rules referencing point completion are left to the
// full evaluation.
func (e *Explorer) assignmentSatisfiesRules(
	tree *entities.Tree,
	treeRules *entities.TreeVersionRules,
	c *entities.Choice,
	assignment map[int]bool,
) bool {
	selectedUnder := func(id int) bool {
		if id == c.ID {
			return true
		}
		return assignment[id]
	}

	choiceRefsHold := func(ruleType entities.RuleType, ids []int) bool {
		for _, id := range ids {
			switch ruleType {
			case entities.MustHave:
				if !selectedUnder(id) {
					return false
				}
			case entities.MustNotHave:
				if selectedUnder(id) {
					return false
				}
			}
		}
		return true
	}

	check := func(choiceID int) bool {
		cr := treeRules.ChoiceRulesFor(choiceID)
		if cr == nil || len(cr.Rules) == 0 {
			return true
		}
		for _, r := range cr.Rules {
			if choiceRefsHold(r.RuleType, r.Choices) {
				return true
			}
		}
		return false
	}

	checkPoint := func(choiceID int) bool {
		pt := tree.PointForChoice(choiceID)
		if pt == nil {
			return true
		}
		pr := treeRules.PointRulesFor(pt.ID)
		if pr == nil || len(pr.Rules) == 0 {
			return true
		}
		for _, r := range pr.Rules {
			// Completion references need engine state to decide.
			if len(r.Points) > 0 {
				return true
			}
			if choiceRefsHold(r.RuleType, r.Choices) {
				return true
			}
		}
		return false
	}

	if !check(c.ID) || !checkPoint(c.ID) {
		return false
	}
	for id, selected := range assignment {
		if !selected {
			continue
		}
		if !check(id) || !checkPoint(id) {
			return false
		}
	}
	return true
}

// evaluate runs one full engine pass on a clone with only the assignment
// (plus the explored choice) selected, and reports the explored choice's
// resulting price. ok is false when the choice or its point ends up
// disabled.
func (e *Explorer) evaluate(
	tree *entities.Tree,
	treeRules *entities.TreeVersionRules,
	options []*entities.PlanOption,
	c *entities.Choice,
	assignment map[int]bool,
) (decimal.Decimal, bool) {
	sim := tree.Clone()
	for _, sc := range sim.Choices() {
		sc.Quantity = 0
	}
	for id, selected := range assignment {
		if selected {
			rules.Select(sim, id, 1)
		}
	}
	rules.Select(sim, c.ID, 1)

	e.engine.ApplyRules(sim, treeRules, options, 0, nil)

	simChoice := sim.FindChoice(c.ID)
	if simChoice == nil {
		return decimal.Zero, false
	}
	pt := sim.PointForChoice(simChoice.ID)
	ok := simChoice.Enabled && (pt == nil || pt.Enabled)
	return simChoice.Price, ok
}

// relevantChoices collects, depth-first with a cycle guard, every choice
// whose selection state can affect the given choice: references from its
// choice rules, from point rules on its point, and co-participants of any
// option mapping whose price attributes to it.
func relevantChoices(
	tree *entities.Tree,
	treeRules *entities.TreeVersionRules,
	c *entities.Choice,
) []int {
	visited := map[int]bool{}
	var visit func(choiceID int)
	visit = func(choiceID int) {
		if visited[choiceID] {
			return
		}
		visited[choiceID] = true

		if cr := treeRules.ChoiceRulesFor(choiceID); cr != nil {
			for _, r := range cr.Rules {
				for _, id := range r.Choices {
					if ref := tree.ResolveChoice(id); ref != nil {
						visit(ref.ID)
					}
				}
			}
		}

		if pt := tree.PointForChoice(choiceID); pt != nil {
			if pr := treeRules.PointRulesFor(pt.ID); pr != nil {
				for _, r := range pr.Rules {
					for _, id := range r.Choices {
						if ref := tree.ResolveChoice(id); ref != nil {
							visit(ref.ID)
						}
					}
					for _, pointID := range r.Points {
						if refPoint := tree.FindPoint(pointID); refPoint != nil {
							for _, refChoice := range refPoint.Choices {
								visit(refChoice.ID)
							}
						}
					}
				}
			}
		}

		for _, or := range treeRules.OptionRules {
			for i := range or.Mappings {
				mapping := &or.Mappings[i]
				var mustHaveIDs []int
				for _, mc := range mapping.Choices {
					if mc.MustHave {
						mustHaveIDs = append(mustHaveIDs, mc.ID)
					}
				}
				pivot := rules.MaxSortOrderChoice(tree, mustHaveIDs)
				if pivot == nil || pivot.ID != choiceID {
					continue
				}
				for _, mc := range mapping.Choices {
					if ref := tree.ResolveChoice(mc.ID); ref != nil {
						visit(ref.ID)
					}
				}
			}
		}
	}
	visit(c.ID)

	delete(visited, c.ID)
	closure := make([]int, 0, len(visited))
	for id := range visited {
		closure = append(closure, id)
	}
	sort.Ints(closure)
	return closure
}
