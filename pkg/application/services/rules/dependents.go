package rules

import (
	"github.com/hearthside/configurator/pkg/domain/entities"
)

// DependentChoices simulates toggling one choice on a deep clone of the tree
// and reports every contracted (locked-in) choice the toggle would disable.
// The caller's tree is never mutated. Used to warn the buyer which
// contracted items would be lost before committing a change.
func (e *Engine) DependentChoices(
	tree *entities.Tree,
	rules *entities.TreeVersionRules,
	options []*entities.PlanOption,
	choiceID int,
) []*entities.Choice {
	sim := tree.Clone()
	target := sim.ResolveChoice(choiceID)
	if target == nil {
		return nil
	}

	// History must not constrain the simulation: unlock the toggled choice
	// and, transitively, every locked-in choice whose rules reference an
	// unlocked one.
	clearLockedIn(sim, rules, target)

	if target.Selected() {
		target.Quantity = 0
	} else {
		Select(sim, target.ID, 1)
	}

	e.ApplyRules(sim, rules, options, 0, nil)

	var affected []*entities.Choice
	for _, orig := range tree.Choices() {
		if orig.LockedIn == nil {
			continue
		}
		simChoice := sim.FindChoice(orig.ID)
		if simChoice == nil {
			continue
		}
		pt := sim.PointForChoice(simChoice.ID)
		if !simChoice.Enabled || (pt != nil && !pt.Enabled) {
			affected = append(affected, orig)
		}
	}
	return affected
}

// clearLockedIn unlocks the target and then repeatedly unlocks any locked-in
// choice whose choice rules reference an already-unlocked one, until no more
// change.
func clearLockedIn(sim *entities.Tree, rules *entities.TreeVersionRules, target *entities.Choice) {
	cleared := map[int]bool{target.ID: true}
	target.LockedIn = nil
	target.LockedInOptions = nil

	for {
		changed := false
		for _, c := range sim.Choices() {
			if c.LockedIn == nil || cleared[c.ID] {
				continue
			}
			if !rulesReference(rules, c.ID, cleared) {
				continue
			}
			c.LockedIn = nil
			c.LockedInOptions = nil
			cleared[c.ID] = true
			changed = true
		}
		if !changed {
			return
		}
	}
}

// rulesReference reports whether any choice rule of the given choice
// references a choice in the cleared set.
func rulesReference(rules *entities.TreeVersionRules, choiceID int, cleared map[int]bool) bool {
	cr := rules.ChoiceRulesFor(choiceID)
	if cr == nil {
		return false
	}
	for _, r := range cr.Rules {
		for _, id := range r.Choices {
			if cleared[id] {
				return true
			}
		}
	}
	return false
}
