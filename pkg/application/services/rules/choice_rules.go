package rules

import (
	"github.com/hearthside/configurator/pkg/domain/entities"
)

// executeAllChoiceRules evaluates every choice rule group to a fixed point.
// Rule graphs may contain forward references and cycles; a group already
// marked executed is treated as final even when reached again.
func (p *pass) executeAllChoiceRules() {
	for _, cr := range p.rules.ChoiceRules {
		p.executeChoiceRules(cr)
	}
}

func (p *pass) executeChoiceRules(cr *entities.ChoiceRules) {
	if p.executedChoiceRules[cr.ChoiceID] {
		return
	}
	p.executedChoiceRules[cr.ChoiceID] = true

	choice := p.tree.FindChoice(cr.ChoiceID)
	if choice == nil {
		return
	}

	// Referenced choices must settle first so this group evaluates against
	// their final selection state.
	for _, r := range cr.Rules {
		for _, id := range r.Choices {
			if dep := p.rules.ChoiceRulesFor(id); dep != nil {
				p.executeChoiceRules(dep)
			}
		}
	}

	if len(cr.Rules) == 0 {
		return
	}

	// Rules are OR-combined: one satisfied rule keeps the choice enabled.
	for _, r := range cr.Rules {
		if p.choiceRuleSatisfied(r) {
			return
		}
	}

	choice.Enabled = false
	choice.DisabledBy = append(choice.DisabledBy, cr)
	if choice.LockedIn == nil {
		choice.Quantity = 0
		choice.IsRequired = false
	}
}

// choiceRuleSatisfied checks one AND-set. A reference that does not resolve
// fails the branch regardless of rule type.
func (p *pass) choiceRuleSatisfied(r *entities.ChoiceRule) bool {
	for _, id := range r.Choices {
		c := p.tree.FindChoice(id)
		if c == nil {
			return false
		}
		switch r.RuleType {
		case entities.MustHave:
			if !c.Selected() {
				return false
			}
		case entities.MustNotHave:
			if c.Selected() {
				return false
			}
		default:
			return false
		}
	}
	return true
}
