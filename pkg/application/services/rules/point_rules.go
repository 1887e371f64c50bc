package rules

import (
	"github.com/hearthside/configurator/pkg/domain/entities"
)

// executeAllPointRules evaluates every point rule group with the same
// memoized fixed-point pattern as choice rules. Point completion is computed
// before evaluation so rules can reference sibling completion, then
// recomputed after.
func (p *pass) executeAllPointRules() {
	for _, pt := range p.tree.Points() {
		recomputeCompleted(pt)
	}
	for _, pr := range p.rules.PointRules {
		p.executePointRules(pr)
	}
	for _, pt := range p.tree.Points() {
		recomputeCompleted(pt)
	}
}

func recomputeCompleted(pt *entities.DecisionPoint) {
	completed := false
	if pt.Enabled {
		for _, c := range pt.Choices {
			if c.Selected() {
				completed = true
				break
			}
		}
	}
	pt.Completed = completed
}

func (p *pass) executePointRules(pr *entities.PointRules) {
	if p.executedPointRules[pr.PointID] {
		return
	}
	p.executedPointRules[pr.PointID] = true

	point := p.tree.FindPoint(pr.PointID)
	if point == nil {
		return
	}

	// Referenced choices and points must settle first: a later-declared rule
	// may zero a choice this rule is about to read as selected.
	for _, r := range pr.Rules {
		for _, id := range r.Choices {
			if refPoint := p.tree.PointForChoice(id); refPoint != nil {
				if dep := p.rules.PointRulesFor(refPoint.ID); dep != nil {
					p.executePointRules(dep)
				}
			}
		}
		for _, id := range r.Points {
			if dep := p.rules.PointRulesFor(id); dep != nil {
				p.executePointRules(dep)
			}
		}
	}

	if len(pr.Rules) == 0 {
		return
	}

	for _, r := range pr.Rules {
		if p.pointRuleSatisfied(r) {
			return
		}
	}

	point.Enabled = false
	point.Completed = false
	point.DisabledBy = append(point.DisabledBy, pr)
	for _, c := range point.Choices {
		if c.LockedIn != nil {
			continue
		}
		c.Quantity = 0
		c.Enabled = false
	}
}

// pointRuleSatisfied checks one AND-set mixing choice and point references.
// A referenced point counts as satisfied when completed.
func (p *pass) pointRuleSatisfied(r *entities.PointRule) bool {
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
	for _, id := range r.Points {
		pt := p.tree.FindPoint(id)
		if pt == nil {
			return false
		}
		switch r.RuleType {
		case entities.MustHave:
			if !pt.Completed {
				return false
			}
		case entities.MustNotHave:
			if pt.Completed {
				return false
			}
		default:
			return false
		}
	}
	return true
}
