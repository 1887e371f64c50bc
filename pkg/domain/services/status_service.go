package services

import (
	"github.com/hearthside/configurator/pkg/domain/entities"
)

// statusPrecedence lists rollup statuses most-restrictive-first. A container
// takes the first status any of its children carries.
var statusPrecedence = []entities.PointStatus{
	entities.StatusConflicted,
	entities.StatusRequired,
	entities.StatusPartiallyCompleted,
}

// SetPointStatus derives and stores the completion status of a decision
// point from its enabled flag, pick type, and contained choice state.
func SetPointStatus(p *entities.DecisionPoint) entities.PointStatus {
	p.Status = pointStatus(p)
	return p.Status
}

func pointStatus(p *entities.DecisionPoint) entities.PointStatus {
	if !p.Enabled {
		return entities.StatusCompleted
	}

	var selected []*entities.Choice
	for _, c := range p.Choices {
		if c.Selected() {
			selected = append(selected, c)
		}
	}

	// A selected choice that rules have disabled (grandfathered locked-in
	// selections) and over-selection in an exclusive point both surface as
	// conflicts rather than being silently fixed.
	for _, c := range selected {
		if !c.Enabled && c.LockedIn == nil {
			return entities.StatusConflicted
		}
	}
	if p.PickType.Exclusive() && len(selected) > 1 {
		return entities.StatusConflicted
	}

	if len(selected) == 0 {
		if p.PickType == entities.Pick1 || p.PickType == entities.Pick1orMore {
			return entities.StatusRequired
		}
		if p.Viewed {
			return entities.StatusViewed
		}
		return entities.StatusUnviewed
	}

	for _, c := range selected {
		if !choiceAttributesComplete(c) {
			return entities.StatusPartiallyCompleted
		}
	}
	return entities.StatusCompleted
}

// choiceAttributesComplete reports whether every mapped attribute and
// location group on a selected choice has a corresponding selection.
func choiceAttributesComplete(c *entities.Choice) bool {
	for _, groupID := range c.MappedAttributeGroups {
		found := false
		for _, sa := range c.SelectedAttributes {
			if sa.AttributeGroupID == groupID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	for _, groupID := range c.MappedLocationGroups {
		found := false
		for _, sa := range c.SelectedAttributes {
			if sa.LocationGroupID == groupID {
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

// SetSubGroupStatus derives and stores a subgroup's status from its points.
func SetSubGroupStatus(sg *entities.SubGroup) entities.PointStatus {
	statuses := make([]entities.PointStatus, 0, len(sg.Points))
	for _, p := range sg.Points {
		statuses = append(statuses, p.Status)
	}
	sg.Status = rollup(statuses)
	return sg.Status
}

// SetGroupStatus derives and stores a group's status from its subgroups.
func SetGroupStatus(g *entities.Group) entities.PointStatus {
	statuses := make([]entities.PointStatus, 0, len(g.SubGroups))
	for _, sg := range g.SubGroups {
		statuses = append(statuses, sg.Status)
	}
	g.Status = rollup(statuses)
	return g.Status
}

// rollup combines child statuses by precedence. Completed requires every
// child to be completed; a mix of completed and pending children reads as
// partially completed.
func rollup(statuses []entities.PointStatus) entities.PointStatus {
	if len(statuses) == 0 {
		return entities.StatusCompleted
	}

	for _, want := range statusPrecedence {
		for _, s := range statuses {
			if s == want {
				return want
			}
		}
	}

	completed := 0
	viewed := false
	for _, s := range statuses {
		switch s {
		case entities.StatusCompleted:
			completed++
		case entities.StatusViewed:
			viewed = true
		}
	}
	if completed == len(statuses) {
		return entities.StatusCompleted
	}
	if completed > 0 {
		return entities.StatusPartiallyCompleted
	}
	if viewed {
		return entities.StatusViewed
	}
	return entities.StatusUnviewed
}

// RollupStatuses recomputes every status bottom-up. Call after each engine
// pass.
func RollupStatuses(tree *entities.Tree) {
	for _, g := range tree.Version.Groups {
		for _, sg := range g.SubGroups {
			for _, p := range sg.Points {
				SetPointStatus(p)
			}
			SetSubGroupStatus(sg)
		}
		SetGroupStatus(g)
	}
}
