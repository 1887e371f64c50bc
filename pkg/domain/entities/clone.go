package entities

// Clone returns a deep copy of the tree. What-if computations (dependent
// choice analysis, price-range exploration) operate on clones so the live
// tree is never touched.
func (t *Tree) Clone() *Tree {
	if t == nil {
		return nil
	}
	clone := &Tree{
		ID:     t.ID,
		PlanID: t.PlanID,
	}
	if t.Version != nil {
		v := &TreeVersion{
			ID:     t.Version.ID,
			Name:   t.Version.Name,
			Groups: make([]*Group, 0, len(t.Version.Groups)),
		}
		for _, g := range t.Version.Groups {
			v.Groups = append(v.Groups, g.clone())
		}
		clone.Version = v
	}
	return clone
}

func (g *Group) clone() *Group {
	clone := &Group{
		ID:        g.ID,
		Name:      g.Name,
		SortOrder: g.SortOrder,
		Status:    g.Status,
		SubGroups: make([]*SubGroup, 0, len(g.SubGroups)),
	}
	for _, sg := range g.SubGroups {
		clone.SubGroups = append(clone.SubGroups, sg.clone())
	}
	return clone
}

func (sg *SubGroup) clone() *SubGroup {
	clone := &SubGroup{
		ID:        sg.ID,
		GroupID:   sg.GroupID,
		Name:      sg.Name,
		SortOrder: sg.SortOrder,
		Status:    sg.Status,
		Points:    make([]*DecisionPoint, 0, len(sg.Points)),
	}
	for _, p := range sg.Points {
		clone.Points = append(clone.Points, p.clone())
	}
	return clone
}

func (p *DecisionPoint) clone() *DecisionPoint {
	clone := *p
	clone.DisabledBy = append([]*PointRules(nil), p.DisabledBy...)
	clone.Choices = make([]*Choice, 0, len(p.Choices))
	for _, c := range p.Choices {
		clone.Choices = append(clone.Choices, c.clone())
	}
	return &clone
}

func (c *Choice) clone() *Choice {
	clone := *c
	clone.Options = make([]*AttachedOption, 0, len(c.Options))
	for _, ao := range c.Options {
		attached := *ao
		clone.Options = append(clone.Options, &attached)
	}
	clone.AttributeGroups = append([]int(nil), c.AttributeGroups...)
	clone.LocationGroups = append([]int(nil), c.LocationGroups...)
	clone.MappedAttributeGroups = append([]int(nil), c.MappedAttributeGroups...)
	clone.MappedLocationGroups = append([]int(nil), c.MappedLocationGroups...)
	clone.SelectedAttributes = append([]SelectedAttribute(nil), c.SelectedAttributes...)
	clone.DisabledBy = append([]*ChoiceRules(nil), c.DisabledBy...)
	clone.ChangedDependentChoiceIDs = append([]int(nil), c.ChangedDependentChoiceIDs...)
	if c.LockedIn != nil {
		locked := *c.LockedIn
		locked.AttributeGroups = append([]int(nil), c.LockedIn.AttributeGroups...)
		locked.LocationGroups = append([]int(nil), c.LockedIn.LocationGroups...)
		locked.SelectedAttributes = append([]SelectedAttribute(nil), c.LockedIn.SelectedAttributes...)
		clone.LockedIn = &locked
	}
	clone.LockedInOptions = make([]*LockedInOption, 0, len(c.LockedInOptions))
	for _, lo := range c.LockedInOptions {
		frozen := *lo
		frozen.Choices = append([]LockedInOptionChoice(nil), lo.Choices...)
		clone.LockedInOptions = append(clone.LockedInOptions, &frozen)
	}
	if len(c.LockedInOptions) == 0 {
		clone.LockedInOptions = nil
	}
	return &clone
}
