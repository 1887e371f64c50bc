package entities

// RuleType distinguishes must-have from must-not-have rules.
type RuleType int

const (
	MustHave    RuleType = 1
	MustNotHave RuleType = 2
)

// String method for RuleType enum
func (r RuleType) String() string {
	switch r {
	case MustHave:
		return "MustHave"
	case MustNotHave:
		return "MustNotHave"
	default:
		return "Unknown"
	}
}

// ChoiceRule is one AND-set of referenced choices. A choice's rules are
// OR-combined: the choice is enabled when at least one rule is satisfied.
type ChoiceRule struct {
	RuleID   int
	RuleType RuleType
	Choices  []int
}

// ChoiceRules groups the rules constraining one choice.
type ChoiceRules struct {
	ChoiceID int
	Rules    []*ChoiceRule
}

// PointRule is one AND-set over both choice ids and point ids. A referenced
// point is satisfied when it is completed.
type PointRule struct {
	RuleID   int
	RuleType RuleType
	Choices  []int
	Points   []int
}

// PointRules groups the rules constraining one decision point.
type PointRules struct {
	PointID int
	Rules   []*PointRule
}

// AttributeReassignment moves ownership of an attribute group to another
// choice while the enclosing option mapping is active.
type AttributeReassignment struct {
	ID               int
	ToChoiceID       int // division catalog id of the receiving choice
	AttributeGroupID int
}

// OptionRuleChoice is one choice participating in an option mapping,
// referenced by division catalog id.
type OptionRuleChoice struct {
	ID                     int
	MustHave               bool
	AttributeReassignments []AttributeReassignment
}

// OptionMapping is the set of choices whose joint state attaches an option.
type OptionMapping struct {
	Choices []OptionRuleChoice
}

// OptionRule governs when a priced option attaches to a choice. Replaces
// lists the integration keys of options this one supersedes; the displayed
// price of a replacement is always the delta against the replaced options.
type OptionRule struct {
	RuleID   int
	OptionID string // financial option integration key
	Mappings []OptionMapping
	Replaces []string
}

// LotChoiceRuleAssoc forces a choice on or off for one homesite/plan pair.
type LotChoiceRuleAssoc struct {
	LotID    int
	PlanID   int
	MustHave bool
}

// LotChoiceRule forces a choice based on the selected homesite, independent
// of the rest of the rule graph.
type LotChoiceRule struct {
	DivChoiceCatalogID int
	Rules              []LotChoiceRuleAssoc
}

// TreeVersionRules is the complete rule set authored for one tree version.
// The engine treats it as read-only during a pass.
type TreeVersionRules struct {
	ChoiceRules    []*ChoiceRules
	PointRules     []*PointRules
	OptionRules    []*OptionRule
	LotChoiceRules []*LotChoiceRule
}

// ChoiceRulesFor returns the rule group for a choice id, or nil.
func (r *TreeVersionRules) ChoiceRulesFor(choiceID int) *ChoiceRules {
	for _, cr := range r.ChoiceRules {
		if cr.ChoiceID == choiceID {
			return cr
		}
	}
	return nil
}

// PointRulesFor returns the rule group for a point id, or nil.
func (r *TreeVersionRules) PointRulesFor(pointID int) *PointRules {
	for _, pr := range r.PointRules {
		if pr.PointID == pointID {
			return pr
		}
	}
	return nil
}

// OptionRuleFor returns the rule for an option integration key, or nil.
func (r *TreeVersionRules) OptionRuleFor(optionID string) *OptionRule {
	for _, or := range r.OptionRules {
		if or.OptionID == optionID {
			return or
		}
	}
	return nil
}

// LotChoiceRuleFor returns the lot rule for a division catalog choice id, or
// nil.
func (r *TreeVersionRules) LotChoiceRuleFor(divChoiceCatalogID int) *LotChoiceRule {
	for _, lr := range r.LotChoiceRules {
		if lr.DivChoiceCatalogID == divChoiceCatalogID {
			return lr
		}
	}
	return nil
}
