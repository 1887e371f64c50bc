package pricerange

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/hearthside/configurator/pkg/application/dto"
	"github.com/hearthside/configurator/pkg/domain/entities"
)

const testTreeVersionID = 99

// newRangeTestTree builds a two-point tree:
//
//	Point 10 (Pick0or1): choices 1, 2  (catalog 101, 102)
//	Point 20 (Pick0orMore): choices 4, 5  (catalog 104, 105)
func newRangeTestTree() *entities.Tree {
	return &entities.Tree{
		ID:     1,
		PlanID: 7,
		Version: &entities.TreeVersion{
			ID: testTreeVersionID,
			Groups: []*entities.Group{
				{
					ID:        1,
					SortOrder: 1,
					SubGroups: []*entities.SubGroup{
						{
							ID:        1,
							GroupID:   1,
							SortOrder: 1,
							Points: []*entities.DecisionPoint{
								newRangeTestPoint(10, 1, entities.Pick0or1,
									newRangeTestChoice(1, 101, 1),
									newRangeTestChoice(2, 102, 2),
								),
								newRangeTestPoint(20, 2, entities.Pick0orMore,
									newRangeTestChoice(4, 104, 1),
									newRangeTestChoice(5, 105, 2),
								),
							},
						},
					},
				},
			},
		},
	}
}

func newRangeTestPoint(id, sortOrder int, pickType entities.PickType, choices ...*entities.Choice) *entities.DecisionPoint {
	for _, c := range choices {
		c.TreePointID = id
	}
	return &entities.DecisionPoint{
		ID:            id,
		SubGroupID:    1,
		TreeVersionID: testTreeVersionID,
		SortOrder:     sortOrder,
		PickType:      pickType,
		Enabled:       true,
		Choices:       choices,
	}
}

func newRangeTestChoice(id, divChoiceCatalogID, sortOrder int) *entities.Choice {
	return &entities.Choice{
		ID:                 id,
		DivChoiceCatalogID: divChoiceCatalogID,
		TreeVersionID:      testTreeVersionID,
		SortOrder:          sortOrder,
		Enabled:            true,
		IsSelectable:       true,
	}
}

func newRangeTestOption(id int, key string, price int64) *entities.PlanOption {
	return &entities.PlanOption{
		ID:                            id,
		FinancialOptionIntegrationKey: key,
		Name:                          key,
		ListPrice:                     decimal.NewFromInt(price),
		CalculatedPrice:               decimal.NewFromInt(price),
		MaxOrderQuantity:              1,
	}
}

func rangeFor(t *testing.T, ranges []dto.ChoicePriceRange, choiceID int) dto.ChoicePriceRange {
	t.Helper()
	for _, r := range ranges {
		if r.ChoiceID == choiceID {
			return r
		}
	}
	t.Fatalf("no range for choice %d", choiceID)
	return dto.ChoicePriceRange{}
}

func TestChoicePriceRanges_IndependentChoice(t *testing.T) {
	tree := newRangeTestTree()
	explorer := NewExplorer()
	treeRules := &entities.TreeVersionRules{
		OptionRules: []*entities.OptionRule{
			{
				RuleID:   10,
				OptionID: "OPT-A",
				Mappings: []entities.OptionMapping{
					{Choices: []entities.OptionRuleChoice{{ID: 104, MustHave: true}}},
				},
			},
		},
	}
	options := []*entities.PlanOption{newRangeTestOption(201, "OPT-A", 250)}

	ranges, err := explorer.ChoicePriceRanges(context.Background(), tree, treeRules, options)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ranges) != 4 {
		t.Fatalf("expected 4 ranges, got %d", len(ranges))
	}

	// Nothing influences choice 4's price, so min and max coincide.
	r := rangeFor(t, ranges, 4)
	if r.Min.String() != "250" || r.Max.String() != "250" {
		t.Errorf("expected choice 4 range [250, 250], got [%s, %s]", r.Min, r.Max)
	}

	r = rangeFor(t, ranges, 1)
	if !r.Min.IsZero() || !r.Max.IsZero() {
		t.Errorf("expected choice 1 range [0, 0], got [%s, %s]", r.Min, r.Max)
	}
}

func TestChoicePriceRanges_DependentMapping(t *testing.T) {
	tree := newRangeTestTree()
	explorer := NewExplorer()
	// The option's price attributes to choice 4 but only materializes when
	// choice 1 is also selected, so choice 4's price depends on a decision
	// the buyer has not made yet.
	treeRules := &entities.TreeVersionRules{
		OptionRules: []*entities.OptionRule{
			{
				RuleID:   10,
				OptionID: "OPT-A",
				Mappings: []entities.OptionMapping{
					{Choices: []entities.OptionRuleChoice{
						{ID: 101, MustHave: true},
						{ID: 104, MustHave: true},
					}},
				},
			},
		},
	}
	options := []*entities.PlanOption{newRangeTestOption(201, "OPT-A", 500)}

	ranges, err := explorer.ChoicePriceRanges(context.Background(), tree, treeRules, options)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r := rangeFor(t, ranges, 4)
	if !r.Min.IsZero() {
		t.Errorf("expected choice 4 min 0, got %s", r.Min)
	}
	if r.Max.String() != "500" {
		t.Errorf("expected choice 4 max 500, got %s", r.Max)
	}
}

func TestChoicePriceRanges_IllegalCombinationsExcluded(t *testing.T) {
	tree := newRangeTestTree()
	explorer := NewExplorer()
	// Choice 4 requires choice 1; assignments with choice 1 off are never
	// evaluated, so the option's price always appears.
	treeRules := &entities.TreeVersionRules{
		ChoiceRules: []*entities.ChoiceRules{
			{
				ChoiceID: 4,
				Rules: []*entities.ChoiceRule{
					{RuleID: 1, RuleType: entities.MustHave, Choices: []int{1}},
				},
			},
		},
		OptionRules: []*entities.OptionRule{
			{
				RuleID:   10,
				OptionID: "OPT-A",
				Mappings: []entities.OptionMapping{
					{Choices: []entities.OptionRuleChoice{{ID: 104, MustHave: true}}},
				},
			},
		},
	}
	options := []*entities.PlanOption{newRangeTestOption(201, "OPT-A", 250)}

	ranges, err := explorer.ChoicePriceRanges(context.Background(), tree, treeRules, options)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r := rangeFor(t, ranges, 4)
	if r.Min.String() != "250" || r.Max.String() != "250" {
		t.Errorf("expected choice 4 range [250, 250], got [%s, %s]", r.Min, r.Max)
	}
}

func TestChoicePriceRanges_PointRuleViolationsExcluded(t *testing.T) {
	tree := newRangeTestTree()
	explorer := NewExplorer()
	// Choice 4's point requires choice 1; assignments with choice 1 off are
	// rejected before evaluation, so the option's price always appears.
	treeRules := &entities.TreeVersionRules{
		PointRules: []*entities.PointRules{
			{
				PointID: 20,
				Rules: []*entities.PointRule{
					{RuleID: 1, RuleType: entities.MustHave, Choices: []int{1}},
				},
			},
		},
		OptionRules: []*entities.OptionRule{
			{
				RuleID:   10,
				OptionID: "OPT-A",
				Mappings: []entities.OptionMapping{
					{Choices: []entities.OptionRuleChoice{{ID: 104, MustHave: true}}},
				},
			},
		},
	}
	options := []*entities.PlanOption{newRangeTestOption(201, "OPT-A", 250)}

	ranges, err := explorer.ChoicePriceRanges(context.Background(), tree, treeRules, options)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r := rangeFor(t, ranges, 4)
	if r.Min.String() != "250" || r.Max.String() != "250" {
		t.Errorf("expected choice 4 range [250, 250], got [%s, %s]", r.Min, r.Max)
	}
}

func TestChoicePriceRanges_NoLegalAssignmentFallsBack(t *testing.T) {
	tree := newRangeTestTree()
	explorer := NewExplorer()
	// Choice 4's only rule demands both siblings of an exclusive point, so
	// every enumerated assignment is rejected and the baseline evaluation
	// supplies the range.
	treeRules := &entities.TreeVersionRules{
		ChoiceRules: []*entities.ChoiceRules{
			{
				ChoiceID: 4,
				Rules: []*entities.ChoiceRule{
					{RuleID: 1, RuleType: entities.MustHave, Choices: []int{1, 2}},
				},
			},
		},
	}

	ranges, err := explorer.ChoicePriceRanges(context.Background(), tree, treeRules, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r := rangeFor(t, ranges, 4)
	if !r.Min.Equal(r.Max) {
		t.Errorf("expected a degenerate fallback range, got [%s, %s]", r.Min, r.Max)
	}
}

func TestChoicePriceRanges_MinNeverExceedsMax(t *testing.T) {
	tree := newRangeTestTree()
	explorer := NewExplorer()
	treeRules := &entities.TreeVersionRules{
		ChoiceRules: []*entities.ChoiceRules{
			{
				ChoiceID: 5,
				Rules: []*entities.ChoiceRule{
					{RuleID: 1, RuleType: entities.MustNotHave, Choices: []int{2}},
				},
			},
		},
		OptionRules: []*entities.OptionRule{
			{
				RuleID:   10,
				OptionID: "OPT-A",
				Mappings: []entities.OptionMapping{
					{Choices: []entities.OptionRuleChoice{
						{ID: 101, MustHave: true},
						{ID: 105, MustHave: true},
					}},
				},
			},
		},
	}
	options := []*entities.PlanOption{newRangeTestOption(201, "OPT-A", 750)}

	ranges, err := explorer.ChoicePriceRanges(context.Background(), tree, treeRules, options)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, r := range ranges {
		if r.Min.GreaterThan(r.Max) {
			t.Errorf("choice %d: min %s exceeds max %s", r.ChoiceID, r.Min, r.Max)
		}
	}
}

func TestChoicePriceRanges_DoesNotMutateTree(t *testing.T) {
	tree := newRangeTestTree()
	explorer := NewExplorer()
	tree.FindChoice(1).Quantity = 1

	treeRules := &entities.TreeVersionRules{
		OptionRules: []*entities.OptionRule{
			{
				RuleID:   10,
				OptionID: "OPT-A",
				Mappings: []entities.OptionMapping{
					{Choices: []entities.OptionRuleChoice{
						{ID: 101, MustHave: true},
						{ID: 104, MustHave: true},
					}},
				},
			},
		},
	}
	options := []*entities.PlanOption{newRangeTestOption(201, "OPT-A", 500)}

	if _, err := explorer.ChoicePriceRanges(context.Background(), tree, treeRules, options); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tree.FindChoice(1).Quantity != 1 {
		t.Error("expected the caller's selections untouched")
	}
	if len(tree.FindChoice(4).Options) != 0 {
		t.Error("expected no options attached to the caller's tree")
	}
}

func TestChoicePriceRanges_CancelledContext(t *testing.T) {
	tree := newRangeTestTree()
	explorer := NewExplorer()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := explorer.ChoicePriceRanges(ctx, tree, &entities.TreeVersionRules{}, nil); err == nil {
		t.Fatal("expected an error for a cancelled context")
	}
}

func TestChoicePriceRanges_NilTree(t *testing.T) {
	explorer := NewExplorer()
	ranges, err := explorer.ChoicePriceRanges(context.Background(), nil, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ranges != nil {
		t.Errorf("expected nil ranges for a nil tree, got %v", ranges)
	}
}
