package scenario

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hearthside/configurator/pkg/domain/entities"
)

const testTreeVersionID = 99

func newScenarioTestTree() *entities.Tree {
	point := func(id, sortOrder int, pickType entities.PickType, choices ...*entities.Choice) *entities.DecisionPoint {
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
	choice := func(id, catalogID, sortOrder int) *entities.Choice {
		return &entities.Choice{
			ID:                 id,
			DivChoiceCatalogID: catalogID,
			TreeVersionID:      testTreeVersionID,
			SortOrder:          sortOrder,
			Enabled:            true,
			IsSelectable:       true,
		}
	}
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
								point(10, 1, entities.Pick0or1,
									choice(1, 101, 1),
									choice(2, 102, 2),
								),
								point(20, 2, entities.Pick0orMore,
									choice(4, 104, 1),
								),
							},
						},
					},
				},
			},
		},
	}
}

func scenarioTestRules() *entities.TreeVersionRules {
	return &entities.TreeVersionRules{
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
}

func scenarioTestOptions() []*entities.PlanOption {
	return []*entities.PlanOption{
		{
			ID:                            201,
			FinancialOptionIntegrationKey: "OPT-A",
			Name:                          "OPT-A",
			ListPrice:                     decimal.NewFromInt(300),
			CalculatedPrice:               decimal.NewFromInt(300),
			MaxOrderQuantity:              1,
		},
	}
}

func TestNewService_RequiresTree(t *testing.T) {
	if _, err := NewService(nil, nil, nil); err == nil {
		t.Error("expected an error for a nil tree")
	}
	if _, err := NewService(&entities.Tree{}, nil, nil); err == nil {
		t.Error("expected an error for a tree without a version")
	}
}

func TestNewService_RunsInitialPass(t *testing.T) {
	tree := newScenarioTestTree()
	svc, err := NewService(tree, scenarioTestRules(), scenarioTestOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer svc.Close()

	if svc.ID() == uuid.Nil {
		t.Error("expected a session id")
	}
	// Statuses are derived immediately so the first render has them.
	if got := tree.FindPoint(10).Status; got != entities.StatusUnviewed {
		t.Errorf("expected point 10 unviewed after the initial pass, got %s", got)
	}
}

func TestSelectChoice(t *testing.T) {
	tree := newScenarioTestTree()
	svc, err := NewService(tree, scenarioTestRules(), scenarioTestOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer svc.Close()

	if err := svc.SelectChoice(4, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c4 := tree.FindChoice(4)
	if !c4.Selected() {
		t.Error("expected choice 4 selected")
	}
	if c4.Price.String() != "300" {
		t.Errorf("expected the option price attached, got %s", c4.Price)
	}
	if got := svc.TotalPrice(); got.String() != "300" {
		t.Errorf("expected total price 300, got %s", got)
	}
	if got := tree.FindPoint(20).Status; got != entities.StatusCompleted {
		t.Errorf("expected point 20 completed, got %s", got)
	}
}

func TestSelectChoice_ExclusiveSiblingDeselected(t *testing.T) {
	tree := newScenarioTestTree()
	svc, err := NewService(tree, scenarioTestRules(), scenarioTestOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer svc.Close()

	if err := svc.SelectChoice(1, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.SelectChoice(2, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tree.FindChoice(1).Selected() {
		t.Error("expected choice 1 deselected by its sibling")
	}
	if !tree.FindChoice(2).Selected() {
		t.Error("expected choice 2 selected")
	}
}

func TestSelectChoice_Errors(t *testing.T) {
	tree := newScenarioTestTree()
	svc, err := NewService(tree, scenarioTestRules(), scenarioTestOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer svc.Close()

	if err := svc.SelectChoice(9999, 1); err == nil {
		t.Error("expected an error for an unknown choice")
	}

	tree.FindChoice(1).IsSelectable = false
	if err := svc.SelectChoice(1, 1); err == nil {
		t.Error("expected an error for a non-selectable choice")
	}
}

func TestDeselectChoice(t *testing.T) {
	tree := newScenarioTestTree()
	svc, err := NewService(tree, scenarioTestRules(), scenarioTestOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer svc.Close()

	if err := svc.SelectChoice(4, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.DeselectChoice(4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tree.FindChoice(4).Selected() {
		t.Error("expected choice 4 deselected")
	}
	if got := svc.TotalPrice(); !got.IsZero() {
		t.Errorf("expected total price 0, got %s", got)
	}
}

func TestSetLot(t *testing.T) {
	tree := newScenarioTestTree()
	treeRules := scenarioTestRules()
	treeRules.LotChoiceRules = []*entities.LotChoiceRule{
		{
			DivChoiceCatalogID: 101,
			Rules: []entities.LotChoiceRuleAssoc{
				{LotID: 55, MustHave: true},
			},
		},
	}
	svc, err := NewService(tree, treeRules, scenarioTestOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer svc.Close()

	svc.SetLot(55)

	c1 := tree.FindChoice(1)
	if !c1.Selected() || !c1.IsRequired {
		t.Error("expected the lot rule to force choice 1")
	}
}

func TestPriceRanges(t *testing.T) {
	tree := newScenarioTestTree()
	svc, err := NewService(tree, scenarioTestRules(), scenarioTestOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer svc.Close()

	ranges, err := svc.PriceRanges(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ranges) != 3 {
		t.Fatalf("expected 3 ranges, got %d", len(ranges))
	}
	for _, r := range ranges {
		if r.ChoiceID == 4 {
			if r.Min.String() != "300" || r.Max.String() != "300" {
				t.Errorf("expected choice 4 range [300, 300], got [%s, %s]", r.Min, r.Max)
			}
		}
	}
}

func TestDependentChoices(t *testing.T) {
	tree := newScenarioTestTree()
	treeRules := scenarioTestRules()
	treeRules.ChoiceRules = []*entities.ChoiceRules{
		{
			ChoiceID: 4,
			Rules: []*entities.ChoiceRule{
				{RuleID: 1, RuleType: entities.MustHave, Choices: []int{1}},
			},
		},
	}

	c4 := tree.FindChoice(4)
	c4.LockedIn = &entities.LockedInChoice{
		Source:             entities.LockedInJob,
		ChoiceID:           4,
		DivChoiceCatalogID: 104,
		Quantity:           1,
	}
	c4.Quantity = 1
	tree.FindChoice(1).Quantity = 1

	svc, err := NewService(tree, treeRules, scenarioTestOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer svc.Close()

	affected := svc.DependentChoices(1)
	if len(affected) != 1 || affected[0].ID != 4 {
		t.Fatalf("expected choice 4 affected, got %d entries", len(affected))
	}
	if !tree.FindChoice(1).Selected() {
		t.Error("expected the live tree untouched by the simulation")
	}
}
