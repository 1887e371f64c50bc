package rules

import (
	"github.com/shopspring/decimal"

	"github.com/hearthside/configurator/pkg/domain/entities"
)

const testTreeVersionID = 99

// buildTestTree returns a small three-point tree used across the rule
// engine tests:
//
//	Group 1 / SubGroup 1
//	  Point 10 (Pick0or1): choices 1, 2, 3   (catalog 101, 102, 103)
//	  Point 20 (Pick1):    choices 4, 5      (catalog 104, 105)
//	  Point 30 (Pick0orMore): choices 6, 7   (catalog 106, 107)
func buildTestTree() *entities.Tree {
	return &entities.Tree{
		ID:     1,
		PlanID: 7,
		Version: &entities.TreeVersion{
			ID:   testTreeVersionID,
			Name: "v1",
			Groups: []*entities.Group{
				{
					ID:        1,
					Name:      "Exterior",
					SortOrder: 1,
					SubGroups: []*entities.SubGroup{
						{
							ID:        1,
							GroupID:   1,
							Name:      "Elevation",
							SortOrder: 1,
							Points: []*entities.DecisionPoint{
								newTestPoint(10, 1, entities.Pick0or1,
									newTestChoice(1, 101, 1),
									newTestChoice(2, 102, 2),
									newTestChoice(3, 103, 3),
								),
								newTestPoint(20, 2, entities.Pick1,
									newTestChoice(4, 104, 1),
									newTestChoice(5, 105, 2),
								),
								newTestPoint(30, 3, entities.Pick0orMore,
									newTestChoice(6, 106, 1),
									newTestChoice(7, 107, 2),
								),
							},
						},
					},
				},
			},
		},
	}
}

func newTestPoint(id, sortOrder int, pickType entities.PickType, choices ...*entities.Choice) *entities.DecisionPoint {
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

func newTestChoice(id, divChoiceCatalogID, sortOrder int) *entities.Choice {
	return &entities.Choice{
		ID:                 id,
		DivChoiceCatalogID: divChoiceCatalogID,
		TreeVersionID:      testTreeVersionID,
		SortOrder:          sortOrder,
		Enabled:            true,
		IsSelectable:       true,
	}
}

func mustHaveChoiceRule(choiceID int, ruleID int, requires ...int) *entities.ChoiceRules {
	return &entities.ChoiceRules{
		ChoiceID: choiceID,
		Rules: []*entities.ChoiceRule{
			{RuleID: ruleID, RuleType: entities.MustHave, Choices: requires},
		},
	}
}

func mustNotHaveChoiceRule(choiceID int, ruleID int, excludes ...int) *entities.ChoiceRules {
	return &entities.ChoiceRules{
		ChoiceID: choiceID,
		Rules: []*entities.ChoiceRule{
			{RuleID: ruleID, RuleType: entities.MustNotHave, Choices: excludes},
		},
	}
}

func newTestOption(id int, key string, price int64) *entities.PlanOption {
	return &entities.PlanOption{
		ID:                            id,
		FinancialOptionIntegrationKey: key,
		Name:                          key,
		ListPrice:                     decimal.NewFromInt(price),
		CalculatedPrice:               decimal.NewFromInt(price),
		MaxOrderQuantity:              1,
	}
}

// singleMapping builds an option rule with one mapping whose choices are all
// must-have, referenced by division catalog id.
func singleMapping(ruleID int, optionKey string, mustHaveCatalogIDs ...int) *entities.OptionRule {
	mapping := entities.OptionMapping{}
	for _, id := range mustHaveCatalogIDs {
		mapping.Choices = append(mapping.Choices, entities.OptionRuleChoice{ID: id, MustHave: true})
	}
	return &entities.OptionRule{
		RuleID:   ruleID,
		OptionID: optionKey,
		Mappings: []entities.OptionMapping{mapping},
	}
}
