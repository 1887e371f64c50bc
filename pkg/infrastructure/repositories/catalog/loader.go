package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/hearthside/configurator/pkg/domain/entities"
)

// Loader reads catalog snapshot files into entities. A snapshot is one
// YAML or JSON document holding the tree, the rule set, the option catalog,
// and optionally a selected lot and historical price records.
type Loader struct{}

// NewLoader creates a new catalog snapshot loader
func NewLoader() *Loader {
	return &Loader{}
}

// Snapshot is the fully materialized content of one catalog file.
type Snapshot struct {
	Tree       *entities.Tree
	Rules      *entities.TreeVersionRules
	Options    []*entities.PlanOption
	Historical []*entities.TimeOfSaleOptionPrice
	LotID      int
}

// Load reads a snapshot file, choosing the decoder by file extension
// (.yaml/.yml or .json).
func (l *Loader) Load(filename string) (*Snapshot, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file %s: %w", filename, err)
	}

	var doc snapshotDoc
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse catalog JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported catalog format: %s", filepath.Ext(filename))
	}

	return doc.toSnapshot()
}

// Wire shapes. Prices travel as strings so both decoders share one decimal
// conversion path.

type snapshotDoc struct {
	Tree             treeDoc        `yaml:"tree" json:"tree"`
	Rules            rulesDoc       `yaml:"rules" json:"rules"`
	Options          []optionDoc    `yaml:"options" json:"options"`
	HistoricalPrices []histPriceDoc `yaml:"historicalPrices" json:"historicalPrices"`
	LotID            int            `yaml:"lotId" json:"lotId"`
}

type treeDoc struct {
	ID      int        `yaml:"id" json:"id"`
	PlanID  int        `yaml:"planId" json:"planId"`
	Version versionDoc `yaml:"version" json:"version"`
}

type versionDoc struct {
	ID     int        `yaml:"id" json:"id"`
	Name   string     `yaml:"name" json:"name"`
	Groups []groupDoc `yaml:"groups" json:"groups"`
}

type groupDoc struct {
	ID        int           `yaml:"id" json:"id"`
	Name      string        `yaml:"name" json:"name"`
	SortOrder int           `yaml:"sortOrder" json:"sortOrder"`
	SubGroups []subGroupDoc `yaml:"subGroups" json:"subGroups"`
}

type subGroupDoc struct {
	ID        int        `yaml:"id" json:"id"`
	Name      string     `yaml:"name" json:"name"`
	SortOrder int        `yaml:"sortOrder" json:"sortOrder"`
	Points    []pointDoc `yaml:"points" json:"points"`
}

type pointDoc struct {
	ID                int         `yaml:"id" json:"id"`
	DivPointCatalogID int         `yaml:"divPointCatalogId" json:"divPointCatalogId"`
	Name              string      `yaml:"name" json:"name"`
	SortOrder         int         `yaml:"sortOrder" json:"sortOrder"`
	PickType          int         `yaml:"pickType" json:"pickType"`
	IsStructuralItem  bool        `yaml:"isStructuralItem" json:"isStructuralItem"`
	IsPastCutOff      bool        `yaml:"isPastCutOff" json:"isPastCutOff"`
	Choices           []choiceDoc `yaml:"choices" json:"choices"`
}

type choiceDoc struct {
	ID                 int    `yaml:"id" json:"id"`
	DivChoiceCatalogID int    `yaml:"divChoiceCatalogId" json:"divChoiceCatalogId"`
	Name               string `yaml:"name" json:"name"`
	SortOrder          int    `yaml:"sortOrder" json:"sortOrder"`
	Quantity           int    `yaml:"quantity" json:"quantity"`
	MaxQuantity        int    `yaml:"maxQuantity" json:"maxQuantity"`
	AttributeGroups    []int  `yaml:"attributeGroups" json:"attributeGroups"`
	LocationGroups     []int  `yaml:"locationGroups" json:"locationGroups"`
}

type rulesDoc struct {
	ChoiceRules    []choiceRulesDoc   `yaml:"choiceRules" json:"choiceRules"`
	PointRules     []pointRulesDoc    `yaml:"pointRules" json:"pointRules"`
	OptionRules    []optionRuleDoc    `yaml:"optionRules" json:"optionRules"`
	LotChoiceRules []lotChoiceRuleDoc `yaml:"lotChoiceRules" json:"lotChoiceRules"`
}

type choiceRulesDoc struct {
	ChoiceID int `yaml:"choiceId" json:"choiceId"`
	Rules    []struct {
		RuleID   int   `yaml:"ruleId" json:"ruleId"`
		RuleType int   `yaml:"ruleType" json:"ruleType"`
		Choices  []int `yaml:"choices" json:"choices"`
	} `yaml:"rules" json:"rules"`
}

type pointRulesDoc struct {
	PointID int `yaml:"pointId" json:"pointId"`
	Rules   []struct {
		RuleID   int   `yaml:"ruleId" json:"ruleId"`
		RuleType int   `yaml:"ruleType" json:"ruleType"`
		Choices  []int `yaml:"choices" json:"choices"`
		Points   []int `yaml:"points" json:"points"`
	} `yaml:"rules" json:"rules"`
}

type optionRuleDoc struct {
	RuleID   int      `yaml:"ruleId" json:"ruleId"`
	OptionID string   `yaml:"optionId" json:"optionId"`
	Replaces []string `yaml:"replaces" json:"replaces"`
	Mappings []struct {
		Choices []struct {
			ID                     int  `yaml:"id" json:"id"`
			MustHave               bool `yaml:"mustHave" json:"mustHave"`
			AttributeReassignments []struct {
				ID               int `yaml:"id" json:"id"`
				ToChoiceID       int `yaml:"toChoiceId" json:"toChoiceId"`
				AttributeGroupID int `yaml:"attributeGroupId" json:"attributeGroupId"`
			} `yaml:"attributeReassignments" json:"attributeReassignments"`
		} `yaml:"choices" json:"choices"`
	} `yaml:"mappings" json:"mappings"`
}

type lotChoiceRuleDoc struct {
	DivChoiceCatalogID int `yaml:"divChoiceCatalogId" json:"divChoiceCatalogId"`
	Rules              []struct {
		LotID    int  `yaml:"lotId" json:"lotId"`
		PlanID   int  `yaml:"planId" json:"planId"`
		MustHave bool `yaml:"mustHave" json:"mustHave"`
	} `yaml:"rules" json:"rules"`
}

type optionDoc struct {
	ID               int    `yaml:"id" json:"id"`
	IntegrationKey   string `yaml:"integrationKey" json:"integrationKey"`
	Name             string `yaml:"name" json:"name"`
	ListPrice        string `yaml:"listPrice" json:"listPrice"`
	CalculatedPrice  string `yaml:"calculatedPrice" json:"calculatedPrice"`
	MaxOrderQuantity int    `yaml:"maxOrderQuantity" json:"maxOrderQuantity"`
	IsBaseHouse      bool   `yaml:"isBaseHouse" json:"isBaseHouse"`
	AttributeGroups  []int  `yaml:"attributeGroups" json:"attributeGroups"`
	LocationGroups   []int  `yaml:"locationGroups" json:"locationGroups"`
}

type histPriceDoc struct {
	JobID              int    `yaml:"jobId" json:"jobId"`
	PlanOptionID       int    `yaml:"planOptionId" json:"planOptionId"`
	DivChoiceCatalogID int    `yaml:"divChoiceCatalogId" json:"divChoiceCatalogId"`
	ListPrice          string `yaml:"listPrice" json:"listPrice"`
}

func (doc *snapshotDoc) toSnapshot() (*Snapshot, error) {
	versionID := doc.Tree.Version.ID
	tree := &entities.Tree{
		ID:     doc.Tree.ID,
		PlanID: doc.Tree.PlanID,
		Version: &entities.TreeVersion{
			ID:   versionID,
			Name: doc.Tree.Version.Name,
		},
	}

	for _, gd := range doc.Tree.Version.Groups {
		group := &entities.Group{
			ID:        gd.ID,
			Name:      gd.Name,
			SortOrder: gd.SortOrder,
		}
		for _, sgd := range gd.SubGroups {
			subGroup := &entities.SubGroup{
				ID:        sgd.ID,
				GroupID:   gd.ID,
				Name:      sgd.Name,
				SortOrder: sgd.SortOrder,
			}
			for _, pd := range sgd.Points {
				point := &entities.DecisionPoint{
					ID:                pd.ID,
					DivPointCatalogID: pd.DivPointCatalogID,
					SubGroupID:        sgd.ID,
					TreeVersionID:     versionID,
					Name:              pd.Name,
					SortOrder:         pd.SortOrder,
					PickType:          entities.PickType(pd.PickType),
					IsStructuralItem:  pd.IsStructuralItem,
					IsPastCutOff:      pd.IsPastCutOff,
					Enabled:           true,
				}
				for _, cd := range pd.Choices {
					point.Choices = append(point.Choices, &entities.Choice{
						ID:                 cd.ID,
						DivChoiceCatalogID: cd.DivChoiceCatalogID,
						TreePointID:        pd.ID,
						TreeVersionID:      versionID,
						Name:               cd.Name,
						SortOrder:          cd.SortOrder,
						Quantity:           cd.Quantity,
						ChoiceMaxQuantity:  cd.MaxQuantity,
						Enabled:            true,
						IsSelectable:       true,
						AttributeGroups:    cd.AttributeGroups,
						LocationGroups:     cd.LocationGroups,
					})
				}
				subGroup.Points = append(subGroup.Points, point)
			}
			group.SubGroups = append(group.SubGroups, subGroup)
		}
		tree.Version.Groups = append(tree.Version.Groups, group)
	}

	rules, err := doc.Rules.toEntities()
	if err != nil {
		return nil, err
	}

	var options []*entities.PlanOption
	for _, od := range doc.Options {
		listPrice, err := parsePrice(od.ListPrice)
		if err != nil {
			return nil, fmt.Errorf("option %s list price: %w", od.IntegrationKey, err)
		}
		calculated, err := parsePrice(od.CalculatedPrice)
		if err != nil {
			return nil, fmt.Errorf("option %s calculated price: %w", od.IntegrationKey, err)
		}
		if calculated.IsZero() {
			calculated = listPrice
		}
		options = append(options, &entities.PlanOption{
			ID:                            od.ID,
			FinancialOptionIntegrationKey: od.IntegrationKey,
			Name:                          od.Name,
			ListPrice:                     listPrice,
			CalculatedPrice:               calculated,
			MaxOrderQuantity:              od.MaxOrderQuantity,
			IsBaseHouse:                   od.IsBaseHouse,
			AttributeGroups:               od.AttributeGroups,
			LocationGroups:                od.LocationGroups,
		})
	}

	var historical []*entities.TimeOfSaleOptionPrice
	for _, hd := range doc.HistoricalPrices {
		price, err := parsePrice(hd.ListPrice)
		if err != nil {
			return nil, fmt.Errorf("historical price for option %d: %w", hd.PlanOptionID, err)
		}
		historical = append(historical, &entities.TimeOfSaleOptionPrice{
			EdhJobID:           hd.JobID,
			EdhPlanOptionID:    hd.PlanOptionID,
			DivChoiceCatalogID: hd.DivChoiceCatalogID,
			ListPrice:          price,
		})
	}

	return &Snapshot{
		Tree:       tree,
		Rules:      rules,
		Options:    options,
		Historical: historical,
		LotID:      doc.LotID,
	}, nil
}

func (doc *rulesDoc) toEntities() (*entities.TreeVersionRules, error) {
	rules := &entities.TreeVersionRules{}

	for _, crd := range doc.ChoiceRules {
		cr := &entities.ChoiceRules{ChoiceID: crd.ChoiceID}
		for _, rd := range crd.Rules {
			cr.Rules = append(cr.Rules, &entities.ChoiceRule{
				RuleID:   rd.RuleID,
				RuleType: entities.RuleType(rd.RuleType),
				Choices:  rd.Choices,
			})
		}
		rules.ChoiceRules = append(rules.ChoiceRules, cr)
	}

	for _, prd := range doc.PointRules {
		pr := &entities.PointRules{PointID: prd.PointID}
		for _, rd := range prd.Rules {
			pr.Rules = append(pr.Rules, &entities.PointRule{
				RuleID:   rd.RuleID,
				RuleType: entities.RuleType(rd.RuleType),
				Choices:  rd.Choices,
				Points:   rd.Points,
			})
		}
		rules.PointRules = append(rules.PointRules, pr)
	}

	for _, ord := range doc.OptionRules {
		or := &entities.OptionRule{
			RuleID:   ord.RuleID,
			OptionID: ord.OptionID,
			Replaces: ord.Replaces,
		}
		for _, md := range ord.Mappings {
			mapping := entities.OptionMapping{}
			for _, mcd := range md.Choices {
				mc := entities.OptionRuleChoice{
					ID:       mcd.ID,
					MustHave: mcd.MustHave,
				}
				for _, ard := range mcd.AttributeReassignments {
					mc.AttributeReassignments = append(mc.AttributeReassignments, entities.AttributeReassignment{
						ID:               ard.ID,
						ToChoiceID:       ard.ToChoiceID,
						AttributeGroupID: ard.AttributeGroupID,
					})
				}
				mapping.Choices = append(mapping.Choices, mc)
			}
			or.Mappings = append(or.Mappings, mapping)
		}
		rules.OptionRules = append(rules.OptionRules, or)
	}

	for _, lrd := range doc.LotChoiceRules {
		lr := &entities.LotChoiceRule{DivChoiceCatalogID: lrd.DivChoiceCatalogID}
		for _, rd := range lrd.Rules {
			lr.Rules = append(lr.Rules, entities.LotChoiceRuleAssoc{
				LotID:    rd.LotID,
				PlanID:   rd.PlanID,
				MustHave: rd.MustHave,
			})
		}
		rules.LotChoiceRules = append(rules.LotChoiceRules, lr)
	}

	return rules, nil
}

func parsePrice(value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(value)
}
