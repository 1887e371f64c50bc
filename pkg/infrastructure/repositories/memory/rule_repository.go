package memory

import (
	"fmt"

	"github.com/hearthside/configurator/pkg/domain/entities"
	"github.com/hearthside/configurator/pkg/domain/repositories"
)

// RuleRepository provides in-memory rule set storage keyed by tree version
type RuleRepository struct {
	rules map[int]*entities.TreeVersionRules
}

// NewRuleRepository creates a new in-memory rule repository
func NewRuleRepository() *RuleRepository {
	return &RuleRepository{
		rules: make(map[int]*entities.TreeVersionRules),
	}
}

// Verify interface compliance
var _ repositories.RuleRepository = (*RuleRepository)(nil)

// LoadRules stores the rule set for a tree version
func (r *RuleRepository) LoadRules(treeVersionID int, rules *entities.TreeVersionRules) error {
	if rules == nil {
		return fmt.Errorf("rules must not be nil")
	}
	r.rules[treeVersionID] = rules
	return nil
}

// GetRules returns the rule set for a tree version
func (r *RuleRepository) GetRules(treeVersionID int) (*entities.TreeVersionRules, error) {
	rules, exists := r.rules[treeVersionID]
	if !exists {
		return nil, fmt.Errorf("rules not found for tree version: %d", treeVersionID)
	}
	return rules, nil
}
