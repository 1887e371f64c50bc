package repositories

import "github.com/hearthside/configurator/pkg/domain/entities"

// RuleRepository provides access to the rule set authored for a tree version
type RuleRepository interface {
	GetRules(treeVersionID int) (*entities.TreeVersionRules, error)
	LoadRules(treeVersionID int, rules *entities.TreeVersionRules) error
}
