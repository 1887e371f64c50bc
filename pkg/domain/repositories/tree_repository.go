package repositories

import "github.com/hearthside/configurator/pkg/domain/entities"

// TreeRepository provides access to catalog tree snapshots
type TreeRepository interface {
	GetTree(treeVersionID int) (*entities.Tree, error)
	LoadTree(tree *entities.Tree) error
}
