package memory

import (
	"fmt"

	"github.com/hearthside/configurator/pkg/domain/entities"
	"github.com/hearthside/configurator/pkg/domain/repositories"
)

// TreeRepository provides in-memory catalog tree storage
type TreeRepository struct {
	trees map[int]*entities.Tree
}

// NewTreeRepository creates a new in-memory tree repository
func NewTreeRepository() *TreeRepository {
	return &TreeRepository{
		trees: make(map[int]*entities.Tree),
	}
}

// Verify interface compliance
var _ repositories.TreeRepository = (*TreeRepository)(nil)

// LoadTree stores a tree snapshot keyed by its version id
func (r *TreeRepository) LoadTree(tree *entities.Tree) error {
	if tree == nil || tree.Version == nil {
		return fmt.Errorf("tree has no active version")
	}
	r.trees[tree.Version.ID] = tree
	return nil
}

// GetTree returns the tree for a version id
func (r *TreeRepository) GetTree(treeVersionID int) (*entities.Tree, error) {
	tree, exists := r.trees[treeVersionID]
	if !exists {
		return nil, fmt.Errorf("tree version not found: %d", treeVersionID)
	}
	return tree, nil
}
