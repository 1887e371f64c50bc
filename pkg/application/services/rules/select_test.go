package rules

import (
	"testing"

	"github.com/hearthside/configurator/pkg/domain/entities"
)

func TestSelect(t *testing.T) {
	t.Run("exclusive point clears siblings", func(t *testing.T) {
		tree := buildTestTree()
		Select(tree, 1, 1)
		Select(tree, 2, 1)

		if tree.FindChoice(1).Quantity != 0 {
			t.Error("expected choice 1 cleared by its sibling")
		}
		if tree.FindChoice(2).Quantity != 1 {
			t.Error("expected choice 2 selected")
		}
	})

	t.Run("locked siblings survive", func(t *testing.T) {
		tree := buildTestTree()
		c1 := tree.FindChoice(1)
		c1.LockedIn = &entities.LockedInChoice{Source: entities.LockedInJob, ChoiceID: 1}
		c1.Quantity = 1

		Select(tree, 2, 1)

		if c1.Quantity != 1 {
			t.Error("expected the locked sibling's quantity kept")
		}
	})

	t.Run("pick-many siblings untouched", func(t *testing.T) {
		tree := buildTestTree()
		Select(tree, 6, 1)
		Select(tree, 7, 1)

		if tree.FindChoice(6).Quantity != 1 || tree.FindChoice(7).Quantity != 1 {
			t.Error("expected both selections kept in a pick-many point")
		}
	})

	t.Run("quantity clamped to max", func(t *testing.T) {
		tree := buildTestTree()
		tree.FindChoice(6).MaxQuantity = 3

		Select(tree, 6, 10)

		if got := tree.FindChoice(6).Quantity; got != 3 {
			t.Errorf("expected quantity clamped to 3, got %d", got)
		}
	})

	t.Run("negative quantity clamped to zero", func(t *testing.T) {
		tree := buildTestTree()
		Select(tree, 6, -1)

		if got := tree.FindChoice(6).Quantity; got != 0 {
			t.Errorf("expected quantity 0, got %d", got)
		}
	})

	t.Run("catalog id resolves", func(t *testing.T) {
		tree := buildTestTree()
		Select(tree, 106, 1)

		if tree.FindChoice(6).Quantity != 1 {
			t.Error("expected catalog id 106 to select choice 6")
		}
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		tree := buildTestTree()
		if c := Select(tree, 9999, 1); c != nil {
			t.Error("expected nil for an unknown id")
		}
	})
}
