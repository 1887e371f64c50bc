package scenario

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hearthside/configurator/pkg/application/dto"
	"github.com/hearthside/configurator/pkg/application/services/pricerange"
	"github.com/hearthside/configurator/pkg/application/services/rules"
	"github.com/hearthside/configurator/pkg/domain/entities"
	"github.com/hearthside/configurator/pkg/domain/services"
)

// Service owns one configuration session: a single tree instance, the rule
// set and option catalog it was published with, and the selected homesite.
// All mutation funnels through the service so only one engine pass ever runs
// against the tree (single-writer discipline).
type Service struct {
	id         uuid.UUID
	tree       *entities.Tree
	rules      *entities.TreeVersionRules
	options    []*entities.PlanOption
	historical []*entities.TimeOfSaleOptionPrice
	lotID      int

	engine *rules.Engine
	worker *pricerange.Worker
}

// NewService creates a session around a catalog snapshot and runs the
// initial engine pass.
func NewService(
	tree *entities.Tree,
	treeRules *entities.TreeVersionRules,
	options []*entities.PlanOption,
) (*Service, error) {
	if tree == nil || tree.Version == nil {
		return nil, fmt.Errorf("scenario requires a tree with an active version")
	}
	s := &Service{
		id:      uuid.New(),
		tree:    tree,
		rules:   treeRules,
		options: options,
		engine:  rules.NewEngine(),
		worker:  pricerange.NewWorker(),
	}
	s.refresh()
	return s, nil
}

// ID returns the session identifier.
func (s *Service) ID() uuid.UUID {
	return s.id
}

// Tree returns the live tree. Callers must treat it as read-only; mutation
// goes through the service.
func (s *Service) Tree() *entities.Tree {
	return s.tree
}

// SetHistoricalPrices installs time-of-sale price records from contract
// data and recomputes the tree.
func (s *Service) SetHistoricalPrices(prices []*entities.TimeOfSaleOptionPrice) {
	s.historical = prices
	s.refresh()
}

// SetLot selects a homesite and recomputes the tree under its lot rules.
func (s *Service) SetLot(lotID int) {
	s.lotID = lotID
	s.refresh()
}

// SelectChoice sets a choice's quantity and recomputes the tree. Selecting
// inside a Pick1/Pick0or1 point deselects the other choices of that point.
func (s *Service) SelectChoice(choiceID int, quantity int) error {
	c := s.tree.ResolveChoice(choiceID)
	if c == nil {
		return fmt.Errorf("choice %d not found in tree version %d", choiceID, s.tree.Version.ID)
	}
	if quantity > 0 && (!c.Enabled || !c.IsSelectable) {
		return fmt.Errorf("choice %d is not selectable", choiceID)
	}
	rules.Select(s.tree, choiceID, quantity)
	s.refresh()
	return nil
}

// DeselectChoice clears a choice's quantity and recomputes the tree.
func (s *Service) DeselectChoice(choiceID int) error {
	c := s.tree.ResolveChoice(choiceID)
	if c == nil {
		return fmt.Errorf("choice %d not found in tree version %d", choiceID, s.tree.Version.ID)
	}
	rules.Select(s.tree, choiceID, 0)
	s.refresh()
	return nil
}

// DependentChoices reports which contracted choices would be disabled by
// toggling the given choice, without touching the live tree.
func (s *Service) DependentChoices(choiceID int) []*entities.Choice {
	return s.engine.DependentChoices(s.tree, s.rules, s.options, choiceID)
}

// PriceRanges computes min/max achievable prices for every choice on the
// background worker.
func (s *Service) PriceRanges(ctx context.Context) ([]dto.ChoicePriceRange, error) {
	return s.worker.PriceRanges(ctx, s.tree, s.rules, s.options)
}

// TotalPrice sums the price of every decision point.
func (s *Service) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, pt := range s.tree.Points() {
		total = total.Add(pt.Price)
	}
	return total
}

// Close releases the background worker.
func (s *Service) Close() {
	s.worker.Close()
}

func (s *Service) refresh() {
	s.engine.ApplyRules(s.tree, s.rules, s.options, s.lotID, s.historical)
	services.RollupStatuses(s.tree)
}
