package memory

import (
	"fmt"

	"github.com/hearthside/configurator/pkg/domain/entities"
	"github.com/hearthside/configurator/pkg/domain/repositories"
)

// OptionRepository provides in-memory option catalog storage
type OptionRepository struct {
	options    map[int][]*entities.PlanOption
	historical map[int][]*entities.TimeOfSaleOptionPrice
}

// NewOptionRepository creates a new in-memory option repository
func NewOptionRepository() *OptionRepository {
	return &OptionRepository{
		options:    make(map[int][]*entities.PlanOption),
		historical: make(map[int][]*entities.TimeOfSaleOptionPrice),
	}
}

// Verify interface compliance
var _ repositories.OptionRepository = (*OptionRepository)(nil)

// LoadOptions stores the option catalog for a plan
func (r *OptionRepository) LoadOptions(planID int, options []*entities.PlanOption) error {
	r.options[planID] = options
	return nil
}

// GetOptions returns the option catalog for a plan
func (r *OptionRepository) GetOptions(planID int) ([]*entities.PlanOption, error) {
	options, exists := r.options[planID]
	if !exists {
		return nil, fmt.Errorf("options not found for plan: %d", planID)
	}
	return options, nil
}

// LoadHistoricalPrices stores time-of-sale price records for a job
func (r *OptionRepository) LoadHistoricalPrices(jobID int, prices []*entities.TimeOfSaleOptionPrice) error {
	r.historical[jobID] = prices
	return nil
}

// GetHistoricalPrices returns time-of-sale price records for a job
func (r *OptionRepository) GetHistoricalPrices(jobID int) ([]*entities.TimeOfSaleOptionPrice, error) {
	prices, exists := r.historical[jobID]
	if !exists {
		return nil, fmt.Errorf("historical prices not found for job: %d", jobID)
	}
	return prices, nil
}
