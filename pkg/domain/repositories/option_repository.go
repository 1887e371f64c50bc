package repositories

import "github.com/hearthside/configurator/pkg/domain/entities"

// OptionRepository provides access to the plan's priced option catalog and
// historical time-of-sale prices
type OptionRepository interface {
	GetOptions(planID int) ([]*entities.PlanOption, error)
	GetHistoricalPrices(jobID int) ([]*entities.TimeOfSaleOptionPrice, error)
	LoadOptions(planID int, options []*entities.PlanOption) error
	LoadHistoricalPrices(jobID int, prices []*entities.TimeOfSaleOptionPrice) error
}
