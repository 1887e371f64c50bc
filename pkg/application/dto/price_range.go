package dto

import (
	"github.com/shopspring/decimal"
)

// ChoicePriceRange reports the minimum and maximum price a choice can reach
// across every legal combination of the choices it depends on.
type ChoicePriceRange struct {
	ChoiceID int
	Min      decimal.Decimal
	Max      decimal.Decimal
}
