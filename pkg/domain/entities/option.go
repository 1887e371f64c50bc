package entities

import (
	"github.com/shopspring/decimal"
)

// PlanOption is a priced option from the plan's option catalog.
type PlanOption struct {
	ID                            int
	FinancialOptionIntegrationKey string
	Name                          string
	ListPrice                     decimal.Decimal
	CalculatedPrice               decimal.Decimal
	MaxOrderQuantity              int
	IsBaseHouse                   bool
	AttributeGroups               []int
	LocationGroups                []int
}

// AttachedOption records an option attached to a choice by rule evaluation,
// with the price contribution computed for it (net of any replace chain).
type AttachedOption struct {
	Option *PlanOption
	Price  decimal.Decimal
}

// TimeOfSaleOptionPrice is a historical price record from a signed job, used
// to preserve original pricing through a replace chain.
type TimeOfSaleOptionPrice struct {
	EdhJobID           int
	EdhPlanOptionID    int
	DivChoiceCatalogID int
	ListPrice          decimal.Decimal
}

// FindOption returns the option with the given integration key, or nil.
func FindOption(options []*PlanOption, integrationKey string) *PlanOption {
	for _, o := range options {
		if o.FinancialOptionIntegrationKey == integrationKey {
			return o
		}
	}
	return nil
}
