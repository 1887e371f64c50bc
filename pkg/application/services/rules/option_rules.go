package rules

import (
	"github.com/shopspring/decimal"

	"github.com/hearthside/configurator/pkg/domain/entities"
)

// executeAllOptionRules attaches priced options to choices. Rules are
// memoized by rule id; a rule that replaces other options forces those rules
// to evaluate first so the replacement delta can be computed against a known
// price.
func (p *pass) executeAllOptionRules() {
	for _, or := range p.rules.OptionRules {
		p.executeOptionRule(or)
	}
}

func (p *pass) executeOptionRule(or *entities.OptionRule) {
	if p.executedOptionRules[or.RuleID] {
		return
	}
	p.executedOptionRules[or.RuleID] = true

	option := entities.FindOption(p.options, or.OptionID)
	if option == nil {
		return
	}

	for _, key := range or.Replaces {
		if dep := p.rules.OptionRuleFor(key); dep != nil {
			p.executeOptionRule(dep)
		}
	}

	// First satisfied mapping in declaration order wins.
	for i := range or.Mappings {
		if p.applyOptionMapping(or, option, &or.Mappings[i]) {
			return
		}
	}
}

// applyOptionMapping attaches the option to the mapping's max-sort-order
// choice when the mapping is satisfied. The pivot choice itself is exempt
// from the must-have check: the option's price appears at the point of
// commitment, before the buyer has committed.
func (p *pass) applyOptionMapping(
	or *entities.OptionRule,
	option *entities.PlanOption,
	mapping *entities.OptionMapping,
) bool {
	var mustHaveIDs []int
	for _, mc := range mapping.Choices {
		if mc.MustHave {
			mustHaveIDs = append(mustHaveIDs, mc.ID)
		}
	}
	pivot := MaxSortOrderChoice(p.tree, mustHaveIDs)
	if pivot == nil {
		return false
	}

	for _, mc := range mapping.Choices {
		c := p.tree.ResolveChoice(mc.ID)
		if c == nil {
			return false
		}
		if c == pivot {
			continue
		}
		if mc.MustHave != c.Selected() {
			return false
		}
	}

	price := p.optionPrice(or, option)

	pivot.Options = append(pivot.Options, &entities.AttachedOption{
		Option: option,
		Price:  price,
	})
	pivot.Price = pivot.Price.Add(price)
	if option.MaxOrderQuantity > 1 {
		pivot.MaxQuantity = option.MaxOrderQuantity
	}

	for _, mc := range mapping.Choices {
		for _, ar := range mc.AttributeReassignments {
			p.activeReassignments = append(p.activeReassignments, activeReassignment{
				from:         pivot,
				reassignment: ar,
			})
		}
	}

	return true
}

// optionPrice computes the price contribution of an attached option. For
// quantity-capable options the flat list price applies per unit. For
// single-quantity options the calculated price is reduced by the price of
// every option this one replaces, so a replacement always displays the
// delta and a replaced option's price is never counted twice.
func (p *pass) optionPrice(or *entities.OptionRule, option *entities.PlanOption) decimal.Decimal {
	if option.MaxOrderQuantity > 1 {
		return option.ListPrice
	}

	price := option.CalculatedPrice
	for _, key := range or.Replaces {
		replaced := entities.FindOption(p.options, key)
		if replaced == nil {
			continue
		}
		if carrier, attached := p.findCarrier(key); attached != nil {
			p.detach(carrier, key)
			price = price.Sub(p.replacedPrice(replaced, carrier))
		} else if lockCarrier := p.findLockedCarrier(key); lockCarrier != nil {
			// Replace chain through a contracted choice: original pricing
			// applies when a time-of-sale record matches.
			price = price.Sub(p.replacedPrice(replaced, lockCarrier))
		}
	}
	return price
}

// replacedPrice returns the price of a replaced option, preferring the
// historical time-of-sale record over the current catalog price.
func (p *pass) replacedPrice(replaced *entities.PlanOption, carrier *entities.Choice) decimal.Decimal {
	if carrier != nil {
		for _, h := range p.historical {
			if h.EdhPlanOptionID == replaced.ID && h.DivChoiceCatalogID == carrier.DivChoiceCatalogID {
				return h.ListPrice
			}
		}
	}
	return replaced.CalculatedPrice
}

// findCarrier returns the choice currently carrying the given option, if any.
func (p *pass) findCarrier(integrationKey string) (*entities.Choice, *entities.AttachedOption) {
	for _, c := range p.tree.Choices() {
		for _, ao := range c.Options {
			if ao.Option.FinancialOptionIntegrationKey == integrationKey {
				return c, ao
			}
		}
	}
	return nil, nil
}

// findLockedCarrier returns the choice whose frozen contract mapping carries
// the given option, if any.
func (p *pass) findLockedCarrier(integrationKey string) *entities.Choice {
	for _, c := range p.tree.Choices() {
		for _, lo := range c.LockedInOptions {
			if lo.OptionID == integrationKey {
				return c
			}
		}
	}
	return nil
}

// detach strips an option from the choice carrying it and removes its price
// contribution.
func (p *pass) detach(carrier *entities.Choice, integrationKey string) {
	kept := carrier.Options[:0]
	for _, ao := range carrier.Options {
		if ao.Option.FinancialOptionIntegrationKey == integrationKey {
			carrier.Price = carrier.Price.Sub(ao.Price)
			continue
		}
		kept = append(kept, ao)
	}
	carrier.Options = kept
}
