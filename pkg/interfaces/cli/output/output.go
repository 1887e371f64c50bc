package output

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/hearthside/configurator/pkg/application/dto"
	"github.com/hearthside/configurator/pkg/domain/entities"
)

// Config holds configuration for output generation
type Config struct {
	Format  string
	Verbose bool
}

// Result bundles everything one configuration run produced.
type Result struct {
	Tree        *entities.Tree
	TotalPrice  decimal.Decimal
	PriceRanges []dto.ChoicePriceRange
}

// Generate renders a configuration result in the specified format
func Generate(result *Result, config Config) error {
	switch config.Format {
	case "text":
		return generateTextOutput(result, config)
	case "json":
		return generateJSONOutput(result)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

func generateTextOutput(result *Result, config Config) error {
	fmt.Printf("House Configuration Summary\n")
	fmt.Printf("===========================\n\n")
	fmt.Printf("Total Price: %s\n\n", result.TotalPrice.StringFixed(2))

	for _, g := range result.Tree.Version.Groups {
		fmt.Printf("%s [%s]\n", g.Name, g.Status)
		for _, sg := range g.SubGroups {
			fmt.Printf("  %s [%s]\n", sg.Name, sg.Status)
			for _, p := range sg.Points {
				fmt.Printf("    %-30s %-10s %-20s %10s\n",
					p.Name, p.PickType, p.Status, p.Price.StringFixed(2))
				for _, c := range p.Choices {
					if !config.Verbose && c.Quantity == 0 {
						continue
					}
					marker := " "
					if c.Quantity > 0 {
						marker = "*"
					}
					state := ""
					if !c.Enabled {
						state = " (disabled)"
					}
					fmt.Printf("      %s %-28s qty=%d %12s%s\n",
						marker, c.Name, c.Quantity, c.Price.StringFixed(2), state)
				}
			}
		}
	}

	if len(result.PriceRanges) > 0 {
		fmt.Printf("\nChoice Price Ranges:\n")
		fmt.Printf("%-10s %12s %12s\n", "Choice", "Min", "Max")
		for _, r := range result.PriceRanges {
			fmt.Printf("%-10d %12s %12s\n", r.ChoiceID, r.Min.StringFixed(2), r.Max.StringFixed(2))
		}
	}

	return nil
}

func generateJSONOutput(result *Result) error {
	type choiceOut struct {
		ID       int      `json:"id"`
		Name     string   `json:"name"`
		Quantity int      `json:"quantity"`
		Price    string   `json:"price"`
		Enabled  bool     `json:"enabled"`
		Options  []string `json:"options,omitempty"`
	}
	type pointOut struct {
		ID      int         `json:"id"`
		Name    string      `json:"name"`
		Status  string      `json:"status"`
		Price   string      `json:"price"`
		Choices []choiceOut `json:"choices"`
	}
	type rangeOut struct {
		ChoiceID int    `json:"choiceId"`
		Min      string `json:"min"`
		Max      string `json:"max"`
	}
	type out struct {
		TotalPrice  string     `json:"totalPrice"`
		Points      []pointOut `json:"points"`
		PriceRanges []rangeOut `json:"priceRanges,omitempty"`
	}

	doc := out{TotalPrice: result.TotalPrice.StringFixed(2)}
	result.Tree.ForEachPoint(func(p *entities.DecisionPoint) {
		po := pointOut{
			ID:     p.ID,
			Name:   p.Name,
			Status: p.Status.String(),
			Price:  p.Price.StringFixed(2),
		}
		for _, c := range p.Choices {
			co := choiceOut{
				ID:       c.ID,
				Name:     c.Name,
				Quantity: c.Quantity,
				Price:    c.Price.StringFixed(2),
				Enabled:  c.Enabled,
			}
			for _, ao := range c.Options {
				co.Options = append(co.Options, ao.Option.FinancialOptionIntegrationKey)
			}
			po.Choices = append(po.Choices, co)
		}
		doc.Points = append(doc.Points, po)
	})
	for _, r := range result.PriceRanges {
		doc.PriceRanges = append(doc.PriceRanges, rangeOut{
			ChoiceID: r.ChoiceID,
			Min:      r.Min.StringFixed(2),
			Max:      r.Max.StringFixed(2),
		})
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}
