package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/hearthside/configurator/pkg/application/services/scenario"
	"github.com/hearthside/configurator/pkg/infrastructure/repositories/catalog"
	"github.com/hearthside/configurator/pkg/infrastructure/repositories/memory"
	"github.com/hearthside/configurator/pkg/interfaces/cli/output"
)

// Config holds configuration for the configure command
type Config struct {
	CatalogFile string
	Selections  string
	LotID       int
	Format      string
	PriceRanges bool
	Verbose     bool
	Help        bool
}

// ConfigureCommand loads a catalog snapshot, applies selections, runs the
// rule engine, and renders the priced tree.
type ConfigureCommand struct {
	config Config
}

// NewConfigureCommand creates a new configure command with the given configuration
func NewConfigureCommand(config Config) *ConfigureCommand {
	return &ConfigureCommand{config: config}
}

// Execute runs the configure command
func (c *ConfigureCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}
	if c.config.CatalogFile == "" {
		return fmt.Errorf("a catalog file is required (use -catalog)")
	}

	loader := catalog.NewLoader()
	snapshot, err := loader.Load(c.config.CatalogFile)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	treeRepo := memory.NewTreeRepository()
	ruleRepo := memory.NewRuleRepository()
	optionRepo := memory.NewOptionRepository()

	if err := treeRepo.LoadTree(snapshot.Tree); err != nil {
		return fmt.Errorf("failed to load tree: %w", err)
	}
	versionID := snapshot.Tree.Version.ID
	if err := ruleRepo.LoadRules(versionID, snapshot.Rules); err != nil {
		return fmt.Errorf("failed to load rules: %w", err)
	}
	if err := optionRepo.LoadOptions(snapshot.Tree.PlanID, snapshot.Options); err != nil {
		return fmt.Errorf("failed to load options: %w", err)
	}

	tree, err := treeRepo.GetTree(versionID)
	if err != nil {
		return fmt.Errorf("failed to get tree: %w", err)
	}
	treeRules, err := ruleRepo.GetRules(versionID)
	if err != nil {
		return fmt.Errorf("failed to get rules: %w", err)
	}
	options, err := optionRepo.GetOptions(snapshot.Tree.PlanID)
	if err != nil {
		return fmt.Errorf("failed to get options: %w", err)
	}

	svc, err := scenario.NewService(tree, treeRules, options)
	if err != nil {
		return fmt.Errorf("failed to start scenario: %w", err)
	}
	defer svc.Close()

	if len(snapshot.Historical) > 0 {
		// Snapshot price records belong to one contracted job.
		jobID := snapshot.Historical[0].EdhJobID
		if err := optionRepo.LoadHistoricalPrices(jobID, snapshot.Historical); err != nil {
			return fmt.Errorf("failed to load historical prices: %w", err)
		}
		prices, err := optionRepo.GetHistoricalPrices(jobID)
		if err != nil {
			return fmt.Errorf("failed to get historical prices: %w", err)
		}
		svc.SetHistoricalPrices(prices)
	}

	lotID := c.config.LotID
	if lotID == 0 {
		lotID = snapshot.LotID
	}
	if lotID != 0 {
		svc.SetLot(lotID)
	}

	selections, err := parseSelections(c.config.Selections)
	if err != nil {
		return err
	}
	for _, choiceID := range selections {
		if err := svc.SelectChoice(choiceID, 1); err != nil {
			return fmt.Errorf("failed to select choice %d: %w", choiceID, err)
		}
	}

	result := &output.Result{
		Tree:       svc.Tree(),
		TotalPrice: svc.TotalPrice(),
	}

	if c.config.PriceRanges {
		ranges, err := svc.PriceRanges(ctx)
		if err != nil {
			return fmt.Errorf("failed to compute price ranges: %w", err)
		}
		result.PriceRanges = ranges
	}

	return output.Generate(result, output.Config{
		Format:  c.config.Format,
		Verbose: c.config.Verbose,
	})
}

func parseSelections(value string) ([]int, error) {
	if value == "" {
		return nil, nil
	}
	parts := strings.Split(value, ",")
	ids := make([]int, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid choice id %q in -select", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (c *ConfigureCommand) showHelp() {
	fmt.Println(`configurator - house configuration rule & pricing engine

Usage:
  configurator -catalog <file> [options]

Options:
  -catalog <file>   Catalog snapshot file (.yaml, .yml, or .json)
  -select <ids>     Comma-separated choice ids to select, in order
  -lot <id>         Homesite id (overrides the snapshot's lotId)
  -format <fmt>     Output format: text, json (default: text)
  -price-ranges     Compute min/max price per choice (may be slow)
  -verbose          Include unselected choices in text output
  -help             Show this help message`)
}
