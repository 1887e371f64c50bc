package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/hearthside/configurator/pkg/interfaces/cli/commands"
)

func main() {
	var (
		catalogFile = flag.String("catalog", "", "Path to catalog snapshot file (.yaml or .json)")
		selections  = flag.String("select", "", "Comma-separated choice ids to select, in order")
		lotID       = flag.Int("lot", 0, "Homesite id (overrides the snapshot's lotId)")
		format      = flag.String("format", "text", "Output format: text, json")
		priceRanges = flag.Bool("price-ranges", false, "Compute min/max price per choice")
		verbose     = flag.Bool("verbose", false, "Include unselected choices in output")
		help        = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	config := commands.Config{
		CatalogFile: *catalogFile,
		Selections:  *selections,
		LotID:       *lotID,
		Format:      *format,
		PriceRanges: *priceRanges,
		Verbose:     *verbose,
		Help:        *help,
	}

	cmd := commands.NewConfigureCommand(config)
	ctx := context.Background()

	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
