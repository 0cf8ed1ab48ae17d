package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/de-tools/fabric-atlas/pkg/adapters"
	"github.com/de-tools/fabric-atlas/pkg/services/seed"
	"github.com/de-tools/fabric-atlas/pkg/services/sources"
	"github.com/spf13/cobra"
)

type SeedCmd struct {
	count   int
	days    int
	seed    int64
	output  string
	toStore bool
	app     AppProvider
}

func NewSeedCmd(app AppProvider) *cobra.Command {
	sc := &SeedCmd{app: app}
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate sample orders as a JSON export or into the store",
		RunE:  sc.run,
	}

	cmd.Flags().IntVar(&sc.count, "count", 100, "Number of orders to generate")
	cmd.Flags().IntVar(&sc.days, "days", 14, "Spread orders over this many days up to now")
	cmd.Flags().Int64Var(&sc.seed, "seed", 1, "Random seed; the same seed yields the same orders")
	cmd.Flags().StringVarP(&sc.output, "output", "o", "", "Write a JSON export to this file")
	cmd.Flags().BoolVar(&sc.toStore, "store", false, "Upsert the orders into the embedded store")
	cmd.MarkFlagsOneRequired("output", "store")

	return cmd
}

func (sc *SeedCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	orders := seed.Generate(seed.Options{
		Count: sc.count,
		Days:  sc.days,
		Now:   time.Now(),
		Seed:  sc.seed,
	})

	if sc.output != "" {
		f, err := os.Create(sc.output)
		if err != nil {
			return fmt.Errorf("failed to create export file: %w", err)
		}
		if err := sources.EncodeOrders(f, orders); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d orders to %s\n", len(orders), sc.output)
	}

	if sc.toStore {
		a, err := sc.app(ctx)
		if err != nil {
			return err
		}
		if err := a.Orders.Upsert(ctx, adapters.MapDomainOrdersToStore(orders)); err != nil {
			return fmt.Errorf("failed to store orders: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Stored %d orders\n", len(orders))
	}

	return nil
}
