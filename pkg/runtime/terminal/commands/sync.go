package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/de-tools/fabric-atlas/pkg/models/domain"
	"github.com/de-tools/fabric-atlas/pkg/services/ordersync"
	"github.com/spf13/cobra"
)

type SyncCmd struct {
	source string
	once   bool
	app    AppProvider
}

func NewSyncCmd(app AppProvider) *cobra.Command {
	sc := &SyncCmd{app: app}
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Copy the orders of a source into the embedded store",
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.source, "source", "", "Source profile to copy from")
	cmd.Flags().BoolVar(&sc.once, "once", false, "Stop once the store has caught up instead of polling")
	_ = cmd.MarkFlagRequired("source")

	return cmd
}

func (sc *SyncCmd) run(cmd *cobra.Command, _ []string) error {
	if sc.source == domain.StoreSourceName {
		return fmt.Errorf("the store cannot sync into itself")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := sc.app(ctx)
	if err != nil {
		return err
	}

	src, err := a.Catalog.Get(ctx, sc.source)
	if err != nil {
		return err
	}
	if _, err := a.SyncStates.Create(ctx, sc.source); err != nil {
		return err
	}

	runner := ordersync.NewRunner(src, a.DB, a.SyncStates, a.Orders, ordersync.RunnerConfig{
		Interval: a.Settings.Sync.Interval,
	})
	out := cmd.OutOrStdout()

	if sc.once {
		total := 0
		for {
			synced, err := runner.SyncOnce(ctx)
			if err != nil {
				return err
			}
			if synced == 0 {
				break
			}
			total += synced
		}
		stored, err := a.Orders.Count(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Synced %d orders from %s (%d in store)\n", total, sc.source, stored)
		return nil
	}

	go runner.Run(ctx)
	for p := range runner.Progress() {
		fmt.Fprintf(out, "%s: %d orders synced (%d in store), cursor %s\n",
			p.Source, p.SyncedOrders, p.TotalOrders, p.Cursor.Format(time.RFC3339))
	}
	<-runner.Done()
	return nil
}
