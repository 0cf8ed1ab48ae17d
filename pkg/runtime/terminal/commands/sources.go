package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

type SourcesCmd struct {
	app AppProvider
}

func NewSourcesCmd(app AppProvider) *cobra.Command {
	sc := &SourcesCmd{app: app}
	return &cobra.Command{
		Use:   "sources",
		Short: "List the configured order sources",
		RunE:  sc.run,
	}
}

func (sc *SourcesCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := sc.app(ctx)
	if err != nil {
		return err
	}

	profiles, err := a.Analytics.ListSources(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTYPE")
	for _, p := range profiles {
		fmt.Fprintf(w, "%s\t%s\n", p.Name, p.Type)
	}
	return w.Flush()
}
