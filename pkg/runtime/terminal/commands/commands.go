package commands

import (
	"context"
	"time"

	"github.com/de-tools/fabric-atlas/pkg/app"
	"github.com/spf13/cobra"
)

// AppProvider builds the application stack on first use, so commands that
// never touch the store do not open it.
type AppProvider func(ctx context.Context) (*app.App, error)

func contextWithTimeout(cmd *cobra.Command, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(cmd.Context())
	}
	return context.WithTimeout(cmd.Context(), timeout)
}
