package root

import (
	"context"

	"github.com/spf13/cobra"

	"dailyquest/internal/tui"
)

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the interactive task board",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			p, err := currentPlayer(ctx, svc)
			if err != nil {
				return err
			}
			return tui.RunBoard(ctx, svc, p.ID, cmd.OutOrStdout())
		},
	}

	return cmd
}
