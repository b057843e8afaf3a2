package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"dailyquest/internal/ui"
)

func newAddCmd() *cobra.Command {
	var order int

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task to today's list",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("title is required")
			}
			return nil
		},
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
			t, err := svc.AddTask(ctx, p.ID, args[0], order)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s added task %d: %s\n", ui.IconTask, t.ID, t.Title)
			return nil
		},
	}

	cmd.Flags().IntVarP(&order, "order", "o", 0, "Order index in the list")

	return cmd
}
