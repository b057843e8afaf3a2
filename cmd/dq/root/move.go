package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"dailyquest/internal/ui"
)

func newMoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <task-id> <order>",
		Short: "Move a task to a new position in the list",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("task id and order are required")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return errors.New("task id must be an integer")
			}
			if _, err := strconv.Atoi(args[1]); err != nil {
				return errors.New("order must be an integer")
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
			taskID, _ := strconv.ParseInt(args[0], 10, 64)
			order, _ := strconv.Atoi(args[1])

			if err := svc.ReorderTask(ctx, p.ID, taskID, order); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Task %d moved to position %d\n", ui.IconTask, taskID, order)
			return nil
		},
	}

	return cmd
}
