package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"dailyquest/internal/ui"
)

func newTasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List today's tasks",
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
			tasks, err := svc.TaskRepo().ListByPlayer(ctx, p.ID)
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No tasks yet. Add one with `dq add`."))
				return nil
			}
			for _, t := range tasks {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %3d  %s\n", ui.TaskMark(t.IsDone), t.ID, t.Title)
			}
			return nil
		},
	}

	return cmd
}
