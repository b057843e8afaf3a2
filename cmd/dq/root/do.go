package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"dailyquest/internal/engine"
	"dailyquest/internal/ui"
)

func newDoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "do <id>",
		Short: "Complete a task",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return errors.New("id must be an integer")
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
			id, _ := strconv.ParseInt(args[0], 10, 64)

			res, err := svc.CompleteTask(ctx, p.ID, id)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch {
			case res.AlreadyDone:
				fmt.Fprintln(out, ui.Muted.Render("Already done — nothing changed."))
			case res.Capped:
				fmt.Fprintf(out, "%s %s: task marked done, reward withheld (%d/%d today)\n",
					ui.IconWarn, ui.BadgeCapped, res.Player.TasksDoneToday, engine.DailyTaskCap)
			default:
				fmt.Fprintf(out, "%s +%d gold, +%d XP — daily level %d/%d\n",
					ui.IconDone, engine.TaskRewardGold, engine.TaskRewardXP,
					res.Player.DailyLevel, engine.DailyTaskCap)
			}
			if res.EliteAwarded {
				fmt.Fprintln(out, ui.Gold.Render(ui.IconCrown+" All tasks done — you claimed an elite slot!"))
			}
			return nil
		},
	}

	return cmd
}
