package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"dailyquest/internal/ui"
)

func newAttackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attack <defender> <inventory-entry-id>",
		Short: "Attack another player with one of your weapons",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("defender name and inventory entry id are required")
			}
			if _, err := strconv.ParseInt(args[1], 10, 64); err != nil {
				return errors.New("inventory entry id must be an integer")
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

			attacker, err := currentPlayer(ctx, svc)
			if err != nil {
				return err
			}
			defender, err := svc.PlayerRepo().GetByName(ctx, args[0])
			if err != nil {
				return err
			}
			if defender == nil {
				return fmt.Errorf("player %q not found", args[0])
			}
			entryID, _ := strconv.ParseInt(args[1], 10, 64)

			res, err := svc.Attack(ctx, attacker.ID, defender.ID, entryID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if res.BlockedByImmunity {
				fmt.Fprintf(out, "%s %s is immune — attack blocked\n", ui.IconPotion, defender.Name)
				return nil
			}
			fmt.Fprintf(out, "%s hit %s for %d damage\n", ui.IconSword, defender.Name, res.Damage)
			return nil
		},
	}

	return cmd
}
