package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"dailyquest/internal/ui"
)

func newPotionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "potion <inventory-entry-id>",
		Short: "Drink an immunity potion",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("inventory entry id is required")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
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

			p, err := currentPlayer(ctx, svc)
			if err != nil {
				return err
			}
			entryID, _ := strconv.ParseInt(args[0], 10, 64)

			res, err := svc.UsePotion(ctx, p.ID, entryID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Immune until %s\n",
				ui.IconPotion, res.ImmunityExpiresAt.Local().Format("Jan 2 15:04"))
			return nil
		},
	}

	return cmd
}
