package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"dailyquest/internal/ui"
)

func newRenameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename <inventory-entry-id> [new-name]",
		Short: "Use a name scroll (change or restore)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 || len(args) > 2 {
				return errors.New("inventory entry id required, new name optional")
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
			newName := ""
			if len(args) == 2 {
				newName = args[1]
			}

			res, err := svc.UseNameScroll(ctx, p.ID, entryID, newName)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s You are now known as %s\n", ui.IconScroll, res.Player.Name)
			return nil
		},
	}

	return cmd
}
