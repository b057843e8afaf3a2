package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"dailyquest/internal/engine"
	"dailyquest/internal/ui"
)

func newShopCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shop",
		Short: "Browse the item catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			items, err := svc.ItemRepo().List(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconGold, "Shop"))
			for _, it := range items {
				line := fmt.Sprintf("%3d  %-24s %-12s %4d gold", it.ID, it.Name, it.Type, it.Cost)
				if engine.ItemType(it.Type).Restricted() {
					line += "  " + ui.Gold.Render("elite only")
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	return cmd
}

func newBuyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buy <item-name>",
		Short: "Buy an item from the shop",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("item name is required")
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
			item, err := svc.ItemRepo().GetByName(ctx, args[0])
			if err != nil {
				return err
			}
			if item == nil {
				return fmt.Errorf("item %q not found", args[0])
			}

			res, err := svc.Purchase(ctx, p.ID, item.ID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch {
			case res.NotEligible:
				fmt.Fprintf(out, "%s %s: %s\n", ui.IconWarn, item.Name, res.Gate.Error())
			case res.InsufficientFunds:
				fmt.Fprintf(out, "%s Not enough gold: %s costs %d, you have %d\n",
					ui.IconWarn, item.Name, item.Cost, res.Player.Gold)
			default:
				fmt.Fprintf(out, "%s Bought %s for %d gold (%d left)\n",
					ui.IconGold, item.Name, item.Cost, res.Player.Gold)
			}
			return nil
		},
	}

	return cmd
}
