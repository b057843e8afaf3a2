package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"dailyquest/internal/ui"
)

func newTopCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "top",
		Short: "Show the lifetime XP leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			players, err := svc.PlayerRepo().ListByLifetimeXP(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconCrown, "Leaderboard"))
			for i, p := range players {
				name := p.Name
				if p.EliteAwardedAt != nil {
					name += " " + ui.BadgeElite
				}
				fmt.Fprintf(out, "%2d. %-28s %6d XP  %s %d\n", i+1, name, p.LifetimeXP, ui.IconGold, p.Gold)
			}
			return nil
		},
	}

	return cmd
}
