package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"dailyquest/internal/engine"
	"dailyquest/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show player stats, gear and elite standing",
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
			out := cmd.OutOrStdout()
			now := time.Now().UTC()

			title := p.Name
			if p.EliteAwardedAt != nil {
				title += " " + ui.BadgeElite
			}
			fmt.Fprintln(out, ui.Heading(ui.IconSword, title))
			fmt.Fprintln(out, ui.LabelValue("Gold", fmt.Sprintf("%s %d", ui.IconGold, p.Gold)))
			fmt.Fprintln(out, ui.LabelValue("Lifetime XP", p.LifetimeXP))
			fmt.Fprintln(out, ui.LabelValue("Daily level", fmt.Sprintf("%d/%d (%d tasks today)", p.DailyLevel, engine.DailyTaskCap, p.TasksDoneToday)))

			if p.ImmunityExpiresAt != nil && now.Before(*p.ImmunityExpiresAt) {
				fmt.Fprintln(out, ui.LabelValue("Immunity", ui.Good.Render("until "+p.ImmunityExpiresAt.Local().Format("Jan 2 15:04"))))
			}

			best, dmg, err := svc.BestWeapon(ctx, p.ID)
			if err != nil {
				return err
			}
			if best != nil {
				fmt.Fprintln(out, ui.LabelValue("Best weapon", fmt.Sprintf("%s %s (%d dmg)", ui.IconSword, best.Name, dmg)))
			}
			prot, err := svc.EffectiveProtection(ctx, p.ID, now)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, ui.LabelValue("Protection", fmt.Sprintf("%s %d", ui.IconShield, prot)))

			holders, err := svc.PlayerRepo().CountElite(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, ui.LabelValue("Elite slots taken", fmt.Sprintf("%d/%d", holders, engine.EliteSlots)))

			next := svc.Clock().NextCutoff(now)
			fmt.Fprintln(out, ui.LabelValue("Next reset", fmt.Sprintf("%s %s", ui.IconClock, next.Local().Format("Jan 2 15:04"))))
			return nil
		},
	}

	return cmd
}
