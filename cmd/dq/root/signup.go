package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"dailyquest/internal/engine"
	"dailyquest/internal/ui"
)

func newSignupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signup <name>",
		Short: "Create a new player",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("name is required")
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

			p, err := svc.Signup(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconSparkle, "Welcome, "+p.Name+"!"))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Starting gold", engine.StartingGold))
			return nil
		},
	}

	return cmd
}
