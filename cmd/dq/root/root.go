package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dailyquest/internal/ui"
)

const Version = "0.1.0"

var playerName string

var rootCmd = &cobra.Command{
	Use:           "dq",
	Short:         "Dailyquest — gamified daily-task tracker",
	Long:          "Dailyquest turns your daily tasks into gold, experience and the occasional sword fight.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.PersistentFlags().StringVarP(&playerName, "player", "p", "", "Player name (or set DQ_PLAYER)")

	rootCmd.AddCommand(
		newSignupCmd(),
		newAddCmd(),
		newTasksCmd(),
		newMoveCmd(),
		newDoCmd(),
		newStatusCmd(),
		newAttackCmd(),
		newPotionCmd(),
		newShopCmd(),
		newBuyCmd(),
		newRenameCmd(),
		newTopCmd(),
		newBoardCmd(),
		newServeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
