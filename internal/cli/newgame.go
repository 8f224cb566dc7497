package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GamingDebugged/starkiller-sub002/internal/server"
)

var newgameSeed int64

var newgameCmd = &cobra.Command{
	Use:   "newgame",
	Short: "Start a new campaign, wiping all state",
	Long: "Resets the campaign: family, captains, crises, trackers, credits, and\n" +
		"the shown-content set. This is the only way the shown-content set is\n" +
		"ever cleared.",
	RunE: runNewgame,
}

func init() {
	newgameCmd.Flags().Int64Var(&newgameSeed, "seed", 0, "campaign seed (0: random)")
}

func runNewgame(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.close()

	driver, err := server.NewCampaignDriver(e.db, e.ledger, newgameSeed, e.cfg.StartingCredits, e.driver)
	if err != nil {
		return err
	}
	fmt.Printf("new campaign started, seed %d\n", driver.Seed())
	return nil
}
