package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GamingDebugged/starkiller-sub002/internal/config"
	"github.com/GamingDebugged/starkiller-sub002/internal/sim"
)

var (
	simulateDays int
	simulateSeed int64
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a headless campaign and print the event journal",
	Long: "Runs a fresh in-memory campaign for the given number of days without\n" +
		"touching the database. The same seed always produces the same journal,\n" +
		"which makes this the fastest way to inspect tuning changes.",
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&simulateDays, "days", 30, "days to simulate")
	simulateCmd.Flags().Int64Var(&simulateSeed, "seed", 1, "campaign seed")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	items, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	household := sim.NewHousehold(nil)
	ledger := sim.NewMemoryLedger(cfg.StartingCredits)
	driver := sim.NewDriver(household, items, simulateSeed, ledger)

	for day := 1; day <= simulateDays; day++ {
		report, err := driver.AdvanceDay(day)
		if err != nil {
			return err
		}
		if len(report.Events) == 0 && len(report.EligibleCaptains) == 0 && len(report.Content) == 0 {
			continue
		}
		printReport(report)
	}

	fmt.Printf("\nsimulated %d days, seed %d, %d events total\n",
		simulateDays, simulateSeed, len(driver.Journal()))
	return nil
}
