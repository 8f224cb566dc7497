package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the campaign state",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.close()

	balance, err := e.ledger.Balance()
	if err != nil {
		return err
	}

	fmt.Printf("day %d, seed %d, credits %d\n", e.driver.Day(), e.driver.Seed(), balance)

	fmt.Println("family:")
	for _, m := range e.driver.FamilySnapshots() {
		if !m.Alive {
			fmt.Printf("  %-9s %-8s DECEASED day %d (%s)\n", m.Role, m.Name, m.DeathDay, m.DeathCause)
			continue
		}
		warn := ""
		if m.DeathWarning {
			warn = "  [EMERGENCY]"
		}
		fmt.Printf("  %-9s %-8s rel=%-3d hap=%-3d saf=%-3d hea=%-3d %s%s\n",
			m.Role, m.Name, m.Relationship, m.Happiness, m.Safety, m.Health, m.Standing, warn)
	}

	captains := e.driver.CaptainSnapshots()
	if len(captains) > 0 {
		fmt.Println("captains:")
		for _, c := range captains {
			fmt.Printf("  %-12s %-13s encounters=%d last=day %d\n",
				c.ID, c.Standing, c.EncounterCount, c.LastEncounterDay)
		}
	}

	crises := e.driver.OpenCrises()
	if len(crises) > 0 {
		fmt.Println("open crises:")
		for _, c := range crises {
			fmt.Printf("  %s %s (day %d) id=%s\n", c.Role, c.Type, c.Day, c.ID)
		}
	}
	return nil
}
