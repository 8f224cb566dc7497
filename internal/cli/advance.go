package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/GamingDebugged/starkiller-sub002/internal/api"
	"github.com/GamingDebugged/starkiller-sub002/internal/sim"
)

var advanceAddr string

var advanceCmd = &cobra.Command{
	Use:   "advance",
	Short: "Advance the campaign one day",
	Long: "Advances the simulation to the next day and prints the day report.\n" +
		"With --addr (or STARKILLER_URL set and a server running), the advance\n" +
		"goes through the HTTP API instead of opening the database directly.",
	RunE: runAdvance,
}

func init() {
	advanceCmd.Flags().StringVar(&advanceAddr, "addr", "", "server base URL (empty: local database)")
}

func runAdvance(cmd *cobra.Command, args []string) error {
	if client := api.NewClient(advanceAddr); advanceAddr != "" || client.Healthy() {
		body, err := client.Post("/api/day/advance", []byte("{}"))
		if err != nil {
			return err
		}
		var report sim.DayReport
		if err := json.Unmarshal(body, &report); err != nil {
			return fmt.Errorf("decode report: %w", err)
		}
		printReport(report)
		return nil
	}

	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.close()

	report, err := e.driver.AdvanceDay(e.driver.Day() + 1)
	if err != nil {
		return err
	}
	if err := e.db.SaveCampaign(e.driver.ExportState()); err != nil {
		return fmt.Errorf("save campaign: %w", err)
	}
	printReport(report)
	return nil
}

func printReport(report sim.DayReport) {
	fmt.Printf("day %d (%s)\n", report.Day, report.Phase)
	for _, ev := range report.Events {
		printEvent(ev)
	}
	if len(report.EligibleCaptains) > 0 {
		fmt.Printf("  captains due: %v\n", report.EligibleCaptains)
	}
	for _, it := range report.Content {
		fmt.Printf("  [%s] %s", it.Category, it.ID)
		if it.Headline != "" {
			fmt.Printf(": %s", it.Headline)
		}
		fmt.Println()
	}
}

func printEvent(ev sim.Event) {
	who := string(ev.Role)
	if who == "" {
		who = ev.CaptainID
	}
	if ev.Detail != "" {
		fmt.Fprintf(os.Stdout, "  ! %s %s: %s\n", ev.Type, who, ev.Detail)
		return
	}
	fmt.Fprintf(os.Stdout, "  ! %s %s\n", ev.Type, who)
}
